package loader

import "os"

// FileExists reports whether path names an existing regular file. It never
// signals through errors; a stat failure simply means "not there".
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
