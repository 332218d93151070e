package loader

import (
	"encoding/csv"
	"fmt"
	"os"

	"supergrid/business"
)

// WriteCSV writes the table to path as CSV, header row first.
func WriteCSV(path string, tbl business.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	w := csv.NewWriter(f)
	names := tbl.ColumnNames()
	if err := w.Write(names); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	cols := make([]business.Column, len(names))
	for i, name := range names {
		cols[i], _ = tbl.Column(name)
	}

	record := make([]string, len(cols))
	for row := 0; row < tbl.Rows(); row++ {
		for i := range cols {
			record[i] = cols[i].Cells[row].String()
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
