package business

import "errors"

// Aggregation failures are deterministic for a given input; callers inspect
// them with errors.Is against these sentinels.
var (
	// ErrMissingColumn reports a grouping or value column absent from the
	// input table.
	ErrMissingColumn = errors.New("missing column")

	// ErrTypeMismatch reports a numeric reduction requested over non-numeric
	// cells.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedOperation reports an operation the chosen strategy does
	// not implement.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
