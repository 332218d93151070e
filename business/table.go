package business

import (
	"fmt"
	"strconv"
)

// Cell is a single table value: either a number or a piece of text.
// The zero value is the number 0.
type Cell struct {
	num    float64
	text   string
	isText bool
}

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{num: v} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{text: s, isText: true} }

// IsText reports whether the cell holds text.
func (c Cell) IsText() bool { return c.isText }

// Float returns the numeric value, or ErrTypeMismatch for text cells.
func (c Cell) Float() (float64, error) {
	if c.isText {
		return 0, fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, c.text)
	}
	return c.num, nil
}

// String returns the text for text cells and the shortest exact decimal
// representation for numeric cells.
func (c Cell) String() string {
	if c.isText {
		return c.text
	}
	return strconv.FormatFloat(c.num, 'g', -1, 64)
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// Table holds equally sized named columns in a stable order. Row order is
// preserved by every operation that does not reduce rows.
//
// Aggregation strategies work on a Clone, so a table passed into a Reduce
// call is never mutated.
type Table struct {
	cols  []Column
	index map[string]int
}

// NewTable builds a table from columns. All columns must have the same
// length and distinct names.
func NewTable(cols ...Column) (Table, error) {
	t := Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if len(t.cols) > 0 && len(c.Cells) != t.Rows() {
			return Table{}, fmt.Errorf("column %q has %d rows, want %d", c.Name, len(c.Cells), t.Rows())
		}
		if _, ok := t.index[c.Name]; ok {
			return Table{}, fmt.Errorf("duplicate column %q", c.Name)
		}
		t.index[c.Name] = len(t.cols)
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// Rows returns the number of rows.
func (t Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// ColumnNames returns the column names in table order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the table has a column with the given name.
func (t Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	c := t.cols[i]
	return Column{Name: c.Name, Cells: append([]Cell(nil), c.Cells...)}, true
}

// AppendColumn adds a column at the end of the table.
func (t *Table) AppendColumn(c Column) error {
	if t.HasColumn(c.Name) {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && len(c.Cells) != t.Rows() {
		return fmt.Errorf("column %q has %d rows, want %d", c.Name, len(c.Cells), t.Rows())
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// DropColumns removes the named columns. Names that are absent are ignored;
// remaining columns keep their relative order.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	cols := make([]Column, 0, len(t.cols))
	index := make(map[string]int, len(t.cols))
	for _, c := range t.cols {
		if _, ok := drop[c.Name]; ok {
			continue
		}
		index[c.Name] = len(cols)
		cols = append(cols, c)
	}
	t.cols, t.index = cols, index
}

// Clone returns a deep copy; mutating the clone never affects the original.
func (t Table) Clone() Table {
	out := Table{
		cols:  make([]Column, len(t.cols)),
		index: make(map[string]int, len(t.cols)),
	}
	for i, c := range t.cols {
		out.cols[i] = Column{Name: c.Name, Cells: append([]Cell(nil), c.Cells...)}
		out.index[c.Name] = i
	}
	return out
}

// filterRows keeps only the rows for which keep returns true, preserving
// row order.
func (t Table) filterRows(keep func(row int) bool) Table {
	out := Table{
		cols:  make([]Column, len(t.cols)),
		index: make(map[string]int, len(t.cols)),
	}
	for i, c := range t.cols {
		kept := make([]Cell, 0, len(c.Cells))
		for row, cell := range c.Cells {
			if keep(row) {
				kept = append(kept, cell)
			}
		}
		out.cols[i] = Column{Name: c.Name, Cells: kept}
		out.index[c.Name] = i
	}
	return out
}
