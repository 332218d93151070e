package business

import "fmt"

// HorizontalAggregation collapses the child columns of each supernode into a
// single new column, translating node names through an alias table first.
// Child nodes whose (aliased) name is not a column of the dataset are
// skipped, which tolerates child lists referencing nodes absent from a
// particular dataset.
type HorizontalAggregation struct {
	Aliases AliasTable
}

// Reduce implements Strategy. Sum emits a column for every supernode, zero
// filled when its effective child list is empty; Mean skips supernodes with
// an empty effective child list entirely. That asymmetry is intentional.
// Count is not supported.
func (h HorizontalAggregation) Reduce(op Op, tbl Table, supernodes SupernodeMap) (Table, error) {
	switch op {
	case Sum, Mean:
	default:
		return Table{}, fmt.Errorf("%w: horizontal %s", ErrUnsupportedOperation, op)
	}

	// Effective child columns are fixed against the input table before any
	// column is added or removed.
	effective := make([][]string, len(supernodes))
	for i, s := range supernodes {
		for _, node := range s.Nodes {
			if name, ok := aliasColumn(node, h.Aliases, tbl); ok {
				effective[i] = append(effective[i], name)
			}
		}
	}

	work := tbl.Clone()
	for i, s := range supernodes {
		children := effective[i]
		if op == Mean && len(children) == 0 {
			continue
		}

		cells, err := rowReduce(op, work, children)
		if err != nil {
			return Table{}, fmt.Errorf("supernode %q: %w", s.Name, err)
		}

		// Drop before append so a supernode may reuse one of its child
		// names without colliding.
		work.DropColumns(children...)
		if err := work.AppendColumn(Column{Name: s.Name, Cells: cells}); err != nil {
			return Table{}, fmt.Errorf("supernode %q: %w", s.Name, err)
		}
	}
	return work, nil
}

// rowReduce computes the row-wise sum or mean across the named columns.
// With no columns it yields zeros (only reachable for Sum).
func rowReduce(op Op, t Table, names []string) ([]Cell, error) {
	cols := make([][]Cell, len(names))
	for i, name := range names {
		// A child claimed by an earlier supernode was already dropped;
		// overlapping child sets surface here instead of resolving twice.
		idx, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: column %q", ErrMissingColumn, name)
		}
		cols[i] = t.cols[idx].Cells
	}

	cells := make([]Cell, t.Rows())
	for row := range cells {
		total := 0.0
		for i, col := range cols {
			f, err := col[row].Float()
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", names[i], row, err)
			}
			total += f
		}
		if op == Mean {
			total /= float64(len(cols))
		}
		cells[row] = Number(total)
	}
	return cells, nil
}
