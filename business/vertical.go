package business

import (
	"fmt"
	"strings"
)

// VerticalAggregation groups rows by one or two key columns, after remapping
// each key cell to its supernode, and reduces one value column per group.
//
// With Transmission set the two key columns denote a directed edge; rows
// whose endpoints collapse to the same supernode are dropped before grouping,
// so intra-supernode transfers are never counted.
type VerticalAggregation struct {
	GroupBy      []string
	ValueColumn  string
	Transmission bool
}

// countColumn names the result column of a Count reduction when no value
// column is configured (the row-counting reader mode).
const countColumn = "count"

// Reduce implements Strategy. Sum and Mean reduce exactly the one named
// value column; Count counts rows per group and needs no value column.
func (v VerticalAggregation) Reduce(op Op, tbl Table, supernodes SupernodeMap) (Table, error) {
	switch op {
	case Sum, Mean, Count:
	default:
		return Table{}, fmt.Errorf("%w: vertical %s", ErrUnsupportedOperation, op)
	}

	if len(v.GroupBy) < 1 || len(v.GroupBy) > 2 {
		return Table{}, fmt.Errorf("vertical aggregation needs one or two group columns, got %d", len(v.GroupBy))
	}
	if v.Transmission && len(v.GroupBy) != 2 {
		return Table{}, fmt.Errorf("transmission mode needs two group columns, got %d", len(v.GroupBy))
	}
	for _, name := range v.GroupBy {
		if !tbl.HasColumn(name) {
			return Table{}, fmt.Errorf("%w: group column %q", ErrMissingColumn, name)
		}
	}
	if op != Count && !tbl.HasColumn(v.ValueColumn) {
		return Table{}, fmt.Errorf("%w: value column %q", ErrMissingColumn, v.ValueColumn)
	}

	work := tbl.Clone()
	remapColumn(work, v.GroupBy[0], supernodes)
	if v.Transmission {
		remapColumn(work, v.GroupBy[1], supernodes)
		from := work.cols[work.index[v.GroupBy[0]]].Cells
		to := work.cols[work.index[v.GroupBy[1]]].Cells
		work = work.filterRows(func(row int) bool {
			return from[row].String() != to[row].String()
		})
	}

	groups := groupRows(work, v.GroupBy)

	out := Table{}
	for _, name := range v.GroupBy {
		cells := make([]Cell, len(groups))
		src := work.cols[work.index[name]].Cells
		for i, g := range groups {
			cells[i] = src[g.first]
		}
		if err := out.AppendColumn(Column{Name: name, Cells: cells}); err != nil {
			return Table{}, err
		}
	}

	reduced, err := v.reduceGroups(op, work, groups)
	if err != nil {
		return Table{}, err
	}
	if err := out.AppendColumn(reduced); err != nil {
		return Table{}, err
	}
	return out, nil
}

func (v VerticalAggregation) reduceGroups(op Op, work Table, groups []rowGroup) (Column, error) {
	name := v.ValueColumn
	if op == Count && name == "" {
		name = countColumn
	}

	cells := make([]Cell, len(groups))
	if op == Count {
		for i, g := range groups {
			cells[i] = Number(float64(len(g.rows)))
		}
		return Column{Name: name, Cells: cells}, nil
	}

	values := work.cols[work.index[v.ValueColumn]].Cells
	for i, g := range groups {
		total := 0.0
		for _, row := range g.rows {
			f, err := values[row].Float()
			if err != nil {
				return Column{}, fmt.Errorf("value column %q row %d: %w", v.ValueColumn, row, err)
			}
			total += f
		}
		if op == Mean {
			total /= float64(len(g.rows))
		}
		cells[i] = Number(total)
	}
	return Column{Name: name, Cells: cells}, nil
}

// remapColumn replaces each cell of the named key column with the name of
// its owning supernode. Unmapped cells keep their value (as text).
func remapColumn(t Table, name string, supernodes SupernodeMap) {
	cells := t.cols[t.index[name]].Cells
	for i, c := range cells {
		cells[i] = Text(supernodes.Resolve(c.String()))
	}
}

// rowGroup is one group of rows sharing a key, in first-seen order.
type rowGroup struct {
	first int
	rows  []int
}

// groupRows groups the table's rows by the key columns, preserving the order
// in which keys first appear (stable, not sorted).
func groupRows(t Table, keys []string) []rowGroup {
	cols := make([][]Cell, len(keys))
	for i, name := range keys {
		cols[i] = t.cols[t.index[name]].Cells
	}

	seen := make(map[string]int)
	var groups []rowGroup
	var key strings.Builder
	for row := 0; row < t.Rows(); row++ {
		key.Reset()
		for i, col := range cols {
			if i > 0 {
				// Unit separator; key parts never contain it in practice.
				key.WriteByte(0x1f)
			}
			key.WriteString(col[row].String())
		}
		k := key.String()
		g, ok := seen[k]
		if !ok {
			g = len(groups)
			seen[k] = g
			groups = append(groups, rowGroup{first: row})
		}
		groups[g].rows = append(groups[g].rows, row)
	}
	return groups
}
