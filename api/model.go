package api

import (
	"encoding/json"
	"fmt"

	"supergrid/business"
)

// Cell is the wire form of a single table cell: a JSON number or a JSON
// string, nothing else.
type Cell struct {
	cell business.Cell
}

// MarshalJSON implements the json.Marshaler interface for Cell.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.cell.IsText() {
		return json.Marshal(c.cell.String())
	}
	v, err := c.cell.Float()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements the json.Unmarshaler interface for Cell.
// Returns an error for anything but a number or a string.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		c.cell = business.Number(x)
	case string:
		c.cell = business.Text(x)
	default:
		return fmt.Errorf("cell must be a number or a string")
	}
	return nil
}

// ColumnPayload is one named column of a wire table.
type ColumnPayload struct {
	Name   string `json:"name"`
	Values []Cell `json:"values"`
}

// TablePayload is the wire form of a table. Column order is significant and
// preserved in both directions.
type TablePayload struct {
	Columns []ColumnPayload `json:"columns"`
}

func (p TablePayload) table() (business.Table, error) {
	cols := make([]business.Column, len(p.Columns))
	for i, c := range p.Columns {
		cells := make([]business.Cell, len(c.Values))
		for j, v := range c.Values {
			cells[j] = v.cell
		}
		cols[i] = business.Column{Name: c.Name, Cells: cells}
	}
	return business.NewTable(cols...)
}

func payloadFromTable(t business.Table) TablePayload {
	names := t.ColumnNames()
	out := TablePayload{Columns: make([]ColumnPayload, len(names))}
	for i, name := range names {
		col, _ := t.Column(name)
		values := make([]Cell, len(col.Cells))
		for j, cell := range col.Cells {
			values[j] = Cell{cell: cell}
		}
		out.Columns[i] = ColumnPayload{Name: name, Values: values}
	}
	return out
}

// SupernodePayload is the wire form of one supernode. Payload order is the
// resolution order of the map.
type SupernodePayload struct {
	Name  string   `json:"name"`
	Nodes []string `json:"nodes"`
}
