package business

import (
	"reflect"
	"testing"
)

func TestNewTableValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cols    []Column
		wantErr bool
	}{
		{
			name: "equal length columns",
			cols: []Column{
				{Name: "a", Cells: []Cell{Number(1), Number(2)}},
				{Name: "b", Cells: []Cell{Text("x"), Text("y")}},
			},
		},
		{
			name: "ragged columns rejected",
			cols: []Column{
				{Name: "a", Cells: []Cell{Number(1), Number(2)}},
				{Name: "b", Cells: []Cell{Number(3)}},
			},
			wantErr: true,
		},
		{
			name: "duplicate names rejected",
			cols: []Column{
				{Name: "a", Cells: []Cell{Number(1)}},
				{Name: "a", Cells: []Cell{Number(2)}},
			},
			wantErr: true,
		},
		{name: "empty table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.cols...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig, err := NewTable(
		Column{Name: "zone", Cells: []Cell{Text("NO1"), Text("SE")}},
		Column{Name: "mw", Cells: []Cell{Number(10), Number(20)}},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	clone := orig.Clone()
	clone.cols[0].Cells[0] = Text("changed")
	clone.DropColumns("mw")

	if got := orig.cols[0].Cells[0].String(); got != "NO1" {
		t.Fatalf("original cell = %q after mutating clone, want NO1", got)
	}
	if !orig.HasColumn("mw") {
		t.Fatalf("original lost column mw after dropping it from clone")
	}
}

func TestDropColumns(t *testing.T) {
	t.Parallel()

	tbl, err := NewTable(
		Column{Name: "a", Cells: []Cell{Number(1)}},
		Column{Name: "b", Cells: []Cell{Number(2)}},
		Column{Name: "c", Cells: []Cell{Number(3)}},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	tbl.DropColumns("b", "absent")

	want := []string{"a", "c"}
	if got := tbl.ColumnNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ColumnNames() = %v, want %v", got, want)
	}
	if _, ok := tbl.Column("c"); !ok {
		t.Fatalf("column c not addressable after drop")
	}
}

func TestAppendColumn(t *testing.T) {
	t.Parallel()

	tbl, err := NewTable(Column{Name: "a", Cells: []Cell{Number(1)}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	if err := tbl.AppendColumn(Column{Name: "a", Cells: []Cell{Number(2)}}); err == nil {
		t.Fatalf("expected duplicate column error")
	}
	if err := tbl.AppendColumn(Column{Name: "b", Cells: []Cell{Number(2), Number(3)}}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if err := tbl.AppendColumn(Column{Name: "b", Cells: []Cell{Number(2)}}); err != nil {
		t.Fatalf("AppendColumn: %v", err)
	}
}

func TestCellFloat(t *testing.T) {
	t.Parallel()

	if _, err := Text("x").Float(); err == nil {
		t.Fatalf("expected type mismatch for text cell")
	}
	v, err := Number(2.5).Float()
	if err != nil || v != 2.5 {
		t.Fatalf("Float() = %v, %v, want 2.5, nil", v, err)
	}
	if got := Number(3).String(); got != "3" {
		t.Fatalf("Number(3).String() = %q, want 3", got)
	}
}
