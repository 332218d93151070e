package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"supergrid/business"
)

// Read loads the dataset described by cfg into a table.
func Read(cfg DatasetConfig) (business.Table, error) {
	switch cfg.Reader {
	case ReaderCSV:
		return ReadCSV(cfg.Path)
	case ReaderExcel, ReaderSet:
		return ReadExcel(cfg.Path, cfg.Sheet, cfg.SkipRows)
	default:
		return business.Table{}, fmt.Errorf("unknown reader %q", cfg.Reader)
	}
}

// ReadCSV loads a CSV file whose first record is the header row.
func ReadCSV(path string) (business.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return business.Table{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return business.Table{}, fmt.Errorf("read csv %s: %w", path, err)
	}
	return tableFromRecords(records)
}

// ReadExcel loads one sheet of an xlsx workbook. An empty sheet name selects
// the first sheet; skipRows drops leading rows before the header.
func ReadExcel(path, sheet string, skipRows int) (business.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return business.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return business.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if skipRows >= len(rows) {
		rows = nil
	} else if skipRows > 0 {
		rows = rows[skipRows:]
	}
	return tableFromRecords(rows)
}

// tableFromRecords converts a header row plus data rows into a table,
// parsing cells as numbers where possible.
func tableFromRecords(records [][]string) (business.Table, error) {
	if len(records) == 0 {
		return business.NewTable()
	}

	header := records[0]
	cols := make([]business.Column, len(header))
	for i, name := range header {
		cols[i] = business.Column{
			Name:  strings.TrimSpace(name),
			Cells: make([]business.Cell, 0, len(records)-1),
		}
	}

	for _, rec := range records[1:] {
		for i := range cols {
			cols[i].Cells = append(cols[i].Cells, parseCell(cellValue(rec, i)))
		}
	}
	return business.NewTable(cols...)
}

// cellValue returns the i-th field of a record. Excel rows omit trailing
// empty cells, so short records pad with "".
func cellValue(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func parseCell(raw string) business.Cell {
	s := strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return business.Number(v)
	}
	return business.Text(s)
}
