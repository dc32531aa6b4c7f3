// Package tabular reads the column-mapped CSV files the catalogs and score
// tables are built from. Files are header-addressed: callers name columns,
// never positions, so upstream pipelines can reorder or extend files freely.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Table is an immutable, header-indexed CSV file held in memory.
type Table struct {
	columns map[string]int
	rows    [][]string
}

// ReadFile loads path as a CSV table with a header row.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// Read parses CSV content with a header row from r.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return &Table{columns: columns, rows: rows}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// Field returns the string value at (row, column).
func (t *Table) Field(row int, column string) (string, error) {
	idx, ok := t.columns[column]
	if !ok {
		return "", fmt.Errorf("unknown column: %s", column)
	}
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row %d out of range", row)
	}
	return t.rows[row][idx], nil
}

// Float parses the value at (row, column) as a float64. Empty cells parse
// as 0.
func (t *Table) Float(row int, column string) (float64, error) {
	raw, err := t.Field(row, column)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s row %d: %w", column, row, err)
	}
	return v, nil
}

// Int parses the value at (row, column) as an int. Empty cells parse as 0.
func (t *Table) Int(row int, column string) (int, error) {
	raw, err := t.Field(row, column)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s row %d: %w", column, row, err)
	}
	return v, nil
}
