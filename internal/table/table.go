// Package table provides the tabular data model for the winnow CLI tool.
//
// A Table is an ordered sequence of rows with named columns. Column order is
// significant: it is preserved from the CSV header on read, and new columns
// are appended in first-seen order so that output files are stable across
// runs. Rows carry every column through untouched, which lets auxiliary
// columns (Likes, Comments, ...) survive classification unchanged.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Row maps column names to cell values for a single record.
type Row map[string]string

// Table holds an ordered column list and the rows read from (or destined for)
// a delimited-text file.
type Table struct {
	Columns []string
	Rows    []Row

	colIndex map[string]int
}

// ColumnNotFoundError reports a required column that is absent from a table.
// It is returned before any row is processed.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in input table", e.Column)
}

// New creates an empty table with the given initial columns.
func New(columns ...string) *Table {
	t := &Table{colIndex: make(map[string]int)}
	for _, col := range columns {
		t.EnsureColumn(col)
	}
	return t
}

// EnsureColumn registers a column, appending it to the column order if it is
// not already present. Calling it again for a known column is a no-op, so
// callers can declare columns in emission order without tracking state.
func (t *Table) EnsureColumn(name string) {
	if t.colIndex == nil {
		t.colIndex = make(map[string]int)
		for i, col := range t.Columns {
			t.colIndex[col] = i
		}
	}
	if _, ok := t.colIndex[name]; ok {
		return
	}
	t.colIndex[name] = len(t.Columns)
	t.Columns = append(t.Columns, name)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	if t.colIndex == nil {
		for _, col := range t.Columns {
			if col == name {
				return true
			}
		}
		return false
	}
	_, ok := t.colIndex[name]
	return ok
}

// Require verifies that every named column exists. It returns a
// ColumnNotFoundError for the first missing column, before any row work
// happens, so callers can fail fast with a precise message.
func (t *Table) Require(columns ...string) error {
	for _, col := range columns {
		if !t.HasColumn(col) {
			return &ColumnNotFoundError{Column: col}
		}
	}
	return nil
}

// Append adds a row to the table. Keys not registered as columns are ignored
// on write, so callers should EnsureColumn first.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ReadCSV parses a CSV stream into a Table. The first record is the header
// and defines column order; every subsequent record must have the same field
// count (the underlying reader reports the offending line otherwise).
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	t := New(header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(t.Rows)+1, err)
		}

		row := make(Row, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		t.Append(row)
	}

	return t, nil
}

// WriteCSV writes the table as CSV with a header row. Cells missing from a
// row are written as empty strings; column order matches t.Columns.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			record[j] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
