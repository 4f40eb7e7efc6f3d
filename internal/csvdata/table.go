package csvdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row maps a normalized header to its typed cell
type Row map[string]Value

// Get returns the cell for header, null when the column is absent
func (r Row) Get(header string) Value {
	if v, ok := r[header]; ok {
		return v
	}
	return Value{Kind: KindNull}
}

// Table is a parsed CSV file with normalized headers
type Table struct {
	Headers []string
	Rows    []Row
}

// HasHeaders reports whether the table contains every required header
func (t *Table) HasHeaders(required []string) bool {
	for _, h := range required {
		found := false
		for _, have := range t.Headers {
			if have == h {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NormalizeHeader trims and lower-cases a header cell
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

// Parse reads a CSV document with a header row. Lines whose cells are all
// blank are skipped. Rows shorter than the header get null cells.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrUnrecognizedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	table := &Table{Headers: make([]string, len(header))}
	for i, h := range header {
		table.Headers[i] = NormalizeHeader(h)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		if blankRecord(record) {
			continue
		}

		row := make(Row, len(table.Headers))
		for i, h := range table.Headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = ParseValue(record[i])
			} else {
				row[h] = Value{Kind: KindNull}
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
