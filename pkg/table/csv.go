package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when a cell does not parse as a number or bool.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadCSV reads a table from CSV. The first record is the header.
// Empty cells become nil; other cells are parsed as int64, float64, bool,
// time.Time or kept as string, in that order of preference.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv has no header row")
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	columns := make([]string, len(header))
	data := make(map[string][]any, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		columns[i] = name
		data[name] = []any{}
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		for i, cell := range record {
			data[columns[i]] = append(data[columns[i]], ParseCell(cell))
		}
	}

	return New(columns, data)
}

// ParseCell converts a raw CSV cell to a typed table cell.
func ParseCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return s
}

// WriteCSV writes the table as CSV with a header row.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, t.Width())
	for i := 0; i < t.Len(); i++ {
		for j, cell := range t.Row(i) {
			record[j] = FormatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatCell renders a table cell the way ReadCSV expects to parse it back.
func FormatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
