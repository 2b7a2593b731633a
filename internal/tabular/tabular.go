// Package tabular reads uploaded CSV/XLSX files into header-addressed rows
// and normalizes the cell shapes bulk imports have to cope with.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Table is one uploaded sheet: a header row plus data rows, cells addressed
// by header text.
type Table struct {
	Headers []string
	Rows    [][]string

	col map[string]int
}

// ParseUpload reads a CSV or XLSX multipart upload.
func ParseUpload(fh *multipart.FileHeader) (*Table, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(fh.Filename)); ext {
	case ".csv":
		return ParseCSV(file)
	case ".xlsx":
		// cap workbook size; these are hand-kept sheets, not warehouses
		b, err := io.ReadAll(io.LimitReader(file, 10<<20))
		if err != nil {
			return nil, err
		}
		return ParseXLSX(b)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ParseCSV sniffs the delimiter from the first line (Excel exports often use
// semicolons) before reading the whole file.
func ParseCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	line, _ := br.ReadString('\n')
	rest := io.MultiReader(strings.NewReader(line), br)
	reader := csv.NewReader(rest)
	reader.FieldsPerRecord = -1
	if strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func ParseXLSX(b []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	t := &Table{col: map[string]int{}}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		t.Headers = append(t.Headers, h)
		if _, dup := t.col[h]; !dup {
			t.col[h] = i
		}
	}
	for _, row := range rows[1:] {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// HasColumn reports whether the header row contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.col[name]
	return ok
}

// Cell returns the trimmed value of the named column in the given row, or
// "" when the column is unmapped or the row is short.
func (t *Table) Cell(row []string, name string) string {
	i, ok := t.col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	time.RFC3339,
}

// ISODate coerces a date-like cell to zero-padded "YYYY-MM-DD". Date
// strings are compared lexicographically downstream, so padding matters.
// When nothing parses, it falls back to slash-to-dash substitution with any
// trailing time chopped off.
func ISODate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	out := strings.ReplaceAll(s, "/", "-")
	if i := strings.IndexByte(out, ' '); i >= 0 {
		out = out[:i]
	}
	return out
}

// IntString coerces numeric-like cells (rank, heat, lane) to integer-valued
// strings; "3.0" becomes "3". Non-numeric cells pass through trimmed.
func IntString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.Itoa(int(v))
	}
	return s
}
