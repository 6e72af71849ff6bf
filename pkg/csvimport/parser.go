// Package csvimport parses uploaded CSV files into header-addressable tables
// for the sales import flow.
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyFile is returned when the uploaded file has no content.
	ErrEmptyFile = errors.New("file is empty")

	// ErrInvalidEncoding is returned when the content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")

	// ErrMissingHeader is returned when the file has no header row.
	ErrMissingHeader = errors.New("file has no header row")
)

// Option configures parsing.
type Option func(*config)

type config struct {
	delimiter  rune
	lazyQuotes bool
	maxRows    int
}

// WithDelimiter sets the field delimiter. Default is comma.
func WithDelimiter(d rune) Option {
	return func(c *config) { c.delimiter = d }
}

// WithStrictQuotes disables lazy quote handling.
func WithStrictQuotes() Option {
	return func(c *config) { c.lazyQuotes = false }
}

// WithMaxRows caps the number of data rows read. Zero means unlimited.
func WithMaxRows(n int) Option {
	return func(c *config) { c.maxRows = n }
}

// Row is one data row with its original line number for error reporting.
type Row struct {
	LineNumber int
	fields     []string
	table      *Table
}

// Get returns the value in the named column, trimmed. Missing columns and
// short rows yield the empty string.
func (r Row) Get(header string) string {
	idx, ok := r.table.columns[header]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

// IsEmpty reports whether every field in the row is blank.
func (r Row) IsEmpty() bool {
	for _, f := range r.fields {
		if f != "" {
			return false
		}
	}
	return true
}

// Table is a fully parsed CSV file.
type Table struct {
	Headers []string
	Rows    []Row
	columns map[string]int
}

// HasColumn reports whether the named header exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// MissingColumns returns the required headers absent from the table.
func (t *Table) MissingColumns(required ...string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Parse reads the whole file into a Table. The UTF-8 BOM, if present, is
// stripped; non-UTF-8 content is rejected rather than silently mangled.
// Fully blank rows are skipped.
func Parse(r io.Reader, opts ...Option) (*Table, error) {
	cfg := config{delimiter: ',', lazyQuotes: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	br := bufio.NewReader(r)
	if err := stripBOM(br); err != nil {
		return nil, err
	}
	if err := checkUTF8(br); err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = cfg.delimiter
	cr.LazyQuotes = cfg.lazyQuotes
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := &Table{
		Headers: make([]string, len(header)),
		columns: make(map[string]int, len(header)),
	}
	for i, h := range header {
		name := strings.TrimSpace(h)
		table.Headers[i] = name
		table.columns[name] = i
	}

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		row := Row{LineNumber: line, fields: record, table: table}
		if row.IsEmpty() {
			continue
		}
		table.Rows = append(table.Rows, row)

		if cfg.maxRows > 0 && len(table.Rows) >= cfg.maxRows {
			break
		}
	}

	return table, nil
}

// ParseBytes parses an in-memory file.
func ParseBytes(data []byte, opts ...Option) (*Table, error) {
	return Parse(bytes.NewReader(data), opts...)
}

func stripBOM(br *bufio.Reader) error {
	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return nil
}

func checkUTF8(br *bufio.Reader) error {
	const checkSize = 4096
	head, err := br.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read file: %w", err)
	}
	if len(head) == 0 {
		return ErrEmptyFile
	}
	// A multi-byte rune can straddle the peek boundary; trim the tail
	// before validating so it is not misreported as garbage.
	if len(head) == checkSize {
		for i := 0; i < utf8.UTFMax && len(head) > 0; i++ {
			if utf8.Valid(head) {
				break
			}
			head = head[:len(head)-1]
		}
	}
	if !utf8.Valid(head) {
		return ErrInvalidEncoding
	}
	return nil
}
