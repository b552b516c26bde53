// Package tabular reads and writes flat tables from delimited text and XLSX
// workbooks.
package tabular

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = eris.New("tabular: unsupported file format")

// Table is a header row plus data records. Row numbers reported by callers
// are 1-based source lines, so the first record is row 2.
type Table struct {
	Header     []string
	Records    [][]string
	index      map[string]int
	duplicates []string
}

// NewTable builds a table and indexes its header. Headers that normalize to
// the same name are recorded in Duplicates; blank headers are not indexed.
func NewTable(header []string, records [][]string) *Table {
	t := &Table{Header: header, Records: records, index: make(map[string]int, len(header))}
	for i, h := range header {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := t.index[key]; dup {
			t.duplicates = append(t.duplicates, key)
			continue
		}
		t.index[key] = i
	}
	return t
}

// Duplicates lists normalized header names that appear more than once.
func (t *Table) Duplicates() []string {
	return t.duplicates
}

// NormalizeHeader lowercases and maps spaces and hyphens to underscores.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// Column returns the position of a column by normalized name.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[NormalizeHeader(name)]
	return i, ok
}

// Missing lists the required columns absent from the header.
func (t *Table) Missing(required ...string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := t.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Value returns the trimmed cell, or "" when the record is short.
func (t *Table) Value(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}

// ReadFile reads a table, choosing the reader from the file extension.
func ReadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readDelimitedFile(path, ',')
	case ".tsv":
		return readDelimitedFile(path, '\t')
	case ".xlsx":
		return ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "tabular: %s", filepath.Base(path))
	}
}

func readDelimitedFile(path string, delimiter rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "tabular: open file")
	}
	defer f.Close()

	return ReadDelimited(f, delimiter)
}
