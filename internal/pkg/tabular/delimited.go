package tabular

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// ErrEmptySource is returned when a source has no header row.
var ErrEmptySource = eris.New("tabular: source has no header row")

// ReadDelimited parses delimited text whose first record is the header.
// Blank lines are skipped; ragged records are allowed.
func ReadDelimited(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var header []string
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "tabular: read record")
		}
		if header == nil {
			header = record
			continue
		}
		records = append(records, record)
	}

	if header == nil {
		return nil, ErrEmptySource
	}
	return NewTable(header, records), nil
}

// WriteDelimited writes a header and records with the given delimiter.
func WriteDelimited(w io.Writer, delimiter rune, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "tabular: write header")
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "tabular: write record")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "tabular: flush")
}
