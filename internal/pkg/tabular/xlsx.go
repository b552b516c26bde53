package tabular

import (
	"io"
	"math"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads one sheet of a workbook; the first row is the header.
func ReadXLSX(path string, opts XLSXOptions) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var header []string
	var records [][]string
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		cells := rowToStrings(row, f.Date1904)
		if header == nil {
			header = cells
			continue
		}
		if isBlank(cells) {
			continue
		}
		records = append(records, cells)
	}

	if header == nil {
		return nil, ErrEmptySource
	}
	return NewTable(header, records), nil
}

// WriteXLSX writes a single-sheet workbook.
func WriteXLSX(w io.Writer, sheetName string, header []string, records [][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	for _, values := range append([][]string{header}, records...) {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	return eris.Wrap(f.Write(w), "xlsx: write workbook")
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

// ISO layouts for date-formatted cells; time-only cells carry no date.
const (
	cellDateTimeLayout = "2006-01-02T15:04:05"
	cellTimeLayout     = "15:04:05"
)

func rowToStrings(row *xlsx.Row, date1904 bool) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cellString(cell, date1904)
	}
	return cells
}

// cellString renders date-formatted cells from their serial value rather than
// the workbook's display format, which is locale dependent and truncates seconds.
func cellString(cell *xlsx.Cell, date1904 bool) string {
	if cell.Type() != xlsx.CellTypeNumeric && cell.Type() != xlsx.CellTypeDate {
		return cell.String()
	}
	if !cell.IsTime() {
		return cell.String()
	}

	serial, err := cell.Float()
	if err != nil {
		return cell.String()
	}

	// A serial below one day carries no date part.
	if serial >= 0 && serial < 1 {
		secs := int(math.Round(serial*86400)) % 86400
		return time.Date(0, 1, 1, 0, 0, secs, 0, time.UTC).Format(cellTimeLayout)
	}

	t, err := cell.GetTime(date1904)
	if err != nil {
		return cell.String()
	}
	return t.Round(time.Second).Format(cellDateTimeLayout)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
