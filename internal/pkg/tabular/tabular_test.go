package tabular

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Employee_ID", "employee_id"},
		{" Employee ID ", "employee_id"},
		{"Base-Location", "base_location"},
		{"\ufeffEmployee_ID", "employee_id"},
		{"full_name", "full_name"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeHeader(c.input), "NormalizeHeader(%q)", c.input)
	}
}

func TestReadDelimited_Basic(t *testing.T) {
	input := "Employee_ID,Full Name\n007,Alice\n\n8,Bob\n"

	table, err := ReadDelimited(strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	col, ok := table.Column("employee_id")
	require.True(t, ok)
	assert.Equal(t, "007", table.Value(table.Records[0], col))

	col, ok = table.Column("FULL_NAME")
	require.True(t, ok)
	assert.Equal(t, "Bob", table.Value(table.Records[1], col))
}

func TestReadDelimited_Empty(t *testing.T) {
	_, err := ReadDelimited(strings.NewReader(""), ',')
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestTable_Missing(t *testing.T) {
	table := NewTable([]string{"Employee_ID", "Type"}, nil)
	assert.Equal(t, []string{"timestamp"}, table.Missing("employee_id", "timestamp", "type"))
	assert.Empty(t, table.Missing("employee_id"))
}

func TestTable_Duplicates(t *testing.T) {
	table := NewTable([]string{"Employee ID", "employee_id", "Type", "", ""}, nil)
	assert.Equal(t, []string{"employee_id"}, table.Duplicates())

	col, ok := table.Column("employee_id")
	require.True(t, ok)
	assert.Equal(t, 0, col)

	assert.Empty(t, NewTable([]string{"a", "b"}, nil).Duplicates())
}

func TestTable_ValueShortRecord(t *testing.T) {
	table := NewTable([]string{"a", "b"}, [][]string{{"1"}})
	assert.Equal(t, "", table.Value(table.Records[0], 1))
}

func TestWriteDelimited_PreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDelimited(&buf, '\t', []string{"a", "b"}, [][]string{{"2", "x"}, {"1", "y, z"}})
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n2\tx\n1\ty, z\n", buf.String())
}

func TestReadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"Employee_ID", "Department"},
		{"7", "Ops"},
		{"", ""},
		{"8", "Fleet"},
	})

	table, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"8", "Fleet"}, table.Records[1])
}

func TestReadXLSX_DateCells(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, h := range []string{"Timestamp", "Shift_Date", "Shift_Start", "Employee_ID"} {
		header.AddCell().SetString(h)
	}
	row := sheet.AddRow()
	row.AddCell().SetDateTime(time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC))
	row.AddCell().SetDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	row.AddCell().SetDateTimeWithFormat(9.5/24, "hh:mm")
	row.AddCell().SetInt(7)

	path := filepath.Join(t.TempDir(), "dates.xlsx")
	require.NoError(t, f.Save(path))

	table, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, []string{"2024-01-01T09:05:00", "2024-01-01T00:00:00", "09:30:00", "7"}, table.Records[0])
}

func TestReadXLSX_SheetNotFound(t *testing.T) {
	path := createTestXLSX(t, [][]string{{"a"}})
	_, err := ReadXLSX(path, XLSXOptions{SheetName: "missing"})
	assert.Error(t, err)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteXLSX(f, "Ledger", []string{"Employee_ID", "Type"}, [][]string{{"7", "CheckIn"}}))
	require.NoError(t, f.Close())

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee_ID", "Type"}, table.Header)
	assert.Equal(t, [][]string{{"7", "CheckIn"}}, table.Records)
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := ReadFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("Employee_ID\n1\n"), 0o600))

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Records, 1)
}
