package ledger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/stretchr/testify/require"
)

const (
	testRoster = `Employee_ID,full_name,Department,Designation,Base_Location
E1,Alice Smith,Operations,Driver,Waterloo
007,Bob Jones,Engineering,Technician,Clapham
E3,Carol White,Operations,Guard,Woking
`
	testSchedule = `Employee_ID,Shift_ID,Shift_Date,Shift_Start,Shift_End,Location
E1,S1,2024-01-01,09:00,17:00,Waterloo
7,S2,2024-01-01,08:00,16:00,
E3,S3,2024-01-02,22:00,06:00,Woking
`
	testAttendance = `Employee_ID,Shift_ID,Timestamp,Type
E1,S1,2024-01-01 09:05:00,Check-in
E1,S1,2024-01-01 16:50:00,Check-out
7,S2,2024-01-01 07:55:00,Check-in
E1,S9,2024-01-03 09:00:00,Check-in
E3,S3,2024-01-02 21:58:00,Check-in
E3,S3,2024-01-03 06:10:00,Check-out
E9,S1,2024-01-01 09:00:00,Check-in
`
)

type sourceFiles struct {
	roster     string
	schedule   string
	attendance string
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0o600))
	return path
}

func writeSources(t *testing.T, roster, schedule, attendance string) sourceFiles {
	t.Helper()
	dir := t.TempDir()
	return sourceFiles{
		roster:     writeSource(t, dir, "employee.csv", roster),
		schedule:   writeSource(t, dir, "shifts.csv", schedule),
		attendance: writeSource(t, dir, "attendance.csv", attendance),
	}
}

func newTestLoader(files sourceFiles) *FileLoader {
	return NewFileLoader(files.roster, files.schedule, files.attendance, time.UTC)
}

func loadTables(t *testing.T, roster, schedule, attendance string) ledger.Tables {
	t.Helper()
	tables, err := newTestLoader(writeSources(t, roster, schedule, attendance)).Load(context.Background())
	require.NoError(t, err)
	return tables
}

func buildLedger(t *testing.T, policy ledger.PairingPolicy, roster, schedule, attendance string) *ledger.Ledger {
	t.Helper()
	built, _, err := Build(loadTables(t, roster, schedule, attendance), policy)
	require.NoError(t, err)
	return built
}

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

// staticLoader returns fixed tables or a fixed error.
type staticLoader struct {
	tables ledger.Tables
	err    error
	calls  int
}

func (s *staticLoader) Load(ctx context.Context) (ledger.Tables, error) {
	s.calls++
	return s.tables, s.err
}
