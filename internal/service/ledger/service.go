package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/tabular"
)

type LedgerServiceImpl struct {
	loader  ledger.SourceLoader
	pairing ledger.PairingPolicy

	// reloadMu serializes builds; current is swapped only after a build
	// completes, so readers see either the old or the new ledger.
	reloadMu sync.Mutex
	current  atomic.Pointer[ledger.Ledger]
}

func NewLedgerService(loader ledger.SourceLoader, pairing ledger.PairingPolicy) ledger.LedgerService {
	if !pairing.Valid() {
		pairing = ledger.PairFirst
	}
	return &LedgerServiceImpl{
		loader:  loader,
		pairing: pairing,
	}
}

// Reload implements ledger.LedgerService.
func (s *LedgerServiceImpl) Reload(ctx context.Context) (ledger.BuildSummary, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	tables, err := s.loader.Load(ctx)
	if err != nil {
		return ledger.BuildSummary{}, fmt.Errorf("failed to load sources: %w", err)
	}

	built, summary, err := Build(tables, s.pairing)
	if err != nil {
		return ledger.BuildSummary{}, fmt.Errorf("failed to build ledger: %w", err)
	}

	s.current.Store(built)
	slog.Info("Attendance ledger published",
		"rows", summary.Rows,
		"employees", summary.Employees,
		"shifts", summary.Shifts,
		"unmatched_shift", summary.UnmatchedShift,
		"duration_anomalies", summary.Anomalies,
		"elapsed_ms", summary.ElapsedMillis,
	)
	return summary, nil
}

// Current implements ledger.LedgerService.
func (s *LedgerServiceImpl) Current() (*ledger.Ledger, error) {
	l := s.current.Load()
	if l == nil {
		return nil, ledger.ErrLedgerNotLoaded
	}
	return l, nil
}

// Query implements ledger.LedgerService.
func (s *LedgerServiceImpl) Query(ctx context.Context, filter ledger.LedgerFilter) ([]ledger.Row, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	l, err := s.Current()
	if err != nil {
		return nil, err
	}

	switch {
	case filter.EmployeeID != nil:
		return l.ByEmployee(*filter.EmployeeID), nil
	case filter.Department != nil:
		return l.ByDepartment(*filter.Department), nil
	case filter.Location != nil:
		return l.ByLocation(*filter.Location), nil
	default:
		return l.All(), nil
	}
}

// Export implements ledger.LedgerService.
func (s *LedgerServiceImpl) Export(ctx context.Context, w io.Writer, req ledger.ExportRequest, projection ledger.Projection) error {
	if err := req.Validate(); err != nil {
		return err
	}

	rows, err := s.Query(ctx, req.Filter)
	if err != nil {
		return err
	}

	header, records := projection.Header(), projection.Records(rows)
	switch req.Format {
	case ledger.FormatTSV:
		err = tabular.WriteDelimited(w, '\t', header, records)
	case ledger.FormatXLSX:
		err = tabular.WriteXLSX(w, "Attendance", header, records)
	default:
		err = tabular.WriteDelimited(w, ',', header, records)
	}
	if err != nil {
		return fmt.Errorf("failed to export ledger: %w", err)
	}
	return nil
}
