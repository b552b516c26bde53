package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
)

// LedgerJobs rebuilds the ledger from its sources on a schedule so edits to
// the source files are picked up without a manual reload.
type LedgerJobs struct {
	ledgerService ledger.LedgerService
	interval      time.Duration
}

func NewLedgerJobs(ledgerService ledger.LedgerService, interval time.Duration) *LedgerJobs {
	return &LedgerJobs{ledgerService: ledgerService, interval: interval}
}

func (j *LedgerJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_ledger", j.interval, j.RefreshLedger)
}

// RefreshLedger rebuilds the ledger. A failed build leaves the published one in place.
func (j *LedgerJobs) RefreshLedger(ctx context.Context) error {
	summary, err := j.ledgerService.Reload(ctx)
	if err != nil {
		return err
	}
	slog.Info("Cron: ledger refreshed", "rows", summary.Rows, "duration_anomalies", summary.Anomalies)
	return nil
}
