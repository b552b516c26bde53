package ledger

import (
	"context"
	"io"
)

// SourceLoader reads the three sources of one load.
type SourceLoader interface {
	Load(ctx context.Context) (Tables, error)
}

// LedgerService builds, publishes and queries the attendance ledger.
type LedgerService interface {
	// Reload rebuilds the ledger from its sources and publishes it on success.
	// A failed reload leaves the previously published ledger in place.
	Reload(ctx context.Context) (BuildSummary, error)

	// Current returns the published ledger.
	Current() (*Ledger, error)

	// Query runs the accessor selected by the filter.
	Query(ctx context.Context, filter LedgerFilter) ([]Row, error)

	// Export writes the filtered rows in the requested format.
	Export(ctx context.Context, w io.Writer, req ExportRequest, projection Projection) error
}
