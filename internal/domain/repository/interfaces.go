package repository

import (
	"context"

	"FinWeave/internal/domain/models"
)

// PriceSource fetches one asset's daily records for an inclusive date range,
// ordered by non-decreasing date, with null fields where the upstream had no
// value. Implementations report network and parse failures as errors and
// never fabricate records.
type PriceSource interface {
	Fetch(ctx context.Context, symbol, startDate, endDate string) (models.Series, error)
}

// Exporter writes the final master table somewhere. Symbols carries the
// cleaned universe's symbols in lexicographic order so column order is
// reproducible across backends.
type Exporter interface {
	Export(ctx context.Context, table models.MasterTable, symbols []string) error
	Backend() string
	Close() error
}

// Metrics records pipeline observations.
type Metrics interface {
	RecordMissingCells(symbol string, n int)
	RecordAnomalies(symbol, kind string, n int)
	RecordRowsRemoved(symbol string, n int)
	RecordRowsExported(backend string, n int)
	RecordError(kind string)
	RecordCalendarSize(n int)
	RecordLatency(stage string, seconds float64)
}
