package usecase

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"FinWeave/internal/domain/models"
	drepo "FinWeave/internal/domain/repository"
	"FinWeave/pkg/logger"
)

// SeriesCollector fans fetches out across the configured universe. A symbol
// that fails to fetch is logged and skipped; the collection as a whole fails
// only when fewer than minSuccess symbols came back.
type SeriesCollector struct {
	source     drepo.PriceSource
	metrics    drepo.Metrics
	log        *logger.Logger
	workers    int
	minSuccess int
}

// NewSeriesCollector creates a collector with bounded fetch concurrency.
func NewSeriesCollector(source drepo.PriceSource, metrics drepo.Metrics, log *logger.Logger, workers, minSuccess int) *SeriesCollector {
	if workers <= 0 {
		workers = 4
	}
	if minSuccess <= 0 {
		minSuccess = 1
	}
	return &SeriesCollector{
		source:     source,
		metrics:    metrics,
		log:        log,
		workers:    workers,
		minSuccess: minSuccess,
	}
}

// Collect fetches every symbol's series for the inclusive date range.
func (c *SeriesCollector) Collect(ctx context.Context, symbols []string, startDate, endDate string) (models.Universe, error) {
	universe := make(models.Universe, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, symbol := range symbols {
		g.Go(func() error {
			series, err := c.source.Fetch(ctx, symbol, startDate, endDate)
			if err != nil {
				c.log.Warn("symbol fetch failed, skipping",
					logger.String("symbol", symbol),
					logger.Error(err),
				)
				c.metrics.RecordError("fetch")
				return nil
			}
			mu.Lock()
			universe[symbol] = series
			mu.Unlock()
			c.log.Debug("symbol fetched",
				logger.String("symbol", symbol),
				logger.Int("rows", len(series)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(universe) < c.minSuccess {
		return nil, fmt.Errorf("collected %d of %d symbols, need at least %d",
			len(universe), len(symbols), c.minSuccess)
	}
	return universe, nil
}
