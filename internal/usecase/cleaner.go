package usecase

import (
	"FinWeave/internal/domain/models"
	drepo "FinWeave/internal/domain/repository"
	"FinWeave/internal/services/quality"
	"FinWeave/pkg/logger"
)

// AssetCleaner runs the per-asset quality pass: detect nulls and OHLC
// inconsistencies, forward-fill closes, drop rows that still lack one.
// Each asset is cleaned independently of the rest of the universe.
type AssetCleaner struct {
	metrics drepo.Metrics
	log     *logger.Logger
}

// NewAssetCleaner creates a cleaner that reports findings to metrics.
func NewAssetCleaner(metrics drepo.Metrics, log *logger.Logger) *AssetCleaner {
	return &AssetCleaner{metrics: metrics, log: log}
}

// Clean returns the cleaned universe and one report per input symbol.
// Symbols whose series is empty after cleaning are dropped from the
// returned universe; their report still shows what happened. Reports come
// back in lexicographic symbol order.
func (c *AssetCleaner) Clean(universe models.Universe) (models.Universe, []models.SymbolReport) {
	cleaned := make(models.Universe, len(universe))
	reports := make([]models.SymbolReport, 0, len(universe))

	for _, symbol := range universe.Symbols() {
		series := universe[symbol]

		cells, positions := quality.DetectMissing(series)
		anomalies := quality.DetectInconsistencies(series)

		byKind := make(map[models.AnomalyKind]int)
		for _, a := range anomalies {
			byKind[a.Kind]++
		}

		quality.ForwardFillClose(series)
		kept := quality.RemoveInvalid(series)
		removed := len(series) - len(kept)

		reports = append(reports, models.SymbolReport{
			Symbol:           symbol,
			MissingCells:     cells,
			MissingPositions: positions,
			Anomalies:        len(anomalies),
			AnomaliesByKind:  byKind,
			RowsRemoved:      removed,
			RowsKept:         len(kept),
		})

		c.metrics.RecordMissingCells(symbol, cells)
		for kind, n := range byKind {
			c.metrics.RecordAnomalies(symbol, string(kind), n)
		}
		c.metrics.RecordRowsRemoved(symbol, removed)

		if len(kept) == 0 {
			c.log.Warn("no usable rows after cleaning, dropping symbol",
				logger.String("symbol", symbol),
				logger.Int("raw_rows", len(series)),
			)
			continue
		}
		cleaned[symbol] = kept

		c.log.Info("symbol cleaned",
			logger.String("symbol", symbol),
			logger.Int("missing_cells", cells),
			logger.Int("anomalies", len(anomalies)),
			logger.Int("rows_removed", removed),
			logger.Int("rows_kept", len(kept)),
		)
	}
	return cleaned, reports
}
