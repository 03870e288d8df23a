package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FinWeave/internal/domain/models"
	drepo "FinWeave/internal/domain/repository"
	"FinWeave/internal/services/unify"
	"FinWeave/pkg/config"
	"FinWeave/pkg/logger"
	"FinWeave/pkg/util"
)

// Pipeline runs the full collect → clean → unify → export cycle and keeps
// the latest result around for the serve-mode API.
type Pipeline struct {
	cfg       *config.Config
	collector *SeriesCollector
	cleaner   *AssetCleaner
	exporter  drepo.Exporter
	metrics   drepo.Metrics
	log       *logger.Logger

	mu      sync.RWMutex
	table   models.MasterTable
	reports []models.SymbolReport
	lastRun time.Time
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(
	cfg *config.Config,
	collector *SeriesCollector,
	cleaner *AssetCleaner,
	exporter drepo.Exporter,
	metrics drepo.Metrics,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		collector: collector,
		cleaner:   cleaner,
		exporter:  exporter,
		metrics:   metrics,
		log:       log,
	}
}

// Run executes one full cycle. It replaces the held result only on success.
func (p *Pipeline) Run(ctx context.Context) error {
	startDate, endDate := p.dateRange()
	symbols := p.cfg.Source.Symbols

	p.log.Info("pipeline run starting",
		logger.Int("symbols", len(symbols)),
		logger.String("start_date", startDate),
		logger.String("end_date", endDate),
	)

	t := time.Now()
	universe, err := p.collector.Collect(ctx, symbols, startDate, endDate)
	p.metrics.RecordLatency("fetch", time.Since(t).Seconds())
	if err != nil {
		p.metrics.RecordError("collect")
		return fmt.Errorf("collect: %w", err)
	}

	t = time.Now()
	cleaned, reports := p.cleaner.Clean(universe)
	p.metrics.RecordLatency("clean", time.Since(t).Seconds())
	if len(cleaned) == 0 {
		p.metrics.RecordError("clean")
		return fmt.Errorf("no symbols left after cleaning")
	}

	t = time.Now()
	calendar := unify.BuildMasterCalendar(cleaned)
	aligned := unify.Align(cleaned, calendar)
	table := unify.Compose(aligned)
	p.metrics.RecordLatency("unify", time.Since(t).Seconds())
	p.metrics.RecordCalendarSize(len(calendar))

	t = time.Now()
	err = p.exporter.Export(ctx, table, cleaned.Symbols())
	p.metrics.RecordLatency("export", time.Since(t).Seconds())
	if err != nil {
		p.metrics.RecordError("export")
		return fmt.Errorf("export %s: %w", p.exporter.Backend(), err)
	}
	p.metrics.RecordRowsExported(p.exporter.Backend(), len(table))

	p.mu.Lock()
	p.table = table
	p.reports = reports
	p.lastRun = time.Now()
	p.mu.Unlock()

	p.log.Info("pipeline run finished",
		logger.Int("calendar_dates", len(calendar)),
		logger.Int("symbols_kept", len(cleaned)),
		logger.String("backend", p.exporter.Backend()),
	)
	return nil
}

// Snapshot returns the latest master table, reports and run time. The table
// and report slice are the held values; callers must not mutate them.
func (p *Pipeline) Snapshot() (models.MasterTable, []models.SymbolReport, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table, p.reports, p.lastRun
}

// dateRange resolves the fetch window from explicit config dates, falling
// back to the rolling lookback.
func (p *Pipeline) dateRange() (string, string) {
	src := p.cfg.Source
	if src.StartDate != "" {
		end := src.EndDate
		if end == "" {
			end = util.FormatDate(time.Now())
		}
		return src.StartDate, end
	}
	return util.LookbackRange(time.Now(), src.LookbackYears)
}
