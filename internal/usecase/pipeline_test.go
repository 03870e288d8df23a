package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinWeave/internal/domain/models"
	"FinWeave/pkg/config"
	"FinWeave/pkg/logger"
)

type fakeSource struct {
	series map[string]models.Series
	errs   map[string]error
}

func (f *fakeSource) Fetch(_ context.Context, symbol, _, _ string) (models.Series, error) {
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	s, ok := f.series[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return s, nil
}

type captureExporter struct {
	table   models.MasterTable
	symbols []string
	calls   int
	err     error
}

func (e *captureExporter) Export(_ context.Context, table models.MasterTable, symbols []string) error {
	e.calls++
	if e.err != nil {
		return e.err
	}
	e.table = table
	e.symbols = symbols
	return nil
}

func (e *captureExporter) Backend() string { return "capture" }
func (e *captureExporter) Close() error    { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordMissingCells(string, int)  {}
func (nopMetrics) RecordAnomalies(string, string, int) {}
func (nopMetrics) RecordRowsRemoved(string, int)   {}
func (nopMetrics) RecordRowsExported(string, int)  {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordCalendarSize(int)          {}
func (nopMetrics) RecordLatency(string, float64)   {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func testConfig(symbols ...string) *config.Config {
	cfg := &config.Config{}
	cfg.Source.Symbols = symbols
	cfg.Source.StartDate = "2024-01-01"
	cfg.Source.EndDate = "2024-01-31"
	return cfg
}

func rec(date string, closePx float64) models.Record {
	return models.Record{
		Date:   date,
		Open:   null.FloatFrom(closePx),
		High:   null.FloatFrom(closePx + 1),
		Low:    null.FloatFrom(closePx - 1),
		Close:  null.FloatFrom(closePx),
		Volume: null.IntFrom(1000),
	}
}

func newTestPipeline(t *testing.T, src *fakeSource, exp *captureExporter, symbols ...string) *Pipeline {
	t.Helper()
	log := testLogger(t)
	m := nopMetrics{}
	collector := NewSeriesCollector(src, m, log, 2, 1)
	cleaner := NewAssetCleaner(m, log)
	return NewPipeline(testConfig(symbols...), collector, cleaner, exp, m, log)
}

func TestPipelineRunEndToEnd(t *testing.T) {
	src := &fakeSource{series: map[string]models.Series{
		"AAA": {rec("2024-01-01", 10), rec("2024-01-03", 11)},
		"BBB": {
			rec("2024-01-01", 20),
			{Date: "2024-01-02", Open: null.FloatFrom(20), High: null.FloatFrom(21), Low: null.FloatFrom(19)},
		},
	}}
	exp := &captureExporter{}
	p := newTestPipeline(t, src, exp, "AAA", "BBB")

	require.NoError(t, p.Run(context.Background()))

	require.Equal(t, 1, exp.calls)
	assert.Equal(t, []string{"AAA", "BBB"}, exp.symbols)
	require.Len(t, exp.table, 3)
	assert.Equal(t, "2024-01-01", exp.table[0].Date)
	assert.Equal(t, "2024-01-02", exp.table[1].Date)
	assert.Equal(t, "2024-01-03", exp.table[2].Date)

	// BBB's null close on Jan 2 forward-fills to 20; AAA has no Jan 2 row.
	assert.False(t, exp.table[1].Closes["AAA_Close"].Valid)
	assert.Equal(t, 20.0, exp.table[1].Closes["BBB_Close"].Float64)

	table, reports, lastRun := p.Snapshot()
	assert.Len(t, table, 3)
	require.Len(t, reports, 2)
	assert.Equal(t, "AAA", reports[0].Symbol)
	assert.Equal(t, "BBB", reports[1].Symbol)
	assert.Equal(t, 2, reports[1].MissingCells)
	assert.False(t, lastRun.IsZero())
}

func TestPipelineToleratesPartialFetchFailure(t *testing.T) {
	src := &fakeSource{
		series: map[string]models.Series{"AAA": {rec("2024-01-01", 10)}},
		errs:   map[string]error{"BBB": errors.New("boom")},
	}
	exp := &captureExporter{}
	p := newTestPipeline(t, src, exp, "AAA", "BBB")

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []string{"AAA"}, exp.symbols)
}

func TestCollectorMinSuccess(t *testing.T) {
	src := &fakeSource{errs: map[string]error{"AAA": errors.New("boom"), "BBB": errors.New("boom")}}
	collector := NewSeriesCollector(src, nopMetrics{}, testLogger(t), 2, 1)

	_, err := collector.Collect(context.Background(), []string{"AAA", "BBB"}, "2024-01-01", "2024-01-31")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need at least 1")
}

func TestCleanerDropsSymbolsWithNoUsableRows(t *testing.T) {
	universe := models.Universe{
		"AAA": {rec("2024-01-01", 10)},
		"BBB": {{Date: "2024-01-01"}, {Date: "2024-01-02"}},
	}
	cleaner := NewAssetCleaner(nopMetrics{}, testLogger(t))

	cleaned, reports := cleaner.Clean(universe)

	assert.Equal(t, []string{"AAA"}, cleaned.Symbols())
	require.Len(t, reports, 2)
	assert.Equal(t, "BBB", reports[1].Symbol)
	assert.Equal(t, 10, reports[1].MissingCells)
	assert.Equal(t, 2, reports[1].RowsRemoved)
	assert.Equal(t, 0, reports[1].RowsKept)
}

func TestPipelineExportFailureKeepsNoSnapshot(t *testing.T) {
	src := &fakeSource{series: map[string]models.Series{"AAA": {rec("2024-01-01", 10)}}}
	exp := &captureExporter{err: errors.New("sink down")}
	p := newTestPipeline(t, src, exp, "AAA")

	err := p.Run(context.Background())
	require.Error(t, err)

	table, reports, lastRun := p.Snapshot()
	assert.Nil(t, table)
	assert.Nil(t, reports)
	assert.True(t, lastRun.IsZero())
}
