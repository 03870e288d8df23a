package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinWeave/internal/domain/models"
	"FinWeave/internal/usecase"
	"FinWeave/pkg/config"
	"FinWeave/pkg/logger"
)

type stubSource struct{ series map[string]models.Series }

func (s *stubSource) Fetch(_ context.Context, symbol, _, _ string) (models.Series, error) {
	return s.series[symbol], nil
}

type nopExporter struct{}

func (nopExporter) Export(context.Context, models.MasterTable, []string) error { return nil }
func (nopExporter) Backend() string                                            { return "nop" }
func (nopExporter) Close() error                                               { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordMissingCells(string, int)      {}
func (nopMetrics) RecordAnomalies(string, string, int) {}
func (nopMetrics) RecordRowsRemoved(string, int)       {}
func (nopMetrics) RecordRowsExported(string, int)      {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordCalendarSize(int)              {}
func (nopMetrics) RecordLatency(string, float64)       {}

func bar(date string, px float64) models.Record {
	return models.Record{
		Date:  date,
		Open:  null.FloatFrom(px),
		High:  null.FloatFrom(px + 1),
		Low:   null.FloatFrom(px - 1),
		Close: null.FloatFrom(px),
	}
}

func newHandler(t *testing.T, run bool) *MasterHandler {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Source.Symbols = []string{"AAA"}
	cfg.Source.StartDate = "2024-01-01"
	cfg.Source.EndDate = "2024-01-31"

	src := &stubSource{series: map[string]models.Series{
		"AAA": {bar("2024-01-01", 10), bar("2024-01-02", 11), bar("2024-01-03", 12)},
	}}
	m := nopMetrics{}
	p := usecase.NewPipeline(cfg,
		usecase.NewSeriesCollector(src, m, log, 1, 1),
		usecase.NewAssetCleaner(m, log),
		nopExporter{}, m, log,
	)
	if run {
		require.NoError(t, p.Run(context.Background()))
	}
	return NewMasterHandler(p)
}

func doRequest(h *MasterHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(newHandler(t, true), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Status  string `json:"status"`
			LastRun string `json:"last_run"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Data.Status)
	assert.NotEmpty(t, body.Data.LastRun)
}

func TestMasterWindowed(t *testing.T) {
	rec := doRequest(newHandler(t, true), "/api/master?from=2024-01-02&limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Rows  int                `json:"rows"`
			Table models.MasterTable `json:"table"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Data.Rows)
	assert.Equal(t, "2024-01-02", body.Data.Table[0].Date)
}

func TestMasterBadDate(t *testing.T) {
	rec := doRequest(newHandler(t, true), "/api/master?from=01/02/2024")
	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
}

func TestMasterBeforeFirstRun(t *testing.T) {
	rec := doRequest(newHandler(t, false), "/api/master")
	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusServiceUnavailable, body.Status)
}

func TestReportBySymbol(t *testing.T) {
	h := newHandler(t, true)

	rec := doRequest(h, "/api/report?symbol=AAA")
	var body struct {
		Data models.SymbolReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AAA", body.Data.Symbol)
	assert.Equal(t, 3, body.Data.RowsKept)

	rec = doRequest(h, "/api/report?symbol=ZZZ")
	var errBody struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, http.StatusNotFound, errBody.Status)
}
