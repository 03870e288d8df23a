package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"FinWeave/internal/domain/models"
	"FinWeave/internal/usecase"
	xhttp "FinWeave/pkg/http"
)

// MasterHandler serves the latest pipeline result.
type MasterHandler struct {
	pipeline *usecase.Pipeline
}

// NewMasterHandler creates the API handler.
func NewMasterHandler(pipeline *usecase.Pipeline) *MasterHandler {
	return &MasterHandler{pipeline: pipeline}
}

// RegisterRoutes registers API routes on the Echo instance.
func (h *MasterHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.GET("/master", h.Master)
	g.GET("/report", h.Report)
}

type healthResponse struct {
	Status  string `json:"status"`
	LastRun string `json:"last_run,omitempty"`
}

// Health reports liveness and when the pipeline last completed.
func (h *MasterHandler) Health(c echo.Context) error {
	_, _, lastRun := h.pipeline.Snapshot()
	resp := healthResponse{Status: "ok"}
	if !lastRun.IsZero() {
		resp.LastRun = lastRun.UTC().Format(time.RFC3339)
	}
	return xhttp.SuccessResponse(c, resp)
}

type masterRequest struct {
	From  string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" default:"0" validate:"gte=0,lte=100000"`
}

type masterResponse struct {
	LastRun string             `json:"last_run"`
	Rows    int                `json:"rows"`
	Table   models.MasterTable `json:"table"`
}

// Master returns master rows, optionally windowed by date and capped.
func (h *MasterHandler) Master(c echo.Context) error {
	req := new(masterRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	table, _, lastRun := h.pipeline.Snapshot()
	if lastRun.IsZero() {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("no pipeline run has completed yet"))
	}

	// Calendar order means a date window is a contiguous slice.
	rows := make(models.MasterTable, 0, len(table))
	for _, row := range table {
		if req.From != "" && row.Date < req.From {
			continue
		}
		if req.To != "" && row.Date > req.To {
			break
		}
		rows = append(rows, row)
		if req.Limit > 0 && len(rows) == req.Limit {
			break
		}
	}

	return xhttp.SuccessResponse(c, masterResponse{
		LastRun: lastRun.UTC().Format(time.RFC3339),
		Rows:    len(rows),
		Table:   rows,
	})
}

type reportRequest struct {
	Symbol string `query:"symbol"`
}

// Report returns per-symbol quality reports, optionally for one symbol.
func (h *MasterHandler) Report(c echo.Context) error {
	req := new(reportRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	_, reports, lastRun := h.pipeline.Snapshot()
	if lastRun.IsZero() {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("no pipeline run has completed yet"))
	}

	if req.Symbol == "" {
		return xhttp.SuccessResponse(c, reports)
	}
	for _, r := range reports {
		if r.Symbol == req.Symbol {
			return xhttp.SuccessResponse(c, r)
		}
	}
	return xhttp.AppErrorResponse(c, xhttp.NotFoundError("unknown symbol: "+req.Symbol))
}
