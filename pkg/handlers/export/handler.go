// Package export serves the transaction report in both download formats.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dswhitely1/donthetreasurer/pkg/export"
	"github.com/dswhitely1/donthetreasurer/pkg/models/api"
	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/services/fiscal"
	"github.com/dswhitely1/donthetreasurer/pkg/services/report"
)

const dateParamLayout = "2006-01-02"

// Generator produces the report models the exporters consume.
type Generator interface {
	TransactionReport(ctx context.Context, orgID string, p report.Params) (*domain.ReportData, error)
	BudgetReport(ctx context.Context, orgID, budgetID string, rd *domain.ReportData) (*domain.BudgetReportData, error)
	SeasonReport(ctx context.Context, orgID string) (*domain.SeasonReportData, error)
}

// Renderer turns the report models into one downloadable document.
type Renderer interface {
	Render(rd *domain.ReportData, bd *domain.BudgetReportData, sd *domain.SeasonReportData) ([]byte, error)
}

type Handler struct {
	gen  Generator
	xlsx Renderer
	pdf  Renderer
}

func NewHandler(gen Generator, xlsx, pdf Renderer) *Handler {
	return &Handler{
		gen:  gen,
		xlsx: xlsx,
		pdf:  pdf,
	}
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.xlsx, export.ContentTypeXLSX, "xlsx")
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.pdf, export.ContentTypePDF, "pdf")
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, renderer Renderer, contentType, ext string) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	orgID := chi.URLParam(r, "org")

	params, budgetID, err := parseParams(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	rd, err := h.gen.TransactionReport(ctx, orgID, params)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	// Budget and season sections are additive; a failure there never
	// blocks the base report.
	var bd *domain.BudgetReportData
	if budgetID != "" {
		bd, err = h.gen.BudgetReport(ctx, orgID, budgetID, rd)
		if err != nil {
			logger.Warn().Err(err).Str("budget", budgetID).Msg("skipping budget section")
			bd = nil
		}
	}

	var sd *domain.SeasonReportData
	if rd.SeasonsEnabled {
		sd, err = h.gen.SeasonReport(ctx, orgID)
		if err != nil {
			logger.Warn().Err(err).Str("org", orgID).Msg("skipping season section")
			sd = nil
		}
	}

	data, err := renderer.Render(rd, bd, sd)
	if err != nil {
		logger.Error().Err(err).Str("org", orgID).Str("format", ext).Msg("render failed")
		writeJSON(w, logger, http.StatusInternalServerError, api.ErrorResponse{Error: "failed to render report"})
		return
	}

	filename := export.Filename(rd.OrganizationName, rd.StartDate, rd.EndDate, ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		logger.Error().Err(err).Str("org", orgID).Msg("failed to write export body")
	}
}

func parseParams(r *http.Request) (report.Params, string, error) {
	q := r.URL.Query()
	params := report.Params{
		Preset:     fiscal.Preset(q.Get("preset")),
		AccountIDs: splitParam(q.Get("accounts")),
		Categories: splitParam(q.Get("categories")),
	}

	verr := domain.NewValidationError()
	if v := q.Get("start"); v != "" {
		t, err := time.Parse(dateParamLayout, v)
		if err != nil {
			verr.Add("start", "must be a YYYY-MM-DD date")
		} else {
			params.Start = t
		}
	}
	if v := q.Get("end"); v != "" {
		t, err := time.Parse(dateParamLayout, v)
		if err != nil {
			verr.Add("end", "must be a YYYY-MM-DD date")
		} else {
			params.End = t
		}
	}
	for _, s := range splitParam(q.Get("statuses")) {
		status := domain.TransactionStatus(s)
		switch status {
		case domain.StatusUncleared, domain.StatusCleared, domain.StatusReconciled:
			params.Statuses = append(params.Statuses, status)
		default:
			verr.Add("statuses", fmt.Sprintf("unknown status %q", s))
		}
	}
	if verr.HasErrors() {
		return report.Params{}, "", verr
	}
	return params, q.Get("budget"), nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, logger, http.StatusBadRequest, api.ErrorResponse{
			Error:  "invalid parameters",
			Fields: verr.Fields,
		})
		return
	}

	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) {
		writeJSON(w, logger, http.StatusNotFound, api.ErrorResponse{Error: nfe.Error()})
		return
	}

	logger.Error().Err(err).Msg("report generation failed")
	writeJSON(w, logger, http.StatusInternalServerError, api.ErrorResponse{Error: "failed to generate report"})
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, body api.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("failed to encode error response")
	}
}
