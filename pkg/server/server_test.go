package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/services/report"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) TransactionReport(ctx context.Context, orgID string, p report.Params) (*domain.ReportData, error) {
	args := m.Called(ctx, orgID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportData), args.Error(1)
}

func (m *mockGenerator) BudgetReport(ctx context.Context, orgID, budgetID string, rd *domain.ReportData) (*domain.BudgetReportData, error) {
	args := m.Called(ctx, orgID, budgetID, rd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetReportData), args.Error(1)
}

func (m *mockGenerator) SeasonReport(ctx context.Context, orgID string) (*domain.SeasonReportData, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeasonReportData), args.Error(1)
}

func TestRouting(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("TransactionReport", mock.Anything, "org1", mock.Anything).
		Return(&domain.ReportData{
			OrganizationName: "Lakeside Band Boosters",
			StartDate:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		}, nil)

	api := NewWebAPI(zerolog.Nop(), Config{
		Addr:         ":0",
		Dependencies: Dependencies{Reports: gen},
	})

	t.Run("xlsx route is wired", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/orgs/org1/reports/transactions/export/xlsx?preset=current_fy", nil)
		rec := httptest.NewRecorder()

		api.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			rec.Header().Get("Content-Type"))
	})

	t.Run("pdf route is wired", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/orgs/org1/reports/transactions/export/pdf?preset=current_fy", nil)
		rec := httptest.NewRecorder()

		api.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	})

	t.Run("unknown route 404s", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/orgs/org1/reports/unknown", nil)
		rec := httptest.NewRecorder()

		api.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
