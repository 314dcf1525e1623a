package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dswhitely1/donthetreasurer/pkg/export/layout"
	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
)

func cents(v int64) *domain.Cents {
	c := domain.Cents(v)
	return &c
}

func sampleReport() *domain.ReportData {
	return &domain.ReportData{
		OrganizationName: "Lakeside Band Boosters",
		StartDate:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		FiscalYearLabel:  "FY 2026",
		Transactions: []domain.ReportTransaction{
			{
				ID:          "t1",
				Date:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
				AccountName: "Checking",
				Description: "Gala tickets",
				Type:        domain.TypeIncome,
				Amount:      50000,
				Status:      domain.StatusCleared,
				LineItems: []domain.ReportLineItem{
					{CategoryLabel: "Events → Spring Gala", Amount: 50000, RunningBalance: cents(150000)},
				},
			},
			{
				ID:          "t2",
				Date:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
				AccountName: "Checking",
				Vendor:      "Catering Co",
				Description: "Gala catering",
				Type:        domain.TypeExpense,
				Amount:      12000,
				Status:      domain.StatusUncleared,
				LineItems: []domain.ReportLineItem{
					{CategoryLabel: "Events → Spring Gala", Amount: 12000, RunningBalance: cents(138000)},
				},
			},
		},
		Summary: domain.ReportSummary{
			TotalIncome:   50000,
			TotalExpenses: 12000,
			NetChange:     38000,
			BalanceByStatus: map[domain.TransactionStatus]domain.Cents{
				domain.StatusUncleared:  -12000,
				domain.StatusCleared:    50000,
				domain.StatusReconciled: 0,
			},
			IncomeByCategory: []domain.CategoryGroup{
				{ParentName: "Events", Children: []domain.CategoryTotal{{Name: "Spring Gala", Total: 50000}}, Subtotal: 50000},
			},
			ExpensesByCategory: []domain.CategoryGroup{
				{ParentName: "Events", Children: []domain.CategoryTotal{{Name: "Spring Gala", Total: 12000}}, Subtotal: 12000},
			},
		},
		AccountBalances: []domain.AccountBalance{
			{AccountName: "Checking", StartingBalance: 100000, EndingBalance: 138000},
		},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRenderSheets(t *testing.T) {
	data, err := NewRenderer().Render(sampleReport(), nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Transactions", "Summary"}, f.GetSheetList())

	title, err := f.GetCellValue("Transactions", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Lakeside Band Boosters", title)

	subtitle, err := f.GetCellValue("Transactions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Transactions 2026-01-01 to 2026-03-31 (FY 2026)", subtitle)
}

func TestRenderEmptyReportPlaceholder(t *testing.T) {
	rd := sampleReport()
	rd.Transactions = nil

	data, err := NewRenderer().Render(rd, nil, nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)

	found := false
	for _, row := range rows {
		for _, cell := range row {
			if cell == layout.PlaceholderText {
				found = true
			}
		}
	}
	assert.True(t, found, "placeholder row missing")
}

func TestRenderBudgetAndSeasons(t *testing.T) {
	bd := &domain.BudgetReportData{
		BudgetName: "FY 2026 Budget",
		CombinedLines: []domain.CombinedBudgetLine{
			{CategoryName: "Spring Gala", IncomeBudgeted: 500000, IncomeActual: 50000,
				ExpenseBudgeted: 200000, ExpenseActual: 12000, NetBudgeted: 300000, NetActual: 38000},
		},
		TotalNetBudgeted: 300000,
		TotalNetActual:   38000,
	}
	sd := &domain.SeasonReportData{
		SeasonName: "Spring 2026",
		Enrollments: []domain.SeasonEnrollment{
			{ParticipantName: "Alex Rivera", Fee: 15000, Paid: 15000, Status: domain.PaymentPaid},
			{ParticipantName: "Sam Okafor", Fee: 15000, Paid: 5000, Status: domain.PaymentPartial},
		},
		TotalFees: 30000,
		TotalPaid: 20000,
	}

	data, err := NewRenderer().Render(sampleReport(), bd, sd)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Transactions", "Summary", "Budget vs Actual", "Seasons"}, f.GetSheetList())

	budgetTitle, err := f.GetCellValue("Budget vs Actual", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Budget vs Actual: FY 2026 Budget", budgetTitle)

	participant, err := f.GetCellValue("Seasons", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Alex Rivera", participant)
}
