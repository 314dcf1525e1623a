package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
)

func cents(v int64) *domain.Cents {
	c := domain.Cents(v)
	return &c
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleReport() *domain.ReportData {
	return &domain.ReportData{
		OrganizationName: "Lakeside Band Boosters",
		Transactions: []domain.ReportTransaction{
			{
				ID: "t1", Date: date(2026, 1, 5), AccountName: "Checking",
				Description: "Gala tickets", Type: domain.TypeIncome, Amount: 50000,
				Status: domain.StatusCleared, RunningBalance: cents(150000),
				LineItems: []domain.ReportLineItem{
					{CategoryLabel: "Events → Spring Gala", Amount: 50000, RunningBalance: cents(150000)},
				},
			},
			{
				ID: "t2", Date: date(2026, 1, 10), AccountName: "Checking",
				Vendor: "Catering Co", Description: "Gala catering", Type: domain.TypeExpense,
				Amount: 12000, Status: domain.StatusUncleared, RunningBalance: cents(138000),
				LineItems: []domain.ReportLineItem{
					{CategoryLabel: "Events → Spring Gala", Amount: 9000, Memo: "food"},
					{CategoryLabel: "Events → Supplies", Amount: 3000, Memo: "napkins", RunningBalance: cents(138000)},
				},
			},
			{
				ID: "t3", Date: date(2026, 1, 12), AccountName: "Cash Box",
				Description: "Bake sale", Type: domain.TypeIncome, Amount: 2500,
				Status: domain.StatusReconciled,
				LineItems: []domain.ReportLineItem{
					{CategoryLabel: "Donations", Amount: 2500},
				},
			},
		},
		Summary: domain.ReportSummary{
			TotalIncome:   52500,
			TotalExpenses: 12000,
			NetChange:     40500,
			BalanceByStatus: map[domain.TransactionStatus]domain.Cents{
				domain.StatusUncleared:  -12000,
				domain.StatusCleared:    50000,
				domain.StatusReconciled: 2500,
			},
			IncomeByCategory: []domain.CategoryGroup{
				{ParentName: "Events", Children: []domain.CategoryTotal{{Name: "Spring Gala", Total: 50000}}, Subtotal: 50000},
				{ParentName: "Donations", Children: []domain.CategoryTotal{{Name: "Donations", Total: 2500}}, Subtotal: 2500},
			},
			ExpensesByCategory: []domain.CategoryGroup{
				{ParentName: "Events", Children: []domain.CategoryTotal{
					{Name: "Spring Gala", Total: 9000},
					{Name: "Supplies", Total: 3000},
				}, Subtotal: 12000},
			},
		},
	}
}

func rowsOfKind(rows []TransactionRow, k Kind) []TransactionRow {
	var out []TransactionRow
	for _, r := range rows {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

func TestTransactionRowsGrouping(t *testing.T) {
	rows := TransactionRows(sampleReport())

	// Accounts in encounter order.
	headers := rowsOfKind(rows, KindAccountHeader)
	require.Len(t, headers, 2)
	assert.Equal(t, "Checking", headers[0].Label)
	assert.Equal(t, "Cash Box", headers[1].Label)

	// Statuses in fixed order within Checking: uncleared before cleared.
	statusHeaders := rowsOfKind(rows, KindStatusHeader)
	require.Len(t, statusHeaders, 3)
	assert.Equal(t, "Uncleared", statusHeaders[0].Label)
	assert.Equal(t, "Cleared", statusHeaders[1].Label)
	assert.Equal(t, "Reconciled", statusHeaders[2].Label)

	// One data row per line item: 1 + 2 + 1.
	assert.Len(t, rowsOfKind(rows, KindData), 4)

	// A subtotal per rendered status group, one per account, one grand total.
	assert.Len(t, rowsOfKind(rows, KindStatusSubtotal), 3)
	assert.Len(t, rowsOfKind(rows, KindAccountSubtotal), 2)

	grand := rowsOfKind(rows, KindGrandTotal)
	require.Len(t, grand, 1)
	require.NotNil(t, grand[0].Amount)
	assert.Equal(t, domain.Cents(40500), *grand[0].Amount)
}

func TestTransactionRowsSplitContract(t *testing.T) {
	rows := TransactionRows(sampleReport())
	data := rowsOfKind(rows, KindData)

	// Split transaction rows: shared fields on the first row only.
	first, second := data[1], data[2]
	assert.Equal(t, "2026-01-10", first.Date)
	assert.Equal(t, "Catering Co", first.Vendor)
	assert.Empty(t, second.Date)
	assert.Empty(t, second.Vendor)
	assert.Empty(t, second.Description)

	// Running balance blank until the last row of the split.
	assert.Nil(t, first.Running)
	require.NotNil(t, second.Running)
	assert.Equal(t, domain.Cents(138000), *second.Running)

	// Expense amounts are signed negative, income positive.
	require.NotNil(t, first.Amount)
	assert.Equal(t, domain.Cents(-9000), *first.Amount)
	assert.False(t, first.Income)
	require.NotNil(t, data[0].Amount)
	assert.Equal(t, domain.Cents(50000), *data[0].Amount)
	assert.True(t, data[0].Income)
}

func TestTransactionRowsEmptyInput(t *testing.T) {
	rows := TransactionRows(&domain.ReportData{})

	require.Len(t, rows, 1)
	assert.Equal(t, KindPlaceholder, rows[0].Kind)
	assert.Equal(t, PlaceholderText, rows[0].Label)
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(sampleReport())

	// Single-child groups collapse; the subtotal line is suppressed.
	require.Len(t, s.Income, 3) // heading + two collapsed groups
	assert.Equal(t, "Income", s.Income[0].Label)
	assert.Equal(t, "Events", s.Income[1].Label)
	require.NotNil(t, s.Income[1].Amount)
	assert.Equal(t, domain.Cents(50000), *s.Income[1].Amount)

	// Multi-child group keeps children and a subtotal line.
	require.Len(t, s.Expense, 5) // heading + parent + 2 children + subtotal
	assert.Equal(t, "Events Subtotal", s.Expense[4].Label)
	require.NotNil(t, s.Expense[4].Amount)
	assert.Equal(t, domain.Cents(12000), *s.Expense[4].Amount)

	// Totals block copies the builder's numbers verbatim.
	require.Len(t, s.Totals, 6)
	assert.Equal(t, domain.Cents(52500), *s.Totals[0].Amount)
	assert.Equal(t, domain.Cents(12000), *s.Totals[1].Amount)
	assert.Equal(t, domain.Cents(40500), *s.Totals[2].Amount)
	assert.Equal(t, "Uncleared Net", s.Totals[3].Label)
	assert.Equal(t, domain.Cents(-12000), *s.Totals[3].Amount)
}

func TestBuildBudget(t *testing.T) {
	bd := &domain.BudgetReportData{
		BudgetName: "FY 2026 Budget",
		CombinedLines: []domain.CombinedBudgetLine{
			{CategoryName: "Spring Gala", NetBudgeted: 300000, NetActual: 335000},
		},
		UnmatchedIncome: []domain.BudgetReportLine{
			{CategoryName: "Donations", Budgeted: 100000, Actual: 95000},
		},
		UnmatchedExpense: []domain.BudgetReportLine{
			{CategoryName: "Rent", Budgeted: 60000, Actual: 60000},
		},
		TotalNetBudgeted: 340000,
		TotalNetActual:   370000,
	}

	b := BuildBudget(bd)

	assert.Equal(t, domain.Cents(300000), b.CombinedNetBudgeted)
	assert.Equal(t, domain.Cents(335000), b.CombinedNetActual)
	assert.Equal(t, domain.Cents(100000), b.IncomeBudgetedSubtotal)
	assert.Equal(t, domain.Cents(95000), b.IncomeActualSubtotal)
	assert.Equal(t, domain.Cents(60000), b.ExpenseBudgetedSubtotal)
	assert.Equal(t, domain.Cents(340000), b.TotalNetBudgeted)
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in       domain.Cents
		expected string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1,234.56"},
		{-123456, "-$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-7, "-$0.07"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCents(tt.in))
		})
	}
}
