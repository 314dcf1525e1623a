// Package layout turns the canonical report model into typed render rows.
// Both exporters consume the same rows, so grouping, subtotaling, and the
// split-transaction contract are decided exactly once.
package layout

import (
	"strings"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
)

type Kind int

const (
	KindAccountHeader Kind = iota
	KindStatusHeader
	KindData
	KindStatusSubtotal
	KindAccountSubtotal
	KindGrandTotal
	KindPlaceholder
)

// TransactionRow is one laid-out row of the transactions table. Amount is
// signed (negative for expenses); Income drives the green/red treatment.
type TransactionRow struct {
	Kind        Kind
	Label       string // header/subtotal/placeholder text
	Date        string
	Account     string
	CheckNumber string
	Vendor      string
	Description string
	Category    string
	Memo        string
	Status      string
	Cleared     string
	Amount      *domain.Cents
	Income      bool
	Running     *domain.Cents
}

const dateFormat = "2006-01-02"

// PlaceholderText appears instead of an empty table.
const PlaceholderText = "No transactions found"

func signed(t domain.ReportTransaction) domain.Cents {
	if t.Type == domain.TypeExpense {
		return -t.Amount
	}
	return t.Amount
}

func signedItem(t domain.ReportTransaction, amount domain.Cents) domain.Cents {
	if t.Type == domain.TypeExpense {
		return -amount
	}
	return amount
}

// TransactionRows lays out the full transactions table: account sections in
// encounter order, statuses in the fixed uncleared/cleared/reconciled
// order, transactions in input order, one row per line item with shared
// fields only on the first row.
func TransactionRows(rd *domain.ReportData) []TransactionRow {
	if len(rd.Transactions) == 0 {
		return []TransactionRow{{Kind: KindPlaceholder, Label: PlaceholderText}}
	}

	var accountOrder []string
	byAccount := make(map[string][]domain.ReportTransaction)
	for _, t := range rd.Transactions {
		if _, seen := byAccount[t.AccountName]; !seen {
			accountOrder = append(accountOrder, t.AccountName)
		}
		byAccount[t.AccountName] = append(byAccount[t.AccountName], t)
	}

	var rows []TransactionRow
	var grandTotal domain.Cents

	for _, account := range accountOrder {
		rows = append(rows, TransactionRow{Kind: KindAccountHeader, Label: account})
		var accountTotal domain.Cents

		for _, status := range domain.StatusOrder {
			var group []domain.ReportTransaction
			for _, t := range byAccount[account] {
				if t.Status == status {
					group = append(group, t)
				}
			}
			if len(group) == 0 {
				continue
			}

			rows = append(rows, TransactionRow{Kind: KindStatusHeader, Label: statusLabel(status)})
			var statusTotal domain.Cents
			for _, t := range group {
				rows = append(rows, transactionRows(t)...)
				statusTotal += signed(t)
			}
			subtotal := statusTotal
			rows = append(rows, TransactionRow{
				Kind:   KindStatusSubtotal,
				Label:  statusLabel(status) + " Subtotal",
				Amount: &subtotal,
				Income: subtotal >= 0,
			})
			accountTotal += statusTotal
		}

		subtotal := accountTotal
		rows = append(rows, TransactionRow{
			Kind:   KindAccountSubtotal,
			Label:  account + " Total",
			Amount: &subtotal,
			Income: subtotal >= 0,
		})
		grandTotal += accountTotal
	}

	rows = append(rows, TransactionRow{
		Kind:   KindGrandTotal,
		Label:  "Grand Total",
		Amount: &grandTotal,
		Income: grandTotal >= 0,
	})
	return rows
}

// transactionRows emits one row per line item. Shared transaction fields
// appear on the first row only; the running balance is wherever the
// builder put it (the last row).
func transactionRows(t domain.ReportTransaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(t.LineItems))
	for i, li := range t.LineItems {
		amount := signedItem(t, li.Amount)
		row := TransactionRow{
			Kind:     KindData,
			Category: li.CategoryLabel,
			Memo:     li.Memo,
			Amount:   &amount,
			Income:   t.Type == domain.TypeIncome,
			Running:  li.RunningBalance,
		}
		if i == 0 {
			row.Date = t.Date.Format(dateFormat)
			row.Account = t.AccountName
			row.CheckNumber = t.CheckNumber
			row.Vendor = t.Vendor
			row.Description = t.Description
			row.Status = statusLabel(t.Status)
			if t.ClearedAt != nil {
				row.Cleared = t.ClearedAt.Format(dateFormat)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func statusLabel(s domain.TransactionStatus) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[0])) + string(s[1:])
}

// SummaryLine is one row of the summary section. Amount is nil for pure
// heading lines.
type SummaryLine struct {
	Label  string
	Amount *domain.Cents
	Bold   bool
	Indent int
}

// Summary is the laid-out summary section. Values are copied verbatim from
// the builder's numbers; nothing is recomputed here.
type Summary struct {
	Income  []SummaryLine
	Expense []SummaryLine
	Totals  []SummaryLine
}

// BuildSummary lays out the two category columns and the totals block.
func BuildSummary(rd *domain.ReportData) Summary {
	s := Summary{
		Income:  categoryLines("Income", rd.Summary.IncomeByCategory),
		Expense: categoryLines("Expenses", rd.Summary.ExpensesByCategory),
	}

	totalIncome := rd.Summary.TotalIncome
	totalExpenses := rd.Summary.TotalExpenses
	netChange := rd.Summary.NetChange
	s.Totals = []SummaryLine{
		{Label: "Total Income", Amount: &totalIncome, Bold: true},
		{Label: "Total Expenses", Amount: &totalExpenses, Bold: true},
		{Label: "Net Change", Amount: &netChange, Bold: true},
	}
	for _, status := range domain.StatusOrder {
		amount := rd.Summary.BalanceByStatus[status]
		s.Totals = append(s.Totals, SummaryLine{
			Label:  statusLabel(status) + " Net",
			Amount: &amount,
			Indent: 1,
		})
	}
	return s
}

// categoryLines renders one category tree. A parent with a single child
// collapses into one line; the subtotal line is cosmetic and suppressed.
func categoryLines(title string, groups []domain.CategoryGroup) []SummaryLine {
	lines := []SummaryLine{{Label: title, Bold: true}}
	for _, g := range groups {
		if len(g.Children) <= 1 {
			total := g.Subtotal
			lines = append(lines, SummaryLine{Label: g.ParentName, Amount: &total, Indent: 1})
			continue
		}
		lines = append(lines, SummaryLine{Label: g.ParentName, Indent: 1})
		for _, child := range g.Children {
			total := child.Total
			lines = append(lines, SummaryLine{Label: child.Name, Amount: &total, Indent: 2})
		}
		subtotal := g.Subtotal
		lines = append(lines, SummaryLine{Label: g.ParentName + " Subtotal", Amount: &subtotal, Indent: 1, Bold: true})
	}
	return lines
}

// Budget is the laid-out budget-vs-actual section with per-block subtotals.
type Budget struct {
	Name                    string
	Combined                []domain.CombinedBudgetLine
	CombinedNetBudgeted     domain.Cents
	CombinedNetActual       domain.Cents
	UnmatchedIncome         []domain.BudgetReportLine
	IncomeBudgetedSubtotal  domain.Cents
	IncomeActualSubtotal    domain.Cents
	UnmatchedExpense        []domain.BudgetReportLine
	ExpenseBudgetedSubtotal domain.Cents
	ExpenseActualSubtotal   domain.Cents
	TotalNetBudgeted        domain.Cents
	TotalNetActual          domain.Cents
}

func BuildBudget(bd *domain.BudgetReportData) Budget {
	b := Budget{
		Name:             bd.BudgetName,
		Combined:         bd.CombinedLines,
		UnmatchedIncome:  bd.UnmatchedIncome,
		UnmatchedExpense: bd.UnmatchedExpense,
		TotalNetBudgeted: bd.TotalNetBudgeted,
		TotalNetActual:   bd.TotalNetActual,
	}
	for _, line := range bd.CombinedLines {
		b.CombinedNetBudgeted += line.NetBudgeted
		b.CombinedNetActual += line.NetActual
	}
	for _, line := range bd.UnmatchedIncome {
		b.IncomeBudgetedSubtotal += line.Budgeted
		b.IncomeActualSubtotal += line.Actual
	}
	for _, line := range bd.UnmatchedExpense {
		b.ExpenseBudgetedSubtotal += line.Budgeted
		b.ExpenseActualSubtotal += line.Actual
	}
	return b
}
