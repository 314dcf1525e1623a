// Package report builds the canonical ReportData model both exporters
// consume. Build is pure computation over already-fetched, pre-ordered
// input; Generator wires it to the ledger store.
package report

import (
	"time"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/services/balance"
	"github.com/dswhitely1/donthetreasurer/pkg/services/money"
)

const uncategorizedLabel = "Uncategorized"

// Input carries everything Build needs. Transactions must already be
// ordered by transaction date then creation time ascending; the running
// balance accumulates in slice order.
type Input struct {
	Organization    domain.Organization
	Accounts        []domain.Account
	Transactions    []domain.Transaction
	Start           time.Time
	End             time.Time
	FiscalYearLabel string
	GeneratedAt     time.Time
}

// Build assembles the report model: normalized transactions with running
// balances, totals, balance by status, and the category trees. It fails
// fast on a malformed date range and never produces a partial report.
func Build(in Input) (*domain.ReportData, error) {
	if err := validateRange(in.Start, in.End); err != nil {
		return nil, err
	}

	running := runningBalances(in.Accounts, in.Transactions)

	data := &domain.ReportData{
		OrganizationName: in.Organization.Name,
		StartDate:        in.Start,
		EndDate:          in.End,
		GeneratedAt:      in.GeneratedAt,
		FiscalYearLabel:  in.FiscalYearLabel,
		SeasonsEnabled:   in.Organization.SeasonsEnabled,
		Transactions:     make([]domain.ReportTransaction, 0, len(in.Transactions)),
	}

	for _, t := range in.Transactions {
		rt := domain.ReportTransaction{
			ID:          t.ID,
			Date:        t.Date,
			CreatedAt:   t.CreatedAt,
			AccountName: t.AccountName,
			CheckNumber: t.CheckNumber,
			Vendor:      t.Vendor,
			Description: t.Description,
			Type:        t.Type,
			Amount:      t.Amount,
			Status:      t.Status,
			ClearedAt:   t.ClearedAt,
		}

		if after, ok := running[t.ID]; ok {
			rt.RunningBalance = &after
		}

		items := t.LineItems
		if len(items) == 0 {
			items = []domain.LineItem{{
				CategoryName:  uncategorizedLabel,
				CategoryLabel: uncategorizedLabel,
				Amount:        t.Amount,
			}}
		}
		for i, li := range items {
			row := domain.ReportLineItem{
				CategoryLabel: li.CategoryLabel,
				Amount:        li.Amount,
				Memo:          li.Memo,
			}
			// The running balance belongs to the transaction's last row
			// only; earlier rows of a split stay nil in both renderers.
			if i == len(items)-1 {
				row.RunningBalance = rt.RunningBalance
			}
			rt.LineItems = append(rt.LineItems, row)
		}

		data.Transactions = append(data.Transactions, rt)
	}

	data.Summary = buildSummary(in.Transactions)
	data.AccountBalances = accountBalances(in.Accounts, in.Transactions)

	return data, nil
}

func validateRange(start, end time.Time) error {
	verr := domain.NewValidationError()
	if start.IsZero() {
		verr.Add("start", "start date is required")
	}
	if end.IsZero() {
		verr.Add("end", "end date is required")
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		verr.Add("end", "end date must not be before start date")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func buildSummary(txns []domain.Transaction) domain.ReportSummary {
	summary := domain.ReportSummary{
		BalanceByStatus: money.StatusNet(txns),
	}
	for _, t := range txns {
		if t.Type == domain.TypeIncome {
			summary.TotalIncome += t.Amount
		} else {
			summary.TotalExpenses += t.Amount
		}
	}
	summary.NetChange = summary.TotalIncome - summary.TotalExpenses
	summary.IncomeByCategory = categoryGroups(txns, domain.TypeIncome)
	summary.ExpensesByCategory = categoryGroups(txns, domain.TypeExpense)
	return summary
}

// categoryGroups groups line items by parent category in first-seen order.
// Top-level categories group under their own name. The order is stable for
// identical input because it derives only from the input sequence.
func categoryGroups(txns []domain.Transaction, tt domain.TransactionType) []domain.CategoryGroup {
	var groups []domain.CategoryGroup
	groupIndex := make(map[string]int)
	childIndex := make(map[string]map[string]int)

	for _, t := range txns {
		if t.Type != tt {
			continue
		}
		items := t.LineItems
		if len(items) == 0 {
			items = []domain.LineItem{{CategoryName: uncategorizedLabel, Amount: t.Amount}}
		}
		for _, li := range items {
			parent := li.ParentCategory
			if parent == "" {
				parent = li.CategoryName
			}

			gi, ok := groupIndex[parent]
			if !ok {
				gi = len(groups)
				groupIndex[parent] = gi
				childIndex[parent] = make(map[string]int)
				groups = append(groups, domain.CategoryGroup{ParentName: parent})
			}

			ci, ok := childIndex[parent][li.CategoryName]
			if !ok {
				ci = len(groups[gi].Children)
				childIndex[parent][li.CategoryName] = ci
				groups[gi].Children = append(groups[gi].Children, domain.CategoryTotal{Name: li.CategoryName})
			}

			groups[gi].Children[ci].Total += li.Amount
			groups[gi].Subtotal += li.Amount
		}
	}
	return groups
}

// runningBalances accumulates a sequential balance per account, in input
// order, for every account with an opening balance on record. The result is
// keyed by transaction id; transactions of basis-less accounts are absent.
func runningBalances(accounts []domain.Account, txns []domain.Transaction) map[string]domain.Cents {
	running := make(map[string]domain.Cents)
	for _, a := range accounts {
		if a.OpeningBalance == nil {
			continue
		}
		var ordered []domain.Transaction
		for _, t := range txns {
			if t.AccountID == a.ID {
				ordered = append(ordered, t)
			}
		}
		for id, after := range balance.Running(*a.OpeningBalance, ordered) {
			running[id] = after
		}
	}
	return running
}

// accountBalances reports starting/ending balances for every account with
// an opening balance on record.
func accountBalances(accounts []domain.Account, txns []domain.Transaction) []domain.AccountBalance {
	var balances []domain.AccountBalance
	for _, s := range balance.AccountBalances(accounts, txns) {
		if s.Account.OpeningBalance == nil {
			continue
		}
		balances = append(balances, domain.AccountBalance{
			AccountName:     s.Account.Name,
			StartingBalance: *s.Account.OpeningBalance,
			EndingBalance:   s.CurrentBalance,
		})
	}
	return balances
}
