package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dswhitely1/donthetreasurer/pkg/adapters"
	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/models/store"
	"github.com/dswhitely1/donthetreasurer/pkg/services/budget"
	"github.com/dswhitely1/donthetreasurer/pkg/services/fiscal"
)

// Store is the read-only ledger access the generator depends on. The
// transaction query returns rows ordered by transaction date then creation
// time ascending; that ordering is the running-balance contract.
type Store interface {
	Organization(ctx context.Context, id string) (*store.OrganizationRow, error)
	Accounts(ctx context.Context, orgID string) ([]store.AccountRow, error)
	Transactions(ctx context.Context, orgID string, filter store.TransactionFilter) ([]store.TransactionRow, error)
	Budget(ctx context.Context, orgID, budgetID string) (*store.BudgetRow, error)
	CurrentSeason(ctx context.Context, orgID string) (*store.SeasonRow, error)
}

// Params select the report window and filters. Either Preset resolves to a
// period, or Start and End must both be set.
type Params struct {
	Preset     fiscal.Preset
	Start      time.Time
	End        time.Time
	AccountIDs []string
	Categories []string
	Statuses   []domain.TransactionStatus
}

type Generator struct {
	store Store
	now   func() time.Time
}

func NewGenerator(s Store) *Generator {
	return &Generator{store: s, now: time.Now}
}

// TransactionReport fetches, normalizes, and aggregates the ledger into the
// canonical report model for one organization.
func (g *Generator) TransactionReport(ctx context.Context, orgID string, p Params) (*domain.ReportData, error) {
	orgRow, err := g.store.Organization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	org := adapters.MapOrganizationRowToDomain(*orgRow)

	start, end, label, err := g.resolveRange(org, p)
	if err != nil {
		return nil, err
	}

	accountRows, err := g.store.Accounts(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	accounts := make([]domain.Account, 0, len(accountRows))
	for _, row := range accountRows {
		accounts = append(accounts, adapters.MapAccountRowToDomain(row))
	}

	statuses := make([]string, 0, len(p.Statuses))
	for _, s := range p.Statuses {
		statuses = append(statuses, string(s))
	}
	rows, err := g.store.Transactions(ctx, orgID, store.TransactionFilter{
		Start:      start,
		End:        end,
		AccountIDs: p.AccountIDs,
		Categories: p.Categories,
		Statuses:   statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	txns := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, adapters.MapTransactionRowToDomain(row))
	}

	return Build(Input{
		Organization:    org,
		Accounts:        accounts,
		Transactions:    txns,
		Start:           start,
		End:             end,
		FiscalYearLabel: label,
		GeneratedAt:     g.now().UTC(),
	})
}

// resolveRange turns preset-or-explicit params into a concrete window. The
// fiscal year label is attached only when a preset resolved it.
func (g *Generator) resolveRange(org domain.Organization, p Params) (time.Time, time.Time, string, error) {
	if period := fiscal.FromPreset(p.Preset, org.FiscalYearStartMonth, g.now().UTC()); period != nil {
		return period.Start, period.End, period.Label, nil
	}

	verr := domain.NewValidationError()
	if p.Start.IsZero() {
		verr.Add("start", "start date is required for a custom range")
	}
	if p.End.IsZero() {
		verr.Add("end", "end date is required for a custom range")
	}
	if verr.HasErrors() {
		return time.Time{}, time.Time{}, "", verr
	}
	return p.Start, p.End, "", nil
}

// BudgetReport loads a budget and reconciles it against the report's
// category totals. Categories with actuals but no budget line join the
// comparison as zero-budgeted lines.
func (g *Generator) BudgetReport(ctx context.Context, orgID, budgetID string, rd *domain.ReportData) (*domain.BudgetReportData, error) {
	budgetRow, err := g.store.Budget(ctx, orgID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	incomeActuals := actualsByLabel(rd.Summary.IncomeByCategory)
	expenseActuals := actualsByLabel(rd.Summary.ExpensesByCategory)

	income := assembleLines(budgetRow.Lines, domain.TypeIncome, incomeActuals)
	expense := assembleLines(budgetRow.Lines, domain.TypeExpense, expenseActuals)

	return budget.Build(budgetRow.Name, income, expense), nil
}

// actualsByLabel flattens a category tree into display-label totals.
func actualsByLabel(groups []domain.CategoryGroup) map[string]domain.Cents {
	actuals := make(map[string]domain.Cents)
	for _, g := range groups {
		for _, child := range g.Children {
			label := child.Name
			if g.ParentName != child.Name {
				label = adapters.CategoryLabel(g.ParentName, child.Name)
			}
			actuals[label] += child.Total
		}
	}
	return actuals
}

// assembleLines merges budgeted lines of one type with that side's actual
// totals. Budget lines come first in their stored order, then actual-only
// categories as zero-budgeted lines. Variance figures are derived here so
// the matcher stays pure.
func assembleLines(rows []store.BudgetLineRow, tt domain.TransactionType, actuals map[string]domain.Cents) []domain.BudgetReportLine {
	var lines []domain.BudgetReportLine
	budgeted := make(map[string]bool)

	for _, row := range rows {
		if domain.TransactionType(row.Type) != tt {
			continue
		}
		line := adapters.MapBudgetLineRowToDomain(row)
		line.Actual = actuals[line.CategoryName]
		budgeted[line.CategoryName] = true
		lines = append(lines, finishLine(line))
	}

	// Deterministic order for actual-only categories: the category tree's
	// first-seen order is lost in the map, so recover it by name sort.
	var leftover []string
	for name := range actuals {
		if !budgeted[name] {
			leftover = append(leftover, name)
		}
	}
	sort.Strings(leftover)
	for _, name := range leftover {
		lines = append(lines, finishLine(domain.BudgetReportLine{
			CategoryName: name,
			CategoryType: tt,
			Actual:       actuals[name],
		}))
	}
	return lines
}

func finishLine(line domain.BudgetReportLine) domain.BudgetReportLine {
	line.Variance = line.Actual - line.Budgeted
	if line.Budgeted != 0 {
		pct := float64(line.Variance) / float64(line.Budgeted) * 100
		line.VariancePercent = &pct
	}
	return line
}

// SeasonReport loads the organization's current season with payment
// classification per enrollment. Callers treat failures as non-fatal.
func (g *Generator) SeasonReport(ctx context.Context, orgID string) (*domain.SeasonReportData, error) {
	row, err := g.store.CurrentSeason(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season: %w", err)
	}
	data := adapters.MapSeasonRowToDomain(*row)
	return &data, nil
}
