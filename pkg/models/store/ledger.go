package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rows in this package mirror the ledger schema as fetched by read-only
// queries. Amounts stay decimal until the adapter layer converts them to
// integer cents.

type LineItemRow struct {
	ParentCategory string // empty for top-level categories
	Category       string
	Amount         decimal.Decimal
	Memo           string
}

type TransactionRow struct {
	ID          string
	Date        time.Time
	CreatedAt   time.Time
	Type        string
	Status      string
	Amount      decimal.Decimal
	AccountID   string
	AccountName string
	CheckNumber string
	Vendor      string
	Description string
	ClearedAt   *time.Time
	LineItems   []LineItemRow
}

// TransactionFilter narrows the transaction query. The date range applies
// to cleared/reconciled transactions by cleared date; uncleared
// transactions are always included regardless of range.
type TransactionFilter struct {
	Start      time.Time
	End        time.Time
	AccountIDs []string
	Categories []string
	Statuses   []string
}

type AccountRow struct {
	ID             string
	Name           string
	OpeningBalance *decimal.Decimal
}

type OrganizationRow struct {
	ID                   string
	Name                 string
	FiscalYearStartMonth int
	SeasonsEnabled       bool
}

type BudgetLineRow struct {
	ParentCategory string
	Category       string
	Type           string
	Amount         decimal.Decimal
	Notes          string
}

type BudgetRow struct {
	ID    string
	Name  string
	Lines []BudgetLineRow
}

type EnrollmentRow struct {
	ParticipantName string
	Fee             decimal.Decimal
	Paid            decimal.Decimal
}

type SeasonRow struct {
	ID          string
	Name        string
	Enrollments []EnrollmentRow
}
