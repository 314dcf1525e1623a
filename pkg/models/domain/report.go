package domain

import "time"

// ReportLineItem is one rendered row of a transaction. For split
// transactions the running balance is attached only to the last line item;
// earlier rows carry nil so both renderers agree without recomputing.
type ReportLineItem struct {
	CategoryLabel  string
	Amount         Cents
	Memo           string
	RunningBalance *Cents
}

// ReportTransaction is the normalized, render-ready view of a transaction.
type ReportTransaction struct {
	ID             string
	Date           time.Time
	CreatedAt      time.Time
	AccountName    string
	CheckNumber    string
	Vendor         string
	Description    string
	Type           TransactionType
	Amount         Cents
	Status         TransactionStatus
	ClearedAt      *time.Time
	LineItems      []ReportLineItem
	RunningBalance *Cents // balance after this transaction; nil when no basis
}

type CategoryTotal struct {
	Name  string
	Total Cents
}

// CategoryGroup is a parent category with per-child totals.
// Subtotal always equals the sum of the children's totals.
type CategoryGroup struct {
	ParentName string
	Children   []CategoryTotal
	Subtotal   Cents
}

type ReportSummary struct {
	TotalIncome        Cents
	TotalExpenses      Cents
	NetChange          Cents
	BalanceByStatus    map[TransactionStatus]Cents
	IncomeByCategory   []CategoryGroup
	ExpensesByCategory []CategoryGroup
}

type AccountBalance struct {
	AccountName     string
	StartingBalance Cents
	EndingBalance   Cents
}

// ReportData is the canonical, renderer-agnostic report model. It is
// immutable once built; renderers only read it and never recompute totals.
type ReportData struct {
	OrganizationName string
	StartDate        time.Time
	EndDate          time.Time
	GeneratedAt      time.Time
	FiscalYearLabel  string // empty for custom ranges
	SeasonsEnabled   bool
	Transactions     []ReportTransaction
	Summary          ReportSummary
	AccountBalances  []AccountBalance
}
