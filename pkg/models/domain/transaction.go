package domain

import "time"

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	StatusUncleared  TransactionStatus = "uncleared"
	StatusCleared    TransactionStatus = "cleared"
	StatusReconciled TransactionStatus = "reconciled"
)

// StatusOrder is the fixed presentation order for transaction statuses.
// Both renderers group by status in this order, never alphabetically.
var StatusOrder = []TransactionStatus{StatusUncleared, StatusCleared, StatusReconciled}

// LineItem is one category-tagged portion of a transaction. A transaction
// with more than one line item is a split transaction.
type LineItem struct {
	ParentCategory string // empty for top-level categories
	CategoryName   string
	CategoryLabel  string // resolved display label, e.g. "Programs → Youth"
	Amount         Cents  // positive
	Memo           string
}

// Transaction is the engine's read-only view of a ledger transaction.
// The sum of line-item amounts equals Amount; that invariant is enforced
// upstream and assumed here.
type Transaction struct {
	ID          string
	Date        time.Time
	CreatedAt   time.Time
	Type        TransactionType
	Amount      Cents // positive; sign is derived from Type
	Status      TransactionStatus
	AccountID   string
	AccountName string
	CheckNumber string
	Vendor      string
	Description string
	ClearedAt   *time.Time
	LineItems   []LineItem
}
