package domain

type Organization struct {
	ID                   string
	Name                 string
	FiscalYearStartMonth int // 1-12; 1 means fiscal year == calendar year
	SeasonsEnabled       bool
}

type Account struct {
	ID             string
	Name           string
	OpeningBalance *Cents // nil when no opening balance has been recorded
}

// AccountSummary carries per-account aggregates for a transaction set.
type AccountSummary struct {
	Account        Account
	CurrentBalance Cents
	TotalIncome    Cents // unsigned sum of income amounts
	TotalExpense   Cents // unsigned sum of expense amounts
	StatusNet      map[TransactionStatus]Cents
}
