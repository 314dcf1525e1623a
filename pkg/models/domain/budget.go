package domain

// BudgetReportLine is one budget-vs-actual row for a single category.
type BudgetReportLine struct {
	CategoryName    string
	CategoryType    TransactionType
	Budgeted        Cents
	Actual          Cents
	Variance        Cents    // actual - budgeted
	VariancePercent *float64 // nil when budgeted is zero
}

// CombinedBudgetLine pairs an income line and an expense line that share
// the same category display name.
type CombinedBudgetLine struct {
	CategoryName    string
	IncomeBudgeted  Cents
	IncomeActual    Cents
	ExpenseBudgeted Cents
	ExpenseActual   Cents
	NetBudgeted     Cents // income budgeted - expense budgeted
	NetActual       Cents
}

type BudgetReportData struct {
	BudgetName       string
	CombinedLines    []CombinedBudgetLine
	UnmatchedIncome  []BudgetReportLine
	UnmatchedExpense []BudgetReportLine
	TotalNetBudgeted Cents
	TotalNetActual   Cents
}
