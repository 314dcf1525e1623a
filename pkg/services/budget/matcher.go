// Package budget merges a budget's income and expense lines into
// budget-vs-actual rows by category display name.
package budget

import "github.com/dswhitely1/donthetreasurer/pkg/models/domain"

// collapse sums budgeted/actual figures for duplicate category names,
// preserving first-seen order.
func collapse(lines []domain.BudgetReportLine) []domain.BudgetReportLine {
	index := make(map[string]int, len(lines))
	var out []domain.BudgetReportLine
	for _, line := range lines {
		if i, ok := index[line.CategoryName]; ok {
			out[i].Budgeted += line.Budgeted
			out[i].Actual += line.Actual
			continue
		}
		index[line.CategoryName] = len(out)
		out = append(out, line)
	}
	return out
}

// Combine matches income lines to expense lines sharing the same category
// display name. Duplicates within one side are summed before matching.
// Matching is exact string equality on the resolved label, separator glyph
// included; labels must be produced by one formatter upstream.
func Combine(income, expense []domain.BudgetReportLine) ([]domain.CombinedBudgetLine, []domain.BudgetReportLine, []domain.BudgetReportLine) {
	income = collapse(income)
	expense = collapse(expense)

	expenseByName := make(map[string]domain.BudgetReportLine, len(expense))
	for _, line := range expense {
		expenseByName[line.CategoryName] = line
	}

	var combined []domain.CombinedBudgetLine
	var unmatchedIncome []domain.BudgetReportLine
	matched := make(map[string]bool)

	for _, in := range income {
		ex, ok := expenseByName[in.CategoryName]
		if !ok {
			unmatchedIncome = append(unmatchedIncome, in)
			continue
		}
		matched[in.CategoryName] = true
		combined = append(combined, domain.CombinedBudgetLine{
			CategoryName:    in.CategoryName,
			IncomeBudgeted:  in.Budgeted,
			IncomeActual:    in.Actual,
			ExpenseBudgeted: ex.Budgeted,
			ExpenseActual:   ex.Actual,
			NetBudgeted:     in.Budgeted - ex.Budgeted,
			NetActual:       in.Actual - ex.Actual,
		})
	}

	var unmatchedExpense []domain.BudgetReportLine
	for _, ex := range expense {
		if !matched[ex.CategoryName] {
			unmatchedExpense = append(unmatchedExpense, ex)
		}
	}

	return combined, unmatchedIncome, unmatchedExpense
}

// Build assembles the full budget-vs-actual report, including the overall
// net budgeted/actual comparison across every line.
func Build(name string, income, expense []domain.BudgetReportLine) *domain.BudgetReportData {
	combined, unmatchedIncome, unmatchedExpense := Combine(income, expense)

	data := &domain.BudgetReportData{
		BudgetName:       name,
		CombinedLines:    combined,
		UnmatchedIncome:  unmatchedIncome,
		UnmatchedExpense: unmatchedExpense,
	}
	for _, line := range combined {
		data.TotalNetBudgeted += line.NetBudgeted
		data.TotalNetActual += line.NetActual
	}
	for _, line := range unmatchedIncome {
		data.TotalNetBudgeted += line.Budgeted
		data.TotalNetActual += line.Actual
	}
	for _, line := range unmatchedExpense {
		data.TotalNetBudgeted -= line.Budgeted
		data.TotalNetActual -= line.Actual
	}
	return data
}
