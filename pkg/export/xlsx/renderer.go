// Package xlsx renders the canonical report model into a multi-sheet
// workbook. All grouping decisions come from pkg/export/layout; this
// package only places rows and styles cells.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dswhitely1/donthetreasurer/pkg/export/layout"
	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
)

const (
	sheetTransactions = "Transactions"
	sheetSummary      = "Summary"
	sheetBudget       = "Budget vs Actual"
	sheetSeasons      = "Seasons"

	currencyFormat = "$#,##0.00;-$#,##0.00"
)

type styles struct {
	title          int
	header         int
	income         int
	expense        int
	balance        int
	subtotalLabel  int
	subtotalAmount int
	placeholder    int
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the workbook bytes. Budget and season data are optional;
// their sheets are omitted when nil.
func (r *Renderer) Render(rd *domain.ReportData, bd *domain.BudgetReportData, sd *domain.SeasonReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to register styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return nil, fmt.Errorf("failed to name transactions sheet: %w", err)
	}
	if err := writeTransactions(f, st, rd); err != nil {
		return nil, fmt.Errorf("failed to write transactions sheet: %w", err)
	}
	if err := writeSummary(f, st, rd); err != nil {
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if bd != nil {
		if err := writeBudget(f, st, layout.BuildBudget(bd)); err != nil {
			return nil, fmt.Errorf("failed to write budget sheet: %w", err)
		}
	}
	if sd != nil {
		if err := writeSeasons(f, st, sd); err != nil {
			return nil, fmt.Errorf("failed to write seasons sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (*styles, error) {
	currency := currencyFormat
	st := &styles{}

	var err error
	register := func(dst *int, s *excelize.Style) {
		if err != nil {
			return
		}
		*dst, err = f.NewStyle(s)
	}

	register(&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	register(&st.header, &excelize.Style{Font: &excelize.Font{Bold: true}})
	register(&st.income, &excelize.Style{
		Font:         &excelize.Font{Color: "1F7A1F"},
		CustomNumFmt: &currency,
	})
	register(&st.expense, &excelize.Style{
		Font:         &excelize.Font{Color: "B00020"},
		CustomNumFmt: &currency,
	})
	register(&st.balance, &excelize.Style{CustomNumFmt: &currency})
	register(&st.subtotalLabel, &excelize.Style{Font: &excelize.Font{Bold: true}})
	register(&st.subtotalAmount, &excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &currency,
	})
	register(&st.placeholder, &excelize.Style{Font: &excelize.Font{Italic: true}})

	if err != nil {
		return nil, err
	}
	return st, nil
}

// sheetWriter keeps the first error and the current row so cell placement
// stays readable.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) set(col int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		w.err = err
		return
	}
	if w.err = w.f.SetCellValue(w.sheet, cell, value); w.err != nil {
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

func (w *sheetWriter) amount(col int, c *domain.Cents, style int) {
	if c == nil {
		return
	}
	w.set(col, c.Float64(), style)
}

func (w *sheetWriter) next() {
	w.row++
}

func writeTransactions(f *excelize.File, st *styles, rd *domain.ReportData) error {
	w := &sheetWriter{f: f, sheet: sheetTransactions, row: 1}

	w.set(1, rd.OrganizationName, st.title)
	w.next()
	subtitle := fmt.Sprintf("Transactions %s to %s",
		rd.StartDate.Format("2006-01-02"), rd.EndDate.Format("2006-01-02"))
	if rd.FiscalYearLabel != "" {
		subtitle += " (" + rd.FiscalYearLabel + ")"
	}
	w.set(1, subtitle, 0)
	w.next()
	w.next()

	headers := []string{"Date", "Account", "Check #", "Vendor", "Description", "Category", "Memo", "Status", "Cleared", "Amount", "Balance"}
	for i, h := range headers {
		w.set(i+1, h, st.header)
	}
	w.next()

	for _, row := range layout.TransactionRows(rd) {
		switch row.Kind {
		case layout.KindAccountHeader, layout.KindStatusHeader:
			w.set(1, row.Label, st.header)
		case layout.KindPlaceholder:
			w.set(1, row.Label, st.placeholder)
		case layout.KindData:
			w.set(1, row.Date, 0)
			w.set(2, row.Account, 0)
			w.set(3, row.CheckNumber, 0)
			w.set(4, row.Vendor, 0)
			w.set(5, row.Description, 0)
			w.set(6, row.Category, 0)
			w.set(7, row.Memo, 0)
			w.set(8, row.Status, 0)
			w.set(9, row.Cleared, 0)
			w.amount(10, row.Amount, amountStyle(st, row.Income))
			w.amount(11, row.Running, st.balance)
		case layout.KindStatusSubtotal, layout.KindAccountSubtotal, layout.KindGrandTotal:
			w.set(9, row.Label, st.subtotalLabel)
			w.amount(10, row.Amount, st.subtotalAmount)
		}
		w.next()
	}

	if w.err != nil {
		return w.err
	}
	return f.SetColWidth(sheetTransactions, "A", "K", 16)
}

func amountStyle(st *styles, income bool) int {
	if income {
		return st.income
	}
	return st.expense
}

func writeSummary(f *excelize.File, st *styles, rd *domain.ReportData) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: sheetSummary, row: 1}

	w.set(1, "Summary", st.title)
	w.next()
	w.next()

	s := layout.BuildSummary(rd)

	// Income and expense columns side by side, then the totals block.
	writeSummaryColumn(w, 1, s.Income, st, true)
	writeSummaryColumn(w, 4, s.Expense, st, false)

	longest := len(s.Income)
	if len(s.Expense) > longest {
		longest = len(s.Expense)
	}
	w.row += longest + 1

	for _, line := range s.Totals {
		style := st.balance
		labelStyle := 0
		if line.Bold {
			style = st.subtotalAmount
			labelStyle = st.subtotalLabel
		}
		w.set(1+line.Indent, line.Label, labelStyle)
		w.amount(3, line.Amount, style)
		w.next()
	}

	// Account balances, when a running-balance basis existed.
	if len(rd.AccountBalances) > 0 {
		w.next()
		w.set(1, "Account Balances", st.header)
		w.next()
		w.set(1, "Account", st.header)
		w.set(2, "Starting", st.header)
		w.set(3, "Ending", st.header)
		w.next()
		for _, ab := range rd.AccountBalances {
			starting, ending := ab.StartingBalance, ab.EndingBalance
			w.set(1, ab.AccountName, 0)
			w.amount(2, &starting, st.balance)
			w.amount(3, &ending, st.balance)
			w.next()
		}
	}

	if w.err != nil {
		return w.err
	}
	return f.SetColWidth(sheetSummary, "A", "F", 20)
}

// writeSummaryColumn writes one category column starting at the writer's
// current row without advancing it.
func writeSummaryColumn(w *sheetWriter, col int, lines []layout.SummaryLine, st *styles, income bool) {
	row := w.row
	for i, line := range lines {
		w.row = row + i
		labelStyle := 0
		if line.Bold {
			labelStyle = st.header
		}
		w.set(col+min(line.Indent, 1), line.Label, labelStyle)
		w.amount(col+2, line.Amount, amountStyle(st, income))
	}
	w.row = row
}

func writeBudget(f *excelize.File, st *styles, b layout.Budget) error {
	if _, err := f.NewSheet(sheetBudget); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: sheetBudget, row: 1}

	w.set(1, "Budget vs Actual: "+b.Name, st.title)
	w.next()
	w.next()

	headers := []string{"Category", "Income Budgeted", "Income Actual", "Expense Budgeted", "Expense Actual", "Net Budgeted", "Net Actual"}
	for i, h := range headers {
		w.set(i+1, h, st.header)
	}
	w.next()

	for _, line := range b.Combined {
		incomeBudgeted, incomeActual := line.IncomeBudgeted, line.IncomeActual
		expenseBudgeted, expenseActual := line.ExpenseBudgeted, line.ExpenseActual
		netBudgeted, netActual := line.NetBudgeted, line.NetActual
		w.set(1, line.CategoryName, 0)
		w.amount(2, &incomeBudgeted, st.income)
		w.amount(3, &incomeActual, st.income)
		w.amount(4, &expenseBudgeted, st.expense)
		w.amount(5, &expenseActual, st.expense)
		w.amount(6, &netBudgeted, st.balance)
		w.amount(7, &netActual, st.balance)
		w.next()
	}
	combinedBudgeted, combinedActual := b.CombinedNetBudgeted, b.CombinedNetActual
	w.set(1, "Combined Subtotal", st.subtotalLabel)
	w.amount(6, &combinedBudgeted, st.subtotalAmount)
	w.amount(7, &combinedActual, st.subtotalAmount)
	w.next()
	w.next()

	for _, line := range b.UnmatchedIncome {
		budgeted, actual := line.Budgeted, line.Actual
		w.set(1, line.CategoryName, 0)
		w.amount(2, &budgeted, st.income)
		w.amount(3, &actual, st.income)
		w.next()
	}
	incomeBudgeted, incomeActual := b.IncomeBudgetedSubtotal, b.IncomeActualSubtotal
	w.set(1, "Income Subtotal", st.subtotalLabel)
	w.amount(2, &incomeBudgeted, st.subtotalAmount)
	w.amount(3, &incomeActual, st.subtotalAmount)
	w.next()
	w.next()

	for _, line := range b.UnmatchedExpense {
		budgeted, actual := line.Budgeted, line.Actual
		w.set(1, line.CategoryName, 0)
		w.amount(4, &budgeted, st.expense)
		w.amount(5, &actual, st.expense)
		w.next()
	}
	expenseBudgeted, expenseActual := b.ExpenseBudgetedSubtotal, b.ExpenseActualSubtotal
	w.set(1, "Expense Subtotal", st.subtotalLabel)
	w.amount(4, &expenseBudgeted, st.subtotalAmount)
	w.amount(5, &expenseActual, st.subtotalAmount)
	w.next()
	w.next()

	netBudgeted, netActual := b.TotalNetBudgeted, b.TotalNetActual
	w.set(1, "Net", st.subtotalLabel)
	w.amount(6, &netBudgeted, st.subtotalAmount)
	w.amount(7, &netActual, st.subtotalAmount)
	w.next()

	if w.err != nil {
		return w.err
	}
	return f.SetColWidth(sheetBudget, "A", "G", 18)
}

func writeSeasons(f *excelize.File, st *styles, sd *domain.SeasonReportData) error {
	if _, err := f.NewSheet(sheetSeasons); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: sheetSeasons, row: 1}

	w.set(1, "Season: "+sd.SeasonName, st.title)
	w.next()
	w.next()

	for i, h := range []string{"Participant", "Fee", "Paid", "Status"} {
		w.set(i+1, h, st.header)
	}
	w.next()

	for _, e := range sd.Enrollments {
		fee, paid := e.Fee, e.Paid
		w.set(1, e.ParticipantName, 0)
		w.amount(2, &fee, st.balance)
		w.amount(3, &paid, st.balance)
		w.set(4, string(e.Status), 0)
		w.next()
	}

	totalFees, totalPaid := sd.TotalFees, sd.TotalPaid
	w.set(1, "Total", st.subtotalLabel)
	w.amount(2, &totalFees, st.subtotalAmount)
	w.amount(3, &totalPaid, st.subtotalAmount)

	if w.err != nil {
		return w.err
	}
	return f.SetColWidth(sheetSeasons, "A", "D", 18)
}
