// Package pdf renders the canonical report model into a PDF document.
// Grouping comes from pkg/export/layout so the output mirrors the
// spreadsheet exporter row for row.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dswhitely1/donthetreasurer/pkg/export/layout"
	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
)

var (
	incomeColor  = &props.Color{Red: 31, Green: 122, Blue: 31}
	expenseColor = &props.Color{Red: 176, Green: 0, Blue: 32}
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the document bytes. Budget and season data are optional;
// their pages are omitted when nil.
func (r *Renderer) Render(rd *domain.ReportData, bd *domain.BudgetReportData, sd *domain.SeasonReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		WithBottomMargin(10).
		Build()

	m := maroto.New(cfg)

	addReportHeader(m, rd)
	addTransactionTable(m, rd)
	addSummary(m, rd)
	if bd != nil {
		addBudget(m, layout.BuildBudget(bd))
	}
	if sd != nil {
		addSeasons(m, sd)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func addReportHeader(m core.Maroto, rd *domain.ReportData) {
	m.AddRow(10,
		text.NewCol(12, rd.OrganizationName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	subtitle := fmt.Sprintf("Transactions %s to %s",
		rd.StartDate.Format("2006-01-02"), rd.EndDate.Format("2006-01-02"))
	if rd.FiscalYearLabel != "" {
		subtitle += " (" + rd.FiscalYearLabel + ")"
	}
	m.AddRow(8,
		text.NewCol(12, subtitle, props.Text{
			Size:  11,
			Align: align.Center,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, "Generated "+rd.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
			Size:  8,
			Align: align.Center,
		}),
	)
	m.AddRow(3)
}

func addTransactionTable(m core.Maroto, rd *domain.ReportData) {
	addColumnHeaders(m)
	m.AddRow(2, line.NewCol(12))

	for _, r := range layout.TransactionRows(rd) {
		switch r.Kind {
		case layout.KindAccountHeader:
			m.AddRow(8,
				text.NewCol(12, r.Label, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Top:   2,
				}),
			)
		case layout.KindStatusHeader:
			m.AddRow(6,
				text.NewCol(12, r.Label, props.Text{
					Size:  9,
					Style: fontstyle.BoldItalic,
					Left:  2,
				}),
			)
		case layout.KindPlaceholder:
			m.AddRow(8,
				text.NewCol(12, r.Label, props.Text{
					Size:  10,
					Style: fontstyle.Italic,
					Align: align.Center,
				}),
			)
		case layout.KindData:
			addDataRow(m, r)
		case layout.KindStatusSubtotal, layout.KindAccountSubtotal:
			addSubtotalRow(m, r, 9)
		case layout.KindGrandTotal:
			m.AddRow(2, line.NewCol(12))
			addSubtotalRow(m, r, 11)
		}
	}
}

func addColumnHeaders(m core.Maroto) {
	header := func(width int, label string, a align.Type) core.Col {
		return text.NewCol(width, label, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: a,
		})
	}
	m.AddRow(7,
		header(1, "Date", align.Left),
		header(1, "Check #", align.Left),
		header(2, "Vendor", align.Left),
		header(2, "Description", align.Left),
		header(2, "Category", align.Left),
		header(1, "Memo", align.Left),
		header(1, "Status", align.Left),
		header(1, "Amount", align.Right),
		header(1, "Balance", align.Right),
	)
}

func addDataRow(m core.Maroto, r layout.TransactionRow) {
	cell := func(width int, v string) core.Col {
		return text.NewCol(width, v, props.Text{Size: 8})
	}

	amount := ""
	if r.Amount != nil {
		amount = layout.FormatCents(*r.Amount)
	}
	running := ""
	if r.Running != nil {
		running = layout.FormatCents(*r.Running)
	}

	m.AddRow(6,
		cell(1, r.Date),
		cell(1, r.CheckNumber),
		cell(2, r.Vendor),
		cell(2, r.Description),
		cell(2, r.Category),
		cell(1, r.Memo),
		cell(1, r.Status),
		text.NewCol(1, amount, props.Text{
			Size:  8,
			Align: align.Right,
			Color: amountColor(r.Income),
		}),
		text.NewCol(1, running, props.Text{
			Size:  8,
			Align: align.Right,
		}),
	)
}

func addSubtotalRow(m core.Maroto, r layout.TransactionRow, size float64) {
	amount := ""
	if r.Amount != nil {
		amount = layout.FormatCents(*r.Amount)
	}
	m.AddRow(7,
		text.NewCol(10, r.Label, props.Text{
			Size:  size,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
		text.NewCol(1, amount, props.Text{
			Size:  size,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
		text.NewCol(1, ""),
	)
}

func amountColor(income bool) *props.Color {
	if income {
		return incomeColor
	}
	return expenseColor
}

func addSummary(m core.Maroto, rd *domain.ReportData) {
	s := layout.BuildSummary(rd)

	summaryPage := page.New()
	summaryPage.Add(
		text.NewRow(10, "Summary", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	// Income and expense category columns side by side.
	count := len(s.Income)
	if len(s.Expense) > count {
		count = len(s.Expense)
	}
	for i := 0; i < count; i++ {
		var cols []core.Col
		cols = append(cols, summaryColumnCols(s.Income, i, true)...)
		cols = append(cols, summaryColumnCols(s.Expense, i, false)...)
		summaryPage.Add(row.New(6).Add(cols...))
	}

	summaryPage.Add(row.New(2).Add(line.NewCol(12)))

	for _, l := range s.Totals {
		style := fontstyle.Normal
		if l.Bold {
			style = fontstyle.Bold
		}
		amount := ""
		if l.Amount != nil {
			amount = layout.FormatCents(*l.Amount)
		}
		summaryPage.Add(row.New(6).Add(
			text.NewCol(4, l.Label, props.Text{
				Size:  10,
				Style: style,
				Left:  float64(l.Indent) * 4,
			}),
			text.NewCol(2, amount, props.Text{
				Size:  10,
				Style: style,
				Align: align.Right,
			}),
			text.NewCol(6, ""),
		))
	}

	if len(rd.AccountBalances) > 0 {
		summaryPage.Add(
			text.NewRow(8, "Account Balances", props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Top:   2,
			}),
			row.New(6).Add(
				text.NewCol(4, "Account", props.Text{Size: 9, Style: fontstyle.Bold}),
				text.NewCol(2, "Starting", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
				text.NewCol(2, "Ending", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
				text.NewCol(4, ""),
			),
		)
		for _, ab := range rd.AccountBalances {
			summaryPage.Add(row.New(6).Add(
				text.NewCol(4, ab.AccountName, props.Text{Size: 9}),
				text.NewCol(2, layout.FormatCents(ab.StartingBalance), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, layout.FormatCents(ab.EndingBalance), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(4, ""),
			))
		}
	}

	m.AddPages(summaryPage)
}

// summaryColumnCols renders line i of one category column into half the
// grid, or blank filler past the column's end.
func summaryColumnCols(lines []layout.SummaryLine, i int, income bool) []core.Col {
	if i >= len(lines) {
		return []core.Col{text.NewCol(6, "")}
	}
	l := lines[i]
	style := fontstyle.Normal
	if l.Bold {
		style = fontstyle.Bold
	}
	amount := ""
	if l.Amount != nil {
		amount = layout.FormatCents(*l.Amount)
	}
	return []core.Col{
		text.NewCol(4, l.Label, props.Text{
			Size:  9,
			Style: style,
			Left:  float64(l.Indent) * 4,
		}),
		text.NewCol(2, amount, props.Text{
			Size:  9,
			Align: align.Right,
			Color: amountColor(income),
		}),
	}
}

// Budget grid: category name (4) plus six amount columns (1,1,1,1,2,2).
// Every row fills all seven slots so the columns line up.
func addBudget(m core.Maroto, b layout.Budget) {
	budgetPage := page.New()
	budgetPage.Add(
		text.NewRow(10, "Budget vs Actual: "+b.Name, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
		row.New(7).Add(
			text.NewCol(4, "Category", props.Text{Size: 9, Style: fontstyle.Bold}),
			budgetHeaderCol(1, "Inc Bud"),
			budgetHeaderCol(1, "Inc Act"),
			budgetHeaderCol(1, "Exp Bud"),
			budgetHeaderCol(1, "Exp Act"),
			budgetHeaderCol(2, "Net Budgeted"),
			budgetHeaderCol(2, "Net Actual"),
		),
		row.New(2).Add(line.NewCol(12)),
	)

	for _, l := range b.Combined {
		budgetPage.Add(budgetLine(l.CategoryName, false,
			amt(l.IncomeBudgeted), amt(l.IncomeActual),
			amt(l.ExpenseBudgeted), amt(l.ExpenseActual),
			amt(l.NetBudgeted), amt(l.NetActual)))
	}
	budgetPage.Add(budgetLine("Combined Subtotal", true,
		"", "", "", "", amt(b.CombinedNetBudgeted), amt(b.CombinedNetActual)))

	for _, l := range b.UnmatchedIncome {
		budgetPage.Add(budgetLine(l.CategoryName, false,
			amt(l.Budgeted), amt(l.Actual), "", "", "", ""))
	}
	budgetPage.Add(budgetLine("Income Subtotal", true,
		amt(b.IncomeBudgetedSubtotal), amt(b.IncomeActualSubtotal), "", "", "", ""))

	for _, l := range b.UnmatchedExpense {
		budgetPage.Add(budgetLine(l.CategoryName, false,
			"", "", amt(l.Budgeted), amt(l.Actual), "", ""))
	}
	budgetPage.Add(budgetLine("Expense Subtotal", true,
		"", "", amt(b.ExpenseBudgetedSubtotal), amt(b.ExpenseActualSubtotal), "", ""))

	budgetPage.Add(
		row.New(2).Add(line.NewCol(12)),
		budgetLine("Net", true,
			"", "", "", "", amt(b.TotalNetBudgeted), amt(b.TotalNetActual)),
	)

	m.AddPages(budgetPage)
}

func amt(c domain.Cents) string {
	return layout.FormatCents(c)
}

func budgetHeaderCol(width int, label string) core.Col {
	return text.NewCol(width, label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})
}

func budgetLine(name string, bold bool, incB, incA, expB, expA, netB, netA string) core.Row {
	size := 8.0
	style := fontstyle.Normal
	if bold {
		size = 9
		style = fontstyle.Bold
	}
	cell := func(width int, v string) core.Col {
		return text.NewCol(width, v, props.Text{
			Size:  size,
			Style: style,
			Align: align.Right,
		})
	}
	return row.New(6).Add(
		text.NewCol(4, name, props.Text{Size: size, Style: style}),
		cell(1, incB),
		cell(1, incA),
		cell(1, expB),
		cell(1, expA),
		cell(2, netB),
		cell(2, netA),
	)
}

func addSeasons(m core.Maroto, sd *domain.SeasonReportData) {
	seasonPage := page.New()
	seasonPage.Add(
		text.NewRow(10, "Season: "+sd.SeasonName, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
		row.New(7).Add(
			text.NewCol(4, "Participant", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(2, "Fee", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Paid", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Status", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(2, ""),
		),
		row.New(2).Add(line.NewCol(12)),
	)

	for _, e := range sd.Enrollments {
		seasonPage.Add(row.New(6).Add(
			text.NewCol(4, e.ParticipantName, props.Text{Size: 9}),
			text.NewCol(2, layout.FormatCents(e.Fee), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, layout.FormatCents(e.Paid), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, string(e.Status), props.Text{Size: 9}),
			text.NewCol(2, ""),
		))
	}

	seasonPage.Add(row.New(7).Add(
		text.NewCol(4, "Total", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, layout.FormatCents(sd.TotalFees), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, layout.FormatCents(sd.TotalPaid), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(4, ""),
	))

	m.AddPages(seasonPage)
}
