package adapters

import (
	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/models/store"
	"github.com/dswhitely1/donthetreasurer/pkg/services/money"
)

// categorySeparator joins a parent category and a child into one display
// label. Budget matching compares these labels byte-for-byte, so every
// label in the system must come through CategoryLabel.
const categorySeparator = " → "

func CategoryLabel(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + categorySeparator + child
}

func MapTransactionRowToDomain(row store.TransactionRow) domain.Transaction {
	txn := domain.Transaction{
		ID:          row.ID,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
		Type:        domain.TransactionType(row.Type),
		Amount:      money.CentsFromDecimal(row.Amount),
		Status:      domain.TransactionStatus(row.Status),
		AccountID:   row.AccountID,
		AccountName: row.AccountName,
		CheckNumber: row.CheckNumber,
		Vendor:      row.Vendor,
		Description: row.Description,
		ClearedAt:   row.ClearedAt,
	}
	for _, li := range row.LineItems {
		txn.LineItems = append(txn.LineItems, domain.LineItem{
			ParentCategory: li.ParentCategory,
			CategoryName:   li.Category,
			CategoryLabel:  CategoryLabel(li.ParentCategory, li.Category),
			Amount:         money.CentsFromDecimal(li.Amount),
			Memo:           li.Memo,
		})
	}
	return txn
}

func MapAccountRowToDomain(row store.AccountRow) domain.Account {
	account := domain.Account{
		ID:   row.ID,
		Name: row.Name,
	}
	if row.OpeningBalance != nil {
		opening := money.CentsFromDecimal(*row.OpeningBalance)
		account.OpeningBalance = &opening
	}
	return account
}

func MapOrganizationRowToDomain(row store.OrganizationRow) domain.Organization {
	return domain.Organization{
		ID:                   row.ID,
		Name:                 row.Name,
		FiscalYearStartMonth: row.FiscalYearStartMonth,
		SeasonsEnabled:       row.SeasonsEnabled,
	}
}

// MapBudgetLineRowToDomain produces a budget line with no actuals yet; the
// report generator fills in actuals from the report's category totals.
func MapBudgetLineRowToDomain(row store.BudgetLineRow) domain.BudgetReportLine {
	return domain.BudgetReportLine{
		CategoryName: CategoryLabel(row.ParentCategory, row.Category),
		CategoryType: domain.TransactionType(row.Type),
		Budgeted:     money.CentsFromDecimal(row.Amount),
	}
}

func MapSeasonRowToDomain(row store.SeasonRow) domain.SeasonReportData {
	data := domain.SeasonReportData{SeasonName: row.Name}
	for _, e := range row.Enrollments {
		fee := money.CentsFromDecimal(e.Fee)
		paid := money.CentsFromDecimal(e.Paid)
		data.Enrollments = append(data.Enrollments, domain.SeasonEnrollment{
			ParticipantName: e.ParticipantName,
			Fee:             fee,
			Paid:            paid,
			Status:          money.PaymentStatus(fee, paid),
		})
		data.TotalFees += fee
		data.TotalPaid += paid
	}
	return data
}
