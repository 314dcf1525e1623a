// Package ledger provides read-only access to the bookkeeping database.
// Amounts are stored as decimal strings and stay decimal until the adapter
// layer converts them to integer cents.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/models/store"
)

// Store exposes the ledger reads the report generator needs. Transactions
// returns rows ordered by date then creation time ascending.
type Store interface {
	Organization(ctx context.Context, id string) (*store.OrganizationRow, error)
	Accounts(ctx context.Context, orgID string) ([]store.AccountRow, error)
	Transactions(ctx context.Context, orgID string, filter store.TransactionFilter) ([]store.TransactionRow, error)
	Budget(ctx context.Context, orgID, budgetID string) (*store.BudgetRow, error)
	CurrentSeason(ctx context.Context, orgID string) (*store.SeasonRow, error)
}

type ledgerStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &ledgerStore{db: db}, nil
}

func (l *ledgerStore) Organization(ctx context.Context, id string) (*store.OrganizationRow, error) {
	query := `
		SELECT id, name, fiscal_year_start_month, seasons_enabled
		FROM organizations
		WHERE id = ?
	`
	var row store.OrganizationRow
	err := l.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.FiscalYearStartMonth, &row.SeasonsEnabled,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "organization", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("query organization: %w", err)
	}
	return &row, nil
}

func (l *ledgerStore) Accounts(ctx context.Context, orgID string) ([]store.AccountRow, error) {
	query := `
		SELECT id, name, opening_balance
		FROM accounts
		WHERE org_id = ?
		ORDER BY name ASC
	`
	rows, err := l.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]store.AccountRow, 0)
	for rows.Next() {
		var (
			row     store.AccountRow
			opening sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.Name, &opening); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if opening.Valid {
			d, err := decimal.NewFromString(opening.String)
			if err != nil {
				return nil, fmt.Errorf("parse opening balance for account %s: %w", row.ID, err)
			}
			row.OpeningBalance = &d
		}
		accounts = append(accounts, row)
	}
	return accounts, rows.Err()
}

// Transactions applies the cleared-date window policy: uncleared rows are
// always included, cleared and reconciled rows only when their cleared date
// falls inside the range.
func (l *ledgerStore) Transactions(ctx context.Context, orgID string, filter store.TransactionFilter) ([]store.TransactionRow, error) {
	query := `
		SELECT id, date, created_at, type, status, amount,
		       account_id, account_name, check_number, vendor, description, cleared_at
		FROM transactions
		WHERE org_id = ?
		  AND (status = 'uncleared' OR (cleared_at >= ? AND cleared_at <= ?))
	`
	args := []interface{}{orgID, filter.Start, filter.End}

	if len(filter.AccountIDs) > 0 {
		query += fmt.Sprintf(" AND account_id IN (%s)", placeholders(len(filter.AccountIDs)))
		args = append(args, toInterfaceSlice(filter.AccountIDs)...)
	}
	if len(filter.Statuses) > 0 {
		query += fmt.Sprintf(" AND status IN (%s)", placeholders(len(filter.Statuses)))
		args = append(args, toInterfaceSlice(filter.Statuses)...)
	}
	if len(filter.Categories) > 0 {
		ph := placeholders(len(filter.Categories))
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM line_items li
			WHERE li.transaction_id = transactions.id
			  AND (li.category IN (%s) OR li.parent_category IN (%s))
		)`, ph, ph)
		args = append(args, toInterfaceSlice(filter.Categories)...)
		args = append(args, toInterfaceSlice(filter.Categories)...)
	}

	query += " ORDER BY date ASC, created_at ASC"

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, err
	}
	if err := l.attachLineItems(ctx, txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func scanTransactionRows(rows *sql.Rows) ([]store.TransactionRow, error) {
	txns := make([]store.TransactionRow, 0)
	for rows.Next() {
		var (
			row       store.TransactionRow
			amount    string
			clearedAt sql.NullTime
		)
		if err := rows.Scan(
			&row.ID, &row.Date, &row.CreatedAt, &row.Type, &row.Status, &amount,
			&row.AccountID, &row.AccountName, &row.CheckNumber, &row.Vendor,
			&row.Description, &clearedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount for transaction %s: %w", row.ID, err)
		}
		row.Amount = d
		if clearedAt.Valid {
			t := clearedAt.Time
			row.ClearedAt = &t
		}
		txns = append(txns, row)
	}
	return txns, rows.Err()
}

func (l *ledgerStore) attachLineItems(ctx context.Context, txns []store.TransactionRow) error {
	if len(txns) == 0 {
		return nil
	}

	ids := make([]string, 0, len(txns))
	index := make(map[string]int, len(txns))
	for i, t := range txns {
		ids = append(ids, t.ID)
		index[t.ID] = i
	}

	query := fmt.Sprintf(`
		SELECT transaction_id, parent_category, category, amount, memo
		FROM line_items
		WHERE transaction_id IN (%s)
		ORDER BY transaction_id ASC, position ASC
	`, placeholders(len(ids)))

	rows, err := l.db.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return fmt.Errorf("query line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			txnID  string
			item   store.LineItemRow
			amount string
		)
		if err := rows.Scan(&txnID, &item.ParentCategory, &item.Category, &amount, &item.Memo); err != nil {
			return fmt.Errorf("scan line item: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("parse line item amount for transaction %s: %w", txnID, err)
		}
		item.Amount = d

		i, ok := index[txnID]
		if !ok {
			continue
		}
		txns[i].LineItems = append(txns[i].LineItems, item)
	}
	return rows.Err()
}

func (l *ledgerStore) Budget(ctx context.Context, orgID, budgetID string) (*store.BudgetRow, error) {
	query := `
		SELECT id, name
		FROM budgets
		WHERE org_id = ? AND id = ?
	`
	var row store.BudgetRow
	err := l.db.QueryRowContext(ctx, query, orgID, budgetID).Scan(&row.ID, &row.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "budget", ID: budgetID}
	}
	if err != nil {
		return nil, fmt.Errorf("query budget: %w", err)
	}

	linesQuery := `
		SELECT parent_category, category, type, amount, notes
		FROM budget_lines
		WHERE budget_id = ?
		ORDER BY position ASC
	`
	rows, err := l.db.QueryContext(ctx, linesQuery, row.ID)
	if err != nil {
		return nil, fmt.Errorf("query budget lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line   store.BudgetLineRow
			amount string
		)
		if err := rows.Scan(&line.ParentCategory, &line.Category, &line.Type, &amount, &line.Notes); err != nil {
			return nil, fmt.Errorf("scan budget line: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse budget line amount: %w", err)
		}
		line.Amount = d
		row.Lines = append(row.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &row, nil
}

func (l *ledgerStore) CurrentSeason(ctx context.Context, orgID string) (*store.SeasonRow, error) {
	query := `
		SELECT id, name
		FROM seasons
		WHERE org_id = ? AND active = TRUE
		LIMIT 1
	`
	var row store.SeasonRow
	err := l.db.QueryRowContext(ctx, query, orgID).Scan(&row.ID, &row.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "season", ID: orgID}
	}
	if err != nil {
		return nil, fmt.Errorf("query season: %w", err)
	}

	enrollQuery := `
		SELECT participant_name, fee, paid
		FROM enrollments
		WHERE season_id = ?
		ORDER BY participant_name ASC
	`
	rows, err := l.db.QueryContext(ctx, enrollQuery, row.ID)
	if err != nil {
		return nil, fmt.Errorf("query enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e         store.EnrollmentRow
			fee, paid string
		)
		if err := rows.Scan(&e.ParticipantName, &fee, &paid); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		if e.Fee, err = decimal.NewFromString(fee); err != nil {
			return nil, fmt.Errorf("parse enrollment fee: %w", err)
		}
		if e.Paid, err = decimal.NewFromString(paid); err != nil {
			return nil, fmt.Errorf("parse enrollment paid: %w", err)
		}
		row.Enrollments = append(row.Enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &row, nil
}

func placeholders(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += "?"
	}
	return out
}

func toInterfaceSlice(ss []string) []interface{} {
	res := make([]interface{}, len(ss))
	for i, s := range ss {
		res[i] = s
	}
	return res
}
