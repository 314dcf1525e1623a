package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/models/store"
)

type fixture struct {
	mock  sqlmock.Sqlmock
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return &fixture{mock: mock, store: s}
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestOrganization(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, name, fiscal_year_start_month, seasons_enabled").
			WithArgs("org1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fiscal_year_start_month", "seasons_enabled"}).
				AddRow("org1", "Lakeside Band Boosters", 7, true))

		row, err := f.store.Organization(ctx, "org1")

		require.NoError(t, err)
		assert.Equal(t, "Lakeside Band Boosters", row.Name)
		assert.Equal(t, 7, row.FiscalYearStartMonth)
		assert.True(t, row.SeasonsEnabled)
	})

	t.Run("not found", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, name, fiscal_year_start_month, seasons_enabled").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fiscal_year_start_month", "seasons_enabled"}))

		_, err := f.store.Organization(ctx, "missing")

		var nfe *domain.NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, "organization", nfe.Entity)
	})
}

func TestAccounts(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.mock.ExpectQuery("SELECT id, name, opening_balance").
		WithArgs("org1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "opening_balance"}).
			AddRow("a1", "Cash Box", nil).
			AddRow("a2", "Checking", "1000.00"))

	accounts, err := f.store.Accounts(ctx, "org1")

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Nil(t, accounts[0].OpeningBalance)
	require.NotNil(t, accounts[1].OpeningBalance)
	assert.True(t, accounts[1].OpeningBalance.Equal(decimal.NewFromInt(1000)))
}

func TestTransactions(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	cleared := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)

	txnCols := []string{
		"id", "date", "created_at", "type", "status", "amount",
		"account_id", "account_name", "check_number", "vendor", "description", "cleared_at",
	}

	t.Run("rows with line items", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, date, created_at, type, status, amount").
			WithArgs("org1", start, end).
			WillReturnRows(sqlmock.NewRows(txnCols).
				AddRow("t1", start.AddDate(0, 0, 4), start, "income", "cleared", "500.00",
					"a2", "Checking", "", "", "Gala tickets", cleared).
				AddRow("t2", start.AddDate(0, 0, 9), start, "expense", "uncleared", "120.00",
					"a2", "Checking", "1041", "Catering Co", "Gala catering", nil))

		f.mock.ExpectQuery("SELECT transaction_id, parent_category, category, amount, memo").
			WithArgs("t1", "t2").
			WillReturnRows(sqlmock.NewRows([]string{"transaction_id", "parent_category", "category", "amount", "memo"}).
				AddRow("t1", "Events", "Spring Gala", "500.00", "").
				AddRow("t2", "Events", "Spring Gala", "90.00", "food").
				AddRow("t2", "Events", "Supplies", "30.00", "napkins"))

		txns, err := f.store.Transactions(ctx, "org1", store.TransactionFilter{Start: start, End: end})

		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.True(t, txns[0].Amount.Equal(decimal.NewFromInt(500)))
		require.NotNil(t, txns[0].ClearedAt)
		assert.Equal(t, cleared, *txns[0].ClearedAt)
		assert.Nil(t, txns[1].ClearedAt)
		require.Len(t, txns[1].LineItems, 2)
		assert.Equal(t, "Supplies", txns[1].LineItems[1].Category)
		assert.Equal(t, "1041", txns[1].CheckNumber)
	})

	t.Run("empty result skips line item query", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, date, created_at, type, status, amount").
			WithArgs("org1", start, end).
			WillReturnRows(sqlmock.NewRows(txnCols))

		txns, err := f.store.Transactions(ctx, "org1", store.TransactionFilter{Start: start, End: end})

		require.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("filters expand into placeholders", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, date, created_at, type, status, amount").
			WithArgs("org1", start, end, "a2", "cleared", "reconciled", "Events", "Events").
			WillReturnRows(sqlmock.NewRows(txnCols))

		_, err := f.store.Transactions(ctx, "org1", store.TransactionFilter{
			Start:      start,
			End:        end,
			AccountIDs: []string{"a2"},
			Statuses:   []string{"cleared", "reconciled"},
			Categories: []string{"Events"},
		})

		require.NoError(t, err)
	})
}

func TestBudget(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, name\\s+FROM budgets").
			WithArgs("org1", "b1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("b1", "FY 2026 Budget"))

		f.mock.ExpectQuery("SELECT parent_category, category, type, amount, notes").
			WithArgs("b1").
			WillReturnRows(sqlmock.NewRows([]string{"parent_category", "category", "type", "amount", "notes"}).
				AddRow("Events", "Spring Gala", "income", "5000.00", "").
				AddRow("", "Rent", "expense", "600.00", "storage unit"))

		row, err := f.store.Budget(ctx, "org1", "b1")

		require.NoError(t, err)
		assert.Equal(t, "FY 2026 Budget", row.Name)
		require.Len(t, row.Lines, 2)
		assert.True(t, row.Lines[0].Amount.Equal(decimal.NewFromInt(5000)))
		assert.Equal(t, "expense", row.Lines[1].Type)
	})

	t.Run("not found", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, name\\s+FROM budgets").
			WithArgs("org1", "missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := f.store.Budget(ctx, "org1", "missing")

		var nfe *domain.NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, "budget", nfe.Entity)
	})
}

func TestCurrentSeason(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, name\\s+FROM seasons").
			WithArgs("org1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("s1", "Spring 2026"))

		f.mock.ExpectQuery("SELECT participant_name, fee, paid").
			WithArgs("s1").
			WillReturnRows(sqlmock.NewRows([]string{"participant_name", "fee", "paid"}).
				AddRow("Alex Rivera", "150.00", "150.00").
				AddRow("Sam Okafor", "150.00", "50.00"))

		row, err := f.store.CurrentSeason(ctx, "org1")

		require.NoError(t, err)
		assert.Equal(t, "Spring 2026", row.Name)
		require.Len(t, row.Enrollments, 2)
		assert.True(t, row.Enrollments[1].Paid.Equal(decimal.NewFromInt(50)))
	})

	t.Run("no active season", func(t *testing.T) {
		f.mock.ExpectQuery("SELECT id, name\\s+FROM seasons").
			WithArgs("org1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := f.store.CurrentSeason(ctx, "org1")

		var nfe *domain.NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, "season", nfe.Entity)
	})
}
