package ledger

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const organizationsSchema = `
	CREATE TABLE IF NOT EXISTS organizations (
		id VARCHAR NOT NULL PRIMARY KEY,
		name VARCHAR NOT NULL,
		fiscal_year_start_month INTEGER NOT NULL DEFAULT 1,
		seasons_enabled BOOLEAN NOT NULL DEFAULT FALSE
	);
`

const accountsSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id VARCHAR NOT NULL PRIMARY KEY,
		org_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		opening_balance VARCHAR NULL
	);
`

const transactionsSchema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id VARCHAR NOT NULL PRIMARY KEY,
		org_id VARCHAR NOT NULL,
		account_id VARCHAR NOT NULL,
		account_name VARCHAR NOT NULL,
		date TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		type VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		amount VARCHAR NOT NULL,
		check_number VARCHAR NOT NULL DEFAULT '',
		vendor VARCHAR NOT NULL DEFAULT '',
		description VARCHAR NOT NULL DEFAULT '',
		cleared_at TIMESTAMP NULL
	);
`

const lineItemsSchema = `
	CREATE TABLE IF NOT EXISTS line_items (
		transaction_id VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		parent_category VARCHAR NOT NULL DEFAULT '',
		category VARCHAR NOT NULL,
		amount VARCHAR NOT NULL,
		memo VARCHAR NOT NULL DEFAULT '',
		PRIMARY KEY (transaction_id, position)
	);
`

const budgetsSchema = `
	CREATE TABLE IF NOT EXISTS budgets (
		id VARCHAR NOT NULL PRIMARY KEY,
		org_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL
	);
`

const budgetLinesSchema = `
	CREATE TABLE IF NOT EXISTS budget_lines (
		budget_id VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		parent_category VARCHAR NOT NULL DEFAULT '',
		category VARCHAR NOT NULL,
		type VARCHAR NOT NULL,
		amount VARCHAR NOT NULL,
		notes VARCHAR NOT NULL DEFAULT '',
		PRIMARY KEY (budget_id, position)
	);
`

const seasonsSchema = `
	CREATE TABLE IF NOT EXISTS seasons (
		id VARCHAR NOT NULL PRIMARY KEY,
		org_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		active BOOLEAN NOT NULL DEFAULT FALSE
	);
`

const enrollmentsSchema = `
	CREATE TABLE IF NOT EXISTS enrollments (
		season_id VARCHAR NOT NULL,
		participant_name VARCHAR NOT NULL,
		fee VARCHAR NOT NULL,
		paid VARCHAR NOT NULL DEFAULT '0'
	);
`

var bootQueries = []string{
	organizationsSchema,
	accountsSchema,
	transactionsSchema,
	lineItemsSchema,
	budgetsSchema,
	budgetLinesSchema,
	seasonsSchema,
	enrollmentsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return db, nil
}
