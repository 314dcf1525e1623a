// Package balance computes account-level aggregates over transaction sets.
// Everything here is pure computation on integer cents; callers own
// fetching and ordering.
package balance

import (
	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
	"github.com/dswhitely1/donthetreasurer/pkg/services/money"
)

// AccountBalances aggregates per-account totals. Accounts with no
// transactions still appear with their opening balance; transactions
// referencing unknown accounts are skipped.
func AccountBalances(accounts []domain.Account, txns []domain.Transaction) []domain.AccountSummary {
	byAccount := make(map[string][]domain.Transaction, len(accounts))
	known := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
	}
	for _, t := range txns {
		if known[t.AccountID] {
			byAccount[t.AccountID] = append(byAccount[t.AccountID], t)
		}
	}

	summaries := make([]domain.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		var opening domain.Cents
		if a.OpeningBalance != nil {
			opening = *a.OpeningBalance
		}

		accountTxns := byAccount[a.ID]
		summary := domain.AccountSummary{
			Account:        a,
			CurrentBalance: opening,
			StatusNet:      money.StatusNet(accountTxns),
		}
		for _, t := range accountTxns {
			summary.CurrentBalance += money.Signed(t)
			if t.Type == domain.TypeIncome {
				summary.TotalIncome += t.Amount
			} else {
				summary.TotalExpense += t.Amount
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Reconciled returns the opening balance plus the signed sum of reconciled
// transactions only. Uncleared and cleared transactions never move it;
// this seeds a new reconciliation session's starting balance.
func Reconciled(opening domain.Cents, txns []domain.Transaction) domain.Cents {
	balance := opening
	for _, t := range txns {
		if t.Status == domain.StatusReconciled {
			balance += money.Signed(t)
		}
	}
	return balance
}

// Running accumulates a sequential balance across ordered transactions and
// returns the balance after each one, keyed by transaction id. The slice
// order is the accumulation order; callers must pre-sort (transaction date
// then creation time ascending for ledger reports). No sorting happens here.
func Running(opening domain.Cents, ordered []domain.Transaction) map[string]domain.Cents {
	balances := make(map[string]domain.Cents, len(ordered))
	balance := opening
	for _, t := range ordered {
		balance += money.Signed(t)
		balances[t.ID] = balance
	}
	return balances
}
