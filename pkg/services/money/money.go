// Package money holds the exact-arithmetic primitives the report engine is
// built on. Everything operates on integer cents; binary floating point is
// never compared directly.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
)

// CentsFromDecimal rounds a decimal amount to cents. This is the only place
// a decimal value becomes engine money.
func CentsFromDecimal(d decimal.Decimal) domain.Cents {
	return domain.Cents(d.Shift(2).Round(0).IntPart())
}

// Signed returns the transaction amount with its direction applied:
// positive for income, negative for expense.
func Signed(t domain.Transaction) domain.Cents {
	if t.Type == domain.TypeExpense {
		return -t.Amount
	}
	return t.Amount
}

// StatusNet sums signed amounts per status. Every known status appears in
// the result, zero when absent from the input.
func StatusNet(txns []domain.Transaction) map[domain.TransactionStatus]domain.Cents {
	net := map[domain.TransactionStatus]domain.Cents{
		domain.StatusUncleared:  0,
		domain.StatusCleared:    0,
		domain.StatusReconciled: 0,
	}
	for _, t := range txns {
		net[t.Status] += Signed(t)
	}
	return net
}

// PaymentStatus classifies how much of a season fee has been paid.
// A zero fee is always paid, regardless of payments.
func PaymentStatus(fee, paid domain.Cents) domain.PaymentStatus {
	switch {
	case fee == 0:
		return domain.PaymentPaid
	case paid == 0:
		return domain.PaymentUnpaid
	case paid < fee:
		return domain.PaymentPartial
	case paid == fee:
		return domain.PaymentPaid
	default:
		return domain.PaymentOverpaid
	}
}
