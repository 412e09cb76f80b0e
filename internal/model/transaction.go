package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single signed money entry.
type Transaction struct {
	ID        string
	Name      string
	Amount    decimal.Decimal // negative = expense, positive = income, never zero
	Category  string
	CreatedAt time.Time // only used to derive the month key
}

// IsIncome reports whether the transaction adds money.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the transaction spends money.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
