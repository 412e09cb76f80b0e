// Package derive computes every display aggregate from a transaction list
// and a filter selection. All functions are pure: they never mutate their
// inputs and never return slices that alias them.
package derive

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neospend-dev/neospend/internal/id"
	"github.com/neospend-dev/neospend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// CategoryShare is one row of the expense breakdown.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal // absolute expense sum
	Percentage int64           // rounded share of total expense
}

// IncomeTotal sums all positive amounts.
func IncomeTotal(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsIncome() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// ExpenseTotal sums the absolute value of all negative amounts.
func ExpenseTotal(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() {
			total = total.Add(tx.Amount.Abs())
		}
	}
	return total
}

// BalanceTotal sums all signed amounts.
func BalanceTotal(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// ExpenseProgress returns the percentage of income consumed by expenses,
// clamped to [0, 100]. Without income any spending counts as 100.
func ExpenseProgress(income, expense decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		if expense.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	p := expense.Div(income).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// MonthKey returns the "YYYY-MM" key of t in t's own location.
func MonthKey(t time.Time) string {
	return id.FormatMonthKey(t.Year(), int(t.Month()))
}

// MonthOptions returns the distinct month keys present, most recent first.
func MonthOptions(txs []model.Transaction) []string {
	seen := make(map[string]bool)
	months := make([]string, 0)
	for _, tx := range txs {
		key := MonthKey(tx.CreatedAt)
		if seen[key] {
			continue
		}
		seen[key] = true
		months = append(months, key)
	}
	// Zero-padded keys sort lexicographically in date order.
	slices.Sort(months)
	slices.Reverse(months)
	return months
}

// Filter keeps the transactions matching both the category and the month
// filter, preserving their relative order.
func Filter(txs []model.Transaction, sel model.Selection) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !sel.AnyCategory() && tx.Category != sel.Category {
			continue
		}
		if !sel.AnyMonth() && MonthKey(tx.CreatedAt) != sel.Month {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// ExpenseBreakdown aggregates expenses per category, largest first.
// Percentages are rounded independently and may not add up to 100.
func ExpenseBreakdown(txs []model.Transaction) []CategoryShare {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		current, ok := totals[tx.Category]
		if !ok {
			order = append(order, tx.Category)
			current = decimal.Zero
		}
		totals[tx.Category] = current.Add(tx.Amount.Abs())
	}

	totalExpense := ExpenseTotal(txs)
	shares := make([]CategoryShare, 0, len(order))
	for _, category := range order {
		amount := totals[category]
		shares = append(shares, CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: percentOf(amount, totalExpense),
		})
	}

	slices.SortStableFunc(shares, func(a, b CategoryShare) int {
		return b.Amount.Cmp(a.Amount)
	})
	return shares
}

func percentOf(part, total decimal.Decimal) int64 {
	if total.IsZero() {
		return 0
	}
	return part.Mul(hundred).Div(total).Round(0).IntPart()
}
