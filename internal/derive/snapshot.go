package derive

import (
	"github.com/shopspring/decimal"

	"github.com/neospend-dev/neospend/internal/model"
)

// Snapshot bundles every derived value for one list and selection.
// Totals, months and the breakdown cover the whole list; only
// Transactions is filtered.
type Snapshot struct {
	Selection    model.Selection
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	Progress     decimal.Decimal
	Months       []string
	Transactions []model.Transaction
	Breakdown    []CategoryShare
	Slices       []Slice
}

// Compute derives a Snapshot.
func Compute(txs []model.Transaction, sel model.Selection) Snapshot {
	income := IncomeTotal(txs)
	expense := ExpenseTotal(txs)
	breakdown := ExpenseBreakdown(txs)
	return Snapshot{
		Selection:    sel,
		Income:       income,
		Expense:      expense,
		Balance:      BalanceTotal(txs),
		Progress:     ExpenseProgress(income, expense),
		Months:       MonthOptions(txs),
		Transactions: Filter(txs, sel),
		Breakdown:    breakdown,
		Slices:       DonutSlices(breakdown),
	}
}
