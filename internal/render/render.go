// Package render formats snapshots and transaction lists for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/neospend-dev/neospend/internal/derive"
	"github.com/neospend-dev/neospend/internal/model"
)

var (
	colorIncome  = lipgloss.Color("#52ff6a")
	colorExpense = lipgloss.Color("#ff5a6a")
	colorMuted   = lipgloss.Color("#7f849c")
	colorTitle   = lipgloss.Color("#36d9ff")

	titleStyle   = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	incomeStyle  = lipgloss.NewStyle().Foreground(colorIncome)
	expenseStyle = lipgloss.NewStyle().Foreground(colorExpense)
)

const (
	shortIDLen  = 8
	barWidth    = 20
	nameWidth   = 28
	amountWidth = 12
)

// ShortID returns the prefix of id shown in listings.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Signed styles an amount by its sign.
func Signed(d decimal.Decimal) string {
	s := Money(d)
	if d.IsNegative() {
		return expenseStyle.Render(s)
	}
	return incomeStyle.Render(s)
}

// Bar draws progress (0..100) as a fixed-width bar.
func Bar(progress decimal.Decimal, width int) string {
	filled := int(progress.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func describe(sel model.Selection) string {
	category := sel.Category
	if sel.AnyCategory() {
		category = model.AllCategories
	}
	month := sel.Month
	if sel.AnyMonth() {
		month = model.AllMonths
	}
	return fmt.Sprintf("categoria: %s  mês: %s", category, month)
}

// Transactions writes one line per transaction.
func Transactions(w io.Writer, txs []model.Transaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("no transactions"))
		return err
	}
	var b strings.Builder
	for _, tx := range txs {
		b.WriteString(strings.Join([]string{
			mutedStyle.Render(ShortID(tx.ID)),
			derive.MonthKey(tx.CreatedAt),
			pad(truncate(tx.Name, nameWidth), nameWidth),
			padLeft(Signed(tx.Amount), amountWidth),
			tx.Category,
		}, "  "))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary writes totals, progress, the category breakdown and the filtered
// list of a snapshot.
func Summary(w io.Writer, snap derive.Snapshot) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("neospend") + "  " + mutedStyle.Render(describe(snap.Selection)) + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", pad("Receitas", 10), padLeft(incomeStyle.Render(Money(snap.Income)), amountWidth))
	fmt.Fprintf(&b, "%s %s\n", pad("Despesas", 10), padLeft(expenseStyle.Render(Money(snap.Expense)), amountWidth))
	fmt.Fprintf(&b, "%s %s\n", pad("Saldo", 10), padLeft(Signed(snap.Balance), amountWidth))
	fmt.Fprintf(&b, "%s %s %s%%\n", pad("Gasto", 10), Bar(snap.Progress, barWidth), snap.Progress.Round(0).String())

	b.WriteString("\n" + titleStyle.Render("Despesas por categoria") + "\n")
	if len(snap.Breakdown) == 0 {
		b.WriteString(mutedStyle.Render("no expenses") + "\n")
	}
	for i, share := range snap.Breakdown {
		swatch := "●"
		if i < len(snap.Slices) && strings.HasPrefix(snap.Slices[i].Color, "#") {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(snap.Slices[i].Color)).Render(swatch)
		}
		fmt.Fprintf(&b, "%s %s %s %4d%%\n",
			swatch,
			pad(share.Category, 14),
			padLeft(Money(share.Amount), amountWidth),
			share.Percentage,
		)
	}

	if len(snap.Months) > 0 {
		b.WriteString("\n" + mutedStyle.Render("meses: "+strings.Join(snap.Months, " ")) + "\n")
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return Transactions(w, snap.Transactions)
}

// Slices writes the donut slices as angle ranges.
func Slices(w io.Writer, slices []derive.Slice) error {
	var b strings.Builder
	for _, s := range slices {
		label := s.Category
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(&b, "%s %7s° %7s°  %s\n", pad(label, 14), s.Start.StringFixed(1), s.End.StringFixed(1), s.Color)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
