package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/neospend-dev/neospend/internal/derive"
)

// Sheet names in an exported workbook.
const (
	SheetTransactions = "Transactions"
	SheetBreakdown    = "Breakdown"
)

// WriteXLSX writes a workbook with the snapshot's filtered transactions and
// its expense breakdown.
func WriteXLSX(w io.Writer, snap derive.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetTransactions); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetBreakdown); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	txRows := [][]any{{"ID", "Name", "Amount", "Category", "Month", "Created"}}
	for _, tx := range snap.Transactions {
		txRows = append(txRows, []any{
			tx.ID,
			tx.Name,
			tx.Amount.InexactFloat64(),
			tx.Category,
			derive.MonthKey(tx.CreatedAt),
			tx.CreatedAt.Format(time.RFC3339),
		})
	}
	if err := writeRows(f, SheetTransactions, txRows); err != nil {
		return err
	}

	bdRows := [][]any{{"Category", "Amount", "Percentage", "Color"}}
	for i, share := range snap.Breakdown {
		color := ""
		if i < len(snap.Slices) {
			color = snap.Slices[i].Color
		}
		bdRows = append(bdRows, []any{
			share.Category,
			share.Amount.InexactFloat64(),
			share.Percentage,
			color,
		})
	}
	bdRows = append(bdRows,
		[]any{"Income", snap.Income.InexactFloat64()},
		[]any{"Expense", snap.Expense.InexactFloat64()},
		[]any{"Balance", snap.Balance.InexactFloat64()},
	)
	if err := writeRows(f, SheetBreakdown, bdRows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
