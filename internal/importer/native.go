package importer

import (
	"io"

	"github.com/neospend-dev/neospend/internal/export"
)

// NativeParser reads CSV files written by the export command, keeping IDs
// and categories.
type NativeParser struct{}

// Format returns the parser name.
func (p *NativeParser) Format() string { return "neospend" }

// Parse reads an exported transactions CSV.
func (p *NativeParser) Parse(r io.Reader) ([]Row, error) {
	txs, err := export.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	var rows []Row
	for _, tx := range txs {
		rows = append(rows, Row{
			ID:          tx.ID,
			Date:        tx.CreatedAt,
			Description: tx.Name,
			Amount:      tx.Amount,
			Category:    tx.Category,
		})
	}
	return rows, nil
}
