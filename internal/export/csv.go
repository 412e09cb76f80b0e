// Package export writes transactions and derived summaries to CSV and XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neospend-dev/neospend/internal/model"
)

// Header is the first row of a transactions CSV.
const Header = "id,name,amount,category,created_at"

const (
	numFields   = 5
	colID       = 0
	colName     = 1
	colAmount   = 2
	colCategory = 3
	colCreated  = 4
)

// WriteCSV writes txs, header included.
func WriteCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		if err := cw.Write(MarshalRow(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads transactions written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if strings.Join(records[0], ",") != Header {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(records[0], ","))
	}

	txs := make([]model.Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		tx, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// MarshalRow converts a transaction to a CSV row.
func MarshalRow(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colName] = tx.Name
	row[colAmount] = tx.Amount.String()
	row[colCategory] = tx.Category
	row[colCreated] = tx.CreatedAt.Format(time.RFC3339)
	return row
}

// UnmarshalRow converts a CSV row to a transaction.
func UnmarshalRow(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	created, err := time.Parse(time.RFC3339, record[colCreated])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", record[colCreated], err)
	}

	return model.Transaction{
		ID:        record[colID],
		Name:      record[colName],
		Amount:    amount,
		Category:  record[colCategory],
		CreatedAt: created,
	}, nil
}
