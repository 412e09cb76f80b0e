// Package importer reads transactions from external CSV files.
package importer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neospend-dev/neospend/internal/entry"
	"github.com/neospend-dev/neospend/internal/id"
	"github.com/neospend-dev/neospend/internal/model"
)

// Row is one importable line. ID may be empty, in which case a fresh one is
// assigned. Category may be empty.
type Row struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Parser converts a CSV file into Rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&NativeParser{})
	return r
}

// Categories resolves row categories during conversion.
type Categories interface {
	entry.CategoryResolver
	entry.CategoryChecker
}

// Skipped describes a row that was not converted.
type Skipped struct {
	Row    int // 1-based position in the parsed rows
	Reason string
}

// Convert turns rows into transactions. fallback is used for rows without a
// category; empty means the set's default. Rows with a zero amount or an
// unresolvable category are skipped and reported.
func Convert(rows []Row, cats Categories, fallback string) ([]model.Transaction, []Skipped) {
	if fallback == "" {
		fallback = cats.Default()
	}

	var (
		txs     []model.Transaction
		skipped []Skipped
	)
	for i, row := range rows {
		if row.Amount.IsZero() {
			skipped = append(skipped, Skipped{Row: i + 1, Reason: "zero amount"})
			continue
		}

		category := fallback
		if strings.TrimSpace(row.Category) != "" {
			resolved, err := cats.Resolve(row.Category)
			if err != nil {
				skipped = append(skipped, Skipped{Row: i + 1, Reason: err.Error()})
				continue
			}
			category = resolved
		}

		txID := row.ID
		if txID == "" {
			txID = id.New()
		}

		tx := model.Transaction{
			ID:        txID,
			Name:      strings.TrimSpace(row.Description),
			Amount:    row.Amount,
			Category:  category,
			CreatedAt: row.Date,
		}
		if err := entry.Validate(tx, cats); err != nil {
			skipped = append(skipped, Skipped{Row: i + 1, Reason: err.Error()})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, skipped
}

func (s Skipped) String() string {
	return fmt.Sprintf("row %d: %s", s.Row, s.Reason)
}
