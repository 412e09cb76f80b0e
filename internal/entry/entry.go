// Package entry turns raw user input into valid transactions.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neospend-dev/neospend/internal/categories"
	"github.com/neospend-dev/neospend/internal/id"
	"github.com/neospend-dev/neospend/internal/model"
	"github.com/neospend-dev/neospend/internal/store"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrEmptyName is shared with the store.
	ErrEmptyName = store.ErrEmptyName
)

// CategoryResolver maps user input to a known category.
type CategoryResolver interface {
	Resolve(input string) (string, error)
	Default() string
}

// CategoryChecker tests whether a category exists.
type CategoryChecker interface {
	Exists(name string) bool
}

// Draft is the raw form input for a transaction.
type Draft struct {
	Name     string
	Amount   string
	Category string
}

// Form validates drafts and builds transactions from them.
type Form struct {
	categories CategoryResolver
	now        func() time.Time
	newID      func() string
}

// Option configures a Form.
type Option func(*Form)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// WithIDs overrides the ID generator.
func WithIDs(newID func() string) Option {
	return func(f *Form) { f.newID = newID }
}

// NewForm creates a Form over a category set.
func NewForm(categories CategoryResolver, opts ...Option) *Form {
	f := &Form{categories: categories, now: time.Now, newID: id.New}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds a new transaction with a fresh ID and the current time.
// An empty category falls back to the set's default.
func (f *Form) Create(d Draft) (model.Transaction, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return model.Transaction{}, ErrEmptyName
	}

	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("amount %q: %w", d.Amount, err)
	}

	category := f.categories.Default()
	if strings.TrimSpace(d.Category) != "" {
		category, err = f.categories.Resolve(d.Category)
		if err != nil {
			return model.Transaction{}, err
		}
	}

	return model.Transaction{
		ID:        f.newID(),
		Name:      name,
		Amount:    amount,
		Category:  category,
		CreatedAt: f.now(),
	}, nil
}

// Edit applies a draft to an existing transaction. Blank draft fields keep
// the current value; ID and CreatedAt never change.
func (f *Form) Edit(tx model.Transaction, d Draft) (model.Transaction, error) {
	if strings.TrimSpace(d.Name) != "" {
		tx.Name = strings.TrimSpace(d.Name)
	}

	if strings.TrimSpace(d.Amount) != "" {
		amount, err := ParseAmount(d.Amount)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("amount %q: %w", d.Amount, err)
		}
		tx.Amount = amount
	}

	if strings.TrimSpace(d.Category) != "" {
		category, err := f.categories.Resolve(d.Category)
		if err != nil {
			return model.Transaction{}, err
		}
		tx.Category = category
	}

	return tx, nil
}

// Validate checks the invariants of an already built transaction.
func Validate(tx model.Transaction, checker CategoryChecker) error {
	if tx.ID == "" {
		return store.ErrEmptyID
	}
	if strings.TrimSpace(tx.Name) == "" {
		return ErrEmptyName
	}
	if tx.Amount.IsZero() {
		return ErrInvalidAmount
	}
	if !checker.Exists(tx.Category) {
		return fmt.Errorf("%w %q", categories.ErrUnknown, tx.Category)
	}
	return nil
}
