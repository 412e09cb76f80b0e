// Package storage persists the transaction list to a key-value store.
//
// The stored value is a JSON array of records. Anything that cannot be read
// back is treated as absent data: Load never fails.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neospend-dev/neospend/internal/kv"
	"github.com/neospend-dev/neospend/internal/logging"
	"github.com/neospend-dev/neospend/internal/model"
)

// DefaultKey is the key the transaction list is stored under.
const DefaultKey = "neospend-transactions"

type record struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Repository loads and saves the whole transaction list under one key.
type Repository struct {
	kv     kv.Store
	key    string
	logger *logging.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// WithLogger sets the logger load failures are reported to.
func WithLogger(l *logging.Logger) Option {
	return func(r *Repository) { r.logger = l.WithComponent("storage") }
}

// NewRepository wraps a key-value store.
func NewRepository(store kv.Store, opts ...Option) *Repository {
	r := &Repository{kv: store, key: DefaultKey, logger: logging.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the storage key in use.
func (r *Repository) Key() string {
	return r.key
}

// Load returns the persisted transactions, or an empty list when nothing is
// stored or the stored value cannot be decoded.
func (r *Repository) Load(ctx context.Context) []model.Transaction {
	data, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.Transaction{}
	}
	if err != nil {
		r.logger.Warn("reading transactions failed", "key", r.key, "error", err)
		return []model.Transaction{}
	}

	txs, err := Decode(data)
	if err != nil {
		r.logger.Warn("stored transactions are unreadable, starting empty", "key", r.key, "error", err)
		return []model.Transaction{}
	}

	out := make([]model.Transaction, 0, len(txs))
	for i, tx := range txs {
		if tx.ID == "" || tx.Amount.IsZero() {
			r.logger.Warn("skipping invalid stored transaction", "index", i, "id", tx.ID)
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Save replaces the stored list with txs.
func (r *Repository) Save(ctx context.Context, txs []model.Transaction) error {
	data, err := Encode(txs)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", r.key, err)
	}
	return nil
}

// Encode serializes txs as a JSON array.
func Encode(txs []model.Transaction) ([]byte, error) {
	recs := make([]record, len(txs))
	for i, tx := range txs {
		recs[i] = record{
			ID:        tx.ID,
			Name:      tx.Name,
			Amount:    json.Number(tx.Amount.String()),
			Category:  tx.Category,
			CreatedAt: tx.CreatedAt,
		}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array produced by Encode.
func Decode(data []byte) ([]model.Transaction, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var recs []record
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}
	if recs == nil {
		return nil, errors.New("decoding transactions: not an array")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding transactions: trailing data after array")
	}

	txs := make([]model.Transaction, len(recs))
	for i, rec := range recs {
		amount := decimal.Zero
		if rec.Amount != "" {
			var err error
			amount, err = decimal.NewFromString(rec.Amount.String())
			if err != nil {
				return nil, fmt.Errorf("record %d amount %q: %w", i, rec.Amount, err)
			}
		}
		txs[i] = model.Transaction{
			ID:        rec.ID,
			Name:      rec.Name,
			Amount:    amount,
			Category:  rec.Category,
			CreatedAt: rec.CreatedAt,
		}
	}
	return txs, nil
}
