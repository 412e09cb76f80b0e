// Package store holds the canonical transaction list and the current filter
// selection, mirrors every change to a persister and serves cached derived
// snapshots.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/neospend-dev/neospend/internal/derive"
	"github.com/neospend-dev/neospend/internal/id"
	"github.com/neospend-dev/neospend/internal/logging"
	"github.com/neospend-dev/neospend/internal/model"
)

var (
	ErrNotFound    = errors.New("transaction not found")
	ErrAmbiguous   = errors.New("ambiguous transaction id")
	ErrDuplicateID = errors.New("duplicate transaction id")
	ErrZeroAmount  = errors.New("amount must not be zero")
	ErrEmptyID     = errors.New("empty transaction id")
	ErrEmptyName   = errors.New("empty transaction name")
)

// Persister loads and saves the whole list. Load never fails; missing or
// unreadable data is an empty list.
type Persister interface {
	Load(ctx context.Context) []model.Transaction
	Save(ctx context.Context, txs []model.Transaction) error
}

// Action names a list mutation.
type Action string

const (
	ActionAdd    Action = "add"
	ActionImport Action = "import"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event describes one changed transaction.
type Event struct {
	Action      Action
	Transaction model.Transaction
	Version     uint64
}

// Observer is called after a mutation has been applied and saved.
type Observer func(Event)

// Store is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	persister Persister
	logger    *logging.Logger

	txs       []model.Transaction
	selection model.Selection
	version   uint64
	observers []Observer

	cached    *derive.Snapshot
	cachedVer uint64
	cachedSel model.Selection
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent("store") }
}

// WithSelection sets the initial filter selection.
func WithSelection(sel model.Selection) Option {
	return func(s *Store) { s.selection = sel }
}

// Open loads the persisted list once and returns a ready Store.
func Open(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		logger:    logging.Discard(),
		selection: model.Selection{Category: model.AllCategories, Month: model.AllMonths},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.txs = slices.Clone(p.Load(ctx))
	s.logger.Debug("store opened", "transactions", len(s.txs))
	return s
}

// Add inserts tx at the front of the list.
func (s *Store) Add(ctx context.Context, tx model.Transaction) error {
	s.mu.Lock()
	if err := s.checkNew(tx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.txs = slices.Insert(s.txs, 0, tx)
	err := s.commit(ctx)
	events := s.events(ActionAdd, tx)
	s.mu.Unlock()

	s.notify(events)
	return err
}

// AddAll inserts every valid transaction not already present, as if each
// were added in order, and saves once. It returns the added transactions.
// Duplicates and zero amounts are skipped.
func (s *Store) AddAll(ctx context.Context, txs []model.Transaction) ([]model.Transaction, error) {
	s.mu.Lock()
	var added []model.Transaction
	for _, tx := range txs {
		if err := s.checkNew(tx); err != nil {
			s.logger.Debug("skipping transaction", "id", tx.ID, "reason", err)
			continue
		}
		s.txs = slices.Insert(s.txs, 0, tx)
		added = append(added, tx)
	}
	if len(added) == 0 {
		s.mu.Unlock()
		return nil, nil
	}
	err := s.commit(ctx)
	events := s.events(ActionImport, added...)
	s.mu.Unlock()

	s.notify(events)
	return added, err
}

// Update replaces the name, amount and category of the transaction with
// tx.ID. The ID and creation time are kept.
func (s *Store) Update(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	if tx.Amount.IsZero() {
		return model.Transaction{}, ErrZeroAmount
	}
	if strings.TrimSpace(tx.Name) == "" {
		return model.Transaction{}, ErrEmptyName
	}

	s.mu.Lock()
	i := s.index(tx.ID)
	if i < 0 {
		s.mu.Unlock()
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, tx.ID)
	}
	cur := &s.txs[i]
	cur.Name = tx.Name
	cur.Amount = tx.Amount
	cur.Category = tx.Category
	updated := *cur
	err := s.commit(ctx)
	events := s.events(ActionUpdate, updated)
	s.mu.Unlock()

	s.notify(events)
	return updated, err
}

// Delete removes the transaction with the given ID.
func (s *Store) Delete(ctx context.Context, txID string) (model.Transaction, error) {
	s.mu.Lock()
	i := s.index(txID)
	if i < 0 {
		s.mu.Unlock()
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, txID)
	}
	removed := s.txs[i]
	s.txs = slices.Delete(s.txs, i, i+1)
	err := s.commit(ctx)
	events := s.events(ActionDelete, removed)
	s.mu.Unlock()

	s.notify(events)
	return removed, err
}

// Get returns the transaction with exactly this ID.
func (s *Store) Get(txID string) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(txID); i >= 0 {
		return s.txs[i], true
	}
	return model.Transaction{}, false
}

// Lookup resolves a full ID or a unique ID prefix.
func (s *Store) Lookup(ref string) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(ref); i >= 0 {
		return s.txs[i], nil
	}

	var matches []model.Transaction
	for _, tx := range s.txs {
		if id.HasPrefix(tx.ID, ref) {
			matches = append(matches, tx)
		}
	}
	switch len(matches) {
	case 0:
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.Transaction{}, fmt.Errorf("%w: %q matches %d transactions", ErrAmbiguous, ref, len(matches))
	}
}

// All returns a copy of the canonical list, most recent first.
func (s *Store) All() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.txs)
}

// Select sets the filter selection.
func (s *Store) Select(sel model.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

// Selection returns the current filter selection.
func (s *Store) Selection() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Version is bumped once per successful mutation.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Snapshot returns the derived values for the current list and selection.
// It is recomputed only when either changed since the last call.
func (s *Store) Snapshot() derive.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil || s.cachedVer != s.version || s.cachedSel != s.selection {
		snap := derive.Compute(s.txs, s.selection)
		s.cached = &snap
		s.cachedVer = s.version
		s.cachedSel = s.selection
	}
	return cloneSnapshot(*s.cached)
}

// Subscribe registers an observer for future mutations.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Store) checkNew(tx model.Transaction) error {
	switch {
	case tx.ID == "":
		return ErrEmptyID
	case tx.Amount.IsZero():
		return ErrZeroAmount
	case strings.TrimSpace(tx.Name) == "":
		return ErrEmptyName
	case s.index(tx.ID) >= 0:
		return fmt.Errorf("%w: %s", ErrDuplicateID, tx.ID)
	}
	return nil
}

func (s *Store) index(txID string) int {
	if txID == "" {
		return -1
	}
	return slices.IndexFunc(s.txs, func(tx model.Transaction) bool { return tx.ID == txID })
}

// commit bumps the version and saves. Must hold mu.
func (s *Store) commit(ctx context.Context) error {
	s.version++
	if err := s.persister.Save(ctx, slices.Clone(s.txs)); err != nil {
		s.logger.Error("saving transactions failed", "version", s.version, "error", err)
		return fmt.Errorf("saving transactions: %w", err)
	}
	return nil
}

// events builds notifications and snapshots the observer list. Must hold mu.
func (s *Store) events(action Action, txs ...model.Transaction) []func() {
	var out []func()
	for _, tx := range txs {
		ev := Event{Action: action, Transaction: tx, Version: s.version}
		for _, o := range s.observers {
			out = append(out, func() { o(ev) })
		}
	}
	return out
}

func (s *Store) notify(calls []func()) {
	for _, call := range calls {
		call()
	}
}

func cloneSnapshot(snap derive.Snapshot) derive.Snapshot {
	snap.Months = slices.Clone(snap.Months)
	snap.Transactions = slices.Clone(snap.Transactions)
	snap.Breakdown = slices.Clone(snap.Breakdown)
	snap.Slices = slices.Clone(snap.Slices)
	return snap
}
