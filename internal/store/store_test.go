package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neospend-dev/neospend/internal/kv"
	"github.com/neospend-dev/neospend/internal/model"
	"github.com/neospend-dev/neospend/internal/storage"
)

type fakePersister struct {
	initial []model.Transaction
	saves   [][]model.Transaction
	err     error
}

func (f *fakePersister) Load(context.Context) []model.Transaction {
	return f.initial
}

func (f *fakePersister) Save(_ context.Context, txs []model.Transaction) error {
	f.saves = append(f.saves, txs)
	return f.err
}

func tx(txID, name, amount, category string, day time.Time) model.Transaction {
	return model.Transaction{
		ID:        txID,
		Name:      name,
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		CreatedAt: day,
	}
}

var (
	may   = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	april = time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
)

func ids(txs []model.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func TestOpen_LoadsOnce(t *testing.T) {
	p := &fakePersister{initial: []model.Transaction{tx("a", "Salário", "100", "Salário", may)}}
	s := Open(context.Background(), p)

	assert.Equal(t, []string{"a"}, ids(s.All()))
	assert.Equal(t, uint64(0), s.Version())
	assert.Empty(t, p.saves)
	assert.Equal(t, model.AllCategories, s.Selection().Category)
	assert.Equal(t, model.AllMonths, s.Selection().Month)
}

func TestAdd_PrependsSavesAndBumpsVersion(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{initial: []model.Transaction{tx("a", "Salário", "100", "Salário", april)}}
	s := Open(ctx, p)

	require.NoError(t, s.Add(ctx, tx("b", "Mercado", "-20", "Alimentação", may)))

	assert.Equal(t, []string{"b", "a"}, ids(s.All()))
	assert.Equal(t, uint64(1), s.Version())
	require.Len(t, p.saves, 1)
	assert.Equal(t, []string{"b", "a"}, ids(p.saves[0]))
}

func TestAdd_Rejects(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{initial: []model.Transaction{tx("a", "Salário", "100", "Salário", may)}}
	s := Open(ctx, p)

	err := s.Add(ctx, tx("a", "dup", "5", "Casa", may))
	assert.ErrorIs(t, err, ErrDuplicateID)

	err = s.Add(ctx, model.Transaction{ID: "z", Name: "zero", Category: "Casa", CreatedAt: may})
	assert.ErrorIs(t, err, ErrZeroAmount)

	err = s.Add(ctx, tx("", "no id", "5", "Casa", may))
	assert.ErrorIs(t, err, ErrEmptyID)

	err = s.Add(ctx, tx("n", "", "5", "Casa", may))
	assert.ErrorIs(t, err, ErrEmptyName)

	assert.Len(t, s.All(), 1)
	assert.Equal(t, uint64(0), s.Version())
	assert.Empty(t, p.saves)
}

func TestAdd_SaveFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	p := &fakePersister{err: boom}
	s := Open(ctx, p)

	err := s.Add(ctx, tx("a", "Salário", "100", "Salário", may))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.All(), 1)
	assert.Equal(t, uint64(1), s.Version())
}

func TestAddAll_SkipsInvalidAndSavesOnce(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{initial: []model.Transaction{tx("a", "Salário", "100", "Salário", april)}}
	s := Open(ctx, p)

	added, err := s.AddAll(ctx, []model.Transaction{
		tx("b", "Uber", "-12", "Mobilidade", may),
		tx("a", "dup", "-1", "Casa", may),
		{ID: "z", Name: "zero", Category: "Casa", CreatedAt: may},
		tx("c", "Cinema", "-30", "Lazer", may),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(added))
	assert.Equal(t, []string{"c", "b", "a"}, ids(s.All()))
	assert.Len(t, p.saves, 1)
	assert.Equal(t, uint64(1), s.Version())
}

func TestAddAll_NothingNewDoesNotSave(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{initial: []model.Transaction{tx("a", "Salário", "100", "Salário", april)}}
	s := Open(ctx, p)

	added, err := s.AddAll(ctx, []model.Transaction{tx("a", "dup", "1", "Casa", may)})
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Empty(t, p.saves)
	assert.Equal(t, uint64(0), s.Version())
}

func TestUpdate_KeepsIDAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{initial: []model.Transaction{tx("a", "Aluguel", "-40", "Casa", april)}}
	s := Open(ctx, p)

	edited := tx("a", "Aluguel maio", "-45.5", "Casa", may)
	got, err := s.Update(ctx, edited)
	require.NoError(t, err)

	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "Aluguel maio", got.Name)
	assert.Equal(t, "-45.5", got.Amount.String())
	assert.True(t, got.CreatedAt.Equal(april))
	assert.Len(t, p.saves, 1)

	stored, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestUpdate_Errors(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, &fakePersister{initial: []model.Transaction{tx("a", "Aluguel", "-40", "Casa", april)}})

	_, err := s.Update(ctx, tx("missing", "x", "1", "Casa", may))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, model.Transaction{ID: "a", Name: "x", Category: "Casa"})
	assert.ErrorIs(t, err, ErrZeroAmount)

	_, err = s.Update(ctx, tx("a", "  ", "-5", "Casa", may))
	assert.ErrorIs(t, err, ErrEmptyName)
	stored, _ := s.Get("a")
	assert.Equal(t, "Aluguel", stored.Name)
	assert.Equal(t, uint64(0), s.Version())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{initial: []model.Transaction{
		tx("a", "Aluguel", "-40", "Casa", april),
		tx("b", "Salário", "100", "Salário", april),
	}}
	s := Open(ctx, p)

	removed, err := s.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Aluguel", removed.Name)
	assert.Equal(t, []string{"b"}, ids(s.All()))
	assert.Len(t, p.saves, 1)

	_, err = s.Delete(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, p.saves, 1)
}

func TestLookup(t *testing.T) {
	s := Open(context.Background(), &fakePersister{initial: []model.Transaction{
		tx("3f2a-1111", "A", "1", "Casa", may),
		tx("3f2b-2222", "B", "1", "Casa", may),
		tx("9c00-3333", "C", "1", "Casa", may),
	}})

	got, err := s.Lookup("9c00-3333")
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name)

	got, err = s.Lookup("3F2A")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	_, err = s.Lookup("3f2")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = s.Lookup("ffff")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Lookup("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := Open(context.Background(), &fakePersister{initial: []model.Transaction{tx("a", "A", "1", "Casa", may)}})

	list := s.All()
	list[0].Name = "changed"
	assert.Equal(t, "A", s.All()[0].Name)
}

func TestSnapshot_SelectionFiltersListOnly(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, &fakePersister{initial: []model.Transaction{
		tx("1", "Salário", "100", "Salário", may),
		tx("2", "Aluguel", "-40", "Casa", may),
		tx("3", "Cinema", "-10", "Lazer", april),
	}})

	s.Select(model.Selection{Category: "Casa", Month: "2024-05"})
	snap := s.Snapshot()

	assert.Equal(t, []string{"2"}, ids(snap.Transactions))
	assert.Equal(t, "100", snap.Income.String())
	assert.Equal(t, "50", snap.Expense.String())
	assert.Equal(t, "50", snap.Balance.String())
	assert.Equal(t, []string{"2024-05", "2024-04"}, snap.Months)
	require.Len(t, snap.Breakdown, 2)
	assert.Equal(t, "Casa", snap.Breakdown[0].Category)
	assert.Equal(t, int64(80), snap.Breakdown[0].Percentage)
	assert.Equal(t, model.Selection{Category: "Casa", Month: "2024-05"}, snap.Selection)
}

func TestSnapshot_RefreshesAfterMutation(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, &fakePersister{})

	empty := s.Snapshot()
	assert.True(t, empty.Income.IsZero())
	require.Len(t, empty.Slices, 1)

	require.NoError(t, s.Add(ctx, tx("1", "Salário", "100", "Salário", may)))
	snap := s.Snapshot()
	assert.Equal(t, "100", snap.Income.String())
	assert.Len(t, snap.Transactions, 1)
}

func TestSnapshot_DoesNotAliasCache(t *testing.T) {
	s := Open(context.Background(), &fakePersister{initial: []model.Transaction{tx("1", "A", "-5", "Casa", may)}})

	first := s.Snapshot()
	first.Transactions[0].Name = "changed"
	first.Months[0] = "1999-01"

	second := s.Snapshot()
	assert.Equal(t, "A", second.Transactions[0].Name)
	assert.Equal(t, "2024-05", second.Months[0])
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, &fakePersister{})

	var got []Event
	s.Subscribe(func(ev Event) {
		// observers may read the store
		_ = s.All()
		got = append(got, ev)
	})

	require.NoError(t, s.Add(ctx, tx("1", "A", "-5", "Casa", may)))
	_, err := s.AddAll(ctx, []model.Transaction{tx("2", "B", "3", "Salário", may), tx("3", "C", "-1", "Lazer", may)})
	require.NoError(t, err)
	_, err = s.Delete(ctx, "1")
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, ActionAdd, got[0].Action)
	assert.Equal(t, uint64(1), got[0].Version)
	assert.Equal(t, ActionImport, got[1].Action)
	assert.Equal(t, ActionImport, got[2].Action)
	assert.Equal(t, uint64(2), got[2].Version)
	assert.Equal(t, ActionDelete, got[3].Action)
	assert.Equal(t, "1", got[3].Transaction.ID)
}

func TestStore_PersistsThroughRepository(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	s := Open(ctx, storage.NewRepository(mem))
	require.NoError(t, s.Add(ctx, tx("1", "Salário", "100", "Salário", may)))
	require.NoError(t, s.Add(ctx, tx("2", "Aluguel", "-40", "Casa", may)))

	reopened := Open(ctx, storage.NewRepository(mem))
	assert.Equal(t, []string{"2", "1"}, ids(reopened.All()))
	assert.Equal(t, "60", reopened.Snapshot().Balance.String())
}
