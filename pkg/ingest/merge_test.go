package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/ingest/mocks"
)

// memStore keeps committed records in memory, a round works on a copy applied on commit
type memStore struct {
	mu      sync.Mutex
	records []domain.CFP
	nextID  int64
	failOn  string // conference name to fail insert/update on
}

type memRound struct {
	store   *memStore
	records []domain.CFP
	nextID  int64
	done    bool
}

func (s *memStore) BeginRound(context.Context) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &memRound{store: s, records: append([]domain.CFP{}, s.records...), nextID: s.nextID}, nil
}

func (s *memStore) all() []domain.CFP {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CFP{}, s.records...)
}

// storeFunc opens rounds with a function
type storeFunc func(ctx context.Context) (Round, error)

func (f storeFunc) BeginRound(ctx context.Context) (Round, error) { return f(ctx) }

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (r *memRound) FindByDedupKey(_ context.Context, key domain.DedupKey) (*domain.CFP, error) {
	for _, c := range r.records {
		if c.ConferenceName != key.ConferenceName || !sameDate(c.SubmissionDeadline, key.Deadline) {
			continue
		}
		if key.Source != "" && c.Source != key.Source {
			continue
		}
		res := c
		return &res, nil
	}
	return nil, nil
}

func (r *memRound) Insert(_ context.Context, cfp *domain.CFP) error {
	if cfp.ConferenceName == r.store.failOn {
		return errors.New("insert failed")
	}
	r.nextID++
	cfp.ID = r.nextID
	cfp.CreatedAt = time.Now()
	cfp.UpdatedAt = cfp.CreatedAt
	r.records = append(r.records, *cfp)
	return nil
}

func (r *memRound) Update(_ context.Context, cfp *domain.CFP) error {
	if cfp.ConferenceName == r.store.failOn {
		return errors.New("update failed")
	}
	for i := range r.records {
		if r.records[i].ID == cfp.ID {
			cfp.UpdatedAt = time.Now()
			r.records[i] = *cfp
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memRound) Commit() error {
	if r.done {
		return errors.New("round closed")
	}
	r.done = true
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records, r.store.nextID = r.records, r.nextID
	return nil
}

func (r *memRound) Rollback() error {
	r.done = true
	return nil
}

func TestMerger_IdempotentRounds(t *testing.T) {
	batch := []domain.CFP{
		{ConferenceName: "GopherCon", SubmissionDeadline: domain.Date(2025, 3, 1), Source: "a", Location: "Berlin"},
		{ConferenceName: "GopherCon", SubmissionDeadline: domain.Date(2025, 3, 1), Source: "b", Location: "Berlin, DE"},
		{ConferenceName: "RustConf", Source: "a"},
		{ConferenceName: "RustConf", Source: "b"},
	}
	store := &memStore{}
	m := NewMerger(store, MergerOpts{})

	res, err := m.Merge(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Inserted: 3, Updated: 1}, res, "same name and deadline from another source is an update")
	first := store.all()
	require.Len(t, first, 3)
	assert.Equal(t, "Berlin, DE", first[0].Location)

	res, err = m.Merge(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Inserted: 0, Updated: 4}, res)
	second := store.all()
	require.Len(t, second, 3, "no growth on identical data")

	seen := map[string]bool{}
	for _, c := range second {
		if c.SubmissionDeadline == nil {
			continue
		}
		k := c.ConferenceName + c.SubmissionDeadline.String()
		assert.False(t, seen[k], "duplicate pair %s", k)
		seen[k] = true
	}
}

func TestMerger_FallbackKeyUpdatesSameSource(t *testing.T) {
	store := &memStore{}
	m := NewMerger(store, MergerOpts{})

	_, err := m.Merge(context.Background(), []domain.CFP{{ConferenceName: "DevDays", Source: "dev.events", Location: "Paris"}})
	require.NoError(t, err)
	created := store.all()[0]

	res, err := m.Merge(context.Background(), []domain.CFP{{ConferenceName: "DevDays", Source: "dev.events", Location: "Lyon"}})
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Updated: 1}, res)

	all := store.all()
	require.Len(t, all, 1)
	assert.Equal(t, "Lyon", all[0].Location)
	assert.Equal(t, created.ID, all[0].ID, "identity kept")
	assert.Equal(t, created.CreatedAt, all[0].CreatedAt, "creation time kept")
}

func TestMerger_RollbackOnFailure(t *testing.T) {
	store := &memStore{failOn: "Broken"}
	m := NewMerger(store, MergerOpts{})

	_, err := m.Merge(context.Background(), []domain.CFP{
		{ConferenceName: "First", Source: "a"},
		{ConferenceName: "Broken", Source: "a"},
		{ConferenceName: "Third", Source: "a"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
	assert.Empty(t, store.all(), "nothing persisted from the failed round")
}

func TestMerger_CustomKey(t *testing.T) {
	store := &memStore{}
	// name only, ignores deadlines and sources
	m := NewMerger(store, MergerOpts{KeyFunc: func(c domain.CFP) domain.DedupKey {
		return domain.DedupKey{ConferenceName: c.ConferenceName, Deadline: c.SubmissionDeadline}
	}})
	res, err := m.Merge(context.Background(), []domain.CFP{
		{ConferenceName: "X", Source: "a"},
		{ConferenceName: "X", Source: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Inserted: 1, Updated: 1}, res)
}

func TestMerger_StorageErrors(t *testing.T) {
	t.Run("begin fails", func(t *testing.T) {
		store := storeFunc(func(ctx context.Context) (Round, error) { return nil, errors.New("db closed") })
		_, err := NewMerger(store, MergerOpts{}).Merge(context.Background(), cfps("a", "x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin round")
	})

	t.Run("find fails", func(t *testing.T) {
		round := &mocks.RoundMock{
			FindByDedupKeyFunc: func(ctx context.Context, key domain.DedupKey) (*domain.CFP, error) {
				return nil, errors.New("locked")
			},
			RollbackFunc: func() error { return nil },
		}
		store := storeFunc(func(ctx context.Context) (Round, error) { return round, nil })
		_, err := NewMerger(store, MergerOpts{}).Merge(context.Background(), cfps("a", "x", "y"))
		require.Error(t, err)
		assert.Len(t, round.FindByDedupKeyCalls(), 1)
		assert.Len(t, round.RollbackCalls(), 1)
	})

	t.Run("commit fails", func(t *testing.T) {
		round := &mocks.RoundMock{
			FindByDedupKeyFunc: func(ctx context.Context, key domain.DedupKey) (*domain.CFP, error) { return nil, nil },
			InsertFunc:         func(ctx context.Context, cfp *domain.CFP) error { return nil },
			CommitFunc:         func() error { return errors.New("disk full") },
			RollbackFunc:       func() error { return nil },
		}
		store := storeFunc(func(ctx context.Context) (Round, error) { return round, nil })
		_, err := NewMerger(store, MergerOpts{}).Merge(context.Background(), cfps("a", "x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "commit round")
		assert.Len(t, round.RollbackCalls(), 1)
	})

	t.Run("success doesn't roll back", func(t *testing.T) {
		round := &mocks.RoundMock{
			FindByDedupKeyFunc: func(ctx context.Context, key domain.DedupKey) (*domain.CFP, error) {
				if key.ConferenceName == "old" {
					return &domain.CFP{ID: 7, ConferenceName: "old", Source: "a"}, nil
				}
				return nil, nil
			},
			InsertFunc: func(ctx context.Context, cfp *domain.CFP) error { return nil },
			UpdateFunc: func(ctx context.Context, cfp *domain.CFP) error { return nil },
			CommitFunc: func() error { return nil },
		}
		store := storeFunc(func(ctx context.Context) (Round, error) { return round, nil })
		res, err := NewMerger(store, MergerOpts{}).Merge(context.Background(), cfps("a", "new", "old"))
		require.NoError(t, err)
		assert.Equal(t, MergeResult{Inserted: 1, Updated: 1}, res)
		require.Len(t, round.UpdateCalls(), 1)
		assert.Equal(t, int64(7), round.UpdateCalls()[0].Cfp.ID)
		assert.Empty(t, round.RollbackCalls())
	})
}
