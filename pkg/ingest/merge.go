package ingest

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cfptrack/pkg/domain"
)

//go:generate moq -out mocks/round.go -pkg mocks -skip-ensure -fmt goimports . Round

// Store opens storage rounds, all writes of one ingestion round go through a single Round
type Store interface {
	BeginRound(ctx context.Context) (Round, error)
}

// Round is a storage transaction. FindByDedupKey returns nil without error if nothing matches.
type Round interface {
	FindByDedupKey(ctx context.Context, key domain.DedupKey) (*domain.CFP, error)
	Insert(ctx context.Context, cfp *domain.CFP) error
	Update(ctx context.Context, cfp *domain.CFP) error
	Commit() error
	Rollback() error
}

// Merger decides insert or update for every fetched record and commits them together
type Merger struct {
	store   Store
	keyFunc func(domain.CFP) domain.DedupKey
}

// MergerOpts defines merger parameters
type MergerOpts struct {
	KeyFunc func(domain.CFP) domain.DedupKey // dedup key of a record, domain.DefaultKey if nil
}

// MergeResult counts writes of a committed round
type MergeResult struct {
	Inserted int
	Updated  int
}

// NewMerger makes a merger on top of store
func NewMerger(store Store, opts MergerOpts) *Merger {
	if opts.KeyFunc == nil {
		opts.KeyFunc = domain.DefaultKey
	}
	return &Merger{store: store, keyFunc: opts.KeyFunc}
}

// Merge writes records in one round. An existing record matching the dedup key gets all normalized
// fields overwritten and keeps its identity and creation time, otherwise the record is inserted.
// Any failure rolls back the whole round, nothing is persisted partially.
func (m *Merger) Merge(ctx context.Context, cfps []domain.CFP) (res MergeResult, err error) {
	round, err := m.store.BeginRound(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("begin round: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := round.Rollback(); rbErr != nil {
			lgr.Printf("[WARN] failed to rollback round: %v", rbErr)
		}
	}()

	for i := range cfps {
		if err := m.mergeOne(ctx, round, cfps[i], &res); err != nil {
			return MergeResult{}, err
		}
	}

	if err := round.Commit(); err != nil {
		return MergeResult{}, fmt.Errorf("commit round: %w", err)
	}
	committed = true
	return res, nil
}

func (m *Merger) mergeOne(ctx context.Context, round Round, cfp domain.CFP, res *MergeResult) error {
	key := m.keyFunc(cfp)
	existing, err := round.FindByDedupKey(ctx, key)
	if err != nil {
		return fmt.Errorf("find %s: %w", key, err)
	}

	if existing == nil {
		if err := round.Insert(ctx, &cfp); err != nil {
			return fmt.Errorf("insert %s: %w", key, err)
		}
		res.Inserted++
		return nil
	}

	existing.Apply(cfp)
	if err := round.Update(ctx, existing); err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	res.Updated++
	return nil
}
