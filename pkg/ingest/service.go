package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
)

// Service runs ingestion rounds, fetch from all sources followed by a merge
type Service struct {
	Manager *Manager
	Merger  *Merger
}

// RoundResult summarizes a completed round
type RoundResult struct {
	Fetched  int
	Inserted int
	Updated  int
	Duration time.Duration
}

// Run performs one ingestion round. Source failures are contained and never returned,
// the only error is a storage failure which means the whole round was rolled back.
func (s *Service) Run(ctx context.Context) (RoundResult, error) {
	st := time.Now()
	cfps := s.Manager.FetchAll(ctx)

	mr, err := s.Merger.Merge(ctx, cfps)
	if err != nil {
		return RoundResult{Fetched: len(cfps), Duration: time.Since(st)}, fmt.Errorf("merge %d CFPs: %w", len(cfps), err)
	}

	res := RoundResult{Fetched: len(cfps), Inserted: mr.Inserted, Updated: mr.Updated, Duration: time.Since(st)}
	lgr.Printf("[INFO] ingestion round completed in %v, fetched %d, inserted %d, updated %d",
		res.Duration.Round(time.Millisecond), res.Fetched, res.Inserted, res.Updated)
	return res, nil
}
