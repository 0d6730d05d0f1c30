package main

import (
	"context"

	"github.com/umputun/cfptrack/pkg/ingest"
	"github.com/umputun/cfptrack/pkg/repository"
)

// StoreAdapter exposes the CFP repository as the merge stage storage
type StoreAdapter struct {
	repo *repository.CFPRepository
}

// NewStoreAdapter creates a new store adapter
func NewStoreAdapter(repo *repository.CFPRepository) *StoreAdapter {
	return &StoreAdapter{repo: repo}
}

// BeginRound implements the ingest.Store interface
func (a *StoreAdapter) BeginRound(ctx context.Context) (ingest.Round, error) {
	round, err := a.repo.BeginRound(ctx)
	if err != nil {
		return nil, err // avoid returning a typed nil inside the interface
	}
	return round, nil
}
