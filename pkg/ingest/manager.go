// Package ingest runs ingestion rounds: concurrent fetch from all registered sources
// and merge of the results into storage as a single unit.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/cfptrack/pkg/domain"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source

// ErrUnknownAdapter is returned for names which were never registered
var ErrUnknownAdapter = errors.New("unknown adapter")

// Source is a registered adapter as seen by the manager. GetAll must not fail,
// it returns whatever it could fetch and parse.
type Source interface {
	GetAll(ctx context.Context) []domain.CFP
	LastFetch() (time.Time, bool)
}

// Manager keeps the registry of sources and fetches from all of them concurrently
type Manager struct {
	timeout time.Duration

	mu      sync.RWMutex
	names   []string
	sources map[string]Source
}

// ManagerOpts defines manager parameters
type ManagerOpts struct {
	AdapterTimeout time.Duration // per-source time limit for a round, 0 means no limit
}

// NewManager makes an empty manager
func NewManager(opts ManagerOpts) *Manager {
	return &Manager{timeout: opts.AdapterTimeout, sources: map[string]Source{}}
}

// Register adds a source under a unique name. Registration order is the order of names and fetched records.
func (m *Manager) Register(name string, src Source) error {
	if name == "" {
		return errors.New("empty adapter name")
	}
	if src == nil {
		return fmt.Errorf("nil source for %s", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[name]; ok {
		return fmt.Errorf("adapter %s already registered", name)
	}
	m.names = append(m.names, name)
	m.sources[name] = src
	return nil
}

// Names returns registered names in registration order
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]string, len(m.names))
	copy(res, m.names)
	return res
}

// Lookup returns the source registered under name
func (m *Manager) Lookup(name string) (Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAdapter, name)
	}
	return src, nil
}

// LastFetchTime returns the last completed raw fetch of the named source,
// false if the name is unknown or the source never completed a fetch
func (m *Manager) LastFetchTime(name string) (time.Time, bool) {
	src, err := m.Lookup(name)
	if err != nil {
		return time.Time{}, false
	}
	return src.LastFetch()
}

// FetchAll runs every source concurrently and waits for all of them.
// The result keeps registration order across sources and each source's own order inside its segment.
// A source which panics contributes nothing, the rest of the round is not affected.
func (m *Manager) FetchAll(ctx context.Context) []domain.CFP {
	m.mu.RLock()
	names := make([]string, len(m.names))
	copy(names, m.names)
	sources := make([]Source, len(names))
	for i, name := range names {
		sources[i] = m.sources[name]
	}
	m.mu.RUnlock()

	results := make([][]domain.CFP, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			results[i] = m.fetchOne(ctx, names[i], src)
			return nil
		})
	}
	_ = g.Wait() // fetchOne never fails

	total := 0
	for _, r := range results {
		total += len(r)
	}
	res := make([]domain.CFP, 0, total)
	for _, r := range results {
		res = append(res, r...)
	}
	lgr.Printf("[INFO] fetched %d CFPs from %d adapters", len(res), len(sources))
	return res
}

func (m *Manager) fetchOne(ctx context.Context, name string, src Source) (res []domain.CFP) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] adapter %s failed: %v", name, r)
			res = nil
		}
	}()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	lgr.Printf("[DEBUG] fetching CFPs from %s", name)
	st := time.Now()
	res = src.GetAll(ctx)
	lgr.Printf("[DEBUG] adapter %s returned %d CFPs in %v", name, len(res), time.Since(st).Round(time.Millisecond))
	return res
}
