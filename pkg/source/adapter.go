// Package source implements adapters pulling call for papers listings from upstream sources
// and the shared fetch-then-parse orchestration all of them run through.
package source

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/normalize"
)

// Adapter translates one upstream source into canonical records. R is the source-specific raw record.
// FetchRaw performs network I/O, ParseOne must be pure.
type Adapter[R any] interface {
	FetchRaw(ctx context.Context) ([]R, error)
	ParseOne(raw R) (domain.CFP, error)
}

// Runner wraps an Adapter with the shared orchestration and tracks when the adapter last completed a raw fetch.
// Each Runner owns its state, nothing is shared between runners.
type Runner[R any] struct {
	name    string
	adapter Adapter[R]
	now     func() time.Time

	mu        sync.RWMutex
	lastFetch time.Time
}

// NewRunner makes a runner for the adapter, name is used in logs
func NewRunner[R any](name string, adapter Adapter[R]) *Runner[R] {
	return &Runner[R]{name: name, adapter: adapter, now: time.Now}
}

// GetAll fetches raw records and parses each of them independently.
// A failed fetch gives an empty result, a failed record is logged and skipped. GetAll never fails.
// The fetch time is recorded once the raw fetch returns, failed or not, unless ctx was cancelled.
func (r *Runner[R]) GetAll(ctx context.Context) []domain.CFP {
	raws, err := r.adapter.FetchRaw(ctx)
	if ctx.Err() != nil {
		lgr.Printf("[WARN] fetch from %s interrupted: %v", r.name, ctx.Err())
		return []domain.CFP{}
	}

	r.mu.Lock()
	r.lastFetch = r.now().UTC()
	r.mu.Unlock()

	if err != nil {
		lgr.Printf("[ERROR] failed to fetch CFPs from %s: %v", r.name, err)
		return []domain.CFP{}
	}

	res := make([]domain.CFP, 0, len(raws))
	for i, raw := range raws {
		cfp, err := r.parseOne(raw)
		if err != nil {
			lgr.Printf("[ERROR] failed to parse CFP #%d from %s: %v", i, r.name, err)
			continue
		}
		res = append(res, cfp)
	}
	lgr.Printf("[INFO] parsed %d/%d CFPs from %s", len(res), len(raws), r.name)
	return res
}

// Name returns the name the runner logs with
func (r *Runner[R]) Name() string { return r.name }

// LastFetch returns the time of the last completed raw fetch, false if there was none yet
func (r *Runner[R]) LastFetch() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastFetch, !r.lastFetch.IsZero()
}

// parseOne runs the adapter's parser, turns a panic into an error and enforces record invariants
func (r *Runner[R]) parseOne(raw R) (cfp domain.CFP, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parser panic: %v", rec)
		}
	}()

	cfp, err = r.adapter.ParseOne(raw)
	if err != nil {
		return domain.CFP{}, err
	}
	cfp.AlignDates()
	if err := cfp.Validate(); err != nil {
		return domain.CFP{}, fmt.Errorf("invalid record: %w", err)
	}
	return cfp, nil
}

// parseDateLogged parses an optional date, an unparseable non-empty value is reported as a warning
func parseDateLogged(raw, source string) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d := normalize.OptionalDate(raw)
	if d == nil {
		lgr.Printf("[WARN] %s: can't parse date %q", source, raw)
	}
	return d
}
