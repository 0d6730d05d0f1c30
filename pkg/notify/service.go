package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cfptrack/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/poster.go -pkg mocks -skip-ensure -fmt goimports . Poster

// ErrNotConfigured is returned when no webhook is set up
var ErrNotConfigured = errors.New("notifications are not configured")

// ErrDelivery is returned when at least one message was not delivered
var ErrDelivery = errors.New("notification delivery failed")

// Store provides CFPs created after a point in time
type Store interface {
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.CFP, error)
}

// Poster delivers a single message
type Poster interface {
	Post(ctx context.Context, msg Message) error
}

// Service notifies about CFPs stored within a trailing window
type Service struct {
	store  Store
	poster Poster // nil if notifications are not configured
	now    func() time.Time
}

// NewService makes a notification service, poster can be nil
func NewService(store Store, poster Poster) *Service {
	return &Service{store: store, poster: poster, now: time.Now}
}

// NotifyResult counts delivered and failed messages
type NotifyResult struct {
	Found  int
	Sent   int
	Failed int
}

// NotifyNew posts one message per CFP created within window. Every CFP is attempted,
// the result is ErrDelivery if any of them failed. Nothing found is not an error.
func (s *Service) NotifyNew(ctx context.Context, window time.Duration) (NotifyResult, error) {
	if s.poster == nil {
		lgr.Printf("[WARN] slack webhook is not configured, skipping notifications")
		return NotifyResult{}, ErrNotConfigured
	}

	since := s.now().UTC().Add(-window)
	cfps, err := s.store.ListCreatedSince(ctx, since)
	if err != nil {
		return NotifyResult{}, fmt.Errorf("get new cfps: %w", err)
	}
	res := NotifyResult{Found: len(cfps)}
	if len(cfps) == 0 {
		lgr.Printf("[INFO] no new CFPs found in the last %v", window)
		return res, nil
	}

	lgr.Printf("[INFO] found %d new CFPs to notify about", len(cfps))
	for _, c := range cfps {
		if err := s.poster.Post(ctx, FormatCFP(c)); err != nil {
			lgr.Printf("[ERROR] failed to post CFP %q: %v", c.ConferenceName, err)
			res.Failed++
			continue
		}
		lgr.Printf("[DEBUG] posted CFP %q", c.ConferenceName)
		res.Sent++
	}

	if res.Failed > 0 {
		return res, fmt.Errorf("%w: %d of %d messages", ErrDelivery, res.Failed, res.Found)
	}
	return res, nil
}
