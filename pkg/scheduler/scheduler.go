// Package scheduler runs ingestion rounds in the background, on demand and on a timer,
// and periodically sends notifications about newly stored CFPs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/cfptrack/pkg/ingest"
	"github.com/umputun/cfptrack/pkg/notify"
)

//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/setting_manager.go -pkg mocks -skip-ensure -fmt goimports . SettingManager

// LastIngestionKey is the setting holding the completion time of the last successful round
const LastIngestionKey = "last_ingestion"

// Ingester runs a single ingestion round
type Ingester interface {
	Run(ctx context.Context) (ingest.RoundResult, error)
}

// Notifier sends notifications about CFPs stored within a window
type Notifier interface {
	NotifyNew(ctx context.Context, window time.Duration) (notify.NotifyResult, error)
}

// SettingManager keeps scheduler state
type SettingManager interface {
	GetTime(ctx context.Context, key string) (time.Time, bool, error)
	SetTime(ctx context.Context, key string, t time.Time) error
}

// Scheduler owns a single ingestion executor. Rounds never overlap, a trigger which arrives
// while the queue is full joins the round already waiting.
type Scheduler struct {
	ingester       Ingester
	notifier       Notifier
	settingManager SettingManager

	ingestInterval time.Duration
	notifyInterval time.Duration
	notifyWindow   time.Duration

	triggerCh chan struct{}
	roundMu   sync.Mutex // serializes rounds of the executor and RunIngestion
	cancel    context.CancelFunc
	group     *errgroup.Group
}

// Params defines scheduler dependencies and intervals
type Params struct {
	Ingester       Ingester
	Notifier       Notifier // optional
	SettingManager SettingManager

	IngestInterval time.Duration // 0 disables periodic ingestion
	NotifyInterval time.Duration // 0 disables periodic notification
	NotifyWindow   time.Duration
	QueueSize      int // pending on-demand rounds
}

// NewScheduler makes a scheduler, Start has to be called to run it
func NewScheduler(p Params) *Scheduler {
	if p.QueueSize <= 0 {
		p.QueueSize = 1
	}
	if p.NotifyWindow <= 0 {
		p.NotifyWindow = 24 * time.Hour
	}
	return &Scheduler{
		ingester:       p.Ingester,
		notifier:       p.Notifier,
		settingManager: p.SettingManager,
		ingestInterval: p.IngestInterval,
		notifyInterval: p.NotifyInterval,
		notifyWindow:   p.NotifyWindow,
		triggerCh:      make(chan struct{}, p.QueueSize),
	}
}

// Start launches the executor and periodic workers
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.group = &errgroup.Group{}

	s.group.Go(func() error {
		s.ingestionWorker(ctx)
		return nil
	})

	if s.notifier != nil && s.notifyInterval > 0 {
		s.group.Go(func() error {
			s.notificationWorker(ctx)
			return nil
		})
	}

	lgr.Printf("[INFO] scheduler started with ingestion interval %v, notification interval %v",
		s.ingestInterval, s.notifyInterval)
}

// Stop cancels workers and waits for a round in progress to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	if s.group != nil {
		_ = s.group.Wait()
	}
	lgr.Printf("[INFO] scheduler stopped")
}

// TriggerIngestion queues a round without waiting for it. Returns false if a round
// was already queued and this request was merged into it.
func (s *Scheduler) TriggerIngestion() bool {
	select {
	case s.triggerCh <- struct{}{}:
		lgr.Printf("[DEBUG] ingestion round queued")
		return true
	default:
		lgr.Printf("[DEBUG] ingestion round already queued")
		return false
	}
}

// RunIngestion runs a round synchronously and records its completion time
func (s *Scheduler) RunIngestion(ctx context.Context) (ingest.RoundResult, error) {
	s.roundMu.Lock()
	defer s.roundMu.Unlock()

	res, err := s.ingester.Run(ctx)
	if err != nil {
		return res, fmt.Errorf("ingestion round: %w", err)
	}
	if s.settingManager != nil {
		if err := s.settingManager.SetTime(ctx, LastIngestionKey, time.Now()); err != nil {
			lgr.Printf("[WARN] failed to save last ingestion time: %v", err)
		}
	}
	return res, nil
}

// LastIngestion returns the completion time of the last successful round
func (s *Scheduler) LastIngestion(ctx context.Context) (time.Time, bool, error) {
	if s.settingManager == nil {
		return time.Time{}, false, nil
	}
	t, ok, err := s.settingManager.GetTime(ctx, LastIngestionKey)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get last ingestion: %w", err)
	}
	return t, ok, nil
}

// Notify sends notifications for CFPs created within window, default window if zero
func (s *Scheduler) Notify(ctx context.Context, window time.Duration) (notify.NotifyResult, error) {
	if s.notifier == nil {
		return notify.NotifyResult{}, notify.ErrNotConfigured
	}
	if window <= 0 {
		window = s.notifyWindow
	}
	return s.notifier.NotifyNew(ctx, window)
}

// ingestionWorker executes queued and periodic rounds one at a time
func (s *Scheduler) ingestionWorker(ctx context.Context) {
	var tick <-chan time.Time
	if s.ingestInterval > 0 {
		ticker := time.NewTicker(s.ingestInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.triggerCh:
			s.runRound(ctx, "on demand")
		case <-tick:
			s.runRound(ctx, "periodic")
		}
	}
}

func (s *Scheduler) runRound(ctx context.Context, kind string) {
	lgr.Printf("[INFO] starting %s ingestion round", kind)
	if _, err := s.RunIngestion(ctx); err != nil {
		lgr.Printf("[ERROR] %s ingestion failed: %v", kind, err)
	}
}

// notificationWorker sends notifications for the trailing window on every tick
func (s *Scheduler) notificationWorker(ctx context.Context) {
	ticker := time.NewTicker(s.notifyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.notifier.NotifyNew(ctx, s.notifyWindow)
			if err != nil && !errors.Is(err, notify.ErrNotConfigured) {
				lgr.Printf("[ERROR] periodic notification failed: %v", err)
				continue
			}
			if res.Sent > 0 {
				lgr.Printf("[INFO] sent %d notifications", res.Sent)
			}
		}
	}
}
