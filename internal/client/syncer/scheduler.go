package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/logging"
)

const DefaultPassTimeout = 2 * time.Minute

// Scheduler runs passes in the background: periodically and whenever
// Trigger is called, for example after a local mutation. Triggers that
// arrive while a pass runs collapse into one follow-up pass.
type Scheduler struct {
	surface  Surface
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	trigger chan struct{}

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. A non-positive interval disables the
// periodic pass; Trigger still works.
func NewScheduler(s Surface, interval time.Duration, log logging.Logger) *Scheduler {
	return &Scheduler{
		surface:  s,
		interval: interval,
		timeout:  DefaultPassTimeout,
		log:      log.With("module", "sync_scheduler"),
		trigger:  make(chan struct{}, 1),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})

	s.wg.Add(1)
	go s.loop(ctx, s.stopCh)
	s.log.Info(ctx, "sync scheduler started", "interval", s.interval)
}

// Stop waits for the loop, including a pass in flight, to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Trigger requests a pass without blocking.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop(ctx context.Context, stop <-chan struct{}) {
	defer s.wg.Done()

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-tick:
			s.runOnce(ctx)
		case <-s.trigger:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.surface.SyncData(ctx)
	switch {
	case err == nil:
	case IsGated(err), errors.Is(err, context.Canceled):
		s.log.Debug(ctx, "background sync skipped", "error", err)
	default:
		s.log.Warn(ctx, "background sync failed", "error", err)
	}
}
