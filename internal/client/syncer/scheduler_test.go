package syncer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSurface struct {
	disabledSurface
	calls atomic.Int32
	err   error
}

func (s *countingSurface) SyncData(context.Context) (*Report, error) {
	s.calls.Add(1)
	return nil, s.err
}

func TestScheduler_TriggerRunsPass(t *testing.T) {
	s := &countingSurface{}
	sch := NewScheduler(s, 0, logging.Nop())
	sch.Start(context.Background())
	defer sch.Stop()

	sch.Trigger()
	require.Eventually(t, func() bool { return s.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_PeriodicPass(t *testing.T) {
	s := &countingSurface{err: ErrOffline}
	sch := NewScheduler(s, 10*time.Millisecond, logging.Nop())
	sch.Start(context.Background())
	defer sch.Stop()

	require.Eventually(t, func() bool { return s.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_TriggersCollapse(t *testing.T) {
	s := &countingSurface{}
	sch := NewScheduler(s, 0, logging.Nop())

	for i := 0; i < 5; i++ {
		sch.Trigger()
	}
	sch.Start(context.Background())
	defer sch.Stop()

	require.Eventually(t, func() bool { return s.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 1, s.calls.Load())
}

func TestScheduler_StartStopIdempotent(t *testing.T) {
	sch := NewScheduler(&countingSurface{}, time.Hour, logging.Nop())
	sch.Stop()
	assert.False(t, sch.IsRunning())

	sch.Start(context.Background())
	sch.Start(context.Background())
	assert.True(t, sch.IsRunning())

	sch.Stop()
	sch.Stop()
	assert.False(t, sch.IsRunning())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sch := NewScheduler(&countingSurface{}, time.Hour, logging.Nop())
	sch.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		sch.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit")
	}
}
