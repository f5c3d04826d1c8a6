package syncer

import (
	"context"
	"sync"
)

// Surface is what the rest of the application sees of the sync engine.
type Surface interface {
	Snapshot() Snapshot
	Subscribe() (<-chan Snapshot, func())
	SyncData(ctx context.Context) (*Report, error)
	ClearSyncMeta(ctx context.Context) error
}

// NewSurface returns c when remote sync is enabled. Otherwise it returns a
// surface that always reports NotConfigured and never reaches c.
func NewSurface(enabled bool, c *Coordinator) Surface {
	if !enabled || c == nil {
		return disabledSurface{}
	}
	return c
}

type disabledSurface struct{}

func (disabledSurface) Snapshot() Snapshot { return NotConfigured() }

func (disabledSurface) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	ch <- NotConfigured()
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }
}

func (disabledSurface) SyncData(context.Context) (*Report, error) { return nil, ErrNotConfigured }

func (disabledSurface) ClearSyncMeta(context.Context) error { return ErrNotConfigured }
