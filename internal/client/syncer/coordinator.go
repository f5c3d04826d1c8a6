package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/client"
	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/client/syncer/conflict"
	"github.com/dmitrijs2005/nutrisync/internal/logging"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
	"golang.org/x/sync/singleflight"
)

const passKey = "sync"

// Remote is the part of the remote client a pass needs.
type Remote interface {
	Identity() string
	Ping(ctx context.Context) error
	Push(ctx context.Context, rec *models.Record) (*client.PushAck, error)
	Pull(ctx context.Context, t models.EntityType, afterSeq int64, limit int) (*client.PullPage, error)
}

// StateStore persists change sequence cursors and the last sync time.
type StateStore interface {
	Cursors(ctx context.Context) (map[models.EntityType]int64, error)
	LastSyncAt(ctx context.Context) (time.Time, error)
	CommitRun(ctx context.Context, cursors map[models.EntityType]int64, at time.Time) error
	Clear(ctx context.Context) error
	BindIdentity(ctx context.Context, identity string) (bool, error)
}

type Coordinator struct {
	local  records.Repository
	remote Remote
	state  StateStore
	log    logging.Logger
	now    func() time.Time

	group  singleflight.Group
	passMu sync.Mutex
	// enqueued runs once a caller is attached to a pass and before it waits.
	enqueued func()

	mu   sync.Mutex
	snap Snapshot
	subs broadcaster
}

func NewCoordinator(local records.Repository, remote Remote, state StateStore, log logging.Logger) *Coordinator {
	return &Coordinator{
		local:  local,
		remote: remote,
		state:  state,
		log:    log.With("module", "syncer"),
		now:    time.Now,
		snap:   Snapshot{Configured: true, State: StateIdle},
	}
}

// WithClock replaces the clock used for the last-sync timestamp.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// Restore loads the persisted last sync time into the status.
func (c *Coordinator) Restore(ctx context.Context) error {
	at, err := c.state.LastSyncAt(ctx)
	if err != nil {
		return fmt.Errorf("failed to load last sync time: %w", err)
	}
	c.update(func(s *Snapshot) { s.LastSyncAt = at })
	return nil
}

func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.Identity = c.remote.Identity()
	return s
}

// Subscribe returns a channel that receives the current snapshot and every
// later change. The returned func unsubscribes and closes the channel.
func (c *Coordinator) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	s := c.snap
	s.Identity = c.remote.Identity()
	id, ch := c.subs.add(s)
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			c.subs.remove(id)
			c.mu.Unlock()
		})
	}
}

func (c *Coordinator) update(fn func(*Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.snap)
	s := c.snap
	s.Identity = c.remote.Identity()
	c.subs.publish(s)
}

// SyncData runs one pass, or joins the pass already running. Without a
// signed-in identity or a reachable backend it returns ErrNotSignedIn or
// ErrOffline and leaves the state untouched.
func (c *Coordinator) SyncData(ctx context.Context) (*Report, error) {
	identity := c.remote.Identity()
	if identity == "" {
		return nil, ErrNotSignedIn
	}

	ch := c.group.DoChan(passKey, func() (any, error) {
		return c.pass(ctx, identity)
	})
	if c.enqueued != nil {
		c.enqueued()
	}
	res := <-ch
	if res.Shared {
		c.log.Debug(ctx, "joined running sync pass")
	}
	rep, _ := res.Val.(*Report)
	return rep, res.Err
}

// ClearSyncMeta forgets all cursors and the last sync time so the next pass
// re-pulls the full remote history. Local records are not touched.
func (c *Coordinator) ClearSyncMeta(ctx context.Context) error {
	if !c.passMu.TryLock() {
		return ErrSyncInProgress
	}
	defer c.passMu.Unlock()

	if err := c.state.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear sync metadata: %w", err)
	}
	c.update(func(s *Snapshot) { s.LastSyncAt = time.Time{} })
	c.log.Info(ctx, "sync metadata cleared")
	return nil
}

func (c *Coordinator) pass(ctx context.Context, identity string) (*Report, error) {
	if err := c.remote.Ping(ctx); err != nil {
		c.log.Debug(ctx, "remote unreachable, skipping sync", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}

	c.passMu.Lock()
	defer c.passMu.Unlock()

	c.update(func(s *Snapshot) {
		s.State = StateSyncing
		s.InProgress = true
	})

	rep, err := c.run(ctx, identity)
	if err != nil {
		kind := KindOf(err)
		c.log.Error(ctx, "sync failed", "error", err, "kind", string(kind))
		c.update(func(s *Snapshot) {
			s.State = StateError
			s.InProgress = false
			s.LastError = err.Error()
			s.LastErrorKind = kind
		})
		return rep, err
	}

	total := rep.Total()
	c.log.Info(ctx, "sync finished",
		"pushed", total.Pushed, "push_failed", total.PushFailed, "rejected", total.Rejected,
		"pulled", total.Pulled, "inserted", total.Inserted, "applied", total.Applied,
		"duration", rep.FinishedAt.Sub(rep.StartedAt))
	c.update(func(s *Snapshot) {
		s.State = StateIdle
		s.InProgress = false
		s.LastSyncAt = rep.FinishedAt
		s.LastError = ""
		s.LastErrorKind = ""
		if total.Rejected > 0 {
			s.LastError = fmt.Sprintf("backend kept an older version of %d record(s)", total.Rejected)
			s.LastErrorKind = KindRejected
		}
	})
	return rep, nil
}

func (c *Coordinator) run(ctx context.Context, identity string) (*Report, error) {
	rep := newReport(identity, timex.Truncate(c.now()))

	reset, err := c.state.BindIdentity(ctx, identity)
	if err != nil {
		return rep, localErr(PhaseGate, "", err)
	}
	if reset {
		rep.CursorReset = true
		c.log.Info(ctx, "account changed on this device, cursors reset")
	}

	cursors, err := c.state.Cursors(ctx)
	if err != nil {
		return rep, localErr(PhaseGate, "", err)
	}

	next := make(map[models.EntityType]int64, len(models.SyncOrder))
	for _, t := range models.SyncOrder {
		cur, err := c.syncType(ctx, t, cursors[t], rep.Types[t])
		if err != nil {
			return rep, err
		}
		next[t] = cur
	}

	if ctx.Err() != nil {
		return rep, cancelled(ctx, PhaseCommit, "")
	}
	finished := timex.Truncate(c.now())
	if err := c.state.CommitRun(ctx, next, finished); err != nil {
		return rep, localErr(PhaseCommit, "", err)
	}
	rep.Cursors = next
	rep.FinishedAt = finished
	return rep, nil
}

func (c *Coordinator) syncType(ctx context.Context, t models.EntityType, cursor int64, tr *TypeReport) (int64, error) {
	log := c.log.With("type", string(t))

	if err := c.push(ctx, log, t, tr); err != nil {
		return cursor, err
	}

	next := cursor
	for {
		if ctx.Err() != nil {
			return cursor, cancelled(ctx, PhasePull, t)
		}
		page, err := c.remote.Pull(ctx, t, next, 0)
		if err != nil {
			return cursor, &RunError{Kind: remoteKind(ctx, err), Phase: PhasePull, Type: t, Err: err}
		}
		tr.Pages++
		tr.Pulled += len(page.Records)

		if err := c.resolve(ctx, log, t, page.Records, tr); err != nil {
			return cursor, err
		}

		if page.More && page.NextSeq <= next {
			return cursor, &RunError{Kind: KindMalformed, Phase: PhasePull, Type: t,
				Err: fmt.Errorf("%w: pull page after %d did not advance", models.ErrMalformed, next)}
		}
		if page.NextSeq > next {
			next = page.NextSeq
		}
		if !page.More {
			break
		}
	}
	log.Debug(ctx, "type synced", "pushed", tr.Pushed, "pulled", tr.Pulled, "pages", tr.Pages, "cursor", next)
	return next, nil
}

func (c *Coordinator) push(ctx context.Context, log logging.Logger, t models.EntityType, tr *TypeReport) error {
	pending, err := c.local.ListUnsynced(ctx, t)
	if err != nil {
		return localErr(PhasePush, t, err)
	}

	for _, rec := range pending {
		if ctx.Err() != nil {
			return cancelled(ctx, PhasePush, t)
		}

		ack, err := c.remote.Push(ctx, rec)
		if err != nil {
			kind := remoteKind(ctx, err)
			if kind == KindAuthorization || kind == KindCancelled {
				return &RunError{Kind: kind, Phase: PhasePush, Type: t, Err: err}
			}
			log.Warn(ctx, "push failed", "sync_id", rec.SyncID, "error", err)
			tr.PushFailed++
			if err := c.mark(ctx, rec, models.StatusFailed, tr); err != nil {
				return localErr(PhasePush, t, err)
			}
			continue
		}

		if ack.Applied {
			tr.Pushed++
			if err := c.mark(ctx, rec, models.StatusSynced, tr); err != nil {
				return localErr(PhasePush, t, err)
			}
			continue
		}

		current := ack.Current
		if err := current.Check(); err != nil || current.Type != t || current.SyncID != rec.SyncID {
			if err == nil {
				err = fmt.Errorf("%w: push of %s answered with %s %s", models.ErrMalformed, rec.SyncID, current.Type, current.SyncID)
			}
			return &RunError{Kind: KindMalformed, Phase: PhasePush, Type: t, Err: err}
		}

		switch conflict.Resolve(rec, current) {
		case conflict.TakeRemote:
			ok, err := c.local.ApplyRemote(ctx, current, &rec.UpdatedAt)
			if err != nil {
				return localErr(PhasePush, t, err)
			}
			if ok {
				tr.Applied++
			} else {
				tr.Skipped++
			}
		case conflict.Identical:
			tr.Identical++
			if err := c.mark(ctx, rec, models.StatusSynced, tr); err != nil {
				return localErr(PhasePush, t, err)
			}
		case conflict.KeepLocal:
			// The backend guard disagrees with ours. The record stays failed
			// so a later pass retries it, and the pass reports the rejection.
			log.Warn(ctx, "backend kept an older version", "sync_id", rec.SyncID,
				"local_updated_at", rec.UpdatedAt, "remote_updated_at", current.UpdatedAt)
			tr.Rejected++
			if err := c.mark(ctx, rec, models.StatusFailed, tr); err != nil {
				return localErr(PhasePush, t, err)
			}
		}
	}
	return nil
}

func (c *Coordinator) resolve(ctx context.Context, log logging.Logger, t models.EntityType, pulled []*models.Record, tr *TypeReport) error {
	for _, rec := range pulled {
		if ctx.Err() != nil {
			return cancelled(ctx, PhaseResolve, t)
		}
		if err := rec.Check(); err != nil {
			return &RunError{Kind: KindMalformed, Phase: PhaseResolve, Type: t, Err: err}
		}
		if rec.Type != t {
			return &RunError{Kind: KindMalformed, Phase: PhaseResolve, Type: t,
				Err: fmt.Errorf("%w: pulled %s record %s", models.ErrMalformed, rec.Type, rec.SyncID)}
		}
		local, err := c.local.GetBySyncID(ctx, t, rec.SyncID)
		if err != nil {
			return localErr(PhaseResolve, t, err)
		}

		if local == nil {
			ok, err := c.local.ApplyRemote(ctx, rec, nil)
			if err != nil {
				return localErr(PhaseResolve, t, err)
			}
			if ok {
				tr.Inserted++
			} else {
				tr.Skipped++
			}
			continue
		}

		switch conflict.Resolve(local, rec) {
		case conflict.TakeRemote:
			ok, err := c.local.ApplyRemote(ctx, rec, &local.UpdatedAt)
			if err != nil {
				return localErr(PhaseResolve, t, err)
			}
			if ok {
				tr.Applied++
			} else {
				tr.Skipped++
			}
		case conflict.KeepLocal:
			tr.KeptLocal++
			if local.SyncStatus == models.StatusSynced {
				log.Debug(ctx, "local version newer than synced remote, repushing", "sync_id", local.SyncID)
				if err := c.mark(ctx, local, models.StatusPending, tr); err != nil {
					return localErr(PhaseResolve, t, err)
				}
			}
		case conflict.Identical:
			tr.Identical++
			if local.SyncStatus != models.StatusSynced {
				if err := c.mark(ctx, local, models.StatusSynced, tr); err != nil {
					return localErr(PhaseResolve, t, err)
				}
			}
		}
	}
	return nil
}

func (c *Coordinator) mark(ctx context.Context, rec *models.Record, st models.SyncStatus, tr *TypeReport) error {
	ok, err := c.local.MarkStatus(ctx, rec.Type, rec.SyncID, st, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if !ok {
		tr.Skipped++
	}
	return nil
}

// IsGated reports whether err means the pass never started.
func IsGated(err error) bool {
	return errors.Is(err, ErrNotSignedIn) || errors.Is(err, ErrOffline) || errors.Is(err, ErrNotConfigured)
}
