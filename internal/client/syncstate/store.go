// Package syncstate persists the bookkeeping of the sync engine: one pull
// cursor per entity type, the time of the last successful pass and the
// stable device identity. Values live in the local metadata table.
//
// A cursor is the highest backend change sequence applied locally, not a
// timestamp, so a late upload of an old edit is still pulled.
package syncstate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/nutrisync/internal/dbx"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
	"github.com/google/uuid"
)

const (
	cursorPrefix  = "sync.seq."
	lastSyncKey   = "sync.last_sync_at"
	deviceIDKey   = "sync.device_id"
	userScopedKey = "sync.identity"
)

// Store reads and writes sync bookkeeping.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func cursorKey(t models.EntityType) string { return cursorPrefix + string(t) }

func getInt(ctx context.Context, r metadata.Repository, key string) (int64, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt %s value %q: %w", key, v, err)
	}
	return n, nil
}

func setInt(ctx context.Context, r metadata.Repository, key string, n int64) error {
	return r.Set(ctx, key, []byte(strconv.FormatInt(n, 10)))
}

// Cursor returns the pull cursor of t; zero means "from the beginning".
func (s *Store) Cursor(ctx context.Context, t models.EntityType) (int64, error) {
	return getInt(ctx, s.repo(s.db), cursorKey(t))
}

// Cursors returns the cursors of every synchronized type.
func (s *Store) Cursors(ctx context.Context) (map[models.EntityType]int64, error) {
	out := make(map[models.EntityType]int64, len(models.SyncOrder))
	for _, t := range models.SyncOrder {
		c, err := s.Cursor(ctx, t)
		if err != nil {
			return nil, err
		}
		out[t] = c
	}
	return out, nil
}

// LastSyncAt is the zero time until a pass has completed.
func (s *Store) LastSyncAt(ctx context.Context) (time.Time, error) {
	ms, err := getInt(ctx, s.repo(s.db), lastSyncKey)
	if err != nil || ms == 0 {
		return time.Time{}, err
	}
	return timex.FromMillis(ms), nil
}

// CommitRun stores the cursors reached by a successful pass together with
// its completion time, atomically. Cursors never move backwards.
func (s *Store) CommitRun(ctx context.Context, cursors map[models.EntityType]int64, at time.Time) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		for t, c := range cursors {
			prev, err := getInt(ctx, r, cursorKey(t))
			if err != nil {
				return err
			}
			if c <= prev {
				continue
			}
			if err := setInt(ctx, r, cursorKey(t), c); err != nil {
				return err
			}
		}
		return setInt(ctx, r, lastSyncKey, timex.ToMillis(at))
	})
}

// Clear forgets all cursors and the last sync time so the next pass pulls
// everything again. Records and the device id are untouched.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.DeletePrefix(ctx, cursorPrefix); err != nil {
			return err
		}
		return r.Delete(ctx, lastSyncKey)
	})
}

// DeviceID returns the stable identity of this install, creating it on
// first use.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	r := s.repo(s.db)
	v, err := r.Get(ctx, deviceIDKey)
	if err != nil {
		return "", err
	}
	if v != nil {
		return string(v), nil
	}
	id := uuid.NewString()
	if err := r.Set(ctx, deviceIDKey, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

// BindIdentity records which account the cursors belong to. When a
// different account signs in on this device the cursors are cleared, since
// they describe another user's remote history.
func (s *Store) BindIdentity(ctx context.Context, identity string) (bool, error) {
	r := s.repo(s.db)
	prev, err := r.Get(ctx, userScopedKey)
	if err != nil {
		return false, err
	}
	if string(prev) == identity {
		return false, nil
	}
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.DeletePrefix(ctx, cursorPrefix); err != nil {
			return err
		}
		if err := r.Delete(ctx, lastSyncKey); err != nil {
			return err
		}
		return r.Set(ctx, userScopedKey, []byte(identity))
	}); err != nil {
		return false, err
	}
	return prev != nil, nil
}
