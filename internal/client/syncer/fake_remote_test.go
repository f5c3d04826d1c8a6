package syncer

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/client"
	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/client/storage"
	"github.com/dmitrijs2005/nutrisync/internal/client/syncer/conflict"
	"github.com/dmitrijs2005/nutrisync/internal/client/syncstate"
	"github.com/dmitrijs2005/nutrisync/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type rowKey struct {
	t  models.EntityType
	id string
}

type stored struct {
	rec *models.Record
	seq int64
}

// fakeBackend keeps remote rows per user and applies the same write guard
// as the real backend: a push is stored unless the stored version wins.
// Every stored write takes the next change sequence number.
type fakeBackend struct {
	mu       sync.Mutex
	rows     map[string]map[rowKey]stored
	seq      int64
	pageSize int
}

func newBackend() *fakeBackend {
	return &fakeBackend{rows: make(map[string]map[rowKey]stored), pageSize: 100}
}

func (b *fakeBackend) put(user string, rec *models.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store(user, rec)
}

func (b *fakeBackend) store(user string, rec *models.Record) {
	if b.rows[user] == nil {
		b.rows[user] = make(map[rowKey]stored)
	}
	c := rec.Clone()
	c.LocalID = 0
	c.SyncStatus = ""
	b.seq++
	b.rows[user][rowKey{rec.Type, rec.SyncID}] = stored{rec: c, seq: b.seq}
}

func (b *fakeBackend) push(user string, rec *models.Record) *client.PushAck {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur, ok := b.rows[user][rowKey{rec.Type, rec.SyncID}]
	if !ok || conflict.Resolve(cur.rec, rec) != conflict.KeepLocal {
		b.store(user, rec)
		return &client.PushAck{Applied: true}
	}
	return &client.PushAck{Current: cur.rec.Clone()}
}

func (b *fakeBackend) pull(user string, t models.EntityType, after int64, limit int) *client.PullPage {
	b.mu.Lock()
	defer b.mu.Unlock()

	if limit <= 0 || limit > b.pageSize {
		limit = b.pageSize
	}
	var changed []stored
	for k, r := range b.rows[user] {
		if k.t == t && r.seq > after {
			changed = append(changed, r)
		}
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i].seq < changed[j].seq })

	page := &client.PullPage{NextSeq: after}
	if len(changed) > limit {
		changed = changed[:limit]
		page.More = true
	}
	for _, r := range changed {
		page.Records = append(page.Records, r.rec.Clone())
		page.NextSeq = r.seq
	}
	return page
}

func (b *fakeBackend) get(user string, t models.EntityType, id string) *models.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.rows[user][rowKey{t, id}]; ok {
		return r.rec.Clone()
	}
	return nil
}

type fakeRemote struct {
	backend *fakeBackend

	mu       sync.Mutex
	user     string
	pingErr  error
	pushErr  error
	failPush map[string]error
	// staleAck answers pushes of these sync ids with the given record
	// without storing anything.
	staleAck map[string]*models.Record
	pullErr  error
	pullHook func()
	pageHook func(*client.PullPage)

	pings atomic.Int32
	pulls atomic.Int32

	block       chan struct{}
	started     chan struct{}
	startedOnce sync.Once
}

func (r *fakeRemote) Identity() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user
}

func (r *fakeRemote) setUser(u string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = u
}

func (r *fakeRemote) Ping(context.Context) error {
	r.pings.Add(1)
	return r.pingErr
}

func (r *fakeRemote) Push(_ context.Context, rec *models.Record) (*client.PushAck, error) {
	if r.pushErr != nil {
		return nil, r.pushErr
	}
	if err := r.failPush[rec.SyncID]; err != nil {
		return nil, err
	}
	if cur := r.staleAck[rec.SyncID]; cur != nil {
		return &client.PushAck{Current: cur.Clone()}, nil
	}
	return r.backend.push(r.Identity(), rec), nil
}

func (r *fakeRemote) Pull(_ context.Context, t models.EntityType, afterSeq int64, limit int) (*client.PullPage, error) {
	r.pulls.Add(1)
	if r.block != nil {
		r.startedOnce.Do(func() { close(r.started) })
		<-r.block
	}
	if r.pullErr != nil {
		return nil, r.pullErr
	}
	out := r.backend.pull(r.Identity(), t, afterSeq, limit)
	if r.pageHook != nil {
		r.pageHook(out)
	}
	if r.pullHook != nil {
		r.pullHook()
	}
	return out, nil
}

type device struct {
	db     *sql.DB
	repo   *records.SQLiteRepository
	state  *syncstate.Store
	remote *fakeRemote
	coord  *Coordinator
}

func newDevice(t *testing.T, b *fakeBackend, user string, clock *fakeClock) *device {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	d := &device{
		db:     db,
		repo:   records.NewSQLiteRepository(db).WithClock(clock.now),
		state:  syncstate.New(db),
		remote: &fakeRemote{backend: b, user: user},
	}
	d.coord = NewCoordinator(d.repo, d.remote, d.state, logging.Nop()).WithClock(clock.now)
	return d
}

// view is a comparable projection of a record.
type view struct {
	Type      models.EntityType
	SyncID    string
	UpdatedAt time.Time
	Deleted   bool
	Hash      string
}

func dump(t *testing.T, d *device) []view {
	t.Helper()
	var out []view
	for _, typ := range models.SyncOrder {
		recs, err := d.repo.ListChangedSince(context.Background(), typ, time.Time{})
		require.NoError(t, err)
		for _, r := range recs {
			out = append(out, view{r.Type, r.SyncID, r.UpdatedAt, r.IsDeleted(), r.Hash()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].SyncID < out[j].SyncID
	})
	return out
}
