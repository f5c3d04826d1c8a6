package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/dbx"
	"github.com/dmitrijs2005/nutrisync/internal/server/models"
	"github.com/dmitrijs2005/nutrisync/internal/server/repositories/records"
	refreshtokensrepo "github.com/dmitrijs2005/nutrisync/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/nutrisync/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr error

	createErr error
	created   []string

	purged   int
	purgeErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr == nil {
		f.created = append(f.created, userID)
	}
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}
func (f *fakeRefreshRepo) DeleteExpired(context.Context, string, time.Time) (int64, error) {
	f.purged++
	return 1, f.purgeErr
}

// memRecords is an in-memory records.Repository with the same ordering
// rules as the PostgreSQL one.
type memRecords struct {
	mu        sync.Mutex
	rows      map[string]*models.Record
	seq       int64
	locks     []string
	lockErr   error
	getErr    error
	upsertErr error
	// racer, when set, is stored just before the next Upsert runs
	racer *models.Record
}

func newMemRecords() *memRecords {
	return &memRecords{rows: map[string]*models.Record{}}
}

func memKey(userID, t, syncID string) string { return userID + "/" + t + "/" + syncID }

func cloneRecord(r *models.Record) *models.Record {
	c := *r
	if r.DeletedAtMs != nil {
		d := *r.DeletedAtMs
		c.DeletedAtMs = &d
	}
	c.Payload = append([]byte(nil), r.Payload...)
	return &c
}

func (m *memRecords) put(r *models.Record) {
	m.seq++
	r.ChangeSeq = m.seq
	c := cloneRecord(r)
	if c.PayloadKey != "" {
		c.Payload = nil
	}
	m.rows[memKey(r.UserID, r.Type, r.SyncID)] = c
}

func (m *memRecords) LockOwner(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks = append(m.locks, userID)
	return m.lockErr
}

func (m *memRecords) GetForUpdate(_ context.Context, userID, t, syncID string) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.rows[memKey(userID, t, syncID)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneRecord(r), nil
}

func (m *memRecords) Upsert(_ context.Context, rec *models.Record) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	if m.racer != nil {
		m.put(m.racer)
		m.racer = nil
	}
	if cur, ok := m.rows[memKey(rec.UserID, rec.Type, rec.SyncID)]; ok && !rec.Beats(cur) {
		return false, nil
	}
	m.put(rec)
	return true, nil
}

func (m *memRecords) ListChanged(_ context.Context, userID, t string, afterSeq int64, limit int) ([]*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Record
	for _, r := range m.rows {
		if r.UserID == userID && r.Type == t && r.ChangeSeq > afterSeq {
			out = append(out, cloneRecord(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChangeSeq < out[j].ChangeSeq })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRecords) DeleteScope(_ context.Context, f records.Filter) (*records.Deleted, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := map[string]bool{}
	for _, id := range f.SyncIDs {
		ids[id] = true
	}
	d := &records.Deleted{}
	for k, r := range m.rows {
		switch {
		case f.UserID != "" && r.UserID != f.UserID,
			f.Type != "" && r.Type != f.Type,
			len(ids) > 0 && !ids[r.SyncID],
			f.UpdatedBeforeMs > 0 && r.UpdatedAtMs >= f.UpdatedBeforeMs,
			f.TombstonesOnly && !r.IsDeleted():
			continue
		}
		delete(m.rows, k)
		d.Count++
		if r.PayloadKey != "" {
			d.PayloadKeys = append(d.PayloadKeys, r.PayloadKey)
		}
	}
	return d, nil
}

type fakeRepoManager struct {
	u   *fakeUsersRepo
	r   *fakeRefreshRepo
	rec *memRecords
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Records(db dbx.DBTX) records.Repository                 { return m.rec }

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	deleted []string
}

func newMemBlobs() *memBlobs { return &memBlobs{objects: map[string][]byte{}} }

func (b *memBlobs) Put(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[key] = append([]byte(nil), data...)
	return nil
}

func (b *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte(nil), data...), nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}
