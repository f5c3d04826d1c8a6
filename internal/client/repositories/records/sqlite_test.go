package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/storage"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newRepo(t *testing.T) (*SQLiteRepository, *fakeClock, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	clock := &fakeClock{t: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)}
	return NewSQLiteRepository(db).WithClock(clock.now), clock, db
}

func goalRecord(target float64) *models.Record {
	p, _ := json.Marshal(map[string]any{"date": "2024-05-02", "protein_target_grams": target})
	return &models.Record{Type: models.TypeDailyGoal, Payload: p}
}

func foodRecord(date, name string) *models.Record {
	p, _ := json.Marshal(map[string]any{"date": date, "name": name, "source": "manual", "protein_grams": 10})
	return &models.Record{Type: models.TypeFoodEntry, Payload: p}
}

func TestCreate_AssignsIdentityAndPending(t *testing.T) {
	r, clock, _ := newRepo(t)
	ctx := context.Background()

	rec, err := r.Create(ctx, goalRecord(120))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.SyncID)
	assert.Positive(t, rec.LocalID)
	assert.Equal(t, models.StatusPending, rec.SyncStatus)
	assert.Equal(t, clock.t, rec.UpdatedAt)

	got, err := r.GetBySyncID(ctx, models.TypeDailyGoal, rec.SyncID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestCreate_KeepsProvidedSyncIDAndRejectsDuplicate(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	in := goalRecord(100)
	in.SyncID = "fixed-id"
	rec, err := r.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", rec.SyncID)

	_, err = r.Create(ctx, in)
	require.Error(t, err)
}

func TestGetBySyncID_NotExists_ReturnsNilNil(t *testing.T) {
	r, _, _ := newRepo(t)
	rec, err := r.GetBySyncID(context.Background(), models.TypeFoodEntry, "absent")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestUnknownType_Rejected(t *testing.T) {
	r, _, _ := newRepo(t)
	_, err := r.Count(context.Background(), "user_settings")
	require.ErrorIs(t, err, models.ErrUnknownType)
}

func TestUpdate_BumpsUpdatedAtMonotonically(t *testing.T) {
	r, clock, _ := newRepo(t)
	ctx := context.Background()

	rec, err := r.Create(ctx, goalRecord(100))
	require.NoError(t, err)
	ok, err := r.MarkStatus(ctx, rec.Type, rec.SyncID, models.StatusSynced, rec.UpdatedAt)
	require.NoError(t, err)
	require.True(t, ok)

	// clock stalls: updated-at must still move forward
	upd := goalRecord(130)
	upd.SyncID = rec.SyncID
	got, err := r.Update(ctx, upd)
	require.NoError(t, err)
	assert.Equal(t, rec.UpdatedAt.Add(time.Millisecond), got.UpdatedAt)
	assert.Equal(t, models.StatusPending, got.SyncStatus)
	assert.JSONEq(t, string(upd.Payload), string(got.Payload))

	clock.advance(time.Minute)
	got2, err := r.Update(ctx, upd)
	require.NoError(t, err)
	assert.Equal(t, clock.t, got2.UpdatedAt)
}

func TestUpdate_MissingOrDeleted_NotFound(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	upd := goalRecord(1)
	upd.SyncID = "nope"
	_, err := r.Update(ctx, upd)
	require.ErrorIs(t, err, common.ErrorNotFound)

	rec, err := r.Create(ctx, goalRecord(10))
	require.NoError(t, err)
	_, err = r.SoftDelete(ctx, rec.Type, rec.SyncID)
	require.NoError(t, err)

	upd.SyncID = rec.SyncID
	_, err = r.Update(ctx, upd)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSoftDelete_TombstonesAndIsIdempotent(t *testing.T) {
	r, clock, _ := newRepo(t)
	ctx := context.Background()

	rec, err := r.Create(ctx, foodRecord("2024-05-02", "eggs"))
	require.NoError(t, err)

	clock.advance(time.Second)
	del, err := r.SoftDelete(ctx, rec.Type, rec.SyncID)
	require.NoError(t, err)
	require.NotNil(t, del.DeletedAt)
	assert.Equal(t, clock.t, del.UpdatedAt)
	assert.Equal(t, models.StatusPending, del.SyncStatus)

	clock.advance(time.Second)
	again, err := r.SoftDelete(ctx, rec.Type, rec.SyncID)
	require.NoError(t, err)
	assert.Equal(t, del.UpdatedAt, again.UpdatedAt, "second delete must not bump")

	n, err := r.Count(ctx, rec.Type)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// tombstone is still retrievable and visible to sync queries
	got, err := r.GetBySyncID(ctx, rec.Type, rec.SyncID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsDeleted())

	_, err = r.SoftDelete(ctx, rec.Type, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListChangedSince_InclusiveAndOrdered(t *testing.T) {
	r, clock, _ := newRepo(t)
	ctx := context.Background()

	a, err := r.Create(ctx, goalRecord(1))
	require.NoError(t, err)
	clock.advance(time.Second)
	b, err := r.Create(ctx, goalRecord(2))
	require.NoError(t, err)
	clock.advance(time.Second)
	c, err := r.Create(ctx, goalRecord(3))
	require.NoError(t, err)

	got, err := r.ListChangedSince(ctx, models.TypeDailyGoal, b.UpdatedAt)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.SyncID, got[0].SyncID)
	assert.Equal(t, c.SyncID, got[1].SyncID)

	all, err := r.ListChangedSince(ctx, models.TypeDailyGoal, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, a.SyncID, all[0].SyncID)
}

func TestListUnsynced_PendingAndFailedOnly(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	pending, err := r.Create(ctx, goalRecord(1))
	require.NoError(t, err)
	synced, err := r.Create(ctx, goalRecord(2))
	require.NoError(t, err)
	failed, err := r.Create(ctx, goalRecord(3))
	require.NoError(t, err)

	_, err = r.MarkStatus(ctx, synced.Type, synced.SyncID, models.StatusSynced, synced.UpdatedAt)
	require.NoError(t, err)
	_, err = r.MarkStatus(ctx, failed.Type, failed.SyncID, models.StatusFailed, failed.UpdatedAt)
	require.NoError(t, err)

	got, err := r.ListUnsynced(ctx, models.TypeDailyGoal)
	require.NoError(t, err)
	ids := []string{}
	for _, g := range got {
		ids = append(ids, g.SyncID)
	}
	assert.ElementsMatch(t, []string{pending.SyncID, failed.SyncID}, ids)
}

func TestMarkStatus_LosesToNewerEdit(t *testing.T) {
	r, clock, _ := newRepo(t)
	ctx := context.Background()

	rec, err := r.Create(ctx, goalRecord(1))
	require.NoError(t, err)

	clock.advance(time.Second)
	upd := goalRecord(5)
	upd.SyncID = rec.SyncID
	_, err = r.Update(ctx, upd)
	require.NoError(t, err)

	ok, err := r.MarkStatus(ctx, rec.Type, rec.SyncID, models.StatusSynced, rec.UpdatedAt)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := r.GetBySyncID(ctx, rec.Type, rec.SyncID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.SyncStatus)
}

func TestApplyRemote_InsertAndCompareAndSet(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	remote := goalRecord(150)
	remote.SyncID = "remote-1"
	remote.UpdatedAt = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	ok, err := r.ApplyRemote(ctx, remote, nil)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.ApplyRemote(ctx, remote, nil)
	require.NoError(t, err)
	assert.False(t, ok, "second insert must not apply")

	got, err := r.GetBySyncID(ctx, models.TypeDailyGoal, "remote-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSynced, got.SyncStatus)
	assert.Equal(t, remote.UpdatedAt, got.UpdatedAt)

	newer := remote.Clone()
	newer.UpdatedAt = remote.UpdatedAt.Add(time.Hour)
	del := newer.UpdatedAt
	newer.DeletedAt = &del

	stale := remote.UpdatedAt.Add(-time.Hour)
	ok, err = r.ApplyRemote(ctx, newer, &stale)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.ApplyRemote(ctx, newer, &got.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = r.GetBySyncID(ctx, models.TypeDailyGoal, "remote-1")
	require.NoError(t, err)
	require.NotNil(t, got.DeletedAt)
	assert.Equal(t, del, *got.DeletedAt)
}

func TestListLive_DateFilterAndLimit(t *testing.T) {
	r, clock, _ := newRepo(t)
	ctx := context.Background()

	for _, n := range []string{"a", "b", "c"} {
		_, err := r.Create(ctx, foodRecord("2024-05-02", n))
		require.NoError(t, err)
		clock.advance(time.Second)
	}
	other, err := r.Create(ctx, foodRecord("2024-05-03", "d"))
	require.NoError(t, err)
	gone, err := r.Create(ctx, foodRecord("2024-05-02", "e"))
	require.NoError(t, err)
	_, err = r.SoftDelete(ctx, gone.Type, gone.SyncID)
	require.NoError(t, err)

	day, err := r.ListLive(ctx, models.TypeFoodEntry, Filter{Date: "2024-05-02"})
	require.NoError(t, err)
	require.Len(t, day, 3)

	last2, err := r.ListLive(ctx, models.TypeFoodEntry, Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, last2, 2)
	assert.Equal(t, other.SyncID, last2[1].SyncID)
	assert.Less(t, last2[0].LocalID, last2[1].LocalID)
}

func TestDBErrorsWrapped(t *testing.T) {
	r, _, db := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Create(ctx, goalRecord(1))
	require.ErrorContains(t, err, "failed to insert daily_goal")

	_, err = r.GetBySyncID(ctx, models.TypeDailyGoal, "x")
	require.ErrorContains(t, err, "failed to get daily_goal[x]")

	_, err = r.ListUnsynced(ctx, models.TypeDailyGoal)
	require.ErrorContains(t, err, "failed to select daily_goal")

	_, err = r.Count(ctx, models.TypeDailyGoal)
	require.ErrorContains(t, err, "failed to count daily_goal")
}
