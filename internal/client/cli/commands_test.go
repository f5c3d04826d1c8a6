package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/client/services"
	"github.com/dmitrijs2005/nutrisync/internal/client/storage"
	"github.com/dmitrijs2005/nutrisync/internal/client/syncer"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

type localApp struct {
	*App
	out *bytes.Buffer
}

// input replaces what the prompts will read.
func (l *localApp) input(lines ...string) {
	l.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func (l *localApp) output() string {
	s := l.out.String()
	l.out.Reset()
	return s
}

// newLocalApp builds an App over an in-memory database with sync disabled.
func newLocalApp(t *testing.T) *localApp {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := records.NewSQLiteRepository(db)
	settings := services.NewSettingsService(db)

	var out bytes.Buffer
	app := &App{
		log:             logging.Nop(),
		foodService:     services.NewFoodService(repo, nil),
		goalService:     services.NewGoalService(repo, settings, nil),
		chatService:     services.NewChatService(repo, nil),
		settingsService: settings,
		sync:            syncer.NewSurface(false, nil),
		out:             &out,
		now:             func() time.Time { return testNow },
		Mode:            ModeDisabled,
	}
	return &localApp{App: app, out: &out}
}

func (l *localApp) addFood(t *testing.T, name, protein, at string) {
	t.Helper()
	l.input(name, protein, "", at)
	require.NoError(t, l.AddFood(context.Background()))
	l.output()
}

func TestAddFoodAndList(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()

	a.input("Eggs", "18", "210", "08:00")
	require.NoError(t, a.AddFood(ctx))
	assert.Contains(t, a.output(), "Added Eggs, 18.0g protein")

	a.addFood(t, "Chicken", "42,5", "13:15")

	require.NoError(t, a.List(ctx, nil))
	out := a.output()
	assert.Contains(t, out, "08:00  Eggs")
	assert.Contains(t, out, "13:15  Chicken")
	assert.Contains(t, out, "Total 2025-03-10: 60.5g / 150.0g protein, 210 kcal")

	require.NoError(t, a.List(ctx, []string{"2025-03-09"}))
	assert.Contains(t, a.output(), "No entries for 2025-03-09")
}

func TestAddFood_InvalidInput(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()

	a.input("Eggs", "", "", "")
	require.ErrorIs(t, a.AddFood(ctx), ErrEmptyInput)

	a.input("Eggs", "10", "", "25:99")
	require.Error(t, a.AddFood(ctx))

	a.input("", "10", "", "")
	require.ErrorIs(t, a.AddFood(ctx), models.ErrInvalidEntity)

	entries, err := a.foodService.List(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestList_BadDate(t *testing.T) {
	a := newLocalApp(t)
	require.Error(t, a.List(context.Background(), []string{"yesterday"}))
	assert.Contains(t, a.output(), "not a date")
}

func TestDeleteFood(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()
	a.addFood(t, "Eggs", "18", "")

	entries, err := a.foodService.List(ctx, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, a.DeleteFood(ctx, []string{entries[0].SyncID}))
	assert.Contains(t, a.output(), "Deleted Eggs")

	require.ErrorIs(t, a.DeleteFood(ctx, []string{entries[0].SyncID}), common.ErrorNotFound)
	require.ErrorIs(t, a.DeleteFood(ctx, []string{"missing"}), common.ErrorNotFound)

	a.input(entries[0].SyncID)
	require.ErrorIs(t, a.DeleteFood(ctx, nil), common.ErrorNotFound, "prompted id goes through the same lookup")
}

func TestHits(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()
	a.addFood(t, "Oats", "30", "08:00")
	a.addFood(t, "Shake", "28", "09:30")
	a.addFood(t, "Steak", "45", "12:30")

	require.NoError(t, a.Hits(ctx, nil))
	out := a.output()
	assert.Contains(t, out, "MPS hits on 2025-03-10: 2")
	assert.Contains(t, out, "08:00 Oats")
	assert.Contains(t, out, "12:30 Steak")
	assert.NotContains(t, out, "Shake")
	assert.Contains(t, out, "Next window opens at 15:30")

	require.NoError(t, a.Settings(ctx, []string{"mps", "off"}))
	a.output()
	require.NoError(t, a.Hits(ctx, nil))
	assert.Contains(t, a.output(), "MPS tracking is off")
}

func TestGoal(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()

	require.NoError(t, a.Goal(ctx, nil))
	assert.Contains(t, a.output(), "Goal 2025-03-10: 150.0g protein (default)")

	a.input("160", "2000")
	require.NoError(t, a.Goal(ctx, []string{"set"}))
	assert.Contains(t, a.output(), "Goal saved for 2025-03-10")

	require.NoError(t, a.Goal(ctx, []string{"show"}))
	assert.Contains(t, a.output(), "160.0g protein, 2000 kcal (set for this day)")

	require.NoError(t, a.Goal(ctx, []string{"2025-03-11"}))
	assert.Contains(t, a.output(), "(default)", "goals are per day")

	require.NoError(t, a.Goal(ctx, []string{"clear"}))
	a.output()
	require.NoError(t, a.Goal(ctx, nil))
	assert.Contains(t, a.output(), "(default)")
}

func TestGoal_InvalidTarget(t *testing.T) {
	a := newLocalApp(t)
	a.input("0", "")
	require.ErrorIs(t, a.Goal(context.Background(), []string{"set"}), models.ErrInvalidEntity)
}

func TestChatAndHistory(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()

	require.NoError(t, a.Chat(ctx, []string{"had", "two", "eggs"}))
	a.input("and a shake", "")
	require.NoError(t, a.Chat(ctx, nil))
	a.output()

	require.NoError(t, a.History(ctx, nil))
	out := a.output()
	assert.Contains(t, out, "user: had two eggs")
	assert.Contains(t, out, "user: and a shake")

	require.Error(t, a.History(ctx, []string{"many"}))
	require.Error(t, a.History(ctx, []string{"0"}))
}

func TestHistory_Empty(t *testing.T) {
	a := newLocalApp(t)
	require.NoError(t, a.History(context.Background(), []string{"3"}))
	assert.Contains(t, a.output(), "No messages")
}

func TestSettings(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()

	require.NoError(t, a.Settings(ctx, nil))
	out := a.output()
	assert.Contains(t, out, "Default protein goal: 150.0g")
	assert.Contains(t, out, "Default calorie goal: none")
	assert.Contains(t, out, "MPS tracking: on")

	require.NoError(t, a.Settings(ctx, []string{"protein", "170"}))
	require.NoError(t, a.Settings(ctx, []string{"calories", "2200"}))
	require.NoError(t, a.Settings(ctx, []string{"name", "Sam", "K"}))
	a.output()

	require.NoError(t, a.Settings(ctx, nil))
	out = a.output()
	assert.Contains(t, out, "Default protein goal: 170.0g")
	assert.Contains(t, out, "Default calorie goal: 2200 kcal")
	assert.Contains(t, out, "Display name: Sam K")

	require.NoError(t, a.Goal(ctx, nil))
	assert.Contains(t, a.output(), "170.0g protein, 2200 kcal (default)")

	require.NoError(t, a.Settings(ctx, []string{"calories", "off"}))
	require.Error(t, a.Settings(ctx, []string{"protein", "-5"}))
	require.Error(t, a.Settings(ctx, []string{"protein", "lots"}))
	require.Error(t, a.Settings(ctx, []string{"mps", "maybe"}))
	require.Error(t, a.Settings(ctx, []string{"colour", "blue"}))
	require.Error(t, a.Settings(ctx, []string{"protein"}))
}

func TestSyncCommands_Disabled(t *testing.T) {
	a := newLocalApp(t)
	ctx := context.Background()

	require.ErrorIs(t, a.Sync(ctx), syncer.ErrNotConfigured)
	assert.Contains(t, a.output(), "Sync is disabled")

	require.ErrorIs(t, a.Resync(ctx), syncer.ErrNotConfigured)
	a.output()

	require.NoError(t, a.Status(ctx))
	out := a.output()
	assert.Contains(t, out, "Mode: disabled")
	assert.Contains(t, out, "Sync: not configured")
}

type fakeSurface struct {
	snap     syncer.Snapshot
	rep      *syncer.Report
	err      error
	clearErr error
	passes   int
	clears   int
}

func (f *fakeSurface) Snapshot() syncer.Snapshot { return f.snap }
func (f *fakeSurface) Subscribe() (<-chan syncer.Snapshot, func()) {
	ch := make(chan syncer.Snapshot, 1)
	ch <- f.snap
	return ch, func() {}
}
func (f *fakeSurface) SyncData(context.Context) (*syncer.Report, error) {
	f.passes++
	return f.rep, f.err
}
func (f *fakeSurface) ClearSyncMeta(context.Context) error {
	f.clears++
	return f.clearErr
}

func TestSync_PrintsReport(t *testing.T) {
	a := newLocalApp(t)
	s := &fakeSurface{rep: &syncer.Report{Types: map[models.EntityType]*syncer.TypeReport{
		models.TypeFoodEntry:   {Pushed: 2, Pulled: 3, Inserted: 1, Applied: 1, KeptLocal: 1},
		models.TypeChatMessage: {PushFailed: 1},
		models.TypeDailyGoal:   {Rejected: 2},
	}}}
	a.sync = s

	require.NoError(t, a.Sync(context.Background()))
	out := a.output()
	assert.Contains(t, out, "Synced: pushed 2, pulled 3 (new 1, updated 1, kept local 1)")
	assert.Contains(t, out, "1 records could not be pushed")
	assert.Contains(t, out, "2 records were refused by the server")
}

func TestSync_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not signed in", err: syncer.ErrNotSignedIn, want: "Log in to sync"},
		{name: "offline", err: syncer.ErrOffline, want: "Server unreachable"},
		{name: "run error", err: &syncer.RunError{Kind: syncer.KindAuthorization, Phase: syncer.PhasePush, Err: context.DeadlineExceeded},
			want: "Sync failed (authorization)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newLocalApp(t)
			a.sync = &fakeSurface{err: tc.err}

			require.ErrorIs(t, a.Sync(context.Background()), tc.err)
			assert.Contains(t, a.output(), tc.want)
		})
	}
}

func TestResync(t *testing.T) {
	a := newLocalApp(t)
	s := &fakeSurface{rep: &syncer.Report{}}
	a.sync = s

	require.NoError(t, a.Resync(context.Background()))
	assert.Equal(t, 1, s.clears)
	assert.Equal(t, 1, s.passes)

	s.clearErr = syncer.ErrSyncInProgress
	require.ErrorIs(t, a.Resync(context.Background()), syncer.ErrSyncInProgress)
	assert.Equal(t, 1, s.passes, "no pass when the metadata was not cleared")
	assert.Contains(t, a.output(), "A sync is running")
}

func TestStatus_Configured(t *testing.T) {
	a := newLocalApp(t)
	a.Mode = ModeOnline
	a.sync = &fakeSurface{snap: syncer.Snapshot{
		Configured:    true,
		Identity:      "user-1",
		State:         syncer.StateError,
		LastError:     "boom",
		LastErrorKind: syncer.KindTransient,
	}}

	require.NoError(t, a.Status(context.Background()))
	out := a.output()
	assert.Contains(t, out, "Mode: online")
	assert.Contains(t, out, "Sync state: error")
	assert.Contains(t, out, "Account: user-1")
	assert.Contains(t, out, "Last sync: never")
	assert.Contains(t, out, "Last error (transient): boom")
}

func TestWatchSyncStatus_StopsOnCancel(t *testing.T) {
	a := newLocalApp(t)
	a.sync = &fakeSurface{snap: syncer.NotConfigured()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.watchSyncStatus(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("status watcher did not stop")
	}
}
