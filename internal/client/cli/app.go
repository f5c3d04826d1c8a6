package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/client"
	"github.com/dmitrijs2005/nutrisync/internal/client/config"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/client/services"
	"github.com/dmitrijs2005/nutrisync/internal/client/storage"
	"github.com/dmitrijs2005/nutrisync/internal/client/syncer"
	"github.com/dmitrijs2005/nutrisync/internal/client/syncstate"
	"github.com/dmitrijs2005/nutrisync/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	authService     services.AuthService
	foodService     services.FoodService
	goalService     services.GoalService
	chatService     services.ChatService
	settingsService services.SettingsService

	sync      syncer.Surface
	scheduler *syncer.Scheduler

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu       sync.Mutex
	userName string
	session  bool
	Mode     Mode
}

// NewApp opens the local database and wires the services. With sync
// disabled no remote client is created and the app runs purely locally.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	app := &App{
		config: c,
		log:    log.With("module", "cli"),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
		Mode:   ModeDisabled,
	}

	repo := records.NewSQLiteRepository(db)
	var notifier services.Notifier

	if c.SyncEnabled {
		state := syncstate.New(db)
		deviceID, err := state.DeviceID(ctx)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("error loading device id: %w", err)
		}

		apiClient, err := client.NewSyncClient(c.ServerEndpointAddr, client.WithDeviceID(deviceID))
		if err != nil {
			db.Close()
			return nil, err
		}

		coordinator := syncer.NewCoordinator(repo, apiClient, state, log)
		if err := coordinator.Restore(ctx); err != nil {
			apiClient.Close()
			db.Close()
			return nil, err
		}

		app.authService = services.NewAuthService(apiClient, db)
		app.sync = syncer.NewSurface(true, coordinator)
		app.scheduler = syncer.NewScheduler(app.sync, c.SyncInterval, log)
		app.Mode = ModeOffline
		notifier = app.scheduler
	} else {
		app.sync = syncer.NewSurface(false, nil)
	}

	app.settingsService = services.NewSettingsService(db)
	app.foodService = services.NewFoodService(repo, notifier)
	app.goalService = services.NewGoalService(repo, app.settingsService, notifier)
	app.chatService = services.NewChatService(repo, notifier)

	return app, nil
}

// setMode reports whether the mode changed.
func (a *App) setMode(mode Mode) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode == mode {
		return false
	}
	a.Mode = mode
	a.log.Info(context.Background(), "switched mode", "mode", mode)
	return true
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) signedIn(userName string, session bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = userName
	a.session = session
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != ""
}

func (a *App) needsReconnect() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != "" && !a.session
}

func (a *App) triggerSync() {
	if a.scheduler != nil {
		a.scheduler.Trigger()
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Run starts the background workers and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close(ctx)

	if a.scheduler != nil {
		a.scheduler.Start(ctx)
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}
	go a.watchSyncStatus(ctx)

	a.println("Welcome to NutriSync CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close stops the scheduler and releases the remote client and database.
func (a *App) Close(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.authService != nil {
		if err := a.authService.Close(ctx); err != nil {
			a.log.Warn(ctx, "error closing client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "error closing database", "error", err)
		}
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode. A login made offline is turned into a server session as soon as
// the server answers.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	cameOnline := a.setMode(ModeOnline)

	if a.needsReconnect() {
		rctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := a.authService.Reconnect(rctx); err != nil {
			a.log.Warn(ctx, "reconnect failed", "error", err)
			return
		}
		a.mu.Lock()
		a.session = true
		a.mu.Unlock()
		a.log.Info(ctx, "server session restored")
		a.triggerSync()
		return
	}

	if cameOnline && a.isLoggedIn() {
		a.triggerSync()
	}
}

// watchSyncStatus writes every sync status change to the log.
func (a *App) watchSyncStatus(ctx context.Context) {
	ch, cancel := a.sync.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-ch:
			if !ok {
				return
			}
			a.log.Debug(ctx, "sync status",
				"configured", s.Configured,
				"state", s.State,
				"in_progress", s.InProgress,
				"last_error", s.LastError,
			)
		}
	}
}
