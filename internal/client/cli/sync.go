package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/nutrisync/internal/client/syncer"
)

// Sync runs one pass in the foreground and prints what it did.
func (a *App) Sync(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, syncer.DefaultPassTimeout)
	defer cancel()

	rep, err := a.sync.SyncData(ctx)
	if err != nil {
		a.reportSyncError(err)
		return err
	}

	t := rep.Total()
	a.printf("Synced: pushed %d, pulled %d (new %d, updated %d, kept local %d)\n",
		t.Pushed, t.Pulled, t.Inserted, t.Applied, t.KeptLocal)
	if t.PushFailed > 0 {
		a.printf("%d records could not be pushed and will be retried\n", t.PushFailed)
	}
	if t.Rejected > 0 {
		a.printf("%d records were refused by the server in favour of an older version\n", t.Rejected)
	}
	return nil
}

// Resync forgets the sync cursors and pulls the full remote history.
func (a *App) Resync(ctx context.Context) error {
	if err := a.sync.ClearSyncMeta(ctx); err != nil {
		a.reportSyncError(err)
		return err
	}
	return a.Sync(ctx)
}

func (a *App) reportSyncError(err error) {
	switch {
	case errors.Is(err, syncer.ErrNotConfigured):
		a.println("Sync is disabled")
	case errors.Is(err, syncer.ErrNotSignedIn):
		a.println("Log in to sync")
	case errors.Is(err, syncer.ErrOffline):
		a.println("Server unreachable, sync will retry later")
	case errors.Is(err, syncer.ErrSyncInProgress):
		a.println("A sync is running, try again shortly")
	default:
		a.printf("Sync failed (%s): %v\n", syncer.KindOf(err), err)
	}
}

// Status prints the connectivity mode and the sync status.
func (a *App) Status(ctx context.Context) error {
	s := a.sync.Snapshot()
	a.println("Mode:", a.mode())
	if !s.Configured {
		a.println("Sync: not configured")
		return nil
	}

	a.println("Sync state:", s.State)
	if s.Identity != "" {
		a.println("Account:", s.Identity)
	}
	if s.LastSyncAt.IsZero() {
		a.println("Last sync: never")
	} else {
		a.println("Last sync:", s.LastSyncAt.Local().Format("2006-01-02 15:04:05"))
	}
	if s.LastError != "" {
		a.printf("Last error (%s): %s\n", s.LastErrorKind, s.LastError)
	}
	return nil
}
