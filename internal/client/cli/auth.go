package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/nutrisync/internal/client/client"
	"github.com/dmitrijs2005/nutrisync/internal/client/services"
	"github.com/dmitrijs2005/nutrisync/internal/client/syncer"
	"github.com/dmitrijs2005/nutrisync/internal/common"
)

// getSimpleText, getPassword and getNumber are indirections used to
// facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getNumber = GetNumber

func (a *App) requireAccounts() error {
	if a.authService == nil {
		a.println("Sync is disabled; accounts are not used.")
		return syncer.ErrNotConfigured
	}
	return nil
}

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for an email and password and creates the account on
// the server. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	if err := a.requireAccounts(); err != nil {
		return err
	}
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		a.println("Registration failed:", err)
		return err
	}

	a.println("Success!")
	return nil
}

// Login tries an online login first. If the server is unavailable it falls
// back to the credentials cached by an earlier online login; the server
// session is then opened later by the online watcher.
func (a *App) Login(ctx context.Context) error {
	if err := a.requireAccounts(); err != nil {
		return err
	}
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		a.signedIn(userName, true)
		a.setMode(ModeOnline)
		a.log.Info(ctx, "online login", "user", userName)
		a.println("Login successful")
		a.triggerSync()
		return nil

	case errors.Is(err, client.ErrUnavailable):
		a.log.Info(ctx, "server unavailable, trying offline login")
		if err := a.authService.OfflineLogin(ctx, userName, password); err != nil {
			a.println("Offline login unsuccessful:", err)
			return err
		}
		a.signedIn(userName, false)
		a.setMode(ModeOffline)
		a.println("Offline login successful, changes sync once the server is reachable")
		return nil

	case errors.Is(err, services.ErrAccountMismatch):
		a.println("This device holds data of another account. Run 'logout forget' first.")
		return err

	default:
		a.log.Warn(ctx, "login failed", "error", err)
		a.println("Login unsuccessful:", err)
		return err
	}
}

// Logout drops the server session. With "forget" it also wipes the cached
// credentials so another account can sign in on this device.
func (a *App) Logout(ctx context.Context, args []string) error {
	if err := a.requireAccounts(); err != nil {
		return err
	}
	a.authService.Logout(ctx)
	a.signedIn("", false)

	if len(args) > 0 && args[0] == "forget" {
		if err := a.authService.ClearOfflineData(ctx); err != nil {
			a.println("Error:", err)
			return err
		}
		a.println("Logged out, cached login removed")
		return nil
	}
	a.println("Logged out")
	return nil
}
