// Package services contains application services for the NutriSync client.
// This file defines the authentication service: online/offline login,
// registration, reconnect after an offline start and housekeeping of the
// locally cached auth metadata.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutrisync/internal/client/client"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/cryptox"
	"github.com/dmitrijs2005/nutrisync/internal/dbx"
)

const (
	authPrefix    = "auth."
	keyUsername   = authPrefix + "username"
	keySalt       = authPrefix + "salt"
	keyVerifier   = authPrefix + "verifier"
	saltSizeBytes = 32
)

// ErrAccountMismatch is returned when a different account tries to sign in
// on a device whose local data belongs to another one.
var ErrAccountMismatch = errors.New("local data belongs to another account")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin: authenticate against the server and cache offline auth data.
//   - OfflineLogin: verify credentials against locally cached data.
//   - Reconnect: open a server session from the cached data, no password needed.
//   - Register: create a new user on the server.
//   - Logout: drop the server session; cached data stays for offline login.
//   - ClearOfflineData: wipe locally cached auth metadata.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) error
	OnlineLogin(ctx context.Context, username string, password []byte) error
	Reconnect(ctx context.Context) error
	Register(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and the local metadata table.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

type offlineData struct {
	username string
	salt     []byte
	verifier []byte
}

func (a *authService) loadOfflineData(ctx context.Context) (*offlineData, error) {
	repo := a.getMetadataRepo(a.db)

	var d offlineData
	for key, dst := range map[string]*[]byte{keySalt: &d.salt, keyVerifier: &d.verifier} {
		v, err := repo.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	u, err := repo.Get(ctx, keyUsername)
	if err != nil {
		return nil, err
	}
	if u == nil || d.salt == nil || d.verifier == nil {
		return nil, client.ErrLocalDataNotAvailable
	}
	d.username = string(u)
	return &d, nil
}

// OfflineLogin derives a key from (password, salt) stored locally and
// verifies it against the cached verifier. Missing local data yields
// client.ErrLocalDataNotAvailable, a failed check client.ErrUnauthorized.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	d, err := a.loadOfflineData(ctx)
	if err != nil {
		return err
	}
	if d.username != username {
		return client.ErrUnauthorized
	}

	masterKeyCandidate := cryptox.DeriveMasterKey(password, d.salt)
	defer common.WipeByteArray(masterKeyCandidate)
	verifierCandidate := cryptox.MakeVerifier(masterKeyCandidate)

	if subtle.ConstantTimeCompare(d.verifier, verifierCandidate) == 0 {
		return client.ErrUnauthorized
	}
	return nil
}

// OnlineLogin authenticates against the server and caches username, salt
// and verifier for later offline logins.
func (a *authService) OnlineLogin(ctx context.Context, userName string, password []byte) error {
	cached, err := a.loadOfflineData(ctx)
	if err != nil && !errors.Is(err, client.ErrLocalDataNotAvailable) {
		return fmt.Errorf("offline data loading error: %w", err)
	}
	if cached != nil && cached.username != userName {
		return ErrAccountMismatch
	}

	salt, err := a.client.GetSalt(ctx, userName)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	masterKeyCandidate := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(masterKeyCandidate)
	verifierCandidate := cryptox.MakeVerifier(masterKeyCandidate)

	if err := a.client.Login(ctx, userName, verifierCandidate); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, userName, salt, verifierCandidate); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}
	return nil
}

// Reconnect logs in with the cached verifier. It lets a session that
// started offline begin syncing once the server is reachable.
func (a *authService) Reconnect(ctx context.Context) error {
	d, err := a.loadOfflineData(ctx)
	if err != nil {
		return err
	}
	if err := a.client.Login(ctx, d.username, d.verifier); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

// saveOfflineData persists the auth metadata needed for offline login in a
// single transaction.
func (a *authService) saveOfflineData(ctx context.Context, userName string, salt []byte, verifier []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		metadataRepo := a.getMetadataRepo(tx)
		if err := metadataRepo.Set(ctx, keyUsername, []byte(userName)); err != nil {
			return err
		}
		if err := metadataRepo.Set(ctx, keySalt, salt); err != nil {
			return err
		}
		if err := metadataRepo.Set(ctx, keyVerifier, verifier); err != nil {
			return err
		}
		return nil
	})
}

// Register creates a new account on the server. It generates a random salt,
// derives a key from the password, computes a verifier and sends
// salt/verifier to the server.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(saltSizeBytes)
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	verifier := cryptox.MakeVerifier(key)

	if err := a.client.Register(ctx, username, salt, verifier); err != nil {
		return err
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.client.Logout()
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes cached auth metadata. Sync bookkeeping and
// settings stay.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	return a.getMetadataRepo(a.db).DeletePrefix(ctx, authPrefix)
}
