package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/logging"
	"github.com/dmitrijs2005/nutrisync/internal/server/config"
	"github.com/dmitrijs2005/nutrisync/internal/server/models"
	"github.com/dmitrijs2005/nutrisync/internal/server/repositories/repomanager"
)

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg, logging.Nop())
}

func TestRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	refresh := &fakeRefreshRepo{
		findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
	}
	s := newUserService(t, db, &fakeRepoManager{r: refresh})

	pair, err := s.RefreshToken(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if uid, err := s.UserIDFromAccessToken(pair.AccessToken); err != nil || uid != "u1" {
		t.Fatalf("access token does not carry the user: %q %v", uid, err)
	}
	if len(refresh.created) != 1 {
		t.Fatalf("want one new refresh token, got %v", refresh.created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(-1 * time.Minute)},
		},
	}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want ErrRefreshTokenExpired, got %v", err)
	}
}

func TestRefreshToken_Unknown(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{r: &fakeRefreshRepo{findErr: common.ErrorNotFound}})

	_, err := s.RefreshToken(context.Background(), "r")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestRefreshToken_FindErr(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{r: &fakeRefreshRepo{findErr: errBoom{}}})

	_, err := s.RefreshToken(context.Background(), "r")
	if err == nil || !regexp.MustCompile(`error searching refresh token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped find error, got %v", err)
	}
}

func TestRefreshToken_DeleteErr(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
			delErr:  errBoom{},
		},
	}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if err == nil || !regexp.MustCompile(`error deleting refresh token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped delete error, got %v", err)
	}
}

func TestRefreshToken_GeneratePair_CreateErr(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{
			findOut:   &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
			createErr: errBoom{},
		},
	}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected ErrorInternal, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegister_SuccessAndError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rmOK := &fakeRepoManager{
		u: &fakeUsersRepo{createOut: &models.User{ID: "42", UserName: "alice"}},
		r: &fakeRefreshRepo{},
	}
	sOK := newUserService(t, db, rmOK)
	u, err := sOK.Register(context.Background(), "alice", []byte("s"), []byte("v"))
	if err != nil || u.ID != "42" {
		t.Fatalf("Register ok: got (%v, %v)", u, err)
	}

	rmDup := &fakeRepoManager{
		u: &fakeUsersRepo{createErr: common.ErrAlreadyExists},
		r: &fakeRefreshRepo{},
	}
	sDup := newUserService(t, db, rmDup)
	_, err = sDup.Register(context.Background(), "bob", []byte("s"), []byte("v"))
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("Register duplicate: want ErrAlreadyExists, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	cases := []struct {
		user           string
		salt, verifier []byte
	}{
		{"", []byte("s"), []byte("v")},
		{"alice", nil, []byte("v")},
		{"alice", []byte("s"), nil},
	}
	for _, c := range cases {
		if _, err := s.Register(context.Background(), c.user, c.salt, c.verifier); !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("Register(%q): want ErrorValidation, got %v", c.user, err)
		}
	}
}

func TestGetSalt_Found_NotFound_Internal(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rmFound := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{Salt: []byte("SALT")}},
		r: &fakeRefreshRepo{},
	}
	s := newUserService(t, db, rmFound)
	salt, err := s.GetSalt(context.Background(), "alice")
	if err != nil || string(salt) != "SALT" {
		t.Fatalf("GetSalt found: got (%q, %v)", string(salt), err)
	}

	rmNF := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: common.ErrorNotFound},
		r: &fakeRefreshRepo{},
	}
	s2 := newUserService(t, db, rmNF)
	salt2, err := s2.GetSalt(context.Background(), "ghost")
	if err != nil || len(salt2) != 32 {
		t.Fatalf("GetSalt not found: len=%d err=%v", len(salt2), err)
	}
	again, _ := s2.GetSalt(context.Background(), "ghost")
	if !bytes.Equal(salt2, again) {
		t.Fatal("decoy salt must be stable for one username")
	}
	other, _ := s2.GetSalt(context.Background(), "phantom")
	if bytes.Equal(salt2, other) {
		t.Fatal("decoy salts must differ between usernames")
	}

	rmErr := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: errBoom{}},
		r: &fakeRefreshRepo{},
	}
	s3 := newUserService(t, db, rmErr)
	_, err = s3.GetSalt(context.Background(), "xx")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("GetSalt internal: want ErrorInternal, got %v", err)
	}
}

func TestLogin_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	// not found → unauthorized
	rmNF := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: common.ErrorNotFound},
		r: &fakeRefreshRepo{},
	}
	sNF := newUserService(t, db, rmNF)
	if _, _, err := sNF.Login(context.Background(), "ghost", []byte("x")); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("notfound → unauthorized, got %v", err)
	}

	// internal error
	rmIE := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: errBoom{}},
		r: &fakeRefreshRepo{},
	}
	sIE := newUserService(t, db, rmIE)
	if _, _, err := sIE.Login(context.Background(), "u", []byte("x")); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("internal → ErrorInternal, got %v", err)
	}

	// wrong verifier → unauthorized
	rmWV := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u1", Verifier: []byte("right")}},
		r: &fakeRefreshRepo{},
	}
	sWV := newUserService(t, db, rmWV)
	if _, _, err := sWV.Login(context.Background(), "u", []byte("wrong")); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("wrong verifier → unauthorized, got %v", err)
	}

	refresh := &fakeRefreshRepo{purgeErr: errBoom{}}
	rmOK := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u1", Verifier: []byte("right")}},
		r: refresh,
	}
	sOK := newUserService(t, db, rmOK)
	uid, pair, err := sOK.Login(context.Background(), "u", []byte("right"))
	if err != nil || uid != "u1" || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("Login success: uid=%q pair=%+v err=%v", uid, pair, err)
	}
	if refresh.purged != 1 {
		t.Fatalf("expired tokens purge attempted %d times", refresh.purged)
	}
}
