package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"schuhaus/internal/repos"
	"schuhaus/internal/services"
)

func memdbUsers(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE users(id TEXT PRIMARY KEY, first_name TEXT, last_name TEXT, email TEXT UNIQUE,
	  password_hash TEXT, email_confirmed INTEGER DEFAULT 0, remember_me INTEGER DEFAULT 0,
	  role TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE sessions(id TEXT PRIMARY KEY, user_id TEXT, created_at TEXT, last_seen TEXT);
	CREATE TABLE account_tokens(token TEXT PRIMARY KEY, user_id TEXT, purpose TEXT,
	  expires_at TEXT, created_at TEXT);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newAuth(t *testing.T) *services.AuthService {
	t.Helper()
	return &services.AuthService{Users: repos.NewUserRepo(memdbUsers(t))}
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuth(t)

	u, token, err := auth.Register("Mia", "Keller", "mia@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("no confirmation token issued")
	}
	if u.Role != "MEMBER" {
		t.Fatalf("new accounts get the MEMBER role, got %q", u.Role)
	}
	if u.Confirmed {
		t.Fatal("fresh account must not be confirmed")
	}

	// duplicate email
	if _, _, err := auth.Register("Mia", "Keller", "mia@example.com", "Sup3r$ecret"); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	// wrong password fails before any session bind
	if _, err := auth.Login("sid-1", "mia@example.com", "wrong-pass1A!", false); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := auth.CurrentUser("sid-1"); err == nil {
		t.Fatal("failed login must not bind a session")
	}

	// unknown email fails the same way
	if _, err := auth.Login("sid-1", "nobody@example.com", "Sup3r$ecret", false); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}

	got, err := auth.Login("sid-1", "mia@example.com", "Sup3r$ecret", true)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Remember {
		t.Fatal("remember preference not recorded")
	}
	cur, err := auth.CurrentUser("sid-1")
	if err != nil || cur.ID != u.ID {
		t.Fatalf("session should resolve to the user: %v %+v", err, cur)
	}

	if err := auth.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.CurrentUser("sid-1"); err == nil {
		t.Fatal("logout must unbind the session")
	}
}

func TestConfirmEmail(t *testing.T) {
	auth := newAuth(t)
	u, token, err := auth.Register("Mia", "Keller", "mia@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatal(err)
	}

	// bad token: no confirmation, no session
	if _, err := auth.ConfirmEmail("sid-x", u.ID, "not-a-token"); !errors.Is(err, services.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
	if _, err := auth.CurrentUser("sid-x"); err == nil {
		t.Fatal("invalid token must not establish a session")
	}

	// unknown user
	if _, err := auth.ConfirmEmail("sid-x", "no-such-user", token); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}

	got, err := auth.ConfirmEmail("sid-x", u.ID, token)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Confirmed {
		t.Fatal("account should be confirmed")
	}
	if cur, err := auth.CurrentUser("sid-x"); err != nil || cur.ID != u.ID {
		t.Fatalf("confirmation should establish a session: %v", err)
	}

	// token is single use
	if _, err := auth.ConfirmEmail("sid-y", u.ID, token); !errors.Is(err, services.ErrTokenInvalid) {
		t.Fatalf("token must be single use, got %v", err)
	}
}

func TestTokenPurposeIsEnforced(t *testing.T) {
	auth := newAuth(t)
	u, confirmTok, err := auth.Register("Mia", "Keller", "mia@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatal(err)
	}

	// a confirmation token cannot reset a password
	if err := auth.ResetPassword(u.ID, confirmTok, "N3w!Passw0rd"); !errors.Is(err, services.ErrTokenInvalid) {
		t.Fatalf("confirm token must not work as reset token, got %v", err)
	}

	_, resetTok, err := auth.StartPasswordReset("mia@example.com")
	if err != nil {
		t.Fatal(err)
	}
	// and a reset token cannot confirm an email
	if _, err := auth.ConfirmEmail("sid-z", u.ID, resetTok); !errors.Is(err, services.ErrTokenInvalid) {
		t.Fatalf("reset token must not confirm an email, got %v", err)
	}

	if err := auth.ResetPassword(u.ID, resetTok, "N3w!Passw0rd"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Login("sid-z", "mia@example.com", "Sup3r$ecret", false); !errors.Is(err, services.ErrBadCreds) {
		t.Fatal("old password should no longer work")
	}
	if _, err := auth.Login("sid-z", "mia@example.com", "N3w!Passw0rd", false); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestStartPasswordReset_UnknownEmail(t *testing.T) {
	auth := newAuth(t)
	if _, _, err := auth.StartPasswordReset("nobody@example.com"); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	auth := newAuth(t)
	auth.TokenTTL = -time.Minute // everything issued is already expired
	u, token, err := auth.Register("Mia", "Keller", "mia@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.ConfirmEmail("sid-e", u.ID, token); !errors.Is(err, services.ErrTokenInvalid) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}
