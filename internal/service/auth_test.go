package service_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/accountdemo/accountdemo/internal/domain"
	"github.com/accountdemo/accountdemo/internal/service"
)

func TestAuthService_Register_Success(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.PasswordHash == "Passw0rd" {
		t.Fatal("expected the stored hash to differ from the plaintext")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth, db, _ := newTestAuthService(t)
	ctx := context.Background()

	first, err := auth.Register(ctx, "dup", "Passw0rd", "Passw0rd")
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err = auth.Register(ctx, "dup", "Other123", "Other123")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// The first registration's hash must be unchanged.
	stored, err := db.Users().GetByUsername(ctx, "dup")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if stored.PasswordHash != first.PasswordHash {
		t.Fatal("expected the original hash to survive the failed duplicate")
	}
}

func TestAuthService_Register_ValidationShortCircuits(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantMsg  string
	}{
		{"empty username", "", "Passw0rd", "Passw0rd", "username is required"},
		{"empty password", "u", "", "Passw0rd", "password is required"},
		{"empty confirmation", "u", "Passw0rd", "", "confirmation is required"},
		{"weak password", "u", "short1", "short1", "at least 8 characters"},
		{"mismatch", "u", "Passw0rd", "Passw0rd2", "do not match"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.username, tc.password, tc.confirm)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected message containing %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := auth.Login(ctx, "bob1", "Passw0rd", false)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "bob1" {
		t.Fatalf("expected bob1, got %s", user.Username)
	}

	current, err := auth.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current != "bob1" {
		t.Fatalf("expected session set to bob1, got %q", current)
	}

	recent, err := auth.RecentUsernames(ctx)
	if err != nil {
		t.Fatalf("RecentUsernames: %v", err)
	}
	if len(recent) != 1 || recent[0] != "bob1" {
		t.Fatalf("expected [bob1] in recent users, got %v", recent)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Login(ctx, "bob1", "Passw0rd", false); err != nil {
		t.Fatalf("Login: %v", err)
	}

	recentBefore, err := auth.RecentUsernames(ctx)
	if err != nil {
		t.Fatalf("RecentUsernames: %v", err)
	}

	_, err = auth.Login(ctx, "bob1", "wrong1234", false)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// Session and recent users are untouched by the failed attempt.
	current, err := auth.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current != "bob1" {
		t.Fatalf("expected session unchanged, got %q", current)
	}
	recentAfter, err := auth.RecentUsernames(ctx)
	if err != nil {
		t.Fatalf("RecentUsernames: %v", err)
	}
	if !reflect.DeepEqual(recentBefore, recentAfter) {
		t.Fatalf("expected recent users unchanged, got %v then %v", recentBefore, recentAfter)
	}
}

func TestAuthService_Login_UnknownUserGetsSameError(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, errUnknown := auth.Login(ctx, "nobody", "Passw0rd", false)
	_, errWrongPw := auth.Login(ctx, "bob1", "wrong1234", false)

	if !errors.Is(errUnknown, domain.ErrUnauthorized) {
		t.Fatalf("unknown user: expected ErrUnauthorized, got %v", errUnknown)
	}
	// Absent user and wrong password are indistinguishable to the caller.
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("expected identical errors, got %q and %q", errUnknown, errWrongPw)
	}
}

func TestAuthService_Login_RememberStoresAutofill(t *testing.T) {
	auth, db, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Login(ctx, "bob1", "Passw0rd", true); err != nil {
		t.Fatalf("Login: %v", err)
	}

	password, err := auth.AutofillFor(ctx, "bob1")
	if err != nil {
		t.Fatalf("AutofillFor: %v", err)
	}
	if password != "Passw0rd" {
		t.Fatalf("expected remembered password, got %q", password)
	}

	saved, err := db.Prefs().Get(ctx, domain.PrefSavedUsername)
	if err != nil {
		t.Fatalf("Get saved_username: %v", err)
	}
	if saved != "bob1" {
		t.Fatalf("expected saved_username bob1, got %q", saved)
	}
}

func TestAuthService_Login_NoRememberClearsAutofill(t *testing.T) {
	auth, db, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Login(ctx, "bob1", "Passw0rd", true); err != nil {
		t.Fatalf("Login remember: %v", err)
	}

	// Logging in again without remember forgets the stored entry.
	if _, err := auth.Login(ctx, "bob1", "Passw0rd", false); err != nil {
		t.Fatalf("Login forget: %v", err)
	}

	password, err := auth.AutofillFor(ctx, "bob1")
	if err != nil {
		t.Fatalf("AutofillFor: %v", err)
	}
	if password != "" {
		t.Fatalf("expected no autofill after forget, got %q", password)
	}
	if _, err := db.Prefs().Get(ctx, domain.PrefSavedUsername); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected saved_username removed, got %v", err)
	}
}

func TestAuthService_Login_ThrottledWhileDebounceActive(t *testing.T) {
	auth, _, debounce := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Simulate a click already in flight.
	if !debounce.TryBegin(service.ActionLogin) {
		t.Fatal("TryBegin should succeed")
	}
	_, err := auth.Login(ctx, "bob1", "Passw0rd", false)
	if !errors.Is(err, domain.ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}

	// Once the in-flight attempt ends, a retry goes through immediately.
	debounce.End(service.ActionLogin)
	if _, err := auth.Login(ctx, "bob1", "Passw0rd", false); err != nil {
		t.Fatalf("Login after End: %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Login(ctx, "bob1", "Passw0rd", false); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := auth.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	current, err := auth.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current != "" {
		t.Fatalf("expected empty session after logout, got %q", current)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	id, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if id != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, id)
	}

	if _, err := auth.ValidateToken(token + "tampered"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_EndToEnd(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob1", "Passw0rd", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Login(ctx, "bob1", "Passw0rd", false); err != nil {
		t.Fatalf("Login: %v", err)
	}

	recent, err := auth.RecentUsernames(ctx)
	if err != nil {
		t.Fatalf("RecentUsernames: %v", err)
	}
	if len(recent) != 1 || recent[0] != "bob1" {
		t.Fatalf("expected [bob1], got %v", recent)
	}

	if _, err := auth.Login(ctx, "bob1", "wrong1234", false); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected generic auth error, got %v", err)
	}

	after, err := auth.RecentUsernames(ctx)
	if err != nil {
		t.Fatalf("RecentUsernames: %v", err)
	}
	if !reflect.DeepEqual(recent, after) {
		t.Fatalf("expected recent users unchanged after failed login, got %v", after)
	}
}
