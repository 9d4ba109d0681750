package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/accountdemo/accountdemo/internal/repository/sqlite"
	"github.com/accountdemo/accountdemo/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB, *service.Debouncer) {
	t.Helper()
	db := newTestDB(t)
	debounce := service.NewDebouncer(time.Minute)
	auth := service.NewAuthService(db.Users(), db.Prefs(), service.MD5Hasher{}, debounce, testJWTSecret)
	return auth, db, debounce
}

// fakeClock lets tests age autofill entries without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}
