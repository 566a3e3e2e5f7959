package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lifelog/lifelog/internal/store"
	"github.com/lifelog/lifelog/internal/testutil"
)

func setupUsers(t *testing.T) (context.Context, *store.DB) {
	t.Helper()

	db := testutil.OpenTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	unlock, err := testutil.AcquireDBLock(ctx, db.Pool())
	if err != nil {
		t.Fatalf("acquire DB lock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	if err := testutil.ResetTables(ctx, db); err != nil {
		t.Fatalf("reset tables: %v", err)
	}

	return ctx, db
}

func TestCreateUser_AndLookups(t *testing.T) {
	ctx, db := setupUsers(t)

	user := testutil.NewTestUser(t)
	if err := db.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, byID.Email)
	}

	byEmail, err := db.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected ID %s, got %s", user.ID, byEmail.ID)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx, db := setupUsers(t)

	user := testutil.NewTestUser(t)
	if err := db.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	dup := testutil.NewTestUser(t)
	dup.Email = user.Email
	if err := db.CreateUser(ctx, dup); !errors.Is(err, store.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestGetUser_Missing(t *testing.T) {
	ctx, db := setupUsers(t)

	if _, err := db.GetUserByID(ctx, "no-such-user"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := db.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserProfile(t *testing.T) {
	ctx, db := setupUsers(t)

	user := testutil.SeedUser(t, ctx, db)
	user.DisplayName = "Renamed"
	user.Timezone = "Europe/Berlin"
	user.UpdatedAt = time.Now().UTC()

	if err := db.UpdateUserProfile(ctx, user); err != nil {
		t.Fatalf("UpdateUserProfile failed: %v", err)
	}

	got, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got.DisplayName != "Renamed" || got.Timezone != "Europe/Berlin" {
		t.Errorf("profile not updated: %+v", got)
	}

	missing := testutil.NewTestUser(t)
	if err := db.UpdateUserProfile(ctx, missing); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown user, got %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx, db := setupUsers(t)

	// OpenTestDB already migrated; a second run must be a no-op.
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}
}
