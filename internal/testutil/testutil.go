// Package testutil provides helpers for integration tests. Tests that
// need external services are gated on TEST_DATABASE_URL / TEST_REDIS_URL
// and skip when the variables are unset.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lifelog/lifelog/internal/model"
	"github.com/lifelog/lifelog/internal/store"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// OpenTestDB connects to the test database, applies migrations, and
// registers cleanup. Skips the test when TEST_DATABASE_URL is unset.
func OpenTestDB(t testing.TB) *store.DB {
	t.Helper()

	dsn := RequireEnv(t, "TEST_DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	return db
}

// OpenTestRedis connects to the test Redis instance and registers
// cleanup. Skips the test when TEST_REDIS_URL is unset.
func OpenTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	redisURL := RequireEnv(t, "TEST_REDIS_URL")

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse test Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping test Redis: %v", err)
	}

	return client
}

const advisoryLockID int64 = 771177

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// trackerTables lists every table owned by a user, children before
// parents so TRUNCATE CASCADE is not needed.
var trackerTables = []string{
	"workout_exercises",
	"habit_entries",
	"goals",
	"workouts",
	"journals",
	"transactions",
	"budgets",
	"habits",
	"moods",
	"sleep_logs",
	"meals",
	"water_logs",
	"weights",
	"books",
	"medications",
	"meditations",
	"users",
}

// ResetTables truncates all application tables.
func ResetTables(ctx context.Context, db *store.DB) error {
	for _, table := range trackerTables {
		if _, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	now := time.Now().UTC()
	id := ulid.Make().String()
	return &model.User{
		ID:           id,
		Email:        fmt.Sprintf("user-%s@example.com", id),
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		DisplayName:  "Test User",
		Timezone:     "UTC",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SeedUser inserts a test user and returns it.
func SeedUser(t testing.TB, ctx context.Context, db *store.DB) *model.User {
	t.Helper()
	user := NewTestUser(t)
	if err := db.CreateUser(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// Date returns a UTC midnight time for the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
