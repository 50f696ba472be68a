package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ustinerary/planner/internal/store"
	"github.com/ustinerary/planner/migrations"
	"github.com/ustinerary/planner/testutil"
)

// TestMain applies the migrations when a test database is configured so the
// repository tests also run against the Postgres backend.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	if _, err := migrations.Up(context.Background(), db); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}

// backends returns a fresh store per backend. The Postgres backend is bound
// to a transaction rolled back at the end of the test and is only included
// when TEST_DATABASE_URL is set.
func backends(t *testing.T) map[string]func(t *testing.T) store.Store {
	t.Helper()
	b := map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store { return store.NewMemory(0) },
		"redis": func(t *testing.T) store.Store {
			s := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: s.Addr()})
			t.Cleanup(func() { client.Close() })
			return store.NewRedis(client, "")
		},
	}
	if os.Getenv("TEST_DATABASE_URL") != "" {
		b["postgres"] = func(t *testing.T) store.Store {
			return store.NewPostgres(testutil.NewTx(t))
		}
	}
	return b
}
