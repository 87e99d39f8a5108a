//go:build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	reposql "github.com/iyhunko/antique-store-api/internal/repository/sql"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const migrationsDir = "../migrations"

// TestDB is a throwaway PostgreSQL container with the products schema applied.
type TestDB struct {
	DB       *sql.DB
	Pool     *dockertest.Pool
	Resource *dockertest.Resource
}

// SetupTestDB starts PostgreSQL with dockertest and applies the repository migrations.
// The container is purged when the test finishes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if _, err := os.Stat(migrationsDir); err != nil {
		t.Fatalf("Migrations directory not found: %s", err)
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("Could not connect to docker: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=antiques",
			"POSTGRES_DB=antiquestore",
			"listen_addresses='*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("Could not start postgres: %s", err)
	}

	// orphaned containers are reaped even if the test binary dies
	if err := resource.Expire(180); err != nil {
		t.Fatalf("Could not set expiration: %s", err)
	}

	databaseURL := fmt.Sprintf("postgres://antiques:secret@%s/antiquestore?sslmode=disable", resource.GetHostPort("5432/tcp"))
	t.Logf("Connecting to database on url: %s", databaseURL)

	var db *sql.DB
	if err = pool.Retry(func() error {
		var err error
		db, err = sql.Open("postgres", databaseURL)
		if err != nil {
			return err
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("Could not reach postgres: %s", err)
	}

	if err := reposql.RunMigrations(db, "file://"+migrationsDir); err != nil {
		t.Fatalf("Could not run migrations: %s", err)
	}

	tdb := &TestDB{DB: db, Pool: pool, Resource: resource}
	t.Cleanup(func() { tdb.cleanup(t) })
	return tdb
}

func (tdb *TestDB) cleanup(t *testing.T) {
	if err := tdb.DB.Close(); err != nil {
		t.Errorf("Could not close database: %s", err)
	}
	if err := tdb.Pool.Purge(tdb.Resource); err != nil {
		t.Errorf("Could not purge resource: %s", err)
	}
}

// TruncateTables empties the products table and restarts its id sequence.
func (tdb *TestDB) TruncateTables(t *testing.T) {
	t.Helper()

	_, err := tdb.DB.ExecContext(context.Background(), "TRUNCATE TABLE products RESTART IDENTITY")
	if err != nil {
		t.Fatalf("Could not truncate table products: %s", err)
	}
}
