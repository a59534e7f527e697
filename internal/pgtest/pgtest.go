// Package pgtest starts throwaway PostgreSQL containers for integration tests.
package pgtest

import (
	"context"
	"os/exec"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridoystarlord/lifeplan/migrations"
	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// dockerAvailable checks whether the Docker daemon is reachable.
// testcontainers-go panics when Docker is not installed.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// NewPool starts PostgreSQL 16 and returns a pool on an empty database.
// The test is skipped when Docker is not available.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if !dockerAvailable() {
		t.Skip("Docker not available, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("lifeplan"),
		postgres.WithUsername("planner"),
		postgres.WithPassword("planner"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewMigratedPool is NewPool with every embedded migration applied.
func NewMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool := NewPool(t)
	if _, err := runner.New(pool, migrations.FS).Apply(context.Background()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return pool
}
