package runner_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/ridoystarlord/lifeplan/diff"
	"github.com/ridoystarlord/lifeplan/internal/pgtest"
	"github.com/ridoystarlord/lifeplan/introspect"
	"github.com/ridoystarlord/lifeplan/migrations"
	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/stretchr/testify/require"
)

func TestRunner_Lifecycle(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	r := runner.New(pool, migrations.FS)

	all, err := r.Migrations()
	require.NoError(t, err)

	applied, err := r.Apply(ctx)
	require.NoError(t, err)
	require.Len(t, applied, len(all))

	again, err := r.Apply(ctx)
	require.NoError(t, err)
	require.Empty(t, again, "second apply must be a no-op")

	t.Run("database matches declared schema", func(t *testing.T) {
		existing, err := introspect.IntrospectDatabase(ctx, pool)
		require.NoError(t, err)
		ops := diff.DiffSchemas(schema.Tables(), existing, runner.MigrationsTable, runner.LogsTable)
		require.Empty(t, ops)
	})

	t.Run("status and history", func(t *testing.T) {
		report, err := r.Status(ctx)
		require.NoError(t, err)
		require.Len(t, report.Applied, len(all))
		require.Empty(t, report.Pending)
		require.Empty(t, report.Failed)

		history, err := r.History(ctx, 0, "wishlist")
		require.NoError(t, err)
		require.NotEmpty(t, history)

		logs, err := r.Logs(ctx, 3)
		require.NoError(t, err)
		require.Len(t, logs, 3)
	})

	t.Run("rollback and reapply", func(t *testing.T) {
		rolled, err := r.Rollback(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, []string{all[len(all)-1].Name}, rolled)

		pending, err := r.Pending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		applied, err := r.Apply(ctx)
		require.NoError(t, err)
		require.Len(t, applied, 1)
	})
}

func TestRunner_FailedMigrationBlocksUntilCleared(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()

	broken := fstest.MapFS{
		"0001_ok.sql":     {Data: []byte("-- Up Migration\nCREATE TABLE t (id int);\n-- Down Migration (Rollback)\nDROP TABLE t;\n")},
		"0002_broken.sql": {Data: []byte("-- Up Migration\nCREATE TABLE nope (;\n-- Down Migration (Rollback)\n")},
	}
	r := runner.New(pool, broken)

	applied, err := r.Apply(ctx)
	require.Error(t, err)
	require.Equal(t, []string{"0001_ok.sql"}, applied)

	_, err = r.Apply(ctx)
	require.ErrorIs(t, err, runner.ErrFailedMigrations)

	n, err := r.ClearFailed(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	report, err := r.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"0002_broken.sql"}, report.Pending)
}
