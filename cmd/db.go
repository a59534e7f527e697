package cmd

import (
	"io/fs"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridoystarlord/lifeplan/database"
	"github.com/ridoystarlord/lifeplan/migrations"
	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/spf13/cobra"
)

var migrationsDir string

func addDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&migrationsDir, "dir", "", "read migrations from this directory instead of the embedded set")
}

func migrationFS() fs.FS {
	if migrationsDir != "" {
		return os.DirFS(migrationsDir)
	}
	return migrations.FS
}

func openPool() (*pgxpool.Pool, error) {
	return database.GetPool(cfg)
}

func migrationRunner() (*runner.Runner, error) {
	pool, err := openPool()
	if err != nil {
		return nil, err
	}
	return runner.New(pool, migrationFS()), nil
}
