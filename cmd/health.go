package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/spf13/cobra"
)

var (
	healthTimeout time.Duration
	healthServer  bool
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity and migration state",
	Long: `Check if the database is accessible and whether migrations are pending.

Examples:
  lifeplan health                # Check the database
  lifeplan health --timeout 10s  # Set custom timeout
  lifeplan health --api          # Also check the planner server
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
		defer cancel()

		if err := checkDatabaseHealth(ctx); err != nil {
			fmt.Printf("❌ Database health check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Database is healthy and accessible")

		if healthServer {
			if err := newClient().Ping(ctx); err != nil {
				fmt.Printf("❌ Server %s is not reachable: %v\n", cfg.Client.ServerURL, err)
				os.Exit(1)
			}
			fmt.Printf("✅ Server %s is running\n", cfg.Client.ServerURL)
		}
	},
}

func init() {
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for health check")
	healthCmd.Flags().BoolVar(&healthServer, "api", false, "Also ping the planner server")
}

func checkDatabaseHealth(ctx context.Context) error {
	pool, err := openPool()
	if err != nil {
		return fmt.Errorf("failed to get database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	var tableExists bool
	query := `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1
	)`
	if err := pool.QueryRow(ctx, query, runner.MigrationsTable).Scan(&tableExists); err != nil {
		return fmt.Errorf("failed to check %s table: %w", runner.MigrationsTable, err)
	}
	if !tableExists {
		fmt.Printf("⚠️  Database is accessible but %s table not found\n", runner.MigrationsTable)
		fmt.Println("   Run 'lifeplan migrate' to create the planner schema")
		return nil
	}

	report, err := runner.New(pool, migrationFS()).Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	fmt.Printf("📊 Found %d applied migrations\n", len(report.Applied))
	if n := len(report.Pending); n > 0 {
		fmt.Printf("🕒 %d migration(s) pending\n", n)
	}
	if n := len(report.Failed); n > 0 {
		fmt.Printf("❌ %d migration(s) failed\n", n)
	}
	return nil
}
