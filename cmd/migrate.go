package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/spf13/cobra"
)

var (
	dryRunMigrate bool
	clearFailed   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long: `Apply pending planner migrations.

Examples:
  lifeplan migrate                 # Apply the embedded migrations
  lifeplan migrate --dry-run       # Print the SQL that would run
  lifeplan migrate --clear-failed  # Forget failed runs, then retry
  lifeplan migrate --dir ./sql     # Use migration files from a directory
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		r, err := migrationRunner()
		if err != nil {
			fmt.Println("❌ Database connection failed:", err)
			os.Exit(1)
		}

		if dryRunMigrate {
			pending, err := r.Pending(ctx)
			if err != nil {
				fmt.Println("❌ Dry run failed:", err)
				os.Exit(1)
			}
			if len(pending) == 0 {
				fmt.Println("✅ No pending migrations.")
				return
			}
			fmt.Println("\n================ DRY RUN: Migration Preview ================")
			for _, m := range pending {
				fmt.Printf("-- %s --\n%s\n\n", m.Name, m.Up)
			}
			fmt.Println("============================================================")
			fmt.Println("(Dry run only. Nothing was applied.)")
			return
		}

		if clearFailed {
			n, err := r.ClearFailed(ctx)
			if err != nil {
				fmt.Println("❌ Clearing failed migrations:", err)
				os.Exit(1)
			}
			fmt.Printf("🧹 Cleared %d failed migration record(s).\n", n)
		}

		applied, err := r.Apply(ctx)
		for _, name := range applied {
			fmt.Println("✅ Applied", name)
		}
		if errors.Is(err, runner.ErrFailedMigrations) {
			fmt.Println("❌", err)
			fmt.Println("   Fix the migration and run 'lifeplan migrate --clear-failed'")
			os.Exit(1)
		}
		if err != nil {
			fmt.Println("❌ Migration failed:", err)
			os.Exit(1)
		}
		if len(applied) == 0 {
			fmt.Println("✅ Database is up to date.")
		}
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&dryRunMigrate, "dry-run", false, "Preview the SQL that would be executed without applying migrations")
	migrateCmd.Flags().BoolVar(&clearFailed, "clear-failed", false, "Remove failed migration records before applying")
	addDirFlag(migrateCmd)
}
