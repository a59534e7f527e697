package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		r, err := migrationRunner()
		if err != nil {
			fmt.Println("❌ Database connection failed:", err)
			os.Exit(1)
		}
		report, err := r.Status(cmd.Context())
		if err != nil {
			fmt.Println("❌ Status error:", err)
			os.Exit(1)
		}

		fmt.Println("✅ Applied migrations:")
		for _, f := range report.Applied {
			fmt.Println("   -", f)
		}

		if len(report.Failed) > 0 {
			fmt.Println("\n❌ Failed migrations:")
			for _, f := range report.Failed {
				fmt.Printf("   - %s: %s\n", f.MigrationName, f.ErrorMessage)
			}
		}

		fmt.Println("\n🕒 Pending migrations:")
		for _, f := range report.Pending {
			fmt.Println("   -", f)
		}
	},
}

func init() {
	addDirFlag(statusCmd)
}
