package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/spf13/cobra"
)

var (
	historyLimit    int
	historyTable    string
	historyDetailed bool
	historyLogs     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show migration history and activity logs",
	Long: `Show migration history with timestamps, execution times and user information.

Examples:
  lifeplan history                 # Show all migration history
  lifeplan history --limit 10      # Show last 10 migrations
  lifeplan history --table habit   # Show migrations touching matching tables
  lifeplan history --detailed      # Show detailed information
  lifeplan history --logs          # Show the activity log instead
`,
	Run: func(cmd *cobra.Command, args []string) {
		r, err := migrationRunner()
		if err != nil {
			fmt.Printf("❌ Error connecting to database: %v\n", err)
			os.Exit(1)
		}

		if historyLogs {
			logs, err := r.Logs(cmd.Context(), historyLimit)
			if err != nil {
				fmt.Printf("❌ Error getting migration logs: %v\n", err)
				os.Exit(1)
			}
			if len(logs) == 0 {
				fmt.Println("📋 No migration logs found")
				return
			}
			showMigrationLogs(logs)
			return
		}

		history, err := r.History(cmd.Context(), historyLimit, historyTable)
		if err != nil {
			fmt.Printf("❌ Error getting migration history: %v\n", err)
			os.Exit(1)
		}
		if len(history) == 0 {
			fmt.Println("📋 No migration history found")
			return
		}

		fmt.Println("📋 Migration History")
		fmt.Println(strings.Repeat("=", 60))
		if historyDetailed {
			showDetailedHistory(history)
		} else {
			showSummaryHistory(history)
		}
	},
}

func statusMark(status string) string {
	switch status {
	case "success":
		return color.New(color.FgGreen, color.Bold).Sprint("✅")
	case "failed":
		return color.New(color.FgRed, color.Bold).Sprint("❌")
	}
	return color.New(color.FgYellow, color.Bold).Sprint("⚠️")
}

func showDetailedHistory(history []runner.MigrationRecord) {
	red := color.New(color.FgRed, color.Bold)
	blue := color.New(color.FgBlue, color.Bold)
	cyan := color.New(color.FgCyan)

	for i, record := range history {
		fmt.Printf("\n%d. %s ", i+1, statusMark(record.Status))
		blue.Printf("%s\n", record.MigrationName)
		cyan.Printf("   📅 Executed: %s\n", record.ExecutedAt.Format("2006-01-02 15:04:05"))
		if record.ExecutionTime > 0 {
			cyan.Printf("   ⏱️  Duration: %v\n", record.ExecutionTime)
		}
		if record.ExecutedBy != "" {
			cyan.Printf("   👤 User: %s\n", record.ExecutedBy)
		}
		if record.TableAffected != "" {
			cyan.Printf("   📋 Tables: %s\n", record.TableAffected)
		}
		cyan.Printf("   📊 Status: %s\n", record.Status)
		if record.Status == "failed" && record.ErrorMessage != "" {
			red.Printf("   💥 Error: %s\n", record.ErrorMessage)
		}
		if len(record.Checksum) >= 8 {
			cyan.Printf("   🔍 Checksum: %s\n", record.Checksum[:8]+"...")
		}
	}
}

func showSummaryHistory(history []runner.MigrationRecord) {
	blue := color.New(color.FgBlue, color.Bold)

	fmt.Printf("%-4s %-8s %-25s %-12s %-10s %s\n", "ID", "Status", "Migration", "Duration", "User", "Date")
	fmt.Println(strings.Repeat("-", 80))

	var successCount, failedCount int
	var totalDuration time.Duration
	for i, record := range history {
		duration := "N/A"
		if record.ExecutionTime > 0 {
			duration = record.ExecutionTime.String()
			totalDuration += record.ExecutionTime
		}
		user := record.ExecutedBy
		if user == "" {
			user = "N/A"
		}
		name := record.MigrationName
		if len(name) > 23 {
			name = name[:20] + "..."
		}
		switch record.Status {
		case "success":
			successCount++
		case "failed":
			failedCount++
		}

		fmt.Printf("%-4d %-8s %-25s %-12s %-10s %s\n",
			i+1,
			statusMark(record.Status),
			blue.Sprint(name),
			duration,
			user,
			record.ExecutedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("📊 Summary: %d total, %d successful, %d failed\n", len(history), successCount, failedCount)
	if totalDuration > 0 {
		fmt.Printf("⏱️  Total execution time: %v\n", totalDuration)
	}
}

func showMigrationLogs(logs []runner.MigrationLog) {
	cyan := color.New(color.FgCyan)

	fmt.Println("📋 Recent Migration Activities")
	fmt.Println(strings.Repeat("=", 60))

	for i, entry := range logs {
		fmt.Printf("\n%d. ", i+1)
		switch entry.Level {
		case "INFO":
			color.New(color.FgBlue, color.Bold).Print("ℹ️  ")
		case "ERROR":
			color.New(color.FgRed, color.Bold).Print("❌ ")
		case "SUCCESS":
			color.New(color.FgGreen, color.Bold).Print("✅ ")
		default:
			fmt.Print("📝 ")
		}
		cyan.Printf("[%s] ", entry.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Print(entry.Message)
		if entry.User != "" {
			fmt.Printf(" (by %s)", entry.User)
		}
		fmt.Println()
		if entry.Details != "" {
			cyan.Printf("   📄 Details: %s\n", entry.Details)
		}
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("📊 Showing %d log entries\n", len(logs))
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 0, "Limit number of records to show (0 = all)")
	historyCmd.Flags().StringVarP(&historyTable, "table", "t", "", "Filter by table name")
	historyCmd.Flags().BoolVarP(&historyDetailed, "detailed", "d", false, "Show detailed information")
	historyCmd.Flags().BoolVar(&historyLogs, "logs", false, "Show migration activity logs")
}
