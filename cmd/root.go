package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ridoystarlord/lifeplan/config"
	"github.com/ridoystarlord/lifeplan/utils"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	configPath string
	verbosity  int
	serverURL  string

	cfg        config.Config
	configured bool
)

var rootCmd = &cobra.Command{
	Use:   "lifeplan",
	Short: "Personal life planner: API server and command-line client",
	Long: `lifeplan keeps yearly plans, habits, diaries, reading and wish lists.

Examples:

  lifeplan migrate
  lifeplan serve
  lifeplan years add 2026
  lifeplan month goals add 2026 may "Run 50km"
  lifeplan shell
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// setup loads the configuration once per process and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	if configured {
		return nil
	}
	utils.LoadEnv()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	c, err := config.Load(wd, configPath, nil)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		c.Verbosity = verbosity
	}
	if serverURL != "" {
		c.Client.ServerURL = serverURL
	}

	if c.LogFile != "" {
		commonlog.Configure(c.Verbosity, &c.LogFile)
	} else {
		commonlog.Configure(c.Verbosity, nil)
	}

	cfg = c
	configured = true
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./"+config.FileName+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "planner server URL for client commands")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(schemaCmd)

	rootCmd.AddCommand(clientCommands()...)
	rootCmd.AddCommand(blogCmd, ideasCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(shellCmd)
}
