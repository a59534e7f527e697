package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ridoystarlord/lifeplan/api"
	"github.com/ridoystarlord/lifeplan/assets"
	"github.com/ridoystarlord/lifeplan/loader"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var (
	serveAddr     string
	serveDefaults string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner API server",
	Long: `Run the planner API server. Pending migrations are applied first
unless database.auto_migrate is false.

Examples:
  lifeplan serve
  lifeplan serve --addr :9000
  lifeplan serve --defaults ./my-defaults.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := commonlog.GetLogger("lifeplan.serve")
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		defaults, err := loader.LoadDefaults(serveDefaults)
		if err != nil {
			return err
		}

		r, err := migrationRunner()
		if err != nil {
			return err
		}
		if cfg.Database.AutoMigrate {
			applied, err := r.Apply(ctx)
			if err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}
			for _, name := range applied {
				log.Infof("applied migration %s", name)
			}
		}

		pool, err := openPool()
		if err != nil {
			return err
		}
		files, err := assets.New(cfg.Server.UploadsDir)
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := api.New(store.New(pool, defaults), files, cfg.Server)
		fmt.Printf("🚀 Planner server listening on %s (assets in %s)\n", addr, files.Root())
		if err := srv.Run(ctx, addr); err != nil {
			return err
		}
		fmt.Println("👋 Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveDefaults, "defaults", "", "YAML file with the rows seeded for new years")
	addDirFlag(serveCmd)
}
