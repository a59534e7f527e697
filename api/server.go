// Package api exposes the planner store over HTTP.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ridoystarlord/lifeplan/assets"
	"github.com/ridoystarlord/lifeplan/config"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lifeplan.api")

const shutdownTimeout = 10 * time.Second

// Server is the planner HTTP API.
type Server struct {
	store *store.Store
	files *assets.Storage
	app   *fiber.App
}

// New builds the Fiber application with every route registered.
func New(st *store.Store, files *assets.Storage, cfg config.ServerConfig) *Server {
	s := &Server{store: st, files: files}
	fc := fiber.Config{
		AppName:               "lifeplan",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	}
	if cfg.BodyLimitMB > 0 {
		fc.BodyLimit = cfg.BodyLimitMB << 20
	}
	s.app = fiber.New(fc)
	s.app.Use(requestLogger(), recover.New())
	s.routes()
	return s
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves on addr until ctx is cancelled, then waits for in-flight
// requests to finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.app.Listen(addr)
	}()
	log.Infof("listening on %s", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}
