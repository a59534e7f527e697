package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridoystarlord/lifeplan/config"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lifeplan.database")

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// Open creates a connection pool for url and verifies it with a ping.
func Open(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	if maxConns > 0 {
		pcfg.MaxConns = maxConns
	}

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Debugf("connected to %s:%d/%s", pcfg.ConnConfig.Host, pcfg.ConnConfig.Port, pcfg.ConnConfig.Database)
	return p, nil
}

// GetPool returns a singleton connection pool for the application
func GetPool(cfg config.Config) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		url, err := cfg.DatabaseURL()
		if err != nil {
			poolErr = err
			return
		}
		pool, poolErr = Open(context.Background(), url, cfg.Database.MaxConns)
	})

	return pool, poolErr
}

// ClosePool closes the connection pool (should be called on application shutdown)
func ClosePool() {
	if pool != nil {
		pool.Close()
	}
}
