package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schuaBob/crew-server-go/internal/config"
	"go.uber.org/zap"
)

// DB wraps a pgx connection pool.
type DB struct {
	Pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB opens a connection pool against the configured database URL and
// verifies it with a ping.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if logger != nil {
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", pool.Stat().TotalConns()),
		)
	}
	return &DB{Pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (db *DB) Close() {
	db.Pool.Close()
}
