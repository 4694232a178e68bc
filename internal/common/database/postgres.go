// internal/common/database/postgres.go

// Package database builds the backing-store clients from config: postgres
// for pitch records, redis for quota counters, elasticsearch for the pitch
// archive. Each wrapper owns connection setup and health checking; the
// domain packages receive the underlying clients.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pitchforge/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient holds the pitch record database pool.
type PostgresClient struct {
	DB *sql.DB
}

func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	// recycle connections ahead of load balancer idle cutoffs
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
