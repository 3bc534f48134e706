package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"checkout-mini-demo/internal/config"
)

// Service represents a service that interacts with a database.
type Service interface {
	// DB exposes the underlying handle for the repositories.
	DB() *sql.DB

	// EnsureSchema creates the orders table if it does not exist yet.
	EnsureSchema(ctx context.Context) error

	// Health returns a map of health status information.
	Health(ctx context.Context) map[string]string

	// Close terminates the database connection.
	Close() error
}

type service struct {
	db   *sql.DB
	name string
}

func New(cfg config.DB) (Service, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &service{db: db, name: cfg.Database}, nil
}

func (s *service) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, s.db)
}

// EnsureSchema creates the orders table if it does not exist yet. All writes
// are single-row statements against this table.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			order_id        TEXT PRIMARY KEY,
			amount          BIGINT NOT NULL,
			currency        TEXT NOT NULL,
			status          TEXT NOT NULL,
			idempotency_key TEXT,
			provider_tx     TEXT,
			created_at      TIMESTAMPTZ NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure orders table: %w", err)
	}
	return nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

// Health checks the health of the database connection by pinging the database.
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	log.Printf("Disconnected from database: %s", s.name)
	return s.db.Close()
}
