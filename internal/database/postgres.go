package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movieverse/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS dashboard_movies (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(500) NOT NULL,
		director VARCHAR(255) NOT NULL DEFAULT '',
		release_year INTEGER NOT NULL,
		runtime_minutes INTEGER,
		genre VARCHAR(100) NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		metascore DOUBLE PRECISION,
		gross_millions DOUBLE PRECISION,
		imported_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	// Indexes for the dashboard filters
	`CREATE INDEX IF NOT EXISTS idx_dashboard_movies_genre ON dashboard_movies(genre)`,
	`CREATE INDEX IF NOT EXISTS idx_dashboard_movies_release_year ON dashboard_movies(release_year)`,
}
