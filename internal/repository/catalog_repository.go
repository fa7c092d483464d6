package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"movieverse/internal/dashboard"
)

// CatalogRepository stores the dashboard dataset in PostgreSQL.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ReplaceAll swaps the stored dataset for records in one transaction.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, records []dashboard.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE dashboard_movies RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate dashboard_movies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dashboard_movies (title, director, release_year, runtime_minutes,
			genre, rating, metascore, gross_millions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Title, rec.Director, rec.ReleaseYear, nullableInt(rec.Runtime),
			rec.Genre, rec.Rating, nullableFloat(rec.Metascore), nullableFloat(rec.GrossMillions),
		); err != nil {
			return fmt.Errorf("insert row %d (%q): %w", i, rec.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	slog.Info("dashboard catalog replaced", "rows", len(records))
	return nil
}

// ListAll returns the stored dataset in import order.
func (r *CatalogRepository) ListAll(ctx context.Context) ([]dashboard.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT title, director, release_year, runtime_minutes, genre, rating,
			metascore, gross_millions
		FROM dashboard_movies
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	records := make([]dashboard.Record, 0)
	for rows.Next() {
		var rec dashboard.Record
		var runtime sql.NullInt64
		var metascore, gross sql.NullFloat64
		if err := rows.Scan(&rec.Title, &rec.Director, &rec.ReleaseYear, &runtime,
			&rec.Genre, &rec.Rating, &metascore, &gross); err != nil {
			return nil, fmt.Errorf("scan dashboard row: %w", err)
		}
		rec.Runtime = intFromNull(runtime)
		rec.Metascore = floatFromNull(metascore)
		rec.GrossMillions = floatFromNull(gross)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Load makes the repository a dashboard.Source.
func (r *CatalogRepository) Load(ctx context.Context) ([]dashboard.Record, error) {
	return r.ListAll(ctx)
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
