package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica las migraciones SQL embebidas con goose.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
}

// MigrationState estado de una migración.
type MigrationState struct {
	Version   int64
	Source    string
	Applied   bool
	AppliedAt time.Time
}

// NewMigrator abre un *sql.DB sobre el pool (driver pgx/stdlib) y carga las migraciones.
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return &Migrator{db: db, provider: provider}, nil
}

// Up aplica las migraciones pendientes y devuelve las versiones aplicadas.
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("aplicar migraciones: %w", err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// Down revierte la última migración aplicada.
func (m *Migrator) Down(ctx context.Context) (int64, error) {
	r, err := m.provider.Down(ctx)
	if err != nil {
		return 0, fmt.Errorf("revertir migración: %w", err)
	}
	return r.Source.Version, nil
}

// Status estado de cada migración conocida.
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	list, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("estado de migraciones: %w", err)
	}
	out := make([]MigrationState, 0, len(list))
	for _, s := range list {
		out = append(out, MigrationState{
			Version:   s.Source.Version,
			Source:    s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

// Close libera el *sql.DB (el pool sigue abierto).
func (m *Migrator) Close() error { return m.db.Close() }
