package goosemigrate

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsTable = "migrations"

// Migrator applies goose migrations from an embedded FS.
// goose keeps its settings in package globals, so migrators must not run concurrently.
type Migrator struct {
	fsys           fs.FS
	migrationsPath string
	schemaName     string
}

// NewMigrator returns a migrator for migrationsPath inside fsys. An empty
// schemaName keeps the goose table in the default schema (SQLite).
func NewMigrator(fsys fs.FS, migrationsPath, schemaName string) *Migrator {
	return &Migrator{
		fsys:           fsys,
		migrationsPath: migrationsPath,
		schemaName:     schemaName,
	}
}

// UpPostgres opens postgresURL with the pgx stdlib driver, creates the schema
// and applies pending migrations.
func (m *Migrator) UpPostgres(postgresURL string) error {
	db, err := goose.OpenDBWithDriver("postgres", postgresURL)
	if err != nil {
		return fmt.Errorf("failed to open DB for migration: %w", err)
	}

	if m.schemaName != "" {
		if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", m.schemaName)); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := m.Up(db, "postgres"); err != nil {
		_ = db.Close()
		return err
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close db for migration: %w", err)
	}

	return nil
}

// Up applies pending migrations to an already opened db.
func (m *Migrator) Up(db *sql.DB, dialect string) error {
	if err := m.setup(dialect); err != nil {
		return err
	}

	if err := goose.Up(db, m.migrationsPath); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}

	return nil
}

// Down rolls back the latest migration.
func (m *Migrator) Down(db *sql.DB, dialect string) error {
	if err := m.setup(dialect); err != nil {
		return err
	}

	if err := goose.Down(db, m.migrationsPath); err != nil {
		return fmt.Errorf("failed to down migrations: %w", err)
	}

	return nil
}

func (m *Migrator) setup(dialect string) error {
	goose.SetBaseFS(m.fsys)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if m.schemaName != "" {
		goose.SetTableName(m.schemaName + "." + migrationsTable)
	} else {
		goose.SetTableName(migrationsTable)
	}

	return nil
}
