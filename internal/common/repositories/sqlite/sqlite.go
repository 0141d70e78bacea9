package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leonid6372/lifery-bot/migrations"
	"github.com/leonid6372/lifery-bot/pkg/goosemigrate"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at path, applies PRAGMAs and
// migrations. The returned DB is limited to one connection: SQLite has a
// single writer, and it keeps an in-memory database alive between calls.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	const op = "repositories/sqlite/Open"

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: apply pragmas: %w", op, err)
	}

	if err := goosemigrate.NewMigrator(migrations.FS, migrations.DirSQLite, "").Up(db, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
