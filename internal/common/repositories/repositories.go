// Package repositories opens the user registry configured for the process.
package repositories

import (
	"context"
	"fmt"

	"github.com/leonid6372/lifery-bot/internal/common/config"
	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/internal/common/repositories/cached"
	"github.com/leonid6372/lifery-bot/internal/common/repositories/postgres"
	"github.com/leonid6372/lifery-bot/internal/common/repositories/sqlite"
	"github.com/leonid6372/lifery-bot/migrations"
	"github.com/leonid6372/lifery-bot/pkg/goosemigrate"
	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
)

// OpenUsers migrates and opens the storage named by cfg.Storage.Driver. The
// returned close func releases the storage handle.
func OpenUsers(ctx context.Context, cfg *config.Config) (domain.UsersRepository, func(), error) {
	var (
		users domain.UsersRepository
		close func()
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		log.Info("init postgres...")

		if err := goosemigrate.NewMigrator(migrations.FS, migrations.DirPostgres, postgres.Schema).
			UpPostgres(cfg.GetPostgresURL()); err != nil {
			return nil, nil, fmt.Errorf("migrations up failed: %w", err)
		}

		pool, err := postgres.NewPool(ctx, cfg.GetPostgresURL())
		if err != nil {
			return nil, nil, fmt.Errorf("postgres init failed: %w", err)
		}

		users = postgres.NewUsersRepository(pool)
		close = pool.Close

	case config.DriverSQLite:
		log.Info("init sqlite...", zap.String("path", cfg.SQLite.Path))

		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite init failed: %w", err)
		}

		users = sqlite.NewUsersRepository(db)
		close = func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close sqlite", zap.Error(err))
			}
		}

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Storage.CacheTTL > 0 {
		users = cached.NewUsersRepository(users, cfg.Storage.CacheTTL)
	}

	return users, close, nil
}
