package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/migrations"
	"github.com/leonid6372/lifery-bot/pkg/goosemigrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Integration tests run against a real PostgreSQL started with testcontainers-go:
//
//	GO_TEST_INTEGRATION=1 go test ./internal/common/repositories/postgres -v -race -count=1
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     tc.ProviderDocker,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// The port may accept connections before the server is ready.
	require.Eventually(t, func() bool {
		return goosemigrate.NewMigrator(migrations.FS, migrations.DirPostgres, Schema).UpPostgres(dsn) == nil
	}, 30*time.Second, 500*time.Millisecond)

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestIntegration_UsersRepository(t *testing.T) {
	pool := startPostgres(t)
	repo := NewUsersRepository(pool)
	ctx := context.Background()

	birth := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("get absent", func(t *testing.T) {
		user, err := repo.GetUserByID(ctx, 42)
		require.NoError(t, err)
		require.Nil(t, user)
	})

	t.Run("upsert creates then updates in place", func(t *testing.T) {
		created, err := repo.UpsertUser(ctx, 42, birth, domain.English)
		require.NoError(t, err)
		require.EqualValues(t, 42, created.ID)
		require.True(t, birth.Equal(created.BirthDate))
		require.Equal(t, domain.English, created.LanguageCode)

		updatedBirth := birth.AddDate(1, 0, 0)
		updated, err := repo.UpsertUser(ctx, 42, updatedBirth, domain.Russian)
		require.NoError(t, err)
		require.True(t, updatedBirth.Equal(updated.BirthDate))
		require.Equal(t, domain.Russian, updated.LanguageCode)
		require.True(t, created.CreatedAt.Equal(updated.CreatedAt))

		all, err := repo.GetAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("upsert is idempotent", func(t *testing.T) {
		for range 2 {
			_, err := repo.UpsertUser(ctx, 7, birth, domain.English)
			require.NoError(t, err)
		}

		user, err := repo.GetUserByID(ctx, 7)
		require.NoError(t, err)
		require.True(t, birth.Equal(user.BirthDate))
		require.Equal(t, domain.English, user.LanguageCode)
	})

	t.Run("concurrent upserts keep one record", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.UpsertUser(ctx, 100, birth.AddDate(0, 0, i), domain.English)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		var count int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM lifery.users WHERE chat_id = 100`).Scan(&count))
		require.Equal(t, 1, count)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.DeleteUser(ctx, 42)
		require.NoError(t, err)
		require.True(t, deleted)

		user, err := repo.GetUserByID(ctx, 42)
		require.NoError(t, err)
		require.Nil(t, user)

		deleted, err = repo.DeleteUser(ctx, 42)
		require.NoError(t, err)
		require.False(t, deleted)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.GetAllUsers(cctx)
		require.Error(t, err)
	})
}
