//go:build integration

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"udin/src/core/domain"
	"udin/src/infra/config"
	"udin/src/infra/db"
	"udin/src/infra/logger"
)

type account struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func startPostgres(ctx context.Context, t *testing.T) config.DatabaseConfig {
	t.Helper()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("udin_it"),
		postgres.WithUsername("udin"),
		postgres.WithPassword("udin"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(terminateCtx); err != nil {
			t.Logf("Warning: failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Environment:  config.EnvTest,
		Host:         host,
		Port:         port.Int(),
		Name:         "udin_it",
		User:         "udin",
		Password:     "udin",
		QueryTimeout: 5 * time.Second,
	}
	require.NoError(t, cfg.Resolve())
	return cfg
}

func TestTable_Postgres(t *testing.T) {
	ctx := context.Background()
	cfg := startPostgres(ctx, t)
	log := logger.Discard()

	pg, err := db.New(ctx, cfg, log, db.WithFatalHandler(func(err error) {
		t.Errorf("unexpected fatal error: %v", err)
	}))
	require.NoError(t, err)
	q := db.NewLogged(db.NewExecutor(pg.Pool, cfg.QueryTimeout), log, nil)
	t.Cleanup(q.Shutdown)

	require.True(t, q.CheckConnection(ctx))

	conn, err := pg.Acquire(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, conn.Conn().PgConn().ParameterStatus("server_version"))
	conn.Release()

	require.NoError(t, q.EnsureTable(ctx, "accounts", `
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()`))

	accounts := NewTable[account](q, "accounts", log)

	t.Run("Should create and find records", func(t *testing.T) {
		created, err := accounts.Create(ctx, Values{"email": "a@example.com"})
		require.NoError(t, err)
		assert.True(t, created.Active)

		found, err := accounts.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "a@example.com", found.Email)

		missing, err := accounts.FindByID(ctx, int64(-1))
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Should report duplicates as conflicts", func(t *testing.T) {
		_, err := accounts.Create(ctx, Values{"email": "a@example.com"})
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("Should update, count and delete", func(t *testing.T) {
		b, err := accounts.Create(ctx, Values{"email": "b@example.com"})
		require.NoError(t, err)

		updated, err := accounts.Update(ctx, b.ID, Values{"active": false})
		require.NoError(t, err)
		assert.False(t, updated.Active)

		n, err := accounts.Count(ctx, squirrel.Eq{"active": true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		deleted, err := accounts.Delete(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		none, err := accounts.Update(ctx, b.ID, Values{"active": true})
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("Should roll back failed transactions", func(t *testing.T) {
		before, err := accounts.Count(ctx, nil)
		require.NoError(t, err)

		err = accounts.Transaction(ctx, func(ctx context.Context, tx db.Querier) error {
			if _, err := accounts.WithTx(tx).Create(ctx, Values{"email": "c@example.com"}); err != nil {
				return err
			}
			_, err := accounts.WithTx(tx).Create(ctx, Values{"email": "a@example.com"})
			return err
		})
		assert.True(t, domain.IsConflict(err))

		after, err := accounts.Count(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
