//go:build integration

package users_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newPostgresRepo(t *testing.T) *users.SQLRepository {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("credkeeper_test"),
		postgres.WithUsername("credkeeper"),
		postgres.WithPassword("credkeeper"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, dialect, err := repomanager.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.Equal(t, dbx.Postgres, dialect)

	require.NoError(t, repomanager.NewRepositoryManager(dialect).RunMigrations(ctx, db))

	return users.NewSQLRepository(db, dialect)
}

func TestPostgres_UserStore(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, "test@test.com", "hash-1")
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "test@test.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash-1", found.PasswordHash)

	_, err = repo.FindByEmail(ctx, "TEST@test.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Insert(ctx, "test@test.com", "hash-2")
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	found, err = repo.FindByEmail(ctx, "test@test.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", found.PasswordHash)

	const n = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(ctx, "race@test.com", "h")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, common.ErrDuplicateEmail):
				dups++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dups)
}
