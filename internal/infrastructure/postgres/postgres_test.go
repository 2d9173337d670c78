package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	require.NoError(t, RunMigrations(dsn, "../../../db/migrations", nil))

	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, MaxConns: 4})
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "TRUNCATE users, notices")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, isUniqueViolation(errors.New("other")))
}

func TestUserRepository_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	r := NewUserRepository(pool)

	require.NoError(t, r.Create(ctx, &entity.User{ID: "u1", Username: "alice", PasswordHash: "h", CreatedAt: time.Now()}))
	assert.ErrorIs(t, r.Create(ctx, &entity.User{ID: "u2", Username: "alice", PasswordHash: "h", CreatedAt: time.Now()}), repository.ErrDuplicate)

	u, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = r.GetByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNoticeRepository_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	r := NewNoticeRepository(pool)

	_, err := r.Latest(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	at := time.Now().UTC()
	a, b := "a", "b"
	require.NoError(t, r.Create(ctx, &entity.Notice{ID: "n1", Username: "guest", Text: &a, CreatedAt: at}))
	require.NoError(t, r.Create(ctx, &entity.Notice{ID: "n2", Username: "guest", Text: &b, CreatedAt: at}))

	latest, err := r.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "n2", latest.ID)
	assert.Nil(t, latest.Image)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)
}
