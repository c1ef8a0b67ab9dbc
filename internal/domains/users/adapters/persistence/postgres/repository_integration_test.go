//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	userspostgres "github.com/pethaven/pethaven-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/pethaven/pethaven-api/internal/domains/users/domain"
	"github.com/pethaven/pethaven-api/internal/domains/users/ports"
	"github.com/pethaven/pethaven-api/internal/platform/migrations"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("pethaven_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestPostgresRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := userspostgres.NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("maya.iyer@example.com", "Maya", "Iyer")
	require.NoError(t, err)

	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, created.Entity.ID)
	assert.Equal(t, domain.RoleUser, created.Entity.Role)
	assert.False(t, created.Metadata.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maya", byID.Entity.FirstName)

	byEmail, err := repo.FindByEmail(ctx, "maya.iyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.Entity.ID, byEmail.Entity.ID)
}

func TestPostgresRepository_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := userspostgres.NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewUser("dup@example.com", "First", "User")
	require.NoError(t, err)
	_, err = repo.Create(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewUser("dup@example.com", "Second", "User")
	require.NoError(t, err)
	_, err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestPostgresRepository_DeleteAndNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := userspostgres.NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("gone@example.com", "Soon", "Gone")
	require.NoError(t, err)
	created, err := repo.Create(ctx, user)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.Entity.ID))

	_, err = repo.GetByID(ctx, created.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, created.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ListAllPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := userspostgres.NewRepository(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		user, err := domain.NewUser(fmt.Sprintf("user%d@example.com", i), fmt.Sprintf("User%d", i), "Test")
		require.NoError(t, err)
		_, err = repo.Create(ctx, user)
		require.NoError(t, err)
	}

	firstPage, total, err := repo.ListAll(ctx, pagination.Request{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, firstPage, 2)

	lastPage, _, err := repo.ListAll(ctx, pagination.Request{Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, lastPage, 1)
}
