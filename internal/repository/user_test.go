package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Payphone-Digital/auth-service/internal/dto"
	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := createUser(t, repo, "Jane Doe", "jane@x.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "staff", byEmail.Role)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", byID.Name)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "nobody@x.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.FindByID(ctx, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	createUser(t, repo, "Jane Doe", "jane@x.com")

	err := repo.Create(context.Background(), &model.User{Name: "Other", Email: "jane@x.com", Role: "staff", Password: "hash"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateEmail))
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	createUser(t, repo, "Alice", "alice@x.com")
	createUser(t, repo, "Bob", "bob@x.com")
	createUser(t, repo, "Carol", "carol@example.org")

	t.Run("sorted by name ascending", func(t *testing.T) {
		users, total, err := repo.List(ctx, dto.ListUsersQuery{SortBy: "name", Order: "asc", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, users, 3)
		assert.Equal(t, "Alice", users[0].Name)
		assert.Equal(t, "Carol", users[2].Name)
	})

	t.Run("search is case-insensitive over name and email", func(t *testing.T) {
		users, total, err := repo.List(ctx, dto.ListUsersQuery{Search: "X.COM", SortBy: "id", Order: "asc", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, users, 2)

		users, total, err = repo.List(ctx, dto.ListUsersQuery{Search: "car", SortBy: "id", Order: "asc", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Carol", users[0].Name)
	})

	t.Run("paging keeps the total", func(t *testing.T) {
		users, total, err := repo.List(ctx, dto.ListUsersQuery{SortBy: "name", Order: "desc", Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice", users[0].Name)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, true},
		{"wrapped postgres unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), true},
		{"postgres other error", &pgconn.PgError{Code: pgerrcode.NotNullViolation}, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), true},
		{"unrelated", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
