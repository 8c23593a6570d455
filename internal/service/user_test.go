package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/Payphone-Digital/auth-service/pkg/circuit"
	"github.com/Payphone-Digital/auth-service/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserStore struct {
	users     map[uint]model.User
	findCalls int
	listErr   error
	lastQuery dto.ListUsersQuery
	total     int64
}

func (s *stubUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	s.findCalls++
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *stubUserStore) List(ctx context.Context, query dto.ListUsersQuery) ([]model.User, int64, error) {
	s.lastQuery = query
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, s.total, nil
}

func newStubUsers() *stubUserStore {
	return &stubUserStore{users: map[uint]model.User{
		1: {ID: 1, Name: "Jane Doe", Email: "jane@example.com", Role: "admin", Password: "hash", CreatedAt: time.Now()},
	}}
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *CacheService) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), nil)
	return mr, NewCacheService(client, time.Minute)
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		sortBy, order    string
		wantCol, wantDir string
		wantErr          bool
	}{
		{"", "", "created_at", "desc", false},
		{"createdAt", "asc", "created_at", "asc", false},
		{"name", "ASC", "name", "asc", false},
		{"role", "sideways", "role", "desc", false},
		{"email", "desc", "email", "desc", false},
		{"password", "asc", "", "", true},
		{"name; DROP TABLE users", "asc", "", "", true},
	}

	for _, tt := range tests {
		col, dir, err := ResolveSort(tt.sortBy, tt.order)
		if tt.wantErr {
			assert.True(t, errors.Is(err, apperrors.ErrInvalidSortField), "sortBy %q", tt.sortBy)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.wantCol, col)
		assert.Equal(t, tt.wantDir, dir)
	}
}

func TestUserService_GetByID(t *testing.T) {
	store := newStubUsers()
	svc := NewUserService(store, NewCacheService(nil, 0))
	ctx := context.Background()

	user, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	_, err = svc.GetByID(ctx, 2)
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
	assert.Equal(t, 404, apperrors.ToHTTPStatus(err))
}

func TestUserService_GetByIDUsesCache(t *testing.T) {
	store := newStubUsers()
	mr, cache := newTestCache(t)
	svc := NewUserService(store, cache)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, mr.Exists("auth:user:1"))

	cached, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cached.Name)
	assert.Equal(t, 1, store.findCalls)

	mr.Del("auth:user:1")
	_, err = svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, store.findCalls)
}

func TestUserService_CacheOutageFallsBackToStore(t *testing.T) {
	store := newStubUsers()
	mr, cache := newTestCache(t)
	mr.Close()

	svc := NewUserService(store, cache)
	user, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestCacheService_BreakerSkipsDeadRedis(t *testing.T) {
	store := newStubUsers()
	mr, cache := newTestCache(t)
	breaker := circuit.NewBreaker("user-cache", circuit.Config{Threshold: 2, Timeout: time.Hour}, nil)
	cache.WithBreaker(breaker)
	mr.Close()

	svc := NewUserService(store, cache)
	ctx := context.Background()

	// the failed read and the failed write open the circuit
	_, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, circuit.StateOpen, breaker.State())

	user, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, 2, store.findCalls)
}

func TestCacheService_MissDoesNotTripBreaker(t *testing.T) {
	_, cache := newTestCache(t)
	breaker := circuit.NewBreaker("user-cache", circuit.Config{Threshold: 1, Timeout: time.Hour}, nil)
	cache.WithBreaker(breaker)

	_, ok := cache.GetUser(context.Background(), 42)
	assert.False(t, ok)
	assert.Equal(t, circuit.StateClosed, breaker.State())
}

func TestUserService_List(t *testing.T) {
	store := newStubUsers()
	store.total = 21
	svc := NewUserService(store, NewCacheService(nil, 0))

	users, meta, err := svc.List(context.Background(), ListUsersParams{
		Search:     "jane",
		SortBy:     "createdAt",
		Order:      "asc",
		Pagination: constants.PaginationParams{Page: 2, Limit: 10, Offset: 10},
	})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, &constants.PaginationMeta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, meta)
	assert.Equal(t, dto.ListUsersQuery{Search: "jane", SortBy: "created_at", Order: "asc", Limit: 10, Offset: 10}, store.lastQuery)

	_, _, err = svc.List(context.Background(), ListUsersParams{SortBy: "password", Pagination: constants.PaginationParams{Page: 1, Limit: 10}})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidSortField))

	store.listErr = errors.New("timeout")
	_, _, err = svc.List(context.Background(), ListUsersParams{Pagination: constants.PaginationParams{Page: 1, Limit: 10}})
	assert.True(t, errors.Is(err, apperrors.ErrInternal))
}
