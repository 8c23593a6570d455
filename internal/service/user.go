package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"gorm.io/gorm"
)

// UserStore is the read side of the user table
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, query dto.ListUsersQuery) ([]model.User, int64, error)
}

// ListUsersParams is the listing request as received from the client
type ListUsersParams struct {
	Search     string
	SortBy     string
	Order      string
	Pagination constants.PaginationParams
}

type UserService struct {
	repoUser UserStore
	cache    *CacheService
}

func NewUserService(repo UserStore, cache *CacheService) *UserService {
	return &UserService{repoUser: repo, cache: cache}
}

// ResolveSort maps a public sortBy/order pair onto an allow-listed column and
// direction. An empty sortBy means createdAt; an unknown one is rejected.
func ResolveSort(sortBy, order string) (string, string, error) {
	if sortBy == "" {
		sortBy = constants.DefaultSortBy
	}
	column, ok := constants.SortableUserColumns[sortBy]
	if !ok {
		return "", "", apperrors.ErrInvalidSortField
	}
	if order = strings.ToLower(order); order != constants.OrderAsc {
		order = constants.OrderDesc
	}
	return column, order, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetUserByID")

	if cached, ok := s.cache.GetUser(ctx, id); ok {
		logger.DebugWithContext(ctx, "User served from cache").
			Uint("id", id).
			Log()
		return cached, nil
	}

	user, err := s.repoUser.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "User not found").
				Uint("id", id).
				Log()
			return nil, apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get user by ID").
			Uint("id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.NewUserResponse(user)
	s.cache.SetUser(ctx, &response)

	return &response, nil
}

func (s *UserService) List(ctx context.Context, params ListUsersParams) ([]dto.UserResponse, *constants.PaginationMeta, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListUsers")

	column, order, err := ResolveSort(params.SortBy, params.Order)
	if err != nil {
		logger.InfoWithContext(ctx, "Rejected sort field").
			String("sort_by", params.SortBy).
			Log()
		return nil, nil, err
	}

	if params.Pagination.Limit < constants.MinLimit {
		params.Pagination = constants.PaginationParams{Page: constants.MinPage, Limit: 10}
	}

	users, total, err := s.repoUser.List(ctx, dto.ListUsersQuery{
		Search: params.Search,
		SortBy: column,
		Order:  order,
		Limit:  params.Pagination.Limit,
		Offset: params.Pagination.Offset,
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list users").
			Err(err).
			Log()
		return nil, nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		res = append(res, dto.NewUserResponse(&users[i]))
	}

	meta := &constants.PaginationMeta{
		Page:       params.Pagination.Page,
		Limit:      params.Pagination.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(params.Pagination.Limit))),
	}

	logger.InfoWithContext(ctx, "Users retrieved successfully").
		String("search", params.Search).
		Int64("total", total).
		Int("page", meta.Page).
		Int("returned_count", len(res)).
		Log()

	return res, meta, nil
}
