package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/dto"
	"github.com/Payphone-Digital/auth-service/internal/model"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FindByID")

	logger.DebugWithContext(ctx, "Getting user by ID").
		Uint("id", id).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by ID failed").
			Uint("id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		Uint("id", id).
		Duration(duration).
		Log()

	return &user, nil
}

// FindByEmail finds a user by an already-normalized email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FindByEmail")

	logger.DebugWithContext(ctx, "Getting user by email").
		String("email", email).
		Log()

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by email failed").
			String("email", email).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully by email").
		String("email", email).
		Uint("id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// Create inserts a user. A unique violation on email is returned as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateUser")

	logger.DebugWithContext(ctx, "Creating new user").
		String("email", user.Email).
		String("role", user.Role).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Omit("RefreshTokens").Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.WarnWithContext(ctx, "Email already registered").
				String("email", user.Email).
				Duration(duration).
				Log()
			return fmt.Errorf("%w: %v", ErrDuplicateEmail, result.Error)
		}
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("email", user.Email).
		Uint("id", user.ID).
		Duration(duration).
		Log()

	return nil
}

// List returns one page of users and the total matching count. query.SortBy
// must already be a column name from the sortable allow-list.
func (r *UserRepository) List(ctx context.Context, query dto.ListUsersQuery) ([]model.User, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ListUsers")

	logger.DebugWithContext(ctx, "Listing users").
		String("search", query.Search).
		String("sort_by", query.SortBy).
		String("order", query.Order).
		Int("limit", query.Limit).
		Int("offset", query.Offset).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, 0, err
	}

	start := time.Now()
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})

	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count users").
			Err(err).
			Log()
		return nil, 0, err
	}

	order := "DESC"
	if strings.EqualFold(query.Order, "asc") {
		order = "ASC"
	}

	if err := db.Order(query.SortBy + " " + order).
		Order("id " + order).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&users).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch users").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Users listed successfully").
		Int64("total", total).
		Int("returned_count", len(users)).
		Duration(time.Since(start)).
		Log()

	return users, total, nil
}
