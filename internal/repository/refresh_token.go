package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/model"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateRefreshToken")

	start := time.Now()
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(token)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to store refresh token").
			Uint("user_id", token.UserID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Refresh token stored").
		Uint("user_id", token.UserID).
		Uint("token_id", token.ID).
		Time("expires_at", token.ExpiresAt).
		Duration(duration).
		Log()

	return nil
}

// FindByToken looks up a refresh token by its value and preloads the owning user
func (r *RefreshTokenRepository) FindByToken(ctx context.Context, value string) (*model.RefreshToken, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FindRefreshToken")

	start := time.Now()
	var token model.RefreshToken

	result := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", value).
		First(&token)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "Refresh token lookup failed").
			Int("token_length", len(value)).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Refresh token found").
		Uint("token_id", token.ID).
		Uint("user_id", token.UserID).
		Duration(duration).
		Log()

	return &token, nil
}

func (r *RefreshTokenRepository) DeleteByID(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteRefreshTokenByID")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.RefreshToken{}, id)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete refresh token").
			Uint("token_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Refresh token deleted").
		Uint("token_id", id).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}

// DeleteByToken removes every row carrying value and reports how many went.
// Zero rows is not an error.
func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, value string) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteRefreshTokensByToken")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("token = ?", value).Delete(&model.RefreshToken{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete refresh tokens").
			Duration(duration).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.DebugWithContext(ctx, "Refresh tokens deleted").
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return result.RowsAffected, nil
}

// DeleteExpired removes rows whose expiry is before now
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteExpiredRefreshTokens")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.RefreshToken{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to clean up expired refresh tokens").
			Duration(duration).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "Expired refresh tokens cleaned up").
		Int64("cleaned_count", result.RowsAffected).
		Duration(duration).
		Log()

	return result.RowsAffected, nil
}
