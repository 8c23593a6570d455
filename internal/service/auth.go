package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/Payphone-Digital/auth-service/internal/repository"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"gorm.io/gorm"
)

// CredentialStore is the persistence the authentication flow needs.
// Lookups that find nothing return gorm.ErrRecordNotFound; inserting a
// second user with the same email returns repository.ErrDuplicateEmail.
type CredentialStore interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error
	FindRefreshTokenByToken(ctx context.Context, value string) (*model.RefreshToken, error)
	DeleteRefreshTokenByID(ctx context.Context, id uint) error
	DeleteRefreshTokensByToken(ctx context.Context, value string) (int64, error)
}

type AuthService struct {
	store  CredentialStore
	hasher *PasswordHasher
	tokens *TokenIssuer
}

func NewAuthService(store CredentialStore, hasher *PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// NormalizeEmail lower-cases and trims an email before it is used as a key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and signs them in with a fresh token pair
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")
	email := NormalizeEmail(req.Email)

	logger.InfoWithContext(ctx, "Registering user").
		String("email", email).
		Log()

	_, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		logger.WarnWithContext(ctx, "Registration rejected: email already registered").
			String("email", email).
			Log()
		return nil, apperrors.ErrDuplicateCredential
	case !errors.Is(err, gorm.ErrRecordNotFound):
		logger.ErrorWithContext(ctx, "Failed to check existing user").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hashed, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Role:     constants.RoleStaff,
		Password: hashed,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		// lost a race with a concurrent registration for the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.WarnWithContext(ctx, "Registration rejected: unique constraint on email").
				String("email", email).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrDuplicateCredential, err)
		}
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "User registered successfully").
		Uint("user_id", user.ID).
		String("email", email).
		Log()

	return response, nil
}

// Login checks credentials and issues a new token pair. Earlier refresh
// tokens of the same user stay valid.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")
	email := NormalizeEmail(req.Email)

	logger.DebugWithContext(ctx, "Authenticating user").
		String("email", email).
		Log()

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.hasher.VerifyUnknown(ctx, req.Password); err != nil {
				logger.ErrorWithContext(ctx, "Failed to verify password").
					String("email", email).
					Err(err).
					Log()
				return nil, apperrors.WrapError(apperrors.ErrInternal, err)
			}
			logger.InfoWithContext(ctx, "Login failed").
				String("email", email).
				String("reason", "unknown email").
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.ErrorWithContext(ctx, "Failed to get user for login").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	ok, err := s.hasher.Verify(ctx, req.Password, user.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to verify password").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !ok {
		logger.InfoWithContext(ctx, "Login failed").
			String("email", email).
			String("reason", "password mismatch").
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	response, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "User logged in successfully").
		Uint("user_id", user.ID).
		String("email", email).
		Log()

	return response, nil
}

// Refresh exchanges a stored, unexpired refresh token for a new access token.
// The refresh token itself is not rotated. An expired row is deleted.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Refresh")

	if refreshToken == "" {
		return nil, apperrors.ErrMissingRefreshToken
	}

	stored, err := s.store.FindRefreshTokenByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Refresh rejected: unknown token").Log()
			return nil, apperrors.ErrInvalidRefreshToken
		}
		logger.ErrorWithContext(ctx, "Failed to look up refresh token").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if stored.IsExpired(s.tokens.Now()) {
		if err := s.store.DeleteRefreshTokenByID(ctx, stored.ID); err != nil {
			logger.ErrorWithContext(ctx, "Failed to delete expired refresh token").
				Uint("token_id", stored.ID).
				Err(err).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		logger.InfoWithContext(ctx, "Refresh rejected: token expired").
			Uint("user_id", stored.UserID).
			Time("expired_at", stored.ExpiresAt).
			Log()
		return nil, apperrors.ErrTokenExpired
	}

	accessToken, err := s.tokens.IssueAccessToken(stored.UserID, stored.User.Email)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue access token").
			Uint("user_id", stored.UserID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Access token refreshed").
		Uint("user_id", stored.UserID).
		Log()

	return &dto.RefreshResponse{AccessToken: accessToken}, nil
}

// Logout deletes every stored row with this refresh token value. Unknown
// tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Logout")

	if refreshToken == "" {
		return apperrors.ErrMissingRefreshToken
	}

	deleted, err := s.store.DeleteRefreshTokensByToken(ctx, refreshToken)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete refresh token").
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged out").
		Int64("tokens_deleted", deleted).
		Log()

	return nil
}

// Authenticate resolves an Authorization header value of the form
// "Bearer <token>" to the identity inside the access token.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*dto.AuthenticatedUser, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Authenticate")

	token, ok := strings.CutPrefix(header, constants.BearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		logger.DebugWithContext(ctx, "Missing or malformed authorization header").Log()
		return nil, apperrors.ErrMissingToken
	}

	claims, valid := s.tokens.VerifyAccessToken(strings.TrimSpace(token))
	if !valid {
		logger.DebugWithContext(ctx, "Access token rejected").Log()
		return nil, apperrors.ErrInvalidToken
	}

	return &dto.AuthenticatedUser{UserID: claims.UserID, Email: claims.Email}, nil
}

// issueSession mints an access/refresh pair for user and persists the refresh token
func (s *AuthService) issueSession(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue access token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken()
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate refresh token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	row := &model.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: s.tokens.RefreshTokenExpiry(s.tokens.Now()),
	}
	if err := s.store.CreateRefreshToken(ctx, row); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store refresh token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
