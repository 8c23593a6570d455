package repository

import (
	"context"

	"github.com/Payphone-Digital/auth-service/internal/model"
)

// CredentialStore combines the user and refresh-token tables behind the
// method set the authentication service depends on.
type CredentialStore struct {
	users  *UserRepository
	tokens *RefreshTokenRepository
}

func NewCredentialStore(users *UserRepository, tokens *RefreshTokenRepository) *CredentialStore {
	return &CredentialStore{users: users, tokens: tokens}
}

func (s *CredentialStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *CredentialStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.users.Create(ctx, user)
}

func (s *CredentialStore) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	return s.tokens.Create(ctx, token)
}

func (s *CredentialStore) FindRefreshTokenByToken(ctx context.Context, value string) (*model.RefreshToken, error) {
	return s.tokens.FindByToken(ctx, value)
}

func (s *CredentialStore) DeleteRefreshTokenByID(ctx context.Context, id uint) error {
	return s.tokens.DeleteByID(ctx, id)
}

func (s *CredentialStore) DeleteRefreshTokensByToken(ctx context.Context, value string) (int64, error) {
	return s.tokens.DeleteByToken(ctx, value)
}
