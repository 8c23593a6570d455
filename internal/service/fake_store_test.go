package service

import (
	"context"
	"sync"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/Payphone-Digital/auth-service/internal/repository"
	"gorm.io/gorm"
)

// memoryStore is an in-memory CredentialStore with the same error contract
// as the gorm repositories.
type memoryStore struct {
	mu        sync.Mutex
	users     map[uint]*model.User
	tokens    map[uint]*model.RefreshToken
	nextUser  uint
	nextToken uint

	// hooks for failure injection
	findUserErr    error
	createTokenErr error
	hideUserOnFind bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  map[uint]*model.User{},
		tokens: map[uint]*model.RefreshToken{},
	}
}

func (s *memoryStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserErr != nil {
		return nil, s.findUserErr
	}
	if s.hideUserOnFind {
		return nil, gorm.ErrRecordNotFound
	}
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextUser++
	user.ID = s.nextUser
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memoryStore) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createTokenErr != nil {
		return s.createTokenErr
	}
	s.nextToken++
	token.ID = s.nextToken
	token.CreatedAt = time.Now()
	clone := *token
	s.tokens[token.ID] = &clone
	return nil
}

func (s *memoryStore) FindRefreshTokenByToken(ctx context.Context, value string) (*model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tokens {
		if t.Token == value {
			clone := *t
			if u, ok := s.users[t.UserID]; ok {
				clone.User = *u
			}
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryStore) DeleteRefreshTokenByID(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, id)
	return nil
}

func (s *memoryStore) DeleteRefreshTokensByToken(ctx context.Context, value string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, t := range s.tokens {
		if t.Token == value {
			delete(s.tokens, id)
			n++
		}
	}
	return n, nil
}

// expire moves a stored token's expiry into the past
func (s *memoryStore) expire(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tokens {
		if t.Token == value {
			t.ExpiresAt = time.Now().Add(-time.Second)
		}
	}
}

func (s *memoryStore) tokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
