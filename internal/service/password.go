package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher hashes and verifies passwords with bcrypt. Each call holds a
// slot of a shared semaphore so a burst of logins cannot occupy every CPU.
type PasswordHasher struct {
	cost  int
	slots *semaphore.Weighted

	placeholderOnce sync.Once
	placeholderHash []byte
}

// NewPasswordHasher creates a hasher. cost outside bcrypt's range falls back
// to the default cost; concurrency <= 0 means GOMAXPROCS.
func NewPasswordHasher(cost, concurrency int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = constants.DefaultBcryptCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash returns a salted bcrypt hash. It fails for input longer than 72 bytes
// and when ctx ends while waiting for a slot.
func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if len(plaintext) > constants.MaxPasswordBytes {
		return "", bcrypt.ErrPasswordTooLong
	}
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("wait for hashing slot: %w", err)
	}
	defer h.slots.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a
// mismatch. The error is only set when ctx ends before a slot frees up.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("wait for hashing slot: %w", err)
	}
	defer h.slots.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil, nil
}

// VerifyUnknown spends one comparison against a placeholder hash of the same
// cost, so a login for an unknown email takes as long as a wrong password.
func (h *PasswordHasher) VerifyUnknown(ctx context.Context, plaintext string) error {
	placeholder := h.placeholder()

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("wait for hashing slot: %w", err)
	}
	defer h.slots.Release(1)

	_ = bcrypt.CompareHashAndPassword(placeholder, []byte(plaintext))
	return nil
}

func (h *PasswordHasher) placeholder() []byte {
	h.placeholderOnce.Do(func() {
		// cost is already within bcrypt's range, so this cannot fail
		h.placeholderHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-credential-0"), h.cost)
	})
	return h.placeholderHash
}

// Cost returns the bcrypt work factor in use
func (h *PasswordHasher) Cost() int {
	return h.cost
}
