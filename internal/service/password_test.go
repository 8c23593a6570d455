package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func verify(t *testing.T, h *PasswordHasher, plaintext, hash string) bool {
	t.Helper()
	ok, err := h.Verify(context.Background(), plaintext, hash)
	require.NoError(t, err)
	return ok
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	for _, plain := range []string{"abc12345", "password123", "ünïcødé-9", strings.Repeat("z", 72)} {
		hash, err := h.Hash(ctx, plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash)
		assert.True(t, verify(t, h, plain, hash), "round trip for %q", plain)
		assert.False(t, verify(t, h, plain+"x", hash))
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)
	ctx := context.Background()

	first, err := h.Hash(ctx, "abc12345")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "abc12345")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.False(t, verify(t, h, "wrong1234", first))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)

	assert.False(t, verify(t, h, "abc12345", ""))
	assert.False(t, verify(t, h, "abc12345", "not-a-bcrypt-hash"))
}

func TestPasswordHasher_TooLong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)

	_, err := h.Hash(context.Background(), strings.Repeat("a", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestPasswordHasher_CancelledContext(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "abc12345")
	require.NoError(t, err)

	// hold the only slot so the next caller has to wait
	require.NoError(t, h.slots.Acquire(ctx, 1))
	defer h.slots.Release(1)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = h.Hash(cancelled, "abc12345")
	assert.ErrorIs(t, err, context.Canceled)

	ok, err := h.Verify(cancelled, "abc12345", hash)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, h.VerifyUnknown(cancelled, "abc12345"), context.Canceled)
}

func TestPasswordHasher_VerifyUnknown(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost+1, 1)

	require.NoError(t, h.VerifyUnknown(context.Background(), "abc12345"))

	cost, err := bcrypt.Cost(h.placeholder())
	require.NoError(t, err)
	assert.Equal(t, h.Cost(), cost)
}

func TestNewPasswordHasher_Defaults(t *testing.T) {
	assert.Equal(t, 10, NewPasswordHasher(0, 0).Cost())
	assert.Equal(t, 10, NewPasswordHasher(99, 0).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12, 0).Cost())
}
