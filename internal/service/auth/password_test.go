package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash verifies against original password", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery", hash)
		assert.True(t, hasher.Verify("correct horse battery", hash))
	})

	t.Run("other passwords do not verify", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery")
		require.NoError(t, err)
		assert.False(t, hasher.Verify("correct horse battery!", hash))
		assert.False(t, hasher.Verify("", hash))
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		t.Parallel()
		first, err := hasher.Hash("password123")
		require.NoError(t, err)
		second, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.True(t, hasher.Verify("password123", first))
		assert.True(t, hasher.Verify("password123", second))
	})

	t.Run("malformed hash never verifies", func(t *testing.T) {
		t.Parallel()
		for _, hash := range []string{"", "not-a-hash", "$2a$10$short"} {
			assert.False(t, hasher.Verify("password123", hash), "hash %q", hash)
		}
	})

	t.Run("72 byte password is accepted", func(t *testing.T) {
		t.Parallel()
		password := strings.Repeat("a", 72)
		hash, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.True(t, hasher.Verify(password, hash))
	})

	t.Run("password over bcrypt limit is an error", func(t *testing.T) {
		t.Parallel()
		_, err := hasher.Hash(strings.Repeat("a", 73))
		assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
	})
}

func TestNewBcryptHasherCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12, NewBcryptHasher(12).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)

	hash, err := NewBcryptHasher(bcrypt.MinCost).Hash("password123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
