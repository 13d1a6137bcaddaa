package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("arguments", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		require.NoError(t, run([]string{"--cost", "4", "password123", "тест-пароль"}, strings.NewReader(""), &out))

		hashes := strings.Fields(out.String())
		require.Len(t, hashes, 2)
		hasher := auth.NewBcryptHasher(4)
		assert.True(t, hasher.Verify("password123", hashes[0]))
		assert.True(t, hasher.Verify("тест-пароль", hashes[1]))
		assert.True(t, strings.HasPrefix(hashes[0], "$2a$04$"))
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		require.NoError(t, run([]string{"--cost=4"}, strings.NewReader("password123\n\nanotherpass\n"), &out))
		assert.Len(t, strings.Fields(out.String()), 2)
	})

	t.Run("policy violation", func(t *testing.T) {
		t.Parallel()
		err := run([]string{"--cost=4", "short"}, strings.NewReader(""), &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, run(nil, strings.NewReader(""), &bytes.Buffer{}))
	})
}
