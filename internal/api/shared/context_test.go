package shared

import (
	"context"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	user := &domain.User{ID: 7, Email: "alice@example.com"}
	got, ok := PrincipalFromContext(WithPrincipal(context.Background(), user))
	require.True(t, ok)
	assert.Same(t, user, got)

	_, ok = PrincipalFromContext(WithPrincipal(context.Background(), nil))
	assert.False(t, ok)
}

func TestTraceIDContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	first := GetTraceID(SetTraceID(context.Background()))
	second := GetTraceID(SetTraceID(context.Background()))

	assert.Len(t, first, 2*TraceIDLength)
	assert.NotEqual(t, first, second)
	assert.Len(t, generateFallbackTraceID(), 2*TraceIDLength)
}
