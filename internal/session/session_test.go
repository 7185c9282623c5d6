package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "", ActorID(context.Background()))

	ctx := WithSession(context.Background(), Session{AdminID: "admin-1", Username: "admin", Role: RoleAdmin})
	s, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, "admin-1", ActorID(ctx))
}

func TestFromContext_EmptyAdminID(t *testing.T) {
	ctx := WithSession(context.Background(), Session{Username: "ghost"})
	_, ok := FromContext(ctx)
	assert.False(t, ok)
}
