package session

import (
	"context"
	"time"
)

const RoleAdmin = "admin"

// Session is the authenticated identity of the current request. AdminID is stamped onto
// work logs (created_by) and audit entries.
type Session struct {
	AdminID   string    `json:"admin_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.AdminID != ""
}

// ActorID returns the admin id of the session in ctx, or an empty string.
func ActorID(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.AdminID
}
