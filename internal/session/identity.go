package session

import "context"

type contextKey struct{}

// Identity is the authenticated caller resolved from the session cookie.
type Identity struct {
	UserID    int64
	Username  string
	SessionID string
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// FromContext returns the caller's identity, or false for anonymous requests.
func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
