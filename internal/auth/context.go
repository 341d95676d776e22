// internal/auth/context.go
//
// Request-scoped identity helpers.
//
// Usage
// -----
//     // Session middleware attaches the logged-in user.
//     ctx = auth.WithUser(ctx, &auth.Identity{ID: "…", Username: "ann"})
//
//     // Guards, handlers, and templates retrieve it.
//     who, ok := auth.UserFrom(ctx)
//
// Notes
// -----
// • Identity is a copy of the session values, never the stored user, so
//   password material never reaches the request context.
// • Oxford commas, two spaces after periods.

package auth

import "context"

// Identity is the logged-in user as seen by handlers and templates.
type Identity struct {
	ID       string
	Username string
	UserType string
}

// userKey is unexported to avoid context-key collisions.
type userKey struct{}

// WithUser returns a new context carrying id.
func WithUser(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserFrom extracts the identity from ctx.  It returns (nil, false) when
// the request is anonymous.
func UserFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(userKey{}).(*Identity)
	return id, ok && id != nil
}
