package user

import (
	"context"

	"github.com/pradikta/taskhub/internal"
)

// NewContext returns a context carrying the authenticated user.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, internal.ContextUserKey, u)
}

// FromContext extracts the authenticated user placed by the auth middleware.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(internal.ContextUserKey).(*User)
	return u, ok
}
