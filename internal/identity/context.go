package identity

import (
	"context"

	"github.com/ustinerary/planner/internal/domain"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user domain.ActingUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext returns the acting user, or the guest when none is set.
func FromContext(ctx context.Context) domain.ActingUser {
	user, _ := ctx.Value(ctxKey{}).(domain.ActingUser)
	return user
}
