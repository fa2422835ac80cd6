package session

import (
	"context"

	"github.com/google/uuid"
)

type resultContextKey struct{}

// WithResult adds a validation result to the context.
func WithResult(ctx context.Context, result Result) context.Context {
	return context.WithValue(ctx, resultContextKey{}, result)
}

// FromContext retrieves the validation result from the context.
func FromContext(ctx context.Context) (Result, bool) {
	result, ok := ctx.Value(resultContextKey{}).(Result)
	return result, ok
}

// UserIDFromContext retrieves the authenticated user's ID from the context.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	result, ok := FromContext(ctx)
	if !ok || !result.Authenticated() {
		return uuid.Nil, false
	}
	return result.User.ID, true
}
