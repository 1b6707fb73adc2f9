// Package auth identifies the user behind a request.
package auth

import (
	"context"
	"net/http"

	"yatube/app/models"
)

// IdentityProvider resolves the user making a request.
type IdentityProvider interface {
	CurrentUser(r *http.Request) (*models.User, bool)
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*models.User)
	return user, ok && user != nil
}
