package auth

import (
	"context"

	apperrors "itemstore-backend/pkg/errors"
)

// Principal is the authenticated caller attached to a request after the
// identity has been verified upstream. It is never persisted.
type Principal struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type contextKey string

const principalKey contextKey = "principal"

// SetPrincipal attaches the authenticated principal to the context.
func SetPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the authenticated principal from the context.
// Returns an Unauthorized error when no resolvable identity is attached.
func GetPrincipal(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(principalKey).(*Principal)
	if !ok || p == nil || p.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	return p, nil
}
