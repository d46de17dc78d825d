package ports

import (
	"context"
	"errors"

	"itemstore-backend/pkg/auth"
)

var (
	// ErrUsernameExists is returned when sign-up hits an already-registered email.
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when sign-in credentials are rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenBundle is the credential set returned by a successful sign-in.
type TokenBundle struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IDToken      string `json:"idToken"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// IdentityProvider is the contract with the hosted user directory. It is
// consumed, never implemented, by the business layer.
type IdentityProvider interface {
	// CreateUser registers a new account with a permanent password.
	// Returns ErrUsernameExists for a duplicate email.
	CreateUser(ctx context.Context, email, name, password string) error

	// InitiateAuth exchanges credentials for a token bundle.
	// Returns ErrInvalidCredentials when the exchange is rejected.
	InitiateAuth(ctx context.Context, email, password string) (*TokenBundle, error)

	// VerifyAccessToken introspects an access token and resolves the principal.
	VerifyAccessToken(ctx context.Context, accessToken string) (*auth.Principal, error)
}
