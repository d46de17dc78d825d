package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// TokenVerifier turns a bearer token into a verified principal.
// Implementations: JWTVerifier for locally issued HS256 tokens, and the
// Cognito identity provider which introspects access tokens remotely.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Principal, error)
}

// Claims represents the token claims we care about
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256-signed tokens. Used outside Lambda, where no
// API Gateway authorizer has pre-verified the request.
type JWTVerifier struct {
	secretKey []byte
	issuer    string
}

// JWTConfig holds token verification configuration
type JWTConfig struct {
	SecretKey string
	Issuer    string
}

// NewJWTVerifier creates a new JWT verifier
func NewJWTVerifier(config JWTConfig) (*JWTVerifier, error) {
	if config.SecretKey == "" {
		return nil, errors.New("secret key required")
	}
	return &JWTVerifier{
		secretKey: []byte(config.SecretKey),
		issuer:    config.Issuer,
	}, nil
}

// VerifyToken validates a token and returns the principal it identifies.
func (v *JWTVerifier) VerifyToken(_ context.Context, tokenString string) (*Principal, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method)
		}
		return v.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("%w: invalid issuer", ErrInvalidClaims)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidClaims)
	}

	return &Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
