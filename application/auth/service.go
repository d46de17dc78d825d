// Package auth implements sign-up, sign-in, and current-user resolution as
// stateless passthroughs to the identity provider.
package auth

import (
	"context"
	"errors"

	"itemstore-backend/application/ports"
	pkgauth "itemstore-backend/pkg/auth"
	apperrors "itemstore-backend/pkg/errors"
	"itemstore-backend/pkg/utils"

	"go.uber.org/zap"
)

// SignUpInput carries a sign-up request. Password minimum length is 8.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

// SignInInput carries a sign-in request.
type SignInInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignUpResult confirms a created account.
type SignUpResult struct {
	Message string     `json:"message"`
	User    SignUpUser `json:"user"`
}

// SignUpUser echoes the registered identity attributes.
type SignUpUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Service mediates between the HTTP surface and the identity provider.
type Service struct {
	identity ports.IdentityProvider
	logger   *zap.Logger
}

// NewService creates a new auth service
func NewService(identity ports.IdentityProvider, logger *zap.Logger) *Service {
	return &Service{
		identity: identity,
		logger:   logger,
	}
}

// SignUp registers a new account with a permanent password.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.identity.CreateUser(ctx, in.Email, in.Name, in.Password); err != nil {
		if errors.Is(err, ports.ErrUsernameExists) {
			return nil, apperrors.NewUsernameExistsError("")
		}
		s.logger.Error("Failed to sign up user",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to create user").WithCause(err)
	}

	return &SignUpResult{
		Message: "User created successfully",
		User: SignUpUser{
			Email: in.Email,
			Name:  in.Name,
		},
	}, nil
}

// SignIn exchanges credentials for a token bundle.
func (s *Service) SignIn(ctx context.Context, in SignInInput) (*ports.TokenBundle, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	tokens, err := s.identity.InitiateAuth(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			return nil, apperrors.NewAuthenticationError("Invalid email or password")
		}
		s.logger.Error("Failed to sign in user",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to authenticate user").WithCause(err)
	}

	return tokens, nil
}

// CurrentUser returns the identity already attached to the request context.
// No identity-provider round trip happens here; verification is upstream.
func (s *Service) CurrentUser(ctx context.Context) (*pkgauth.Principal, error) {
	return pkgauth.GetPrincipal(ctx)
}
