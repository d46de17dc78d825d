// Package cognito implements the identity provider contract against an AWS
// Cognito user pool.
package cognito

import (
	"context"
	"errors"
	"fmt"

	"itemstore-backend/application/ports"
	pkgauth "itemstore-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// Provider implements ports.IdentityProvider against a Cognito user pool
type Provider struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
	clientID   string
	logger     *zap.Logger
}

// NewProvider creates a new Cognito identity provider
func NewProvider(client *cognitoidentityprovider.Client, userPoolID, clientID string, logger *zap.Logger) *Provider {
	return &Provider{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
		logger:     logger,
	}
}

// CreateUser registers an account with a suppressed invitation flow: the
// temporary password is immediately made permanent so the user can sign in.
func (p *Provider) CreateUser(ctx context.Context, email, name, password string) error {
	_, err := p.client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(name)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
		MessageAction:     types.MessageActionTypeSuppress,
		TemporaryPassword: aws.String(password),
	})
	if err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return ports.ErrUsernameExists
		}
		p.logAPIError("AdminCreateUser", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	_, err = p.client.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		p.logAPIError("AdminSetUserPassword", err)
		return fmt.Errorf("failed to set permanent password: %w", err)
	}

	return nil
}

// InitiateAuth exchanges username/password credentials for a token bundle
func (p *Provider) InitiateAuth(ctx context.Context, email, password string) (*ports.TokenBundle, error) {
	out, err := p.client.AdminInitiateAuth(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		UserPoolId: aws.String(p.userPoolID),
		ClientId:   aws.String(p.clientID),
		AuthFlow:   types.AuthFlowTypeAdminNoSrpAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		var userNotFound *types.UserNotFoundException
		if errors.As(err, &notAuthorized) || errors.As(err, &userNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		p.logAPIError("AdminInitiateAuth", err)
		return nil, fmt.Errorf("failed to initiate auth: %w", err)
	}

	result := out.AuthenticationResult
	if result == nil {
		return nil, ports.ErrInvalidCredentials
	}

	return &ports.TokenBundle{
		AccessToken:  aws.ToString(result.AccessToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		IDToken:      aws.ToString(result.IdToken),
		ExpiresIn:    result.ExpiresIn,
		TokenType:    aws.ToString(result.TokenType),
	}, nil
}

// VerifyAccessToken introspects an access token against the user pool and
// resolves the principal it identifies.
func (p *Provider) VerifyAccessToken(ctx context.Context, accessToken string) (*pkgauth.Principal, error) {
	out, err := p.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, pkgauth.ErrInvalidToken
		}
		p.logAPIError("GetUser", err)
		return nil, fmt.Errorf("failed to introspect token: %w", err)
	}

	principal := &pkgauth.Principal{
		UserID: aws.ToString(out.Username),
	}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "email":
			principal.Email = aws.ToString(attr.Value)
		case "name":
			principal.Name = aws.ToString(attr.Value)
		}
	}

	return principal, nil
}

func (p *Provider) logAPIError(operation string, err error) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		p.logger.Error("Cognito API error",
			zap.String("operation", operation),
			zap.String("code", apiErr.ErrorCode()),
			zap.String("message", apiErr.ErrorMessage()),
		)
		return
	}
	p.logger.Error("Cognito call failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
}
