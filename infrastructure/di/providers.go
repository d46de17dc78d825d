package di

import (
	"context"
	"fmt"

	appauth "itemstore-backend/application/auth"
	"itemstore-backend/application/items"
	"itemstore-backend/application/ports"
	"itemstore-backend/infrastructure/config"
	"itemstore-backend/infrastructure/identity/cognito"
	"itemstore-backend/infrastructure/messaging/eventbridge"
	dynamorepo "itemstore-backend/infrastructure/persistence/dynamodb"
	pkgauth "itemstore-backend/pkg/auth"
	"itemstore-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates the shared AWS configuration; X-Ray client
// instrumentation is attached when tracing is enabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.EnableTracing {
		observability.InstrumentAWSClients(&awsCfg)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideItemRepository creates the DynamoDB-backed item repository
func ProvideItemRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ItemRepository {
	return dynamorepo.NewItemRepository(client, cfg.ItemsTable, cfg.OwnerIndexName, logger)
}

// ProvideIdentityProvider creates the Cognito identity provider
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return cognito.NewProvider(client, cfg.UserPoolID, cfg.UserPoolClientID, logger)
}

// ProvideEventPublisher creates the item event publisher; nil when no event
// bus is configured, which disables publishing.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics publisher; nil when disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("Itemstore/%s", cfg.Environment)
	return observability.NewMetrics(client, namespace, logger)
}

// ProvideTokenVerifier picks the token verification strategy: locally issued
// HS256 tokens when a secret is configured, otherwise remote introspection
// against the identity provider.
func ProvideTokenVerifier(cfg *config.Config, identity ports.IdentityProvider) (pkgauth.TokenVerifier, error) {
	if cfg.JWTSecret != "" {
		return pkgauth.NewJWTVerifier(pkgauth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
		})
	}
	return &identityTokenVerifier{identity: identity}, nil
}

// identityTokenVerifier adapts the identity provider's introspection call to
// the TokenVerifier interface.
type identityTokenVerifier struct {
	identity ports.IdentityProvider
}

func (v *identityTokenVerifier) VerifyToken(ctx context.Context, token string) (*pkgauth.Principal, error) {
	return v.identity.VerifyAccessToken(ctx, token)
}

// ProvideItemService creates the item service
func ProvideItemService(repo ports.ItemRepository, publisher ports.EventPublisher, logger *zap.Logger) *items.Service {
	return items.NewService(repo, publisher, logger)
}

// ProvideAuthService creates the auth service
func ProvideAuthService(identity ports.IdentityProvider, logger *zap.Logger) *appauth.Service {
	return appauth.NewService(identity, logger)
}
