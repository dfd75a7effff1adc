package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"
)

// AWSSecretsManagerConfig contains configuration for the AWS Secrets
// Manager source
type AWSSecretsManagerConfig struct {
	// AWS Region (e.g., "ap-northeast-1")
	Region string

	// Optional: AWS profile name (for local development)
	Profile string

	// Optional: Custom endpoint (for LocalStack testing)
	Endpoint string

	// Cache TTL for secrets (default: 5 minutes)
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool
}

// DefaultAWSSecretsManagerConfig returns default configuration
func DefaultAWSSecretsManagerConfig(region string) *AWSSecretsManagerConfig {
	return &AWSSecretsManagerConfig{
		Region:      region,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// awsSecretsManagerSource implements Source for AWS Secrets Manager
type awsSecretsManagerSource struct {
	client *secretsmanager.Client
	config *AWSSecretsManagerConfig
	logger *zap.Logger
	cache  *secretCache
}

// NewAWSSecretsManagerSource creates a new AWS Secrets Manager source
func NewAWSSecretsManagerSource(ctx context.Context, cfg *AWSSecretsManagerConfig, logger *zap.Logger) (Source, error) {
	var awsConfig aws.Config
	var err error

	if cfg.Profile != "" {
		// Use specific profile (local development)
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithSharedConfigProfile(cfg.Profile),
		)
	} else {
		// Use default credentials chain (IAM role in production)
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOptions := []func(*secretsmanager.Options){}
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	client := secretsmanager.NewFromConfig(awsConfig, clientOptions...)

	logger.Info("AWS Secrets Manager source initialized",
		zap.String("region", cfg.Region),
		zap.Bool("cache_enabled", cfg.EnableCache),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	return &awsSecretsManagerSource{
		client: client,
		config: cfg,
		logger: logger,
		cache:  newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}, nil
}

// GetSecret retrieves a secret by its name or full ARN
func (s *awsSecretsManagerSource) GetSecret(ctx context.Context, path string) (*Secret, error) {
	if cached := s.cache.get(path); cached != nil {
		s.logger.Debug("secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	s.logger.Debug("retrieving secret from AWS Secrets Manager", zap.String("path", path))

	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(path),
	}

	startTime := time.Now()
	result, err := s.client.GetSecretValue(ctx, input)
	if err != nil {
		s.logger.Error("failed to retrieve secret",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get secret %s: %w", path, err)
	}

	s.logger.Debug("secret retrieved",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	secret := &Secret{
		Value:    aws.ToString(result.SecretString),
		Version:  aws.ToString(result.VersionId),
		Metadata: make(map[string]string),
	}
	if result.CreatedDate != nil {
		secret.CreatedAt = result.CreatedDate.Format(time.RFC3339)
	}
	if result.ARN != nil {
		secret.Metadata["arn"] = *result.ARN
	}
	if result.Name != nil {
		secret.Metadata["name"] = *result.Name
	}

	s.cache.set(path, secret)

	return secret, nil
}
