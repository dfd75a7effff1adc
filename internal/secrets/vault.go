package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// VaultConfig contains configuration for the HashiCorp Vault source
type VaultConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Authentication method: "token" or "approle"
	AuthMethod string

	// Token for token authentication
	Token string

	// AppRole credentials (if using AppRole auth)
	RoleID   string
	SecretID string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// KV secrets engine mount path (default: "secret")
	MountPath string

	// KV version: "v1" or "v2" (default: "v2")
	KVVersion string

	// Cache TTL
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool

	// TLS configuration
	TLSSkipVerify bool
}

// DefaultVaultConfig returns default configuration for the Vault source
func DefaultVaultConfig(address string) *VaultConfig {
	return &VaultConfig{
		Address:     address,
		AuthMethod:  "token",
		MountPath:   "secret",
		KVVersion:   "v2",
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// vaultSource implements Source for HashiCorp Vault
type vaultSource struct {
	client *vault.Client
	config *VaultConfig
	logger *zap.Logger
	cache  *secretCache
}

// NewVaultSource creates a new HashiCorp Vault source
func NewVaultSource(ctx context.Context, cfg *VaultConfig, logger *zap.Logger) (Source, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSSkipVerify {
		tlsConfig := &vault.TLSConfig{
			Insecure: true,
		}
		if err := vaultConfig.ConfigureTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	if err := authenticateVault(client, cfg); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	logger.Info("Vault source initialized",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
		zap.String("mount_path", cfg.MountPath),
		zap.String("kv_version", cfg.KVVersion),
	)

	return &vaultSource{
		client: client,
		config: cfg,
		logger: logger,
		cache:  newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}, nil
}

// authenticateVault handles authentication with Vault
func authenticateVault(client *vault.Client, cfg *VaultConfig) error {
	switch cfg.AuthMethod {
	case "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil

	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}

		data := map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		}
		resp, err := client.Logical().Write("auth/approle/login", data)
		if err != nil {
			return fmt.Errorf("AppRole login failed: %w", err)
		}
		if resp.Auth == nil {
			return fmt.Errorf("AppRole login returned no auth info")
		}
		client.SetToken(resp.Auth.ClientToken)
		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

// GetSecret retrieves a secret by its path below the mount
func (s *vaultSource) GetSecret(ctx context.Context, path string) (*Secret, error) {
	if cached := s.cache.get(path); cached != nil {
		s.logger.Debug("secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	s.logger.Debug("retrieving secret from Vault", zap.String("path", path))

	var fullPath string
	if s.config.KVVersion == "v2" {
		fullPath = fmt.Sprintf("%s/data/%s", s.config.MountPath, path)
	} else {
		fullPath = fmt.Sprintf("%s/%s", s.config.MountPath, path)
	}

	startTime := time.Now()
	vaultSecret, err := s.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		s.logger.Error("failed to retrieve secret from Vault",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to read secret from Vault: %w", err)
	}
	if vaultSecret == nil {
		return nil, fmt.Errorf("secret not found: %s", path)
	}

	s.logger.Debug("secret retrieved",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	var secretData map[string]interface{}
	var version string
	var createdTime string

	if s.config.KVVersion == "v2" {
		// KV v2 wraps data in a "data" field
		data, ok := vaultSecret.Data["data"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid secret format from Vault")
		}
		secretData = data

		if metadata, ok := vaultSecret.Data["metadata"].(map[string]interface{}); ok {
			if v, ok := metadata["version"].(json.Number); ok {
				version = v.String()
			}
			if ct, ok := metadata["created_time"].(string); ok {
				createdTime = ct
			}
		}
	} else {
		secretData = vaultSecret.Data
		version = "1"
	}

	// The secret value is expected under the "value" key
	value, ok := secretData["value"].(string)
	if !ok {
		return nil, fmt.Errorf("secret %s has no string \"value\" field", path)
	}

	secret := &Secret{
		Value:     value,
		Version:   version,
		CreatedAt: createdTime,
	}

	s.cache.set(path, secret)

	return secret, nil
}
