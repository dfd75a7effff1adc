package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// localSource implements Source using the local filesystem.
// WARNING: This is for development only. Use AWS Secrets Manager or
// Vault in production.
type localSource struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSource creates a new local filesystem source
func NewLocalSource(basePath string, logger *zap.Logger) Source {
	return &localSource{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret reads a secret file below the base path. Files may be
// plain text or JSON with a "value" field.
func (s *localSource) GetSecret(ctx context.Context, secretPath string) (*Secret, error) {
	filePath := filepath.Join(s.basePath, secretPath)

	s.logger.Debug("reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	var secretData struct {
		Value     string            `json:"value"`
		Tags      map[string]string `json:"tags"`
		CreatedAt string            `json:"created_at"`
	}
	if err := json.Unmarshal(data, &secretData); err == nil && secretData.Value != "" {
		return &Secret{
			Value:     secretData.Value,
			Version:   "v1",
			Metadata:  secretData.Tags,
			CreatedAt: secretData.CreatedAt,
		}, nil
	}

	return &Secret{
		Value:   string(data),
		Version: "v1",
	}, nil
}
