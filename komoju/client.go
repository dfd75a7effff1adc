// Package komoju is a client for the KOMOJU payment-processing REST
// API. It shapes application-level payment and customer requests into
// the provider's flat bracket-path parameter sets, issues
// basic-authenticated HTTP calls, and translates provider responses
// and error codes into typed results.
package komoju

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
	komojuhttp "github.com/kevin07696/komoju-client/pkg/http"
	"github.com/kevin07696/komoju-client/pkg/observability"
)

// HTTPClient is a minimal HTTP client interface for making requests.
// This allows for easy mocking and testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues KOMOJU API calls. It is safe for concurrent use; each
// operation performs exactly one outbound call and either returns the
// decoded success map or exactly one typed error.
type Client struct {
	config *Config
	logger *zap.Logger

	initClient sync.Once
	httpClient HTTPClient
}

// NewClient creates a client with an injected HTTP client and logger.
// A nil httpClient falls back to a shared tuned client built lazily on
// first use; a nil logger disables logging.
func NewClient(cfg *Config, httpClient HTTPClient, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// NewClientWithDefaults creates a client with the default HTTP client
// and no logging
func NewClientWithDefaults(cfg *Config) (*Client, error) {
	return NewClient(cfg, nil, nil)
}

// client returns the shared HTTP client handle, constructing it on
// first use when none was injected.
func (c *Client) client() HTTPClient {
	c.initClient.Do(func() {
		if c.httpClient == nil {
			c.httpClient = komojuhttp.NewHTTPClient(komojuhttp.KomojuClientConfig(), c.config.Timeout)
		}
	})
	return c.httpClient
}

// do issues one outbound call: {baseURL}/{apiVersion}/{path} with
// basic auth (secret key as username, empty password). POST and PATCH
// carry params form-encoded in the body; other verbs carry them as
// query parameters.
func (c *Client) do(ctx context.Context, method, path string, params url.Values) (map[string]interface{}, error) {
	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + "/" + c.config.APIVersion + "/" + path

	var encoded string
	if params != nil {
		encoded = params.Encode()
	}

	var bodyReader io.Reader
	switch method {
	case http.MethodPost, http.MethodPatch:
		if encoded != "" {
			bodyReader = strings.NewReader(encoded)
		}
	default:
		if encoded != "" {
			endpoint += "?" + encoded
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.SecretKey, "")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resource := path
	if i := strings.IndexByte(path, '/'); i >= 0 {
		resource = path[:i]
	}

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("path", path),
	)

	done := observability.TrackInFlight()
	defer done()

	start := time.Now()
	httpResp, err := c.client().Do(req)
	if err != nil {
		observability.RecordRequest(resource, method, "transport_error", time.Since(start))
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, pkgerrors.NewTransportError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		observability.RecordRequest(resource, method, "transport_error", time.Since(start))
		return nil, pkgerrors.NewTransportError(err)
	}

	parsed, err := parseResponse(httpResp.StatusCode, body)
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.RecordRequest(resource, method, status, time.Since(start))

	c.logger.Debug("received response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return parsed, err
}
