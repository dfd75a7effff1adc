package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// HTTPClientConfig holds HTTP client configuration
type HTTPClientConfig struct {
	// Connection pooling
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration

	// Timeouts
	DialTimeout           time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	ExpectContinueTimeout time.Duration

	// Keep-alive
	DisableKeepAlives bool
	KeepAlive         time.Duration

	// Compression
	DisableCompression bool

	// TLS
	InsecureSkipVerify bool
	MinTLSVersion      uint16
}

// KomojuClientConfig returns a config tuned for the KOMOJU REST API.
// All traffic goes to a single host, so the idle pool is dedicated to it.
func KomojuClientConfig() *HTTPClientConfig {
	return &HTTPClientConfig{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		MaxConnsPerHost:     100,
		IdleConnTimeout:     90 * time.Second,

		// Gateway-backed payment creation can be slow
		DialTimeout:           10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableKeepAlives: false,
		KeepAlive:         60 * time.Second,

		// Responses are small JSON objects
		DisableCompression: false,

		InsecureSkipVerify: false,
		MinTLSVersion:      tls.VersionTLS12,
	}
}

// DefaultClientConfig returns a balanced configuration for general use
func DefaultClientConfig() *HTTPClientConfig {
	return &HTTPClientConfig{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,

		DialTimeout:           10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableKeepAlives: false,
		KeepAlive:         60 * time.Second,

		DisableCompression: false,

		InsecureSkipVerify: false,
		MinTLSVersion:      tls.VersionTLS12,
	}
}

// NewHTTPClient creates an HTTP client with the given configuration
func NewHTTPClient(cfg *HTTPClientConfig, timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		ExpectContinueTimeout: cfg.ExpectContinueTimeout,

		DisableKeepAlives:  cfg.DisableKeepAlives,
		DisableCompression: cfg.DisableCompression,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			MinVersion:         cfg.MinTLSVersion,
		},

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
