// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr      string
	DBPath          string
	SecretKey       []byte
	ProviderURL     string
	ProviderTimeout time.Duration
	TimeAPIURL      string
	TimeAPITimeout  time.Duration
}

// Load reads configuration from environment variables and returns a validated
// Config. FUTURESEARCH_SECRET_KEY is required: 64 hex characters encoding the
// 32-byte credential encryption key. Optional variables with defaults:
// FUTURESEARCH_LISTEN_ADDR (127.0.0.1:8080), FUTURESEARCH_DB_PATH
// (futuresearch.db), FUTURESEARCH_PROVIDER_URL (https://api.perplexity.ai),
// FUTURESEARCH_PROVIDER_TIMEOUT (30s), FUTURESEARCH_TIME_API_URL
// (https://timeapi.io), FUTURESEARCH_TIME_API_TIMEOUT (3s).
func Load() (*Config, error) {
	secretHex := os.Getenv("FUTURESEARCH_SECRET_KEY")
	if secretHex == "" {
		return nil, fmt.Errorf("FUTURESEARCH_SECRET_KEY is required")
	}

	secretKey, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, fmt.Errorf("FUTURESEARCH_SECRET_KEY is not valid hex: %w", err)
	}
	if len(secretKey) != 32 {
		return nil, fmt.Errorf("FUTURESEARCH_SECRET_KEY must decode to 32 bytes, got %d", len(secretKey))
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("FUTURESEARCH_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "futuresearch.db"
	if v, ok := os.LookupEnv("FUTURESEARCH_DB_PATH"); ok {
		dbPath = v
	}

	providerURL := "https://api.perplexity.ai"
	if v, ok := os.LookupEnv("FUTURESEARCH_PROVIDER_URL"); ok {
		providerURL = v
	}

	providerTimeout := 30 * time.Second
	if v, ok := os.LookupEnv("FUTURESEARCH_PROVIDER_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("FUTURESEARCH_PROVIDER_TIMEOUT has invalid duration %q: %w", v, err)
		}
		providerTimeout = parsed
	}

	timeAPIURL := "https://timeapi.io"
	if v, ok := os.LookupEnv("FUTURESEARCH_TIME_API_URL"); ok {
		timeAPIURL = v
	}

	timeAPITimeout := 3 * time.Second
	if v, ok := os.LookupEnv("FUTURESEARCH_TIME_API_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("FUTURESEARCH_TIME_API_TIMEOUT has invalid duration %q: %w", v, err)
		}
		timeAPITimeout = parsed
	}

	return &Config{
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		SecretKey:       secretKey,
		ProviderURL:     providerURL,
		ProviderTimeout: providerTimeout,
		TimeAPIURL:      timeAPIURL,
		TimeAPITimeout:  timeAPITimeout,
	}, nil
}
