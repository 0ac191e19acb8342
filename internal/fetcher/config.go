package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Timeout     time.Duration
	UserAgent   string
	Readability bool
	RatePerSec  float64
}

func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{
		Timeout:     DefaultTimeout,
		UserAgent:   os.Getenv("FETCH_USER_AGENT"),
		Readability: os.Getenv("FETCH_READABILITY") == "true",
	}

	if raw := os.Getenv("FETCH_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if raw := os.Getenv("FETCH_RATE_PER_SEC"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_RATE_PER_SEC: %w", err)
		}
		cfg.RatePerSec = r
	}

	return cfg, nil
}

func NewFromConfig(cfg Config) *HTTPFetcher {
	opts := []Option{
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithRateLimit(cfg.RatePerSec),
	}
	if cfg.Readability {
		opts = append(opts, WithReadability())
	}
	return New(opts...)
}
