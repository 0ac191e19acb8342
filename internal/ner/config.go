package ner

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	BaseURL  string
	MaxChars int
}

func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{
		BaseURL:  os.Getenv("NER_BASE_URL"),
		MaxChars: DefaultMaxChars,
	}

	if raw := os.Getenv("NER_MAX_CHARS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid NER_MAX_CHARS %q", raw)
		}
		cfg.MaxChars = n
	}

	return cfg, nil
}

// NewExtractor returns an HTTP extractor, or a disabled one when no endpoint
// is configured.
func NewExtractor(cfg Config) (Extractor, error) {
	if cfg.BaseURL == "" {
		return DisabledExtractor{}, nil
	}
	return NewClient(cfg.BaseURL, WithMaxChars(cfg.MaxChars))
}
