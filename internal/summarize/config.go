package summarize

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

type Backend string

const (
	BackendOllama Backend = "ollama"
	BackendLead   Backend = "lead"
)

const (
	DefaultMaxOutputTokens = 1024
	DefaultMinOutputTokens = 50
	DefaultWindowSize      = 4000
	DefaultOverlap         = 500
)

type Config struct {
	MaxOutputTokens int
	MinOutputTokens int
	WindowSize      int
	Overlap         int

	// Recursive re-summarizes the joined window summaries while they exceed
	// TargetLength characters. Off by default.
	Recursive    bool
	TargetLength int
}

func DefaultConfig() Config {
	return Config{
		MaxOutputTokens: DefaultMaxOutputTokens,
		MinOutputTokens: DefaultMinOutputTokens,
		WindowSize:      DefaultWindowSize,
		Overlap:         DefaultOverlap,
		TargetLength:    DefaultWindowSize,
	}
}

type BackendConfig struct {
	Backend Backend
	BaseURL string
	Model   string
}

func LoadConfigFromEnv() (*Config, *BackendConfig, error) {
	cfg := DefaultConfig()

	ints := []struct {
		name string
		dst  *int
	}{
		{"SUMMARY_MAX_TOKENS", &cfg.MaxOutputTokens},
		{"SUMMARY_MIN_TOKENS", &cfg.MinOutputTokens},
		{"SUMMARY_WINDOW_SIZE", &cfg.WindowSize},
		{"SUMMARY_OVERLAP", &cfg.Overlap},
		{"SUMMARY_TARGET_LENGTH", &cfg.TargetLength},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid %s: %w", v.name, err)
		}
		*v.dst = n
	}
	cfg.Recursive = os.Getenv("SUMMARY_RECURSIVE") == "true"

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	backend := &BackendConfig{
		Backend: Backend(os.Getenv("SUMMARY_BACKEND")),
		BaseURL: os.Getenv("SUMMARY_BASE_URL"),
		Model:   os.Getenv("SUMMARY_MODEL"),
	}
	if backend.Backend == "" {
		backend.Backend = BackendOllama
	}

	switch backend.Backend {
	case BackendOllama:
		if backend.BaseURL == "" {
			return nil, nil, errors.New("SUMMARY_BASE_URL environment variable not set")
		}
	case BackendLead:
	default:
		return nil, nil, fmt.Errorf("unsupported SUMMARY_BACKEND %q, expected one of %v",
			backend.Backend, []Backend{BackendOllama, BackendLead})
	}

	return &cfg, backend, nil
}

// NewCapability builds the summarization model client selected by cfg.
func NewCapability(cfg BackendConfig) (Capability, error) {
	switch cfg.Backend {
	case BackendOllama:
		var opts []OllamaOption
		if cfg.Model != "" {
			opts = append(opts, WithModel(cfg.Model))
		}
		return NewOllamaClient(cfg.BaseURL, opts...)
	case BackendLead:
		return NewLeadSummarizer(), nil
	default:
		return nil, fmt.Errorf("unsupported summarization backend: %s", cfg.Backend)
	}
}
