// Package app wires the document pipeline and its collaborators from the
// environment. Both the API server and the ingestion CLI start here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/reg-hunter/internal/aggregate"
	"github.com/DjordjeVuckovic/reg-hunter/internal/fetcher"
	"github.com/DjordjeVuckovic/reg-hunter/internal/langdetect"
	"github.com/DjordjeVuckovic/reg-hunter/internal/ner"
	"github.com/DjordjeVuckovic/reg-hunter/internal/pipeline"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/reg-hunter/internal/summarize"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/config/env"
)

type Config struct {
	ENV        string
	LogLevel   slog.Level
	LangDetect bool

	Storage  factory.StorageConfig
	Summary  summarize.Config
	Backend  summarize.BackendConfig
	NER      ner.Config
	Fetcher  fetcher.Config
	Pipeline pipeline.Config
}

// LoadConfig reads .env files (if any) and then every component's settings.
func LoadConfig(dotEnvPaths ...string) (*Config, error) {
	cfg := &Config{ENV: os.Getenv("ENV")}

	if err := env.LoadDotEnv(cfg.ENV, dotEnvPaths...); err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	level, err := env.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	cfg.LangDetect = os.Getenv("LANG_DETECT") != "false"

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage configuration: %w", err)
	}
	cfg.Storage = *storageCfg

	summaryCfg, backendCfg, err := summarize.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load summarizer configuration: %w", err)
	}
	cfg.Summary, cfg.Backend = *summaryCfg, *backendCfg

	nerCfg, err := ner.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load entity extractor configuration: %w", err)
	}
	cfg.NER = *nerCfg

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load fetcher configuration: %w", err)
	}
	cfg.Fetcher = *fetchCfg

	pipelineCfg, err := pipeline.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline configuration: %w", err)
	}
	cfg.Pipeline = *pipelineCfg

	return cfg, nil
}

// App holds the constructed services. Close releases store connections.
type App struct {
	Stores     *factory.Stores
	Pipeline   *pipeline.Pipeline
	Aggregator *aggregate.Service
}

func New(ctx context.Context, cfg *Config) (*App, error) {
	stores, err := factory.NewStores(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create stores: %w", err)
	}

	capability, err := summarize.NewCapability(cfg.Backend)
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("failed to create summarization backend: %w", err)
	}
	engine, err := summarize.NewEngine(capability, cfg.Summary)
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	extractor, err := ner.NewExtractor(cfg.NER)
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("failed to create entity extractor: %w", err)
	}

	var detector langdetect.Detector = langdetect.NopDetector{}
	if cfg.LangDetect {
		detector = langdetect.NewLinguaDetector()
	}

	p := pipeline.New(
		fetcher.NewFromConfig(cfg.Fetcher),
		engine,
		extractor,
		stores.Documents,
		stores.Blobs,
		pipeline.WithConfig(cfg.Pipeline),
		pipeline.WithDetector(detector),
	)

	slog.Info("Application wired",
		"storage", cfg.Storage.Type,
		"summaryBackend", cfg.Backend.Backend,
		"ner", cfg.NER.BaseURL != "",
		"langDetect", cfg.LangDetect,
	)

	return &App{
		Stores:     stores,
		Pipeline:   p,
		Aggregator: aggregate.NewService(stores.Documents, stores.Blobs),
	}, nil
}

func (a *App) Close() {
	a.Stores.Close()
}
