package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/pipeline"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/DjordjeVuckovic/reg-hunter/internal/summarize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOfflineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("ENV_PATH", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LANG_DETECT", "false")
	t.Setenv("STORAGE_TYPE", "in_mem")
	t.Setenv("BLOB_ROOT", t.TempDir())
	t.Setenv("SUMMARY_BACKEND", "lead")
	t.Setenv("NER_BASE_URL", "")
}

func TestLoadConfig(t *testing.T) {
	setOfflineEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.LangDetect)
	assert.Equal(t, storage.InMem, cfg.Storage.Type)
	assert.Equal(t, summarize.BackendLead, cfg.Backend.Backend)
	assert.Equal(t, pipeline.DefaultBlobThreshold, cfg.Pipeline.BlobThreshold)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setOfflineEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNew_ProcessesOffline(t *testing.T) {
	setOfflineEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	res, err := a.Pipeline.Process(context.Background(), pipeline.Submission{
		Text: "Broadcasters are liable for copyright royalty payments. Penalties apply.",
	})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Contains(t, res.Document.Tags, "Copyright")

	v, err := a.Aggregator.Visualization(context.Background())
	require.NoError(t, err)
	assert.Len(t, v.NetworkNodes, 1)
}
