package env

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("REG_HUNTER_TEST_VAR=loaded\n"), 0o600))

	t.Setenv("ENV_PATH", path)
	t.Setenv("REG_HUNTER_TEST_VAR", "")
	require.NoError(t, os.Unsetenv("REG_HUNTER_TEST_VAR"))

	require.NoError(t, LoadDotEnv("local", "does-not-exist.env"))
	assert.Equal(t, "loaded", os.Getenv("REG_HUNTER_TEST_VAR"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv("ENV_PATH", "")

	assert.Error(t, LoadDotEnv("local", filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadDotEnv("production", filepath.Join(t.TempDir(), "missing.env")))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
