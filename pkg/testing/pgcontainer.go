// Package testing starts throwaway database containers for integration tests.
package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const defaultPGImage = "postgres:17.5"

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

type PGConfig struct {
	Image         string
	Database      string
	Username      string
	Password      string
	MigrationsDir string
}

func defaultPGConfig() PGConfig {
	return PGConfig{
		Image:         defaultPGImage,
		Database:      "reg_test_db",
		Username:      "test",
		Password:      "test",
		MigrationsDir: filepath.Join(projectRoot(), "db", "migrations"),
	}
}

// NewPGContainerWithCleanup starts Postgres with every *.up.sql migration applied
// and terminates it when the test ends.
func NewPGContainerWithCleanup(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	container, err := NewPGContainer(ctx, defaultPGConfig())
	if err != nil {
		tb.Fatalf("failed to create postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container.Container); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	return container
}

func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	if cfg.Image == "" {
		cfg.Image = defaultPGImage
	}

	opts := []testcontainers.ContainerCustomizer{
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		),
	}

	if cfg.MigrationsDir != "" {
		script, err := migrationScript(cfg.MigrationsDir)
		if err != nil {
			return nil, err
		}
		defer os.Remove(script)
		opts = append(opts, postgres.WithInitScripts(script))
	}

	c, err := postgres.Run(ctx, cfg.Image, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PGContainer{Container: c, ConnString: connStr}, nil
}

// migrationScript concatenates the up migrations in name order into one temp file.
func migrationScript(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return "", fmt.Errorf("failed to find migration files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no migrations in %s", dir)
	}
	sort.Strings(files)

	parts := make([]string, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("failed to read migration file %s: %w", f, err)
		}
		parts = append(parts, strings.TrimSpace(string(content)))
	}

	tmp, err := os.CreateTemp("", "reg-migrations-*.sql")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := tmp.WriteString(strings.Join(parts, "\n\n") + "\n"); err != nil {
		return "", fmt.Errorf("failed to write migrations: %w", err)
	}
	return tmp.Name(), nil
}

func projectRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}
