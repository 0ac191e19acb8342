package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/reg-hunter/internal/app"
	"github.com/DjordjeVuckovic/reg-hunter/internal/ingest"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/apis"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/schema"
	"github.com/urfave/cli/v2"
)

const dotEnvPath = "cmd/reg_ingest/.env"

func RunAction(c *cli.Context) error {
	cfg, err := app.LoadConfig(dotEnvPath)
	if err != nil {
		return err
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	file, err := os.Open(c.String("manifest"))
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	manifest, err := ingest.NewYAMLManifestLoader(file).Load(true)
	if err != nil {
		return err
	}
	slog.Info("Manifest loaded", "name", manifest.Metadata.Name, "documents", len(manifest.Documents))

	a, err := app.New(c.Context, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := []ingest.RunnerOption{ingest.WithWorkers(c.Int("workers"))}
	if c.Bool("preview") {
		opts = append(opts, ingest.WithPreview())
	}

	report, err := ingest.NewRunner(a.Pipeline, opts...).Run(c.Context, manifest.Documents)
	if err != nil {
		return err
	}

	if c.Bool("preview") {
		if err := printJSON(previews(report)); err != nil {
			return err
		}
	}

	if report.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d documents failed: %v", report.Failed, len(report.Outcomes), report.Err()), 2)
	}
	return nil
}

func AggregateAction(c *cli.Context) error {
	cfg, err := app.LoadConfig(dotEnvPath)
	if err != nil {
		return err
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	a, err := app.New(c.Context, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	vis, err := a.Aggregator.Visualization(c.Context)
	if err != nil {
		return err
	}
	return printJSON(vis)
}

func SchemaAction(c *cli.Context) error {
	b, err := schema.NewGenerator().GenerateJSON(apis.IngestManifest{})
	if err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		_, err = fmt.Fprintln(os.Stdout, string(b))
		return err
	}
	if err := os.WriteFile(out, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	slog.Info("Generated manifest schema", "path", out)
	return nil
}

func previews(report *ingest.Report) []any {
	out := make([]any, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		if o.Preview != nil {
			out = append(out, o.Preview)
		}
	}
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
