package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "reg_ingest",
		Usage: "Batch ingestion and aggregation for Reg Hunter",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Submit every document of a YAML manifest through the pipeline",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "manifest",
						Aliases:  []string{"m"},
						Usage:    "path to the ingest manifest",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "number of concurrent documents",
						Value:   runtime.NumCPU(),
					},
					&cli.BoolFlag{
						Name:  "preview",
						Usage: "analyze without storing",
					},
				},
				Action: RunAction,
			},
			{
				Name:  "schema",
				Usage: "Write the JSON Schema of the ingest manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "file to write, stdout when empty",
					},
				},
				Action: SchemaAction,
			},
			{
				Name:   "aggregate",
				Usage:  "Print the visualization payload of all stored documents as JSON",
				Action: AggregateAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		slog.Error("reg_ingest failed", "error", err)
		stop()
		os.Exit(1)
	}
}
