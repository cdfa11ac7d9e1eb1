// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/docscore"
	"github.com/poiesic/docscore/ai"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/enrich"
	"github.com/poiesic/docscore/results"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docscore",
		Usage: "Score document collections against a questionnaire",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Extract, score, and export every document in a directory",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"i"},
						Usage:    "Input directory of documents to score",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "questions",
						Aliases:  []string{"q"},
						Usage:    "Path to the questionnaire JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "scorer-host",
						Usage: "Scoring service host URL",
						Value: "https://api.openai.com/v1",
					},
					&cli.StringFlag{
						Name:  "scorer-model",
						Usage: "Scoring model name",
						Value: "gpt-4-turbo-preview",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "Scoring service API token",
						EnvVars: []string{"DOCSCORE_API_TOKEN", "OPENAI_API_KEY"},
						Value:   "none",
					},
					&cli.BoolFlag{
						Name:  "mock",
						Usage: "Use canned answers instead of a scoring service",
					},
					&cli.StringFlag{
						Name:  "tika-host",
						Usage: "Apache Tika server URL (uses built-in extraction when unset)",
					},
					&cli.StringFlag{
						Name:  "tokenizer-model",
						Usage: "Tokenizer profile for token counting",
						Value: "gpt-4-turbo",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of documents scored concurrently",
						Value: enrich.DefaultPoolSize,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per scoring call",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: enrich.DefaultReportInterval,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (stdout when unset)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (csv, json)",
						Value: "csv",
					},
				},
			},
			{
				Name:   "results",
				Usage:  "Export the results of the last completed run without rescoring",
				Action: resultsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "questions",
						Aliases:  []string{"q"},
						Usage:    "Path to the questionnaire JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (stdout when unset)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (csv, json)",
						Value: "csv",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	questionnaire, err := core.LoadQuestionnaire(c.String("questions"))
	if err != nil {
		return err
	}

	opts := []docscore.PipelineOption{
		docscore.WithTokenizerProfile(c.String("tokenizer-model")),
		docscore.WithEngineOptions(
			enrich.WithPoolSize(c.Int("pool-size")),
			enrich.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
			enrich.WithProgress(os.Stderr, c.Int("report-interval")),
		),
	}

	if c.Bool("mock") {
		opts = append(opts, docscore.WithMockScoring())
	} else {
		opts = append(opts, docscore.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("scorer-host")),
			ai.WithModel(c.String("scorer-model")),
			ai.WithToken(c.String("token")),
		)))
	}

	if tikaHost := c.String("tika-host"); tikaHost != "" {
		opts = append(opts, docscore.WithTikaHost(tikaHost))
	}

	pipeline, err := docscore.NewPipeline(c.String("db"), questionnaire, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	report, err := pipeline.Run(ctx, c.String("dir"))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Documents scored: %d\n", len(report.Documents)-len(report.Failures))
	for _, skip := range report.Skipped {
		fmt.Fprintf(os.Stderr, "Skipped %s: %s\n", skip.FileName, skip.Reason)
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "Failed %s: %v\n", failure.FileName, failure.Err)
	}

	return writeRows(c, report.Rows)
}

func resultsCommand(c *cli.Context) error {
	ctx := context.Background()

	questionnaire, err := core.LoadQuestionnaire(c.String("questions"))
	if err != nil {
		return err
	}

	// Mock scoring keeps the fast path from requiring service credentials;
	// no scoring call is made when reading the snapshot.
	pipeline, err := docscore.NewPipeline(c.String("db"), questionnaire, docscore.WithMockScoring())
	if err != nil {
		return err
	}
	defer pipeline.Close()

	rows, err := pipeline.ResultsFromSnapshot(ctx)
	if err != nil {
		return err
	}

	return writeRows(c, rows)
}

// writeRows exports rows in the requested format to the requested sink.
func writeRows(c *cli.Context, rows []results.Row) error {
	var out io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch strings.ToLower(c.String("format")) {
	case "csv":
		return results.WriteCSV(out, rows)
	case "json":
		return results.WriteJSON(out, rows)
	default:
		return fmt.Errorf("unknown output format %q: must be csv or json", c.String("format"))
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
