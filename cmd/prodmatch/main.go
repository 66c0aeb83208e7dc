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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/prodmatch"
	"github.com/poiesic/prodmatch/ai"
	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/ingestion"
	"github.com/poiesic/prodmatch/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "prodmatch",
		Usage: "Hybrid semantic product search over a catalog",
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
				Name:      "ingest",
				Usage:     "Embed catalog entries from a CSV file and persist them",
				ArgsUsage: "<catalog.csv>",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries to embed per request",
						Value: ingestion.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
					&cli.BoolFlag{
						Name:  "skip-header",
						Usage: "Skip the first CSV row",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Resolve a free-text product description against the catalog",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Maximum number of matches to return",
						Value: search.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "max-distance",
						Usage: "Semantic distance threshold",
						Value: search.DefaultMaxDistance,
					},
				},
			},
			{
				Name:   "info",
				Usage:  "Show catalog statistics",
				Action: infoCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
}

// readCatalogCSV parses catalog entries from CSV rows. Two columns are
// code,description; a third leading numeric column supplies an explicit ID.
// Entries without one get a content-based ID derived from the code during
// ingestion.
func readCatalogCSV(r io.Reader, skipHeader bool) ([]*core.CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	entries := []*core.CatalogEntry{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++
		if skipHeader && row == 1 {
			continue
		}

		switch len(record) {
		case 2:
			entries = append(entries, &core.CatalogEntry{
				Code:        strings.TrimSpace(record[0]),
				Description: strings.TrimSpace(record[1]),
			})
		case 3:
			id, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid id %q: %w", row, record[0], err)
			}
			entries = append(entries, &core.CatalogEntry{
				Id:          core.ID(id),
				Code:        strings.TrimSpace(record[1]),
				Description: strings.TrimSpace(record[2]),
			})
		default:
			return nil, fmt.Errorf("row %d: expected 2 or 3 columns, got %d", row, len(record))
		}
	}

	return entries, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one CSV file argument")
	}
	csvPath := c.Args().First()

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	entries, err := readCatalogCSV(f, c.Bool("skip-header"))
	if err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no catalog entries in %s", csvPath)
	}

	catalog, err := prodmatch.Open(c.String("db"), prodmatch.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	opts := []ingestion.Option{ingestion.WithBatchSize(c.Int("batch-size"))}
	if c.Int("pool-size") > 0 {
		opts = append(opts, ingestion.WithPoolSize(c.Int("pool-size")))
	}

	pipeline, err := catalog.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	if err := pipeline.Ingest(ctx, entries); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d catalog entries into %s\n", len(entries), c.String("db"))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() < 1 {
		return fmt.Errorf("expected a query")
	}
	query := strings.Join(c.Args().Slice(), " ")

	catalog, err := prodmatch.Open(c.String("db"), prodmatch.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	if err := catalog.LoadIndex(ctx); err != nil {
		return fmt.Errorf("failed to load vector index: %w", err)
	}

	searcher, err := catalog.NewSearcher(
		search.WithTopK(c.Int("top-k")),
		search.WithMaxDistance(c.Float64("max-distance")),
	)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	result := searcher.Search(ctx, query)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func infoCommand(c *cli.Context) error {
	ctx := context.Background()

	// The provider is never used here; a mock-free open still needs a valid
	// config, so reuse the defaults.
	catalog, err := prodmatch.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	count, err := catalog.ProductRepository().CountEmbeddingRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	fmt.Printf("Database: %s\n", c.String("db"))
	fmt.Printf("Embedding records: %d\n", count)

	if count > 0 {
		if err := catalog.LoadIndex(ctx); err != nil {
			return fmt.Errorf("failed to load vector index: %w", err)
		}
		store := catalog.IndexHandle().Load()
		fmt.Printf("Vector dimensions: %d\n", store.Dimensionality())
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
