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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/pinpoint"
	"github.com/poiesic/pinpoint/ai"
	"github.com/poiesic/pinpoint/ai/openai"
	"github.com/poiesic/pinpoint/cache"
	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/highlight"
	"github.com/poiesic/pinpoint/rank"
)

func main() {
	app := &cli.App{
		Name:  "pinpoint",
		Usage: "Locate and highlight values in diacritic-heavy documents",
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
				Name:      "search",
				Usage:     "Search a document for the values answering a query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Document file to search ('-' for stdin)",
						Value:   "-",
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Value type hint (birthNumber, iban, amount, date, ...)",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of results",
						Value: rank.DefaultMaxResults,
					},
					&cli.BoolFlag{
						Name:  "ai",
						Usage: "Consult the AI oracle for additional candidates",
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "OpenAI-compatible chat API host",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Model for oracle value extraction",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to a BadgerDB result cache directory",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit results as JSON",
					},
				},
			},
			{
				Name:   "extract",
				Usage:  "Extract all typed entities from a document",
				Action: extractCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Document file to scan ('-' for stdin)",
						Value:   "-",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit entities as JSON",
					},
				},
			},
			{
				Name:      "highlight",
				Usage:     "Print the document with query matches marked",
				ArgsUsage: "QUERY",
				Action:    highlightCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Document file to search ('-' for stdin)",
						Value:   "-",
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Value type hint",
					},
					&cli.BoolFlag{
						Name:  "html",
						Usage: "Emit HTML with <mark> tags instead of ANSI colors",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query argument is required")
	}

	document, err := readDocument(c.String("file"))
	if err != nil {
		return err
	}

	ranker, err := rank.NewRanker(rank.WithMaxResults(c.Int("max-results")))
	if err != nil {
		return err
	}

	opts := []pinpoint.Option{pinpoint.WithRanker(ranker)}

	if c.Bool("ai") {
		provider, err := openai.NewProvider(ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithModel(c.String("ai-model")),
		))
		if err != nil {
			return fmt.Errorf("creating AI provider: %w", err)
		}
		opts = append(opts, pinpoint.WithProvider(provider))
	}

	if dir := c.String("cache"); dir != "" {
		resultCache, err := cache.OpenCache(dir, false)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		opts = append(opts, pinpoint.WithCache(resultCache))
	}

	engine, err := pinpoint.NewEngine(opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Search(c.Context, document, query, core.ParseValueType(c.String("type")))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}
	for _, r := range results {
		label := r.Label
		if label == "" {
			label = r.Type.String()
		}
		fmt.Printf("%2d. %-24s %-32q score=%.3f confidence=%.3f\n",
			r.Rank, label, r.Value, r.Score, r.Confidence())
		for _, m := range r.Matches {
			fmt.Printf("      [%d:%d] %q (%s)\n", m.Start, m.End, m.Text, m.Algorithm)
		}
	}
	return nil
}

func extractCommand(c *cli.Context) error {
	document, err := readDocument(c.String("file"))
	if err != nil {
		return err
	}

	engine, err := pinpoint.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	entities, err := engine.ExtractEntities(c.Context, document)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(entities)
	}

	if len(entities) == 0 {
		fmt.Println("no entities")
		return nil
	}
	for _, m := range entities {
		fmt.Printf("%-14s [%d:%d] %q confidence=%.2f\n",
			m.Type, m.Start, m.End, m.Text, m.Confidence)
	}
	return nil
}

func highlightCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query argument is required")
	}

	document, err := readDocument(c.String("file"))
	if err != nil {
		return err
	}

	engine, err := pinpoint.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Search(c.Context, document, query, core.ParseValueType(c.String("type")))
	if err != nil {
		return err
	}

	useHTML := c.Bool("html")
	segments := engine.Highlight(document, results, highlight.Options{EscapeHTML: useHTML})

	var b strings.Builder
	for _, s := range segments {
		if !s.Highlighted {
			b.WriteString(s.Text)
			continue
		}
		if useHTML {
			fmt.Fprintf(&b, "<mark>%s</mark>", s.Text)
		} else {
			fmt.Fprintf(&b, "\x1b[43m%s\x1b[0m", s.Text)
		}
	}
	fmt.Println(b.String())
	return nil
}

func readDocument(path string) (string, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
