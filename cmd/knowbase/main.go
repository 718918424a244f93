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
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/knowbase"
	"github.com/poiesic/knowbase/core"
	"github.com/poiesic/knowbase/corpus"
	"github.com/poiesic/knowbase/corpus/badgerdb"
	"github.com/poiesic/knowbase/search"
)

func main() {
	// Optional .env for KNOWBASE_DB / KNOWBASE_DIR defaults.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "knowbase",
		Usage: "Knowledge retrieval engine for startup founder resources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to packed BadgerDB library directory",
				EnvVars: []string{"KNOWBASE_DB"},
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "Path to a manifest directory (alternative to --db)",
				EnvVars: []string{"KNOWBASE_DIR"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the knowledge base",
				ArgsUsage: "[query terms...]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Filter by topic category (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "stage",
						Usage: "Filter by founder stage (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:    "author",
						Aliases: []string{"a"},
						Usage:   "Filter by author (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Filter by resource type: essay, video, podcast (repeatable)",
					},
					&cli.IntFlag{
						Name:  "min-lines",
						Usage: "Minimum resource length in lines",
					},
					&cli.IntFlag{
						Name:  "max-lines",
						Usage: "Maximum resource length in lines",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: relevance, lines, title",
						Value: "relevance",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   knowbase.DefaultLimit,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of results to skip",
					},
					&cli.BoolFlag{
						Name:  "facets",
						Usage: "Print facet counts for the matched set",
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Show a resource and its content by code",
				ArgsUsage: "<code>",
				Action:    showCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "highlights",
						Usage: "Print highlight snippets instead of full content",
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Query used to select highlight snippets",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print knowledge base statistics",
				Action: statsCommand,
			},
			{
				Name:   "categories",
				Usage:  "List topic categories with resource counts",
				Action: categoriesCommand,
			},
			{
				Name:   "pack",
				Usage:  "Pack a manifest directory into a BadgerDB library",
				Action: packCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Manifest directory to pack",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output BadgerDB directory",
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

// openKnowledgeBase builds an initialized KnowledgeBase from either the
// --db or --dir global flag.
func openKnowledgeBase(c *cli.Context) (*knowbase.KnowledgeBase, func(), error) {
	ctx := context.Background()

	var (
		source corpus.Source
		loader corpus.ContentLoader
		closer = func() {}
	)

	switch {
	case c.String("db") != "":
		store, err := badgerdb.Open(c.String("db"), false)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open library: %w", err)
		}
		source = store
		loader = store
		closer = func() { store.Close() }
	case c.String("dir") != "":
		dir := corpus.NewDir(c.String("dir"))
		source = dir
		loader = dir
	default:
		return nil, nil, fmt.Errorf("either --db or --dir is required")
	}

	kb, err := knowbase.New(source, loader)
	if err != nil {
		closer()
		return nil, nil, err
	}
	if err := kb.Initialize(ctx); err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	return kb, closer, nil
}

func searchCommand(c *cli.Context) error {
	kb, closer, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer closer()

	var stages []core.FounderStage
	for _, s := range c.StringSlice("stage") {
		stages = append(stages, core.FounderStage(s))
	}
	var types []core.ResourceType
	for _, t := range c.StringSlice("type") {
		types = append(types, core.ResourceType(t))
	}

	query := core.SearchQuery{
		RawQuery: strings.Join(c.Args().Slice(), " "),
		Filters: core.Filters{
			Categories: c.StringSlice("category"),
			Stages:     stages,
			Authors:    c.StringSlice("author"),
			Types:      types,
			MinLines:   c.Int("min-lines"),
			MaxLines:   c.Int("max-lines"),
		},
		Sort:   core.SortOrder(c.String("sort")),
		Limit:  c.Int("limit"),
		Offset: c.Int("offset"),
	}

	result, err := kb.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d resources (%s)\n", result.Total, result.ExecutionTime)
	for i, res := range result.Resources {
		fmt.Printf("%d: [%s] %s — %s (%s, %d lines)\n",
			c.Int("offset")+i+1, res.Code, res.Title, res.Author, res.Type, res.Lines)
		if len(res.Topics) > 0 {
			fmt.Printf("   topics: %s\n", strings.Join(res.Topics, ", "))
		}
	}

	if c.Bool("facets") {
		printFacets(result.Facets)
	}
	return nil
}

func printFacets(f core.Facets) {
	fmt.Println("\nCategories:")
	for name, count := range f.Categories {
		fmt.Printf("  %s: %d\n", name, count)
	}
	fmt.Println("Authors:")
	for name, count := range f.Authors {
		fmt.Printf("  %s: %d\n", name, count)
	}
	fmt.Println("Types:")
	for typ, count := range f.Types {
		fmt.Printf("  %s: %d\n", typ, count)
	}
	fmt.Println("Stages:")
	for stage, count := range f.Stages {
		fmt.Printf("  %s: %d\n", stage, count)
	}
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one resource code")
	}

	kb, closer, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer closer()

	content, err := kb.LoadResource(context.Background(), c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to load resource: %w", err)
	}

	res := content.Resource
	fmt.Printf("[%s] %s — %s (%s)\n", res.Code, res.Title, res.Author, res.Type)
	if len(content.Related) > 0 {
		related := make([]string, 0, len(content.Related))
		for _, rel := range content.Related {
			related = append(related, fmt.Sprintf("%s (%s)", rel.Title, rel.Code))
		}
		fmt.Printf("Related: %s\n", strings.Join(related, "; "))
	}
	fmt.Println()

	if c.Bool("highlights") {
		for _, snippet := range search.Highlights(content.Body, c.String("query")) {
			fmt.Printf("  ...%s...\n", snippet)
		}
		return nil
	}
	fmt.Println(content.Body)
	return nil
}

func statsCommand(c *cli.Context) error {
	kb, closer, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := kb.GetStats()
	if err != nil {
		return err
	}

	fmt.Printf("Resources:  %d\n", stats.TotalResources)
	fmt.Printf("Categories: %d\n", stats.Categories)
	fmt.Printf("Authors:    %d\n", stats.Authors)
	for typ, count := range stats.ByType {
		fmt.Printf("  %s: %d\n", typ, count)
	}
	return nil
}

func categoriesCommand(c *cli.Context) error {
	kb, closer, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer closer()

	listing, err := kb.GetCategories()
	if err != nil {
		return err
	}

	for _, cat := range listing.Categories {
		fmt.Printf("%s (%d)\n", cat.Name, cat.Count)
	}
	return nil
}

func packCommand(c *cli.Context) error {
	ctx := context.Background()

	dir := corpus.NewDir(c.String("dir"))
	resources, err := dir.Resources(ctx)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	store, err := badgerdb.Open(c.String("out"), false)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer store.Close()

	tracker := corpus.NewProgressTracker(os.Stderr, len(resources), 10)
	tracker.Start()
	for _, res := range resources {
		body, err := dir.LoadContent(ctx, res.FilePath)
		if err != nil {
			return fmt.Errorf("failed to load content for %s: %w", res.Code, err)
		}
		if err := store.PutResource(ctx, res); err != nil {
			return fmt.Errorf("failed to store resource %s: %w", res.Code, err)
		}
		if err := store.PutContent(ctx, res.FilePath, body); err != nil {
			return fmt.Errorf("failed to store content for %s: %w", res.Code, err)
		}
		tracker.Increment(1)
	}
	tracker.Finish()

	fmt.Fprintf(os.Stderr, "Packed %d resources into %s\n", len(resources), c.String("out"))
	return nil
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
