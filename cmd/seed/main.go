// Package main copies the JSON dataset into the Postgres table the server
// reads when DATABASE_URL is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	datasetfile "enrolsight/internal/dataset/store/file"
	datasetpg "enrolsight/internal/dataset/store/postgres"
	"enrolsight/internal/platform/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Dataset.File, "file", cfg.Dataset.File, "JSON dataset to import")
	flag.StringVar(&cfg.Dataset.DatabaseURL, "database-url", cfg.Dataset.DatabaseURL, "Postgres DSN (default: DATABASE_URL)")
	flag.StringVar(&cfg.Dataset.Table, "table", cfg.Dataset.Table, "destination table")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := seed(ctx, cfg.Dataset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("imported %d records into %s\n", n, cfg.Dataset.Table)
}

func seed(ctx context.Context, cfg config.Dataset) (int, error) {
	if cfg.DatabaseURL == "" {
		return 0, fmt.Errorf("database url is required")
	}
	records, err := datasetfile.New(cfg.File).Load(ctx)
	if err != nil {
		return 0, err
	}

	pool, err := datasetpg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return 0, err
	}
	defer pool.Close()

	target := datasetpg.New(pool, cfg.Table)
	if err := target.Migrate(ctx); err != nil {
		return 0, err
	}
	if err := target.Insert(ctx, records...); err != nil {
		return 0, err
	}
	return len(records), nil
}
