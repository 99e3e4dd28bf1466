package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		transactions  = flag.Int("transactions", cfg.NumTransactions, "number of transactions to generate")
		notifications = flag.Int("notifications", cfg.NumNotifications, "number of notifications to generate")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		start         = flag.String("start", cfg.Start.Format(time.DateOnly), "first day of the generated history (YYYY-MM-DD)")
		span          = flag.Duration("span", cfg.Span, "length of the generated history")
		output        = flag.String("output", "data/history.yaml", "fixture overlay to write")
		writeStdout   = flag.Bool("stdout", false, "write the overlay to stdout instead of a file")
	)
	flag.Parse()

	startAt, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -start %q: %v\n", *start, err)
		os.Exit(2)
	}

	genCfg := generator.Config{
		NumTransactions:  *transactions,
		NumNotifications: *notifications,
		Seed:             *seed,
		Start:            startAt,
		Span:             *span,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	file, err := generator.New(genCfg, catalog.MustDefault()).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := yaml.NewEncoder(os.Stdout).Encode(file); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write overlay to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteFixtures(file, *output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write overlay: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d transactions and %d notifications into %s\n", len(file.Transactions), len(file.Notifications), *output)
}
