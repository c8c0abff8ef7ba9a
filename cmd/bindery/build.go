package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bindery/bindery"
	"github.com/bindery/bindery/internal/config"
	"github.com/bindery/bindery/internal/gemini"
)

// Sentinel errors for CLI operations.
var (
	ErrNoConfig            = errors.New("no config specified (use --config)")
	ErrUnknownProviderName = errors.New("unknown provider")
	ErrPublicationsFailed  = errors.New("one or more publications failed")
)

// defaultOutputRoot is used when neither flag nor config names one.
const defaultOutputRoot = "out"

// runBuild loads the batch config, wires the provider, runs every
// publication, and prints one result line per publication.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	var flags buildFlags
	fs := newBuildFlagSet(&flags)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if flags.config == "" {
		return ErrNoConfig
	}

	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	provider, err := selectProvider(flags.provider, flags.model)
	if err != nil {
		return err
	}

	outputRoot := flags.output
	if outputRoot == "" {
		outputRoot = cfg.OutputRoot
	}
	if outputRoot == "" {
		outputRoot = defaultOutputRoot
	}

	workers := resolveWorkers(flags.workers, cfg.Workers)
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Provider: %s, workers per publication: %d\n", provider.Name(), workers)
	}

	maxConcurrent := flags.maxConcurrent
	if maxConcurrent == 0 {
		maxConcurrent = cfg.MaxConcurrentPublications
	}

	svc := bindery.New(provider,
		bindery.WithWorkers(workers),
		bindery.WithStockTable(cfg.StockTable()),
	)

	results := svc.RunBatch(ctx, cfg.PublicationConfigs(), outputRoot, maxConcurrent)
	if failed := printResults(results, outputRoot, flags.quiet, flags.verbose, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPublicationsFailed, failed, len(results))
	}
	return nil
}

// selectProvider maps the --provider flag to an implementation. The choice
// is always explicit; placeholder output is a decision, not a fallback.
func selectProvider(name, model string) (bindery.AssetProvider, error) {
	switch name {
	case providerPlaceholder:
		return bindery.PlaceholderProvider{}, nil
	case providerGemini:
		return gemini.New(model)
	default:
		return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownProviderName, name, providerPlaceholder, providerGemini)
	}
}

// printResults writes one line per publication and a summary, returning
// the failure count.
func printResults(results []bindery.Result, outputRoot string, quiet, verbose bool, env *Environment) int {
	summary := bindery.Summarize(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Config.Theme, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d units, $%.2f, %v)\n",
				r.Config.Theme, outputRoot, r.Catalog.UnitCount, r.Catalog.Price,
				r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %q (%d units)\n", r.Catalog.Title, r.Catalog.UnitCount)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary.Failed
}
