package main

import (
	"runtime"

	flag "github.com/spf13/pflag"
)

// Provider selection values for --provider.
const (
	providerPlaceholder = "placeholder"
	providerGemini      = "gemini"
)

// buildFlags holds flags for the build command.
type buildFlags struct {
	config        string
	output        string
	workers       int
	maxConcurrent int
	provider      string
	model         string
	quiet         bool
	verbose       bool
}

// newBuildFlagSet wires the build command's flags.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "batch config file (required)")
	fs.StringVarP(&f.output, "output", "o", "", "output root directory (overrides config)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "asset generation workers per publication (0 = auto)")
	fs.IntVar(&f.maxConcurrent, "max-publications", 0, "publications to run in parallel (0 = config or default)")
	fs.StringVar(&f.provider, "provider", providerPlaceholder, "asset provider: placeholder or gemini")
	fs.StringVar(&f.model, "model", "", "gemini model override")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress per-publication output")
	fs.BoolVar(&f.verbose, "verbose", false, "show durations and worker sizing")
	return fs
}

// Worker auto-sizing bounds. The divisor leaves CPU headroom for the image
// encoders that run alongside the generation workers.
const (
	minWorkers     = 1
	maxAutoWorkers = 8
	workerDivisor  = 2
)

// resolveWorkers picks the per-publication worker count.
// Priority: flag > config > GOMAXPROCS-based calculation (adjusted by
// automaxprocs in containers).
func resolveWorkers(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if configValue > 0 {
		return configValue
	}
	n := runtime.GOMAXPROCS(0) / workerDivisor
	if n < minWorkers {
		return minWorkers
	}
	if n > maxAutoWorkers {
		return maxAutoWorkers
	}
	return n
}
