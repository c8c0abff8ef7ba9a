package main

import (
	"errors"
	"os"

	"github.com/bindery/bindery"
	"github.com/bindery/bindery/internal/config"
	"github.com/bindery/bindery/internal/gemini"
)

// Exit codes for the bindery CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess  = 0 // all publications produced
	ExitGeneral  = 1 // general/unexpected error, or failed publications
	ExitUsage    = 2 // invalid flags, config, or validation
	ExitIO       = 3 // file not found, permission denied
	ExitProvider = 4 // asset provider errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Provider errors (exit 4)
	if errors.Is(err, bindery.ErrRateLimited) ||
		errors.Is(err, bindery.ErrProviderTimeout) ||
		errors.Is(err, bindery.ErrProviderFailure) ||
		errors.Is(err, bindery.ErrRetriesExhausted) ||
		errors.Is(err, gemini.ErrNoAPIKey) {
		return ExitProvider
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, config.ErrConfigNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoConfig) ||
		errors.Is(err, ErrUnknownProviderName) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrNoPublications) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrTooManyEntries) ||
		errors.Is(err, config.ErrInvalidThickness) ||
		errors.Is(err, bindery.ErrUnknownTrimSize) ||
		errors.Is(err, bindery.ErrInvalidBleed) ||
		errors.Is(err, bindery.ErrInvalidDPI) ||
		errors.Is(err, bindery.ErrInvalidUnitCount) ||
		errors.Is(err, bindery.ErrUnknownPaperStock) ||
		errors.Is(err, bindery.ErrUnknownResolutionTier) ||
		errors.Is(err, bindery.ErrUnknownKind) ||
		errors.Is(err, bindery.ErrUnknownDifficulty) ||
		errors.Is(err, bindery.ErrUnknownDirection) ||
		errors.Is(err, bindery.ErrEmptyTheme) {
		return ExitUsage
	}

	return ExitGeneral
}
