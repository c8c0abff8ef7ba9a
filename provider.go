package bindery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"
)

// AssetTags classify a generated asset.
type AssetTags struct {
	Theme      string
	Style      string
	Difficulty string
}

// Asset is one generated raster page or clipart element. Either Image or
// Path carries the raster; the Service fills Path once the page file is
// written. Provider names the implementation that produced the raster, so
// a placeholder can never masquerade as real output in a reported result.
type Asset struct {
	ID         string
	Path       string
	Image      image.Image
	Width      int
	Height     int
	Tags       AssetTags
	Variations []Asset
	Provider   string
}

// AssetProvider generates one raster from a prompt and a pixel spec.
// Implementations must return rasters whose dimensions match the spec
// exactly; the assembler rejects anything else. Errors should wrap
// ErrRateLimited, ErrProviderTimeout, or ErrProviderFailure so the retry
// boundary can classify them.
type AssetProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string, spec PageSpec) (Asset, error)
}

// RetryPolicy bounds the backoff loop around provider calls.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultRetryPolicy returns the standard provider retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   2.0,
	}
}

// isTransient reports whether a provider error is worth retrying.
// Config and context errors are not; only the provider error classes are.
func isTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrProviderTimeout) ||
		errors.Is(err, ErrProviderFailure)
}

// retryProvider wraps a provider with bounded exponential backoff.
// This is the only place the pipeline retries; once attempts are exhausted
// the publication fails hard rather than substituting a degraded asset.
type retryProvider struct {
	inner  AssetProvider
	policy RetryPolicy
}

// NewRetryProvider wraps p with the given policy. A MaxAttempts below 1 is
// treated as 1 (a single attempt, no retry).
func NewRetryProvider(p AssetProvider, policy RetryPolicy) AssetProvider {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	return &retryProvider{inner: p, policy: policy}
}

func (r *retryProvider) Name() string { return r.inner.Name() }

func (r *retryProvider) Generate(ctx context.Context, prompt string, spec PageSpec) (Asset, error) {
	delay := r.policy.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Asset{}, err
		}

		asset, err := r.inner.Generate(ctx, prompt, spec)
		if err == nil {
			return asset, nil
		}
		lastErr = err

		if !isTransient(err) {
			return Asset{}, err
		}
		if attempt == r.policy.MaxAttempts {
			break
		}
		if err := sleepCtx(ctx, delay); err != nil {
			return Asset{}, err
		}
		delay = time.Duration(float64(delay) * r.policy.Multiplier)
	}

	return Asset{}, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, r.policy.MaxAttempts, lastErr)
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
