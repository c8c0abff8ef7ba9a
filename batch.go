package bindery

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxConcurrentPublications bounds parallel publications. External
// providers rate-limit aggressively; two concurrent publications with their
// own worker pools already saturate most quotas.
const DefaultMaxConcurrentPublications = 2

// Result is the outcome of one publication in a batch. Exactly one of
// Catalog (on success) or Err is meaningful. A failed publication's Err is
// a *PublicationError naming the stage that failed.
type Result struct {
	Config   PublicationConfig
	Catalog  Catalog
	Err      error
	Duration time.Duration
}

// RunBatch produces every configured publication, up to maxConcurrent at a
// time (values below 1 mean DefaultMaxConcurrentPublications). Publications
// share no mutable state and are isolated: one failure never aborts its
// siblings. One Result is returned per config, in input order.
func (s *Service) RunBatch(ctx context.Context, configs []PublicationConfig, outputRoot string, maxConcurrent int) []Result {
	if len(configs) == 0 {
		return nil
	}
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrentPublications
	}
	if maxConcurrent > len(configs) {
		maxConcurrent = len(configs)
	}

	results := make([]Result, len(configs))
	jobs := make(chan int, len(configs))
	var wg sync.WaitGroup

	for w := 0; w < maxConcurrent; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				start := time.Now()
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Config: configs[idx], Err: err}
					continue
				}
				catalog, err := s.Produce(ctx, configs[idx], outputRoot)
				results[idx] = Result{
					Config:   configs[idx],
					Catalog:  catalog,
					Err:      err,
					Duration: time.Since(start),
				}
			}
		}()
	}

	for i := range configs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Summary tallies batch outcomes.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summarize counts succeeded and failed publications.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}
