package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Runner executes a batch of probes with bounded concurrency and per-probe
// timeouts. A hung or slow probe never delays its siblings beyond slot
// contention, and every dispatched probe settles exactly once.
type Runner struct {
	Concurrency int // maximum probes in flight; defaults to 8
	RateLimit   int // probe launches per second, global; 0 disables limiting

	// OnSettle, when set, observes each result as it settles, before the
	// batch completes. Called from worker goroutines; implementations must
	// be safe for concurrent use.
	OnSettle func(index int, result ProbeResult)
}

type runnerResult struct {
	value any
	err   error
}

// Run executes all probes and returns their results in input order, so
// callers can zip results with labels deterministically. It never fails on
// partial probe failure; failures and timeouts are recorded inline.
func (r *Runner) Run(ctx context.Context, target Target, probes []Probe) []ProbeResult {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	var limiter *rate.Limiter
	if r.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.RateLimit), r.RateLimit)
	}

	results := make([]ProbeResult, len(probes))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, p := range probes {
		wg.Add(1)
		go func(i int, p Probe) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if limiter != nil {
				_ = limiter.Wait(ctx)
			}

			results[i] = runOne(ctx, target, p)
			if r.OnSettle != nil {
				r.OnSettle(i, results[i])
			}
		}(i, p)
	}

	wg.Wait()
	return results
}

// runOne settles a single probe. The executor runs in its own goroutine
// writing into a buffered channel: if the deadline fires first the Timeout
// result is recorded immediately and the executor is abandoned, its eventual
// result discarded.
func runOne(ctx context.Context, target Target, p Probe) ProbeResult {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan runnerResult, 1)
	go func() {
		value, err := p.Run(pctx, target)
		done <- runnerResult{value: value, err: err}
	}()

	result := ProbeResult{Name: p.Name, Kind: p.Kind}
	select {
	case out := <-done:
		result.Elapsed = time.Since(start)
		switch {
		case out.err == nil:
			result.Outcome = Success
			result.Value = out.value
		case errors.Is(out.err, context.DeadlineExceeded):
			result.Outcome = Timeout
		default:
			result.Outcome = Failure
			result.Reason = ClassifyError(out.err)
		}
	case <-pctx.Done():
		result.Elapsed = time.Since(start)
		if errors.Is(pctx.Err(), context.Canceled) {
			result.Outcome = Failure
			result.Reason = "canceled"
		} else {
			result.Outcome = Timeout
		}
	}
	return result
}
