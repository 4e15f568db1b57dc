package scan

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testTarget(t *testing.T) Target {
	t.Helper()
	target, err := ParseTarget("example.com")
	if err != nil {
		t.Fatalf("ParseTarget: %v", err)
	}
	return target
}

func TestRunner_HungProbeDoesNotBlockBatch(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	probes := make([]Probe, 10)
	for i := range probes {
		i := i
		probes[i] = Probe{
			Name:    fmt.Sprintf("probe %d", i),
			Kind:    KindDNS,
			Timeout: 300 * time.Millisecond,
			Run: func(ctx context.Context, _ Target) (any, error) {
				if i == 3 {
					// Never settles on its own; the runner must abandon it.
					<-release
					return nil, errors.New("released")
				}
				return i, nil
			},
		}
	}

	runner := &Runner{Concurrency: 10}
	start := time.Now()
	results := runner.Run(context.Background(), testTarget(t), probes)
	elapsed := time.Since(start)

	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	// Bounded by the single longest timeout, not the sum of all timeouts.
	if elapsed > 2*time.Second {
		t.Errorf("batch took %v, expected roughly one probe timeout", elapsed)
	}
	for i, r := range results {
		if i == 3 {
			if r.Outcome != Timeout {
				t.Errorf("probe 3 outcome = %v, want Timeout", r.Outcome)
			}
			continue
		}
		if r.Outcome != Success {
			t.Errorf("probe %d outcome = %v, want Success", i, r.Outcome)
		}
		if got, ok := r.Value.(int); !ok || got != i {
			t.Errorf("probe %d value = %v, want %d", i, r.Value, i)
		}
	}
}

func TestRunner_ResultsMatchSubmissionOrder(t *testing.T) {
	// Earlier probes sleep longer, so completion order is reversed; result
	// order must still match submission order.
	probes := make([]Probe, 5)
	for i := range probes {
		i := i
		probes[i] = Probe{
			Name:    fmt.Sprintf("probe %d", i),
			Timeout: time.Second,
			Run: func(ctx context.Context, _ Target) (any, error) {
				time.Sleep(time.Duration(5-i) * 20 * time.Millisecond)
				return fmt.Sprintf("value %d", i), nil
			},
		}
	}

	runner := &Runner{Concurrency: 5}
	results := runner.Run(context.Background(), testTarget(t), probes)

	for i, r := range results {
		expected := fmt.Sprintf("probe %d", i)
		if r.Name != expected {
			t.Errorf("results[%d].Name = %q, want %q", i, r.Name, expected)
		}
		if r.Value != fmt.Sprintf("value %d", i) {
			t.Errorf("results[%d].Value = %v, want value %d", i, r.Value, i)
		}
	}
}

func TestRunner_ConcurrencyBound(t *testing.T) {
	var inFlight, peak int32

	probes := make([]Probe, 12)
	for i := range probes {
		probes[i] = Probe{
			Name:    fmt.Sprintf("probe %d", i),
			Timeout: time.Second,
			Run: func(ctx context.Context, _ Target) (any, error) {
				current := atomic.AddInt32(&inFlight, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if current <= old || atomic.CompareAndSwapInt32(&peak, old, current) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil, nil
			},
		}
	}

	runner := &Runner{Concurrency: 3}
	runner.Run(context.Background(), testTarget(t), probes)

	if got := atomic.LoadInt32(&peak); got > 3 {
		t.Errorf("peak concurrency %d exceeds bound 3", got)
	}
}

func TestRunner_FailureIsRecordedNotRaised(t *testing.T) {
	probes := []Probe{
		{
			Name:    "failing",
			Timeout: time.Second,
			Run: func(ctx context.Context, _ Target) (any, error) {
				return nil, &net.DNSError{Err: "no such host", Name: "example.invalid", IsNotFound: true}
			},
		},
		{
			Name:    "fine",
			Timeout: time.Second,
			Run: func(ctx context.Context, _ Target) (any, error) {
				return "ok", nil
			},
		},
	}

	runner := &Runner{Concurrency: 2}
	results := runner.Run(context.Background(), testTarget(t), probes)

	if results[0].Outcome != Failure {
		t.Fatalf("expected Failure, got %v", results[0].Outcome)
	}
	if !strings.HasPrefix(results[0].Reason, ReasonNameResolution) {
		t.Errorf("reason %q does not carry the name-resolution class", results[0].Reason)
	}
	if results[1].Outcome != Success {
		t.Errorf("sibling probe affected by failure: %v", results[1].Outcome)
	}
}

func TestRunner_OnSettleSeesEveryProbe(t *testing.T) {
	var mu sync.Mutex
	settled := map[int]Outcome{}

	probes := make([]Probe, 6)
	for i := range probes {
		probes[i] = Probe{
			Name:    fmt.Sprintf("probe %d", i),
			Timeout: time.Second,
			Run: func(ctx context.Context, _ Target) (any, error) {
				return nil, nil
			},
		}
	}

	runner := &Runner{
		Concurrency: 2,
		OnSettle: func(index int, result ProbeResult) {
			mu.Lock()
			settled[index] = result.Outcome
			mu.Unlock()
		},
	}
	runner.Run(context.Background(), testTarget(t), probes)

	if len(settled) != len(probes) {
		t.Errorf("OnSettle saw %d probes, want %d", len(settled), len(probes))
	}
}

func TestClassifyError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		prefix string
	}{
		{
			name:   "dns error",
			err:    &net.DNSError{Err: "no such host", Name: "x.invalid"},
			prefix: ReasonNameResolution,
		},
		{
			name:   "wrapped dns error",
			err:    fmt.Errorf("fetch: %w", &net.DNSError{Err: "no such host"}),
			prefix: ReasonNameResolution,
		},
		{
			name:   "deadline",
			err:    context.DeadlineExceeded,
			prefix: ReasonConnectionTimeout,
		},
		{
			name:   "plain error stays verbatim",
			err:    errors.New("something odd"),
			prefix: "something odd",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reason := ClassifyError(tc.err)
			if !strings.HasPrefix(reason, tc.prefix) {
				t.Errorf("ClassifyError(%v) = %q, want prefix %q", tc.err, reason, tc.prefix)
			}
		})
	}
}
