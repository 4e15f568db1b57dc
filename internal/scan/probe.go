package scan

import (
	"context"
	"time"
)

// Kind identifies the class of work a probe performs.
type Kind string

const (
	KindDNS        Kind = "dns"
	KindPort       Kind = "port"
	KindTLS        Kind = "tls"
	KindFetch      Kind = "http-fetch"
	KindHeader     Kind = "header-check"
	KindSubprocess Kind = "subprocess"
	KindWhois      Kind = "whois"
)

// Probe is one bounded, independently-failable unit of reconnaissance work.
// Probes are stateless and constructed fresh per scan; all configuration
// (timeouts, user agent) is captured at construction time rather than read
// from ambient process state.
type Probe struct {
	Name    string
	Kind    Kind
	Timeout time.Duration

	// Run performs the actual work. The context carries the per-probe
	// deadline; implementations should honor it but the runner tolerates
	// ones that don't.
	Run func(ctx context.Context, target Target) (any, error)
}

// Outcome is the settlement state of a probe.
type Outcome int

const (
	Success Outcome = iota
	Failure
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "ok"
	case Failure:
		return "failed"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ProbeResult is the settled result of a single probe. Exactly one result is
// produced per dispatched probe per scan, regardless of outcome.
type ProbeResult struct {
	Name    string
	Kind    Kind
	Outcome Outcome
	Value   any    // populated on Success
	Reason  string // populated on Failure, classified (see classify.go)
	Elapsed time.Duration
}

// Summary renders a one-line plain-text description of the result, used by
// the streaming surfaces. No formatting codes: coloring is the presentation
// layer's job.
func (r ProbeResult) Summary() string {
	switch r.Outcome {
	case Success:
		return r.Name + ": ok"
	case Timeout:
		return r.Name + ": timeout"
	default:
		return r.Name + ": failed (" + r.Reason + ")"
	}
}
