// Package recon orchestrates a scan: it assembles the probe batch for the
// requested scan type, fans the probes out through the scheduler, feeds the
// fetched document to the fingerprint engine and the analyzers, and
// aggregates everything into one ScanReport. All results converge here
// before the presentation layer sees anything.
package recon

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kevineulenberg/domain-testing-suite/internal/analyzer"
	"github.com/kevineulenberg/domain-testing-suite/internal/fingerprint"
	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
	"github.com/kevineulenberg/domain-testing-suite/internal/vulnscan"
)

// Type selects which slice of the suite a scan runs.
type Type string

const (
	TypeFull   Type = "full"
	TypeTech   Type = "tech"
	TypeSEO    Type = "seo"
	TypeCarbon Type = "carbon"
	TypeA11y   Type = "a11y"
	TypeLinks  Type = "links"
	TypeDNS    Type = "dns"
	TypeSSL    Type = "ssl"
	TypePing   Type = "ping"
)

// ParseType maps a user-supplied selector to a scan type; anything
// unrecognized falls back to the full scan.
func ParseType(s string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeTech, TypeSEO, TypeCarbon, TypeA11y, TypeLinks, TypeDNS, TypeSSL, TypePing:
		return Type(strings.ToLower(strings.TrimSpace(s)))
	default:
		return TypeFull
	}
}

// Options carries every knob a scan needs, passed explicitly instead of read
// from ambient process state.
type Options struct {
	Type         Type
	ProbeTimeout time.Duration // per sub-probe, default 5s
	FetchTimeout time.Duration // primary document retrieval, default 10s
	Concurrency  int           // probe scheduler bound, default 8
	RateLimit    int           // probe launches per second, 0 = unlimited
	UserAgent    string
	Ports        []int // empty = scan.DefaultPorts
	LinkTimeout  time.Duration
}

func (o *Options) normalize() {
	if o.Type == "" {
		o.Type = TypeFull
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = 5 * time.Second
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 10 * time.Second
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 8
	}
	if o.LinkTimeout <= 0 {
		o.LinkTimeout = 3 * time.Second
	}
}

// ScanReport aggregates every probe and analyzer output of one scan. The
// shape is always complete: failed probes appear inline with their reasons
// rather than disappearing.
type ScanReport struct {
	Target    string
	Type      Type
	StartedAt time.Time
	Duration  time.Duration

	Probes    []scan.ProbeResult
	Signals   []fingerprint.Signal
	Analyzers []analyzer.Result

	// VulnScan holds the external scanner's summary when one was run
	// alongside the scan; nil otherwise.
	VulnScan *vulnscan.Result
}

// Session is a single scan in flight. Construct with New; a Session is not
// reusable across targets.
type Session struct {
	Target scan.Target
	Opts   Options

	// Progress, when set, receives one plain-text line per settled probe
	// and per completed analyzer. Used by the streaming surfaces; calls
	// are serialized.
	Progress func(line string)

	progressMu sync.Mutex
}

// New validates the raw target and prepares a session. This is the only
// place a scan can fail with an error; everything afterwards degrades into
// per-probe failure values.
func New(rawTarget string, opts Options) (*Session, error) {
	target, err := scan.ParseTarget(rawTarget)
	if err != nil {
		return nil, err
	}
	opts.normalize()
	return &Session{Target: target, Opts: opts}, nil
}

// Run executes the scan and returns the aggregated report. The context
// bounds the whole scan; individual probes carry their own shorter
// deadlines.
func (s *Session) Run(ctx context.Context) *ScanReport {
	report := &ScanReport{
		Target:    s.Target.Host(),
		Type:      s.Opts.Type,
		StartedAt: time.Now().UTC(),
	}

	probes, fetchIndex := s.buildProbes()
	runner := &scan.Runner{
		Concurrency: s.Opts.Concurrency,
		RateLimit:   s.Opts.RateLimit,
		OnSettle: func(_ int, result scan.ProbeResult) {
			s.emit(result.Summary())
		},
	}
	report.Probes = runner.Run(ctx, s.Target, probes)

	var doc *scan.FetchedDocument
	var fetchFailure string
	if fetchIndex >= 0 {
		fetchResult := report.Probes[fetchIndex]
		if fetchResult.Outcome == scan.Success {
			doc, _ = fetchResult.Value.(*scan.FetchedDocument)
		} else {
			fetchFailure = fetchResult.Summary()
		}
	}

	if s.wantsFingerprint() {
		if doc != nil {
			report.Signals = fingerprint.Classify(doc)
			s.emit("fingerprint: " + summarizeSignals(report.Signals))
		} else {
			s.emit("fingerprint: skipped (" + fetchFailure + ")")
		}
	}

	for _, a := range s.analyzers() {
		var result analyzer.Result
		if doc != nil {
			result = a.Analyze(ctx, doc)
		} else {
			result = analyzer.Unavailable(a.Name(), fetchFailure)
		}
		report.Analyzers = append(report.Analyzers, result)
		s.emit("analyzer " + result.Analyzer + ": done")
	}

	report.Duration = time.Since(report.StartedAt)
	return report
}

// buildProbes assembles the batch for the scan type. The returned index
// locates the http-fetch probe in the batch, -1 when the type needs none.
func (s *Session) buildProbes() ([]scan.Probe, int) {
	opts := s.Opts
	var probes []scan.Probe
	fetchIndex := -1

	addFetch := func() {
		fetchIndex = len(probes)
		probes = append(probes, scan.FetchProbe(scan.FetchOptions{
			Timeout:   opts.FetchTimeout,
			UserAgent: opts.UserAgent,
		}))
	}

	switch opts.Type {
	case TypeDNS:
		probes = append(probes,
			scan.DNSProbe(opts.ProbeTimeout),
			scan.WildcardProbe(opts.ProbeTimeout),
			scan.ZoneTransferProbe(opts.ProbeTimeout),
			scan.RBLProbe(opts.ProbeTimeout, nil),
		)
	case TypeSSL:
		probes = append(probes, scan.TLSProbe(opts.ProbeTimeout))
	case TypePing:
		probes = append(probes, scan.PingProbe(opts.ProbeTimeout))
	case TypeTech, TypeSEO, TypeCarbon, TypeA11y, TypeLinks:
		addFetch()
	default: // TypeFull
		addFetch()
		probes = append(probes,
			scan.DNSProbe(opts.ProbeTimeout),
			scan.WildcardProbe(opts.ProbeTimeout),
			scan.ZoneTransferProbe(opts.ProbeTimeout),
			scan.RBLProbe(opts.ProbeTimeout, nil),
			scan.TLSProbe(opts.ProbeTimeout),
			scan.HeaderProbe(opts.ProbeTimeout, opts.UserAgent),
			scan.WhoisProbe(opts.ProbeTimeout),
			scan.PingProbe(opts.ProbeTimeout),
		)
		probes = append(probes, scan.PortProbes(opts.Ports, opts.ProbeTimeout)...)
	}
	return probes, fetchIndex
}

func (s *Session) wantsFingerprint() bool {
	return s.Opts.Type == TypeFull || s.Opts.Type == TypeTech
}

// analyzers returns the analyzer set for the scan type, in declaration
// order; the report preserves this order.
func (s *Session) analyzers() []analyzer.Analyzer {
	opts := s.Opts
	link := analyzer.LinkAnalyzer{Timeout: opts.LinkTimeout, UserAgent: opts.UserAgent}

	switch opts.Type {
	case TypeSEO:
		return []analyzer.Analyzer{analyzer.SEOAnalyzer{}}
	case TypeA11y:
		return []analyzer.Analyzer{analyzer.AccessibilityAnalyzer{}}
	case TypeCarbon:
		return []analyzer.Analyzer{analyzer.CarbonAnalyzer{}}
	case TypeLinks:
		return []analyzer.Analyzer{link}
	case TypeFull:
		return []analyzer.Analyzer{
			analyzer.SEOAnalyzer{},
			analyzer.AccessibilityAnalyzer{},
			analyzer.CarbonAnalyzer{},
			link,
		}
	default:
		return nil
	}
}

func (s *Session) emit(line string) {
	if s.Progress == nil {
		return
	}
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.Progress(line)
}

func summarizeSignals(signals []fingerprint.Signal) string {
	if len(signals) == 0 {
		return "no known technologies detected"
	}
	names := make([]string, 0, len(signals))
	for _, sig := range signals {
		names = append(names, sig.Name)
	}
	return strings.Join(names, ", ")
}
