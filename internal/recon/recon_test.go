package recon

import (
	"strings"
	"testing"
	"time"

	"github.com/kevineulenberg/domain-testing-suite/internal/fingerprint"
)

func TestParseType(t *testing.T) {
	testCases := []struct {
		input string
		want  Type
	}{
		{"full", TypeFull},
		{"tech", TypeTech},
		{"seo", TypeSEO},
		{"carbon", TypeCarbon},
		{"a11y", TypeA11y},
		{"links", TypeLinks},
		{"dns", TypeDNS},
		{"ssl", TypeSSL},
		{"ping", TypePing},
		{"  SSL  ", TypeSSL},
		{"", TypeFull},
		{"bogus", TypeFull},
	}
	for _, tc := range testCases {
		if got := ParseType(tc.input); got != tc.want {
			t.Errorf("ParseType(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNew_ValidatesTarget(t *testing.T) {
	if _, err := New("not a domain", Options{}); err == nil {
		t.Error("expected error for invalid target")
	}

	session, err := New("https://Example.com/path", Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if session.Target.Host() != "example.com" {
		t.Errorf("target = %q", session.Target.Host())
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	session, err := New("example.com", Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	opts := session.Opts
	if opts.Type != TypeFull {
		t.Errorf("default type = %q", opts.Type)
	}
	if opts.ProbeTimeout != 5*time.Second || opts.FetchTimeout != 10*time.Second {
		t.Errorf("default timeouts = %v/%v", opts.ProbeTimeout, opts.FetchTimeout)
	}
	if opts.Concurrency != 8 {
		t.Errorf("default concurrency = %d", opts.Concurrency)
	}
}

func TestBuildProbes_Composition(t *testing.T) {
	testCases := []struct {
		scanType   Type
		wantFetch  bool
		probeNames []string
	}{
		{scanType: TypeDNS, wantFetch: false, probeNames: []string{"dns records", "wildcard dns", "zone transfer", "blocklist reputation"}},
		{scanType: TypeSSL, wantFetch: false, probeNames: []string{"tls certificate"}},
		{scanType: TypePing, wantFetch: false, probeNames: []string{"ping"}},
		{scanType: TypeSEO, wantFetch: true, probeNames: []string{"http fetch"}},
		{scanType: TypeTech, wantFetch: true, probeNames: []string{"http fetch"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.scanType), func(t *testing.T) {
			session, err := New("example.com", Options{Type: tc.scanType})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			probes, fetchIndex := session.buildProbes()

			if tc.wantFetch && fetchIndex < 0 {
				t.Error("expected a fetch probe")
			}
			if !tc.wantFetch && fetchIndex >= 0 {
				t.Error("unexpected fetch probe")
			}
			names := make([]string, len(probes))
			for i, p := range probes {
				names[i] = p.Name
			}
			for _, want := range tc.probeNames {
				if !contains(names, want) {
					t.Errorf("probe %q missing from %v", want, names)
				}
			}
		})
	}
}

func TestBuildProbes_FullIncludesEverything(t *testing.T) {
	session, err := New("example.com", Options{Type: TypeFull, Ports: []int{80, 443}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	probes, fetchIndex := session.buildProbes()

	if fetchIndex < 0 {
		t.Error("full scan must include the fetch probe")
	}
	var names []string
	for _, p := range probes {
		names = append(names, p.Name)
	}
	for _, want := range []string{
		"http fetch", "dns records", "wildcard dns", "zone transfer", "blocklist reputation",
		"tls certificate", "security headers", "whois", "ping",
		"port 80", "port 443",
	} {
		if !contains(names, want) {
			t.Errorf("probe %q missing from full scan: %v", want, names)
		}
	}
}

func TestAnalyzerSets(t *testing.T) {
	testCases := []struct {
		scanType Type
		want     []string
	}{
		{TypeSEO, []string{"seo"}},
		{TypeA11y, []string{"accessibility"}},
		{TypeCarbon, []string{"carbon"}},
		{TypeLinks, []string{"links"}},
		{TypeFull, []string{"seo", "accessibility", "carbon", "links"}},
		{TypeDNS, nil},
		{TypeSSL, nil},
	}

	for _, tc := range testCases {
		t.Run(string(tc.scanType), func(t *testing.T) {
			session, err := New("example.com", Options{Type: tc.scanType})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			set := session.analyzers()
			if len(set) != len(tc.want) {
				t.Fatalf("got %d analyzers, want %d", len(set), len(tc.want))
			}
			for i, a := range set {
				if a.Name() != tc.want[i] {
					t.Errorf("analyzers[%d] = %q, want %q", i, a.Name(), tc.want[i])
				}
			}
		})
	}
}

func TestSummarizeSignals(t *testing.T) {
	if got := summarizeSignals(nil); got != "no known technologies detected" {
		t.Errorf("empty summary = %q", got)
	}
	signals := []fingerprint.Signal{
		{Name: "WordPress", Category: fingerprint.CategoryCMS},
		{Name: "Nginx", Category: fingerprint.CategoryServer},
	}
	if got := summarizeSignals(signals); got != "WordPress, Nginx" {
		t.Errorf("summary = %q", got)
	}
}

func TestEmit_NilProgressIsSafe(t *testing.T) {
	session, err := New("example.com", Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	session.emit("should not panic")

	var lines []string
	session.Progress = func(line string) { lines = append(lines, line) }
	session.emit("one")
	session.emit("two")
	if strings.Join(lines, ",") != "one,two" {
		t.Errorf("lines = %v", lines)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
