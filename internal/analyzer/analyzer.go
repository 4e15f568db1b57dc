// Package analyzer holds the page heuristics: SEO, accessibility, carbon
// footprint, and link health. Every analyzer is a pure function of the
// fetched document (link health additionally of live network conditions) and
// produces the same result shape so the reporter can treat them uniformly.
package analyzer

import (
	"context"
	"fmt"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// Severity tags a finding.
type Severity int

const (
	Info Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "critical"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Finding is one severity-tagged observation, ordered by discovery order
// within an analyzer.
type Finding struct {
	Severity Severity
	Message  string
}

// Detail is an extracted key/value shown alongside findings. A slice rather
// than a map keeps report output deterministic.
type Detail struct {
	Key   string
	Value string
}

// Result is the common output shape of every analyzer.
type Result struct {
	Analyzer string
	Score    float64 // analyzer-specific metric: points, grams, broken count
	Label    string  // analyzer-specific grade or unit, may be empty
	Details  []Detail
	Findings []Finding
}

// Analyzer consumes a shared read-only document and produces findings. The
// context only matters for analyzers that touch the network.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, doc *scan.FetchedDocument) Result
}

// Unavailable builds the placeholder result used when the primary fetch
// failed: the analyzer's slot still appears in the report, with the cause
// inline, instead of silently vanishing.
func Unavailable(name, cause string) Result {
	return Result{
		Analyzer: name,
		Findings: []Finding{{Severity: Warning, Message: fmt.Sprintf("unavailable: %s", cause)}},
	}
}
