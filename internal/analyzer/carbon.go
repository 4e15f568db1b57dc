package analyzer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// The transfer-size and emission constants are stated heuristics, not
// measured physics, so they live on the analyzer and can be overridden.
const (
	DefaultBytesPerResource = 15 * 1024 // assumed average external resource weight
	DefaultGramsPerGB       = 0.81      // grams of CO2 per gigabyte transferred
)

// CarbonAnalyzer estimates the CO2 cost of serving the page once.
type CarbonAnalyzer struct {
	BytesPerResource int     // 0 means DefaultBytesPerResource
	GramsPerGB       float64 // 0 means DefaultGramsPerGB
}

func (CarbonAnalyzer) Name() string { return "carbon" }

func (c CarbonAnalyzer) Analyze(_ context.Context, doc *scan.FetchedDocument) Result {
	bytesPerResource := c.BytesPerResource
	if bytesPerResource <= 0 {
		bytesPerResource = DefaultBytesPerResource
	}
	gramsPerGB := c.GramsPerGB
	if gramsPerGB <= 0 {
		gramsPerGB = DefaultGramsPerGB
	}

	result := Result{Analyzer: "carbon"}
	tree := doc.Tree()

	htmlBytes := len(doc.Body)
	if declared := doc.Header("Content-Length"); declared != "" {
		if n, err := strconv.Atoi(declared); err == nil && n > 0 {
			htmlBytes = n
		}
	}

	resources := tree.Find("img").Length() +
		tree.Find("script").Length() +
		tree.Find(`link[rel="stylesheet"]`).Length()

	totalBytes := htmlBytes + resources*bytesPerResource
	grams := float64(totalBytes) / (1024 * 1024 * 1024) * gramsPerGB * 1000

	result.Score = grams
	result.Label = grade(grams)
	result.Details = []Detail{
		{Key: "html bytes", Value: strconv.Itoa(htmlBytes)},
		{Key: "external resources", Value: strconv.Itoa(resources)},
		{Key: "estimated transfer", Value: strconv.Itoa(totalBytes) + " bytes"},
		{Key: "estimated emission", Value: fmt.Sprintf("%.4f g CO2", grams)},
	}
	result.Findings = append(result.Findings, Finding{
		Severity: severityForGrade(result.Label),
		Message:  fmt.Sprintf("estimated %.4f g CO2 per page view (grade %s)", grams, result.Label),
	})
	return result
}

func grade(grams float64) string {
	switch {
	case grams < 0.1:
		return "A+"
	case grams < 0.5:
		return "A"
	case grams < 1.0:
		return "B"
	case grams < 2.5:
		return "C"
	default:
		return "D"
	}
}

func severityForGrade(g string) Severity {
	switch g {
	case "C":
		return Warning
	case "D":
		return Critical
	default:
		return Info
	}
}
