package analyzer

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// htmlDoc builds a fetched document for analyzer tests.
func htmlDoc(t *testing.T, body string, headers map[string]string) *scan.FetchedDocument {
	t.Helper()
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return scan.NewFetchedDocument(200, h, []byte(body), "https://example.com/")
}

func findingWith(result Result, substr string) *Finding {
	for i := range result.Findings {
		if strings.Contains(result.Findings[i].Message, substr) {
			return &result.Findings[i]
		}
	}
	return nil
}

func TestUnavailable(t *testing.T) {
	result := Unavailable("seo", "http fetch failed")
	if result.Analyzer != "seo" {
		t.Errorf("Analyzer = %q", result.Analyzer)
	}
	if len(result.Findings) != 1 || result.Findings[0].Severity != Warning {
		t.Fatalf("unexpected findings: %v", result.Findings)
	}
	if result.Findings[0].Message != "unavailable: http fetch failed" {
		t.Errorf("message = %q", result.Findings[0].Message)
	}
}

func TestSeverityString(t *testing.T) {
	if Info.String() != "info" || Warning.String() != "warning" || Critical.String() != "critical" {
		t.Errorf("severity strings: %s/%s/%s", Info, Warning, Critical)
	}
}
