package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// Title and description length bounds follow the usual SERP display limits.
const (
	titleMinLen = 30
	titleMaxLen = 70
	descMinLen  = 50
	descMaxLen  = 160
)

// SEOAnalyzer inspects the document head and heading structure.
type SEOAnalyzer struct{}

func (SEOAnalyzer) Name() string { return "seo" }

func (SEOAnalyzer) Analyze(_ context.Context, doc *scan.FetchedDocument) Result {
	result := Result{Analyzer: "seo"}
	tree := doc.Tree()

	title := strings.TrimSpace(tree.Find("title").First().Text())
	description := strings.TrimSpace(tree.Find(`meta[name="description"]`).AttrOr("content", ""))
	canonical := strings.TrimSpace(tree.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	viewport := strings.TrimSpace(tree.Find(`meta[name="viewport"]`).AttrOr("content", ""))
	robots := strings.TrimSpace(tree.Find(`meta[name="robots"]`).AttrOr("content", ""))
	if robots == "" {
		robots = "index, follow"
	}
	ogTitle := strings.TrimSpace(tree.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	ogImage := strings.TrimSpace(tree.Find(`meta[property="og:image"]`).AttrOr("content", ""))

	var h1s []string
	tree.Find("h1").Each(func(_ int, s *goquery.Selection) {
		h1s = append(h1s, strings.TrimSpace(s.Text()))
	})

	result.Details = []Detail{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "h1", Value: strings.Join(h1s, " | ")},
		{Key: "canonical", Value: canonical},
		{Key: "robots", Value: robots},
		{Key: "og:title", Value: ogTitle},
		{Key: "og:image", Value: ogImage},
	}

	add := func(sev Severity, msg string) {
		result.Findings = append(result.Findings, Finding{Severity: sev, Message: msg})
	}

	switch {
	case title == "":
		add(Critical, "page has no <title>")
	case len(title) < titleMinLen:
		add(Warning, fmt.Sprintf("title is short (%d chars, aim for %d-%d)", len(title), titleMinLen, titleMaxLen))
	case len(title) > titleMaxLen:
		add(Warning, fmt.Sprintf("title is too long (%d chars, aim for %d-%d)", len(title), titleMinLen, titleMaxLen))
	}

	switch {
	case description == "":
		add(Critical, "page has no meta description")
	case len(description) < descMinLen:
		add(Warning, fmt.Sprintf("meta description is short (%d chars, aim for %d-%d)", len(description), descMinLen, descMaxLen))
	case len(description) > descMaxLen:
		add(Warning, fmt.Sprintf("meta description is too long (%d chars, aim for %d-%d)", len(description), descMinLen, descMaxLen))
	}

	switch {
	case len(h1s) == 0:
		add(Critical, "page has no <h1>")
	case len(h1s) > 1:
		add(Warning, fmt.Sprintf("page has %d <h1> elements, expected exactly one", len(h1s)))
	}

	if viewport == "" {
		add(Critical, "viewport meta tag is missing, page is not mobile-friendly")
	}
	if canonical == "" {
		add(Warning, "no canonical link; consider declaring one to avoid duplicate-content issues")
	}

	result.Score = float64(len(result.Findings))
	result.Label = "issues"
	return result
}
