package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// a11yPenalty is subtracted from 100 per distinct issue category (not per
// offending element; a page with forty unlabeled images has one problem, not
// forty).
const a11yPenalty = 15

// AccessibilityAnalyzer runs a handful of static WCAG heuristics over the
// parsed tree.
type AccessibilityAnalyzer struct{}

func (AccessibilityAnalyzer) Name() string { return "accessibility" }

func (AccessibilityAnalyzer) Analyze(_ context.Context, doc *scan.FetchedDocument) Result {
	result := Result{Analyzer: "accessibility"}
	tree := doc.Tree()

	missingAlt := 0
	tree.Find("img").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("alt"); !ok {
			missingAlt++
		}
	})

	emptyButtons := 0
	tree.Find("button").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" && s.AttrOr("aria-label", "") == "" {
			emptyButtons++
		}
	})

	unlabeledInputs := 0
	tree.Find("input").Each(func(_ int, s *goquery.Selection) {
		switch strings.ToLower(s.AttrOr("type", "text")) {
		case "hidden", "submit", "button", "reset":
			return
		}
		if s.AttrOr("aria-label", "") == "" && s.AttrOr("id", "") == "" {
			unlabeledInputs++
		}
	})

	missingLang := strings.TrimSpace(tree.Find("html").AttrOr("lang", "")) == ""

	categories := 0
	add := func(count int, msg string) {
		if count > 0 {
			categories++
			result.Findings = append(result.Findings, Finding{Severity: Warning, Message: msg})
		}
	}
	add(missingAlt, fmt.Sprintf("%d image(s) missing an alt attribute", missingAlt))
	add(emptyButtons, fmt.Sprintf("%d button(s) without text or aria-label", emptyButtons))
	add(unlabeledInputs, fmt.Sprintf("%d form input(s) without an accessible label", unlabeledInputs))
	if missingLang {
		categories++
		result.Findings = append(result.Findings, Finding{Severity: Warning, Message: "document has no lang attribute on <html>"})
	}

	score := 100 - a11yPenalty*categories
	if score < 0 {
		score = 0
	}
	result.Score = float64(score)
	result.Label = "/100"

	if categories == 0 {
		result.Findings = append(result.Findings, Finding{Severity: Info, Message: "no critical accessibility issues found"})
	}
	return result
}
