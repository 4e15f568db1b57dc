// Package fingerprint classifies a fetched page's software stack from its
// body and headers using a declarative, ordered rule table. Rules are data,
// not control flow: adding a technology means adding a table row, and every
// rule is evaluated independently because real pages run a CMS, a frontend
// framework, and a CDN at the same time.
package fingerprint

import (
	"bytes"
	"strings"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// Category groups detected technologies for reporting.
type Category string

const (
	CategoryCMS       Category = "CMS"
	CategoryFramework Category = "Framework"
	CategoryJS        Category = "JavaScript"
	CategoryCDN       Category = "CDN"
	CategoryAnalytics Category = "Analytics"
	CategoryServer    Category = "Server"
	CategoryEcommerce Category = "E-commerce"
	CategoryWAF       Category = "WAF"
)

// Rule describes one detectable technology. A rule matches when its body
// pattern appears in the document body, or its header pattern appears in any
// header value. When HeaderKey is set the match requires that header to be
// present, and additionally its value to contain HeaderPattern if that is
// also set. All matching is case-insensitive substring matching.
type Rule struct {
	Name          string
	Category      Category
	BodyPattern   string
	HeaderKey     string
	HeaderPattern string
}

// Signal is one detected technology.
type Signal struct {
	Name     string
	Category Category
}

// Classify evaluates the full rule table against the document and returns
// the matched set, deduplicated by technology name, in rule-table order.
// When two rules share a name the first match wins, categories included.
// It tolerates an empty body and absent headers and never fails.
func Classify(doc *scan.FetchedDocument) []Signal {
	return classifyWith(rules, doc)
}

func classifyWith(table []Rule, doc *scan.FetchedDocument) []Signal {
	if doc == nil {
		return nil
	}

	body := bytes.ToLower(doc.Body)
	seen := make(map[string]struct{}, len(table))
	signals := make([]Signal, 0, 8)

	for _, rule := range table {
		if _, dup := seen[rule.Name]; dup {
			continue
		}
		if ruleMatches(rule, body, doc.Headers) {
			seen[rule.Name] = struct{}{}
			signals = append(signals, Signal{Name: rule.Name, Category: rule.Category})
		}
	}
	return signals
}

func ruleMatches(rule Rule, loweredBody []byte, headers map[string]string) bool {
	if rule.BodyPattern != "" && len(loweredBody) > 0 {
		if bytes.Contains(loweredBody, []byte(strings.ToLower(rule.BodyPattern))) {
			return true
		}
	}

	if len(headers) == 0 {
		return false
	}

	if rule.HeaderKey != "" {
		value, present := headers[strings.ToLower(rule.HeaderKey)]
		if !present {
			return false
		}
		if rule.HeaderPattern == "" {
			return true
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(rule.HeaderPattern))
	}

	if rule.HeaderPattern != "" {
		pattern := strings.ToLower(rule.HeaderPattern)
		for _, value := range headers {
			if strings.Contains(strings.ToLower(value), pattern) {
				return true
			}
		}
	}
	return false
}

// GroupByCategory buckets signals for presentation, preserving detection
// order within each bucket.
func GroupByCategory(signals []Signal) map[Category][]string {
	grouped := make(map[Category][]string)
	for _, s := range signals {
		grouped[s.Category] = append(grouped[s.Category], s.Name)
	}
	return grouped
}
