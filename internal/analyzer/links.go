package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// DefaultMaxLinks caps how many candidates get a live existence probe so
// link checking stays latency-bounded.
const DefaultMaxLinks = 10

// BrokenLink describes one dead or erroring outbound link. Status is the
// HTTP status code as text, or "Dead" when the endpoint itself is gone
// (resolution failure, connection refused).
type BrokenLink struct {
	URL    string
	Status string
}

// LinkAnalyzer extracts the page's anchors and probes a bounded sample for
// existence. Unlike the other analyzers it depends on live network
// conditions at call time.
type LinkAnalyzer struct {
	Timeout   time.Duration // per-link probe timeout, default 3s
	MaxLinks  int           // default DefaultMaxLinks
	UserAgent string
	Client    *http.Client // overridable for tests
}

func (LinkAnalyzer) Name() string { return "links" }

func (l LinkAnalyzer) Analyze(ctx context.Context, doc *scan.FetchedDocument) Result {
	result := Result{Analyzer: "links"}

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	maxLinks := l.MaxLinks
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = scan.DefaultUserAgent
	}

	candidates := ExtractLinks(doc, maxLinks)
	result.Details = []Detail{{Key: "checked links", Value: strconv.Itoa(len(candidates))}}
	if len(candidates) == 0 {
		result.Findings = append(result.Findings, Finding{Severity: Info, Message: "no external links to check"})
		return result
	}

	// One slot per candidate; counts are small and each probe is
	// individually timeout-bounded, so launch them all at once.
	broken := make([]*BrokenLink, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, link := range candidates {
		i, link := i, link
		g.Go(func() error {
			broken[i] = probeLink(gctx, client, link, userAgent, timeout)
			return nil
		})
	}
	_ = g.Wait()

	count := 0
	for _, b := range broken {
		if b == nil {
			continue
		}
		count++
		result.Findings = append(result.Findings, Finding{
			Severity: Warning,
			Message:  fmt.Sprintf("broken link %s (%s)", b.URL, b.Status),
		})
	}
	result.Score = float64(count)
	result.Label = "broken"
	if count == 0 {
		result.Findings = append(result.Findings, Finding{Severity: Info, Message: "all checked links are alive"})
	}
	return result
}

// ExtractLinks pulls candidate hrefs from the document in document order:
// mailto/tel/fragment links are skipped, root-relative hrefs resolve against
// the document origin, only absolute http(s) links survive, duplicates are
// dropped, and the set is capped at limit.
func ExtractLinks(doc *scan.FetchedDocument, limit int) []string {
	origin := documentOrigin(doc)
	seen := map[string]struct{}{}
	links := []string{}

	doc.Tree().Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		lower := strings.ToLower(href)
		switch {
		case href == "",
			strings.HasPrefix(lower, "mailto:"),
			strings.HasPrefix(lower, "tel:"),
			strings.HasPrefix(lower, "javascript:"),
			strings.HasPrefix(href, "#"):
			return true
		}

		var resolved string
		switch {
		case strings.HasPrefix(href, "//"):
			resolved = "https:" + href
		case strings.HasPrefix(href, "/"):
			if origin == "" {
				return true
			}
			resolved = origin + href
		case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
			resolved = href
		default:
			// Relative paths without a leading slash and exotic schemes
			// are out of scope.
			return true
		}

		if _, dup := seen[resolved]; dup {
			return true
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
		return len(links) < limit
	})
	return links
}

func documentOrigin(doc *scan.FetchedDocument) string {
	if doc.FinalURL == "" {
		return ""
	}
	u, err := url.Parse(doc.FinalURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// probeLink returns a BrokenLink when the candidate is demonstrably broken,
// nil when it is alive or the probe is inconclusive (for example a timeout).
func probeLink(ctx context.Context, client *http.Client, link, userAgent string, timeout time.Duration) *BrokenLink {
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status, err := headOrGet(pctx, client, link, userAgent)
	if err != nil {
		reason := scan.ClassifyError(err)
		if scan.IsBrokenLinkReason(reason) {
			return &BrokenLink{URL: link, Status: "Dead"}
		}
		return nil
	}
	if status >= 400 {
		return &BrokenLink{URL: link, Status: strconv.Itoa(status)}
	}
	return nil
}

func headOrGet(ctx context.Context, client *http.Client, link, userAgent string) (int, error) {
	status, err := doRequest(ctx, client, http.MethodHead, link, userAgent)
	if err != nil {
		return 0, err
	}
	// Some servers reject HEAD outright; give those a GET before calling
	// the link broken.
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		return doRequest(ctx, client, http.MethodGet, link, userAgent)
	}
	return status, nil
}

func doRequest(ctx context.Context, client *http.Client, method, link, userAgent string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, link, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	resp.Body.Close()
	return resp.StatusCode, nil
}
