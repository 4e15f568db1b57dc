package scan

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxBodyBytes = 2 * 1024 * 1024

// DefaultUserAgent identifies the suite on outbound requests when no
// override is configured.
const DefaultUserAgent = "domain-testing-suite/1.0"

// FetchOptions configures the primary document retrieval.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}
}

// FetchDocument retrieves the target's landing page, preferring HTTPS and
// falling back to plain HTTP when the TLS side is unreachable. The body is
// capped so a pathological page can't exhaust memory.
func FetchDocument(ctx context.Context, target Target, opts FetchOptions) (*FetchedDocument, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client := newHTTPClient(timeout)

	var lastErr error
	for _, scheme := range []string{"https", "http"} {
		doc, err := fetchOne(ctx, client, scheme+"://"+target.Host(), userAgent)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func fetchOne(ctx context.Context, client *http.Client, url, userAgent string) (*FetchedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		// A truncated body is still useful for classification.
		body = body[:len(body):len(body)]
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return NewFetchedDocument(resp.StatusCode, resp.Header, body, finalURL), nil
}

// FetchProbe wraps FetchDocument as a probe so the primary retrieval is
// scheduled, timed, and accounted for like every other unit of work.
func FetchProbe(opts FetchOptions) Probe {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return Probe{
		Name:    "http fetch",
		Kind:    KindFetch,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			return FetchDocument(ctx, target, opts)
		},
	}
}
