package scan

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// securityHeaders are the response headers a hardened site is expected to
// send, in report order.
var securityHeaders = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Content-Type-Options",
	"X-Frame-Options",
	"Referrer-Policy",
	"Permissions-Policy",
}

// HeaderAudit is the value produced by the header-check probe.
type HeaderAudit struct {
	Server    string
	PoweredBy string
	Present   map[string]string
	Missing   []string
}

// HeaderProbe requests the landing page headers and audits them for the
// standard hardening set. HEAD first; some servers disallow it, so fall back
// to GET and discard the body.
func HeaderProbe(timeout time.Duration, userAgent string) Probe {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return Probe{
		Name:    "security headers",
		Kind:    KindHeader,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			client := newHTTPClient(timeout)
			header, err := requestHeaders(ctx, client, target.Origin(), userAgent)
			if err != nil {
				return nil, err
			}

			audit := &HeaderAudit{
				Server:    header.Get("Server"),
				PoweredBy: header.Get("X-Powered-By"),
				Present:   map[string]string{},
			}
			for _, name := range securityHeaders {
				if value := header.Get(name); value != "" {
					audit.Present[name] = value
				} else {
					audit.Missing = append(audit.Missing, name)
				}
			}
			return audit, nil
		},
	}
}

func requestHeaders(ctx context.Context, client *http.Client, url, userAgent string) (http.Header, error) {
	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			if method == http.MethodGet {
				return nil, err
			}
			continue
		}
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		if method == http.MethodHead && resp.StatusCode == http.StatusMethodNotAllowed {
			continue
		}
		return resp.Header, nil
	}
	return nil, errors.New("no response to HEAD or GET")
}
