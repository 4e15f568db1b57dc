package scan

import (
	"fmt"
	"strings"
)

// Target is a validated, sanitized domain name. It is immutable once
// constructed; every probe and analyzer receives the same value for the
// lifetime of a scan.
type Target struct {
	host string
}

// ParseTarget sanitizes a raw user-supplied target into a Target.
// It accepts the formats operators actually paste in:
//   - example.com
//   - https://example.com/some/path
//   - EXAMPLE.COM:8443
//
// The scheme, path, port, and any trailing slash are stripped and the host is
// lowercased. An empty or malformed input is the only construction error in
// the whole scan pipeline.
func ParseTarget(raw string) (Target, error) {
	host := strings.TrimSpace(raw)
	if i := strings.Index(host, "://"); i != -1 {
		host = host[i+3:]
	}
	if i := strings.IndexAny(host, "/?#"); i != -1 {
		host = host[:i]
	}
	if i := strings.Index(host, "@"); i != -1 {
		host = host[i+1:]
	}
	if i := strings.Index(host, ":"); i != -1 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	if host == "" {
		return Target{}, fmt.Errorf("empty target")
	}
	if !validHost(host) {
		return Target{}, fmt.Errorf("invalid target %q", raw)
	}
	return Target{host: host}, nil
}

func validHost(host string) bool {
	if len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '-' || r == '_':
			default:
				return false
			}
		}
	}
	return true
}

// Host returns the bare hostname, suitable for DNS lookups and TCP dials.
func (t Target) Host() string {
	return t.host
}

// Origin returns the HTTPS origin for the target, the base against which
// root-relative links are resolved.
func (t Target) Origin() string {
	return "https://" + t.host
}

func (t Target) String() string {
	return t.host
}
