package scan

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// Failure reason prefixes. Downstream consumers (and tests) match on these,
// so they are part of the package contract.
const (
	ReasonNameResolution    = "name-resolution"
	ReasonConnectionRefused = "connection-refused"
	ReasonConnectionTimeout = "connection-timeout"
	ReasonTLS               = "tls"
	ReasonHTTPStatus        = "http-status"
)

// ClassifyError maps an executor error to a stable failure reason string.
// The taxonomy distinguishes name resolution failures, refused connections,
// connection timeouts, and TLS handshake problems from everything else.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("%s: %s", ReasonNameResolution, dnsErr.Err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Sprintf("%s: %v", ReasonConnectionRefused, err)
	}

	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var recordErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) || errors.As(err, &recordErr) {
		return fmt.Sprintf("%s: %v", ReasonTLS, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("%s: %v", ReasonConnectionTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s: %v", ReasonConnectionTimeout, err)
	}

	// TLS alert errors don't expose a dedicated type; fall back to matching
	// the handshake error text.
	if msg := err.Error(); strings.Contains(msg, "tls:") || strings.Contains(msg, "x509:") {
		return fmt.Sprintf("%s: %v", ReasonTLS, err)
	}

	return err.Error()
}

// IsBrokenLinkReason reports whether a failure reason indicates a dead
// endpoint (no such host, nothing listening) as opposed to an inconclusive
// one (slow server, odd TLS setup).
func IsBrokenLinkReason(reason string) bool {
	return strings.HasPrefix(reason, ReasonNameResolution) ||
		strings.HasPrefix(reason, ReasonConnectionRefused)
}
