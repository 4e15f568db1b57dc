package scan

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// CertInfo is the value produced by the TLS probe: the leaf certificate's
// identity and validity window plus the negotiated connection parameters.
type CertInfo struct {
	Subject   string
	Issuer    string
	NotBefore time.Time
	NotAfter  time.Time
	DNSNames  []string
	Version   string
	Cipher    string
	DaysLeft  int
}

// TLSProbe performs one bounded handshake against port 443 and copies the
// interesting certificate fields out. Validation correctness is the TLS
// stack's business, not ours.
func TLSProbe(timeout time.Duration) Probe {
	return Probe{
		Name:    "tls certificate",
		Kind:    KindTLS,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			dialer := &tls.Dialer{
				NetDialer: &net.Dialer{},
				Config:    &tls.Config{ServerName: target.Host(), MinVersion: tls.VersionTLS12},
			}
			conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(target.Host(), "443"))
			if err != nil {
				return nil, err
			}
			defer conn.Close()

			state := conn.(*tls.Conn).ConnectionState()
			if len(state.PeerCertificates) == 0 {
				return nil, fmt.Errorf("tls: no peer certificates presented")
			}

			leaf := state.PeerCertificates[0]
			return &CertInfo{
				Subject:   leaf.Subject.CommonName,
				Issuer:    leaf.Issuer.CommonName,
				NotBefore: leaf.NotBefore,
				NotAfter:  leaf.NotAfter,
				DNSNames:  leaf.DNSNames,
				Version:   tls.VersionName(state.Version),
				Cipher:    tls.CipherSuiteName(state.CipherSuite),
				DaysLeft:  int(time.Until(leaf.NotAfter).Hours() / 24),
			}, nil
		},
	}
}
