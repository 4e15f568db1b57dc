package scan

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sort"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
)

// DNSRecords is the value produced by the DNS probe.
type DNSRecords struct {
	A     []string
	AAAA  []string
	CNAME string
	MX    []string
	NS    []string
	TXT   []string
	SOA   string
}

// DNSProbe resolves the common record types for the target. Individual
// record lookups may fail without failing the probe; only a failed A lookup
// (nothing resolves at all) is treated as a probe failure.
func DNSProbe(timeout time.Duration) Probe {
	return Probe{
		Name:    "dns records",
		Kind:    KindDNS,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			resolver := &net.Resolver{PreferGo: true}
			host := target.Host()
			records := &DNSRecords{}

			addrs, err := resolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, err
			}
			for _, addr := range addrs {
				if v4 := addr.IP.To4(); v4 != nil {
					records.A = append(records.A, v4.String())
				} else {
					records.AAAA = append(records.AAAA, addr.IP.String())
				}
			}

			if cname, err := resolver.LookupCNAME(ctx, host); err == nil {
				cname = strings.TrimSuffix(cname, ".")
				if cname != host {
					records.CNAME = cname
				}
			}
			if mxs, err := resolver.LookupMX(ctx, host); err == nil {
				for _, mx := range mxs {
					records.MX = append(records.MX, fmt.Sprintf("%s (pref %d)", strings.TrimSuffix(mx.Host, "."), mx.Pref))
				}
			}
			if nss, err := resolver.LookupNS(ctx, host); err == nil {
				for _, ns := range nss {
					records.NS = append(records.NS, strings.TrimSuffix(ns.Host, "."))
				}
				sort.Strings(records.NS)
			}
			if txts, err := resolver.LookupTXT(ctx, host); err == nil {
				records.TXT = txts
			}
			records.SOA = lookupSOA(ctx, host)

			return records, nil
		},
	}
}

// lookupSOA queries the SOA record directly; the stdlib resolver has no SOA
// lookup so this goes through miekg/dns against the system nameserver.
func lookupSOA(ctx context.Context, host string) string {
	server := systemNameserver()
	client := &mdns.Client{}
	msg := &mdns.Msg{}
	msg.SetQuestion(mdns.Fqdn(host), mdns.TypeSOA)

	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil || resp == nil {
		return ""
	}
	for _, rr := range append(resp.Answer, resp.Ns...) {
		if soa, ok := rr.(*mdns.SOA); ok {
			return fmt.Sprintf("%s %s (serial %d)", strings.TrimSuffix(soa.Ns, "."), strings.TrimSuffix(soa.Mbox, "."), soa.Serial)
		}
	}
	return ""
}

func systemNameserver() string {
	if cfg, err := mdns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(cfg.Servers) > 0 {
		return net.JoinHostPort(cfg.Servers[0], cfg.Port)
	}
	return "8.8.8.8:53"
}

// WildcardProbe detects wildcard DNS: if a random label under the target
// resolves, dictionary-based subdomain discovery against it is unreliable.
// The value is a bool (true = wildcard present).
func WildcardProbe(timeout time.Duration) Probe {
	return Probe{
		Name:    "wildcard dns",
		Kind:    KindDNS,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			resolver := &net.Resolver{PreferGo: true}
			probe := fmt.Sprintf("%s.%s", randomLabel(12), target.Host())
			_, err := resolver.LookupHost(ctx, probe)
			if err != nil {
				var dnsErr *net.DNSError
				if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
					return false, nil
				}
				return nil, err
			}
			return true, nil
		},
	}
}

func randomLabel(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// ZoneTransferProbe attempts an AXFR against the target's nameservers. An
// accepted transfer exposes the whole zone; refusal is the healthy answer.
// The value is a bool (true = transfer allowed somewhere).
func ZoneTransferProbe(timeout time.Duration) Probe {
	return Probe{
		Name:    "zone transfer",
		Kind:    KindDNS,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			resolver := &net.Resolver{PreferGo: true}
			nss, err := resolver.LookupNS(ctx, target.Host())
			if err != nil {
				return nil, err
			}

			transfer := &mdns.Transfer{
				DialTimeout: timeout,
				ReadTimeout: timeout,
			}
			msg := &mdns.Msg{}
			msg.SetAxfr(mdns.Fqdn(target.Host()))

			for _, ns := range nss {
				if ctx.Err() != nil {
					return false, nil
				}
				server := net.JoinHostPort(strings.TrimSuffix(ns.Host, "."), "53")
				envelopes, err := transfer.In(msg, server)
				if err != nil {
					continue
				}
				for env := range envelopes {
					if env.Error == nil && len(env.RR) > 0 {
						return true, nil
					}
				}
			}
			return false, nil
		},
	}
}

// defaultRBLZones are widely-used DNS blocklists queried by reversed IP.
var defaultRBLZones = []string{
	"zen.spamhaus.org",
	"bl.spamcop.net",
	"b.barracudacentral.org",
	"dnsbl.sorbs.net",
}

// RBLListing records one blocklist hit for the target's address.
type RBLListing struct {
	Zone    string
	Address string
}

// RBLProbe checks the target's IPv4 address against the reputation
// blocklists. The value is a []RBLListing; an empty slice means clean.
// A blocklist that does not answer is skipped, not reported.
func RBLProbe(timeout time.Duration, zones []string) Probe {
	if len(zones) == 0 {
		zones = defaultRBLZones
	}
	return Probe{
		Name:    "blocklist reputation",
		Kind:    KindDNS,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			resolver := &net.Resolver{PreferGo: true}
			addrs, err := resolver.LookupIP(ctx, "ip4", target.Host())
			if err != nil {
				return nil, err
			}
			if len(addrs) == 0 {
				return []RBLListing{}, nil
			}

			ip := addrs[0].To4()
			reversed := fmt.Sprintf("%d.%d.%d.%d", ip[3], ip[2], ip[1], ip[0])
			server := systemNameserver()
			client := &mdns.Client{}

			listings := []RBLListing{}
			for _, zone := range zones {
				if ctx.Err() != nil {
					return listings, nil
				}
				msg := &mdns.Msg{}
				msg.SetQuestion(mdns.Fqdn(reversed+"."+zone), mdns.TypeA)
				resp, _, err := client.ExchangeContext(ctx, msg, server)
				if err != nil || resp == nil {
					continue
				}
				for _, rr := range resp.Answer {
					if a, ok := rr.(*mdns.A); ok {
						listings = append(listings, RBLListing{Zone: zone, Address: ip.String() + " -> " + a.A.String()})
						break
					}
				}
			}
			return listings, nil
		},
	}
}
