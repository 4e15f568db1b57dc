// Package report turns an aggregated ScanReport into its persistent and
// printable forms: plain text (terminal, scan log, streaming surface) and
// PDF. The core hands over structured data only; all coloring happens in the
// presentation layer on top of the plain rendering.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kevineulenberg/domain-testing-suite/internal/analyzer"
	"github.com/kevineulenberg/domain-testing-suite/internal/fingerprint"
	"github.com/kevineulenberg/domain-testing-suite/internal/recon"
	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
	"github.com/kevineulenberg/domain-testing-suite/internal/vulnscan"
)

// Render writes the full plain-text report. Every dispatched probe appears
// exactly once, failures and timeouts inline; the report's shape is complete
// even when its data is not.
func Render(w io.Writer, rep *recon.ScanReport) {
	fmt.Fprintf(w, "Scan report for %s (type %s)\n", rep.Target, rep.Type)
	fmt.Fprintf(w, "Started %s, took %s\n", rep.StartedAt.Format("2006-01-02 15:04:05 MST"), rep.Duration.Round(1e6))
	fmt.Fprintln(w)

	if len(rep.Probes) > 0 {
		fmt.Fprintln(w, "== Probes ==")
		for _, pr := range rep.Probes {
			RenderProbeLine(w, pr)
		}
		fmt.Fprintln(w)
	}

	if rep.Type == recon.TypeFull || rep.Type == recon.TypeTech {
		fmt.Fprintln(w, "== Technologies ==")
		renderSignals(w, rep.Signals)
		fmt.Fprintln(w)
	}

	for _, result := range rep.Analyzers {
		fmt.Fprintf(w, "== Analyzer: %s ==\n", result.Analyzer)
		renderAnalyzer(w, result)
		fmt.Fprintln(w)
	}

	if rep.VulnScan != nil {
		v := rep.VulnScan
		fmt.Fprintln(w, "== Vulnerability scan ==")
		fmt.Fprintf(w, "exit status %d, %d output lines (%d findings, %d warnings, %d errors) in %s\n",
			v.ExitCode, v.Lines,
			v.ByClass[vulnscan.LineSuccess],
			v.ByClass[vulnscan.LineWarning],
			v.ByClass[vulnscan.LineError],
			v.Elapsed.Round(1e6))
		fmt.Fprintln(w)
	}
}

// RenderProbeLine writes the one-line plain rendering of a probe result.
func RenderProbeLine(w io.Writer, pr scan.ProbeResult) {
	switch pr.Outcome {
	case scan.Success:
		fmt.Fprintf(w, "[ok]      %-22s %s\n", pr.Name, describeValue(pr))
	case scan.Timeout:
		fmt.Fprintf(w, "[timeout] %-22s no answer within deadline\n", pr.Name)
	default:
		fmt.Fprintf(w, "[failed]  %-22s %s\n", pr.Name, pr.Reason)
	}
}

// describeValue renders a probe's typed value in one line.
func describeValue(pr scan.ProbeResult) string {
	switch v := pr.Value.(type) {
	case *scan.DNSRecords:
		parts := []string{fmt.Sprintf("A=%s", strings.Join(v.A, ","))}
		if len(v.AAAA) > 0 {
			parts = append(parts, fmt.Sprintf("AAAA=%s", strings.Join(v.AAAA, ",")))
		}
		if v.CNAME != "" {
			parts = append(parts, "CNAME="+v.CNAME)
		}
		if len(v.MX) > 0 {
			parts = append(parts, fmt.Sprintf("MX=%s", strings.Join(v.MX, ",")))
		}
		if len(v.NS) > 0 {
			parts = append(parts, fmt.Sprintf("NS=%s", strings.Join(v.NS, ",")))
		}
		if len(v.TXT) > 0 {
			parts = append(parts, fmt.Sprintf("%d TXT record(s)", len(v.TXT)))
		}
		if v.SOA != "" {
			parts = append(parts, "SOA="+v.SOA)
		}
		return strings.Join(parts, "  ")
	case *scan.CertInfo:
		return fmt.Sprintf("issuer=%q subject=%q expires=%s (%d days) %s %s",
			v.Issuer, v.Subject, v.NotAfter.Format("2006-01-02"), v.DaysLeft, v.Version, v.Cipher)
	case *scan.HeaderAudit:
		msg := fmt.Sprintf("server=%q", v.Server)
		if v.PoweredBy != "" {
			msg += fmt.Sprintf(" powered-by=%q", v.PoweredBy)
		}
		if len(v.Missing) > 0 {
			msg += " missing: " + strings.Join(v.Missing, ", ")
		} else {
			msg += " all hardening headers present"
		}
		return msg
	case *scan.PortStatus:
		state := "closed"
		if v.Open {
			state = "open"
		}
		msg := fmt.Sprintf("%s (%s)", state, v.Service)
		if v.Banner != "" {
			msg += fmt.Sprintf(" banner=%q", firstLine(v.Banner))
		}
		return msg
	case *scan.WhoisInfo:
		parts := []string{}
		if v.Registrar != "" {
			parts = append(parts, "registrar="+v.Registrar)
		}
		if v.Created != "" {
			parts = append(parts, "created="+v.Created)
		}
		if v.Expires != "" {
			parts = append(parts, "expires="+v.Expires)
		}
		if len(parts) == 0 {
			return "registry data redacted"
		}
		return strings.Join(parts, "  ")
	case *scan.PingResult:
		return fmt.Sprintf("%s via tcp/%d in %s", v.Address, v.Port, v.Latency.Round(1e5))
	case *scan.FetchedDocument:
		return fmt.Sprintf("status %d, %d bytes", v.StatusCode, len(v.Body))
	case []scan.RBLListing:
		if len(v) == 0 {
			return "not listed on any checked blocklist"
		}
		zones := make([]string, 0, len(v))
		for _, l := range v {
			zones = append(zones, l.Zone)
		}
		return "LISTED on " + strings.Join(zones, ", ")
	case bool:
		switch pr.Name {
		case "wildcard dns":
			if v {
				return "wildcard DNS detected, subdomain enumeration unreliable"
			}
			return "no wildcard DNS"
		case "zone transfer":
			if v {
				return "AXFR accepted, zone data exposed"
			}
			return "transfer refused"
		}
		return fmt.Sprintf("%v", v)
	default:
		return "done"
	}
}

func renderSignals(w io.Writer, signals []fingerprint.Signal) {
	if len(signals) == 0 {
		fmt.Fprintln(w, "no known technologies detected")
		return
	}
	grouped := fingerprint.GroupByCategory(signals)
	for _, category := range []fingerprint.Category{
		fingerprint.CategoryCMS,
		fingerprint.CategoryEcommerce,
		fingerprint.CategoryFramework,
		fingerprint.CategoryJS,
		fingerprint.CategoryServer,
		fingerprint.CategoryCDN,
		fingerprint.CategoryWAF,
		fingerprint.CategoryAnalytics,
	} {
		if names, ok := grouped[category]; ok {
			fmt.Fprintf(w, "%-12s %s\n", string(category)+":", strings.Join(names, ", "))
		}
	}
}

func renderAnalyzer(w io.Writer, result analyzer.Result) {
	if result.Label != "" {
		switch result.Analyzer {
		case "carbon":
			fmt.Fprintf(w, "grade %s (%.4f g CO2 per view)\n", result.Label, result.Score)
		default:
			fmt.Fprintf(w, "score %.0f %s\n", result.Score, result.Label)
		}
	}
	for _, d := range result.Details {
		if d.Value != "" {
			fmt.Fprintf(w, "  %-20s %s\n", d.Key+":", d.Value)
		}
	}
	for _, f := range result.Findings {
		fmt.Fprintf(w, "  [%s] %s\n", f.Severity, f.Message)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}
