package report

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/kevineulenberg/domain-testing-suite/internal/recon"
	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

// WritePDF renders the report as a simple A4 PDF at path.
func WritePDF(path string, rep *recon.ScanReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Scan Report: %s", rep.Target), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Scan type: %s", rep.Type), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Started: %s", rep.StartedAt.Format("2006-01-02 15:04:05 MST")), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Duration: %s", rep.Duration.Round(1e6)), "", 1, "", false, 0, "")
	pdf.Ln(4)

	if len(rep.Probes) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Probes", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, pr := range rep.Probes {
			line := fmt.Sprintf("[%s] %s", pr.Outcome, pr.Name)
			if pr.Outcome == scan.Success {
				line += " - " + describeValue(pr)
			} else if pr.Reason != "" {
				line += " - " + pr.Reason
			}
			pdf.MultiCell(0, 5, line, "", "", false)
		}
		pdf.Ln(3)
	}

	if len(rep.Signals) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Detected Technologies", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, sig := range rep.Signals {
			pdf.MultiCell(0, 5, fmt.Sprintf("%s (%s)", sig.Name, sig.Category), "", "", false)
		}
		pdf.Ln(3)
	}

	for _, result := range rep.Analyzers {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Analyzer: "+capitalize(result.Analyzer), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		if result.Label != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("Metric: %.4g %s", result.Score, result.Label), "", 1, "", false, 0, "")
		}
		for _, f := range result.Findings {
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s", f.Severity, f.Message), "", "", false)
		}
		pdf.Ln(2)
	}

	return pdf.OutputFileAndClose(path)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
