package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kevineulenberg/domain-testing-suite/internal/analyzer"
	"github.com/kevineulenberg/domain-testing-suite/internal/fingerprint"
	"github.com/kevineulenberg/domain-testing-suite/internal/recon"
	"github.com/kevineulenberg/domain-testing-suite/internal/report"
	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

var (
	flagScanType string
	flagPDF      string
	flagNoLog    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <domain>",
	Short: "Run a reconnaissance scan against a domain",
	Long: `Runs the selected probe set against the domain and prints a consolidated
report. Scan types: full, tech, seo, carbon, a11y, links, dns, ssl, ping.
An unrecognized type falls back to full.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := scanOptions()
		opts.Type = recon.ParseType(flagScanType)

		session, err := recon.New(args[0], opts)
		if err != nil {
			return err
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(fmt.Sprintf("scanning %s", session.Target)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		session.Progress = func(string) { _ = bar.Add(1) }

		rep := session.Run(context.Background())
		_ = bar.Finish()

		renderColored(rep)

		if !flagNoLog {
			if path, err := writeScanLog(rep); err != nil {
				logger.Warnf("scan log not written: %v", err)
			} else {
				fmt.Fprintf(os.Stderr, "log written to %s\n", path)
			}
		}

		if flagPDF != "" {
			if err := report.WritePDF(flagPDF, rep); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			fmt.Fprintf(os.Stderr, "pdf written to %s\n", flagPDF)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&flagScanType, "type", "t", "full", "scan type (full|tech|seo|carbon|a11y|links|dns|ssl|ping)")
	scanCmd.Flags().StringVar(&flagPDF, "pdf", "", "also write a PDF report to this path")
	scanCmd.Flags().BoolVar(&flagNoLog, "no-log", false, "skip writing the per-scan log file")
}

// writeScanLog persists the plain rendering; the log holds the same content
// shown on the terminal, minus coloring.
func writeScanLog(rep *recon.ScanReport) (string, error) {
	scanLog, err := report.OpenScanLog(logDir, rep.Target)
	if err != nil {
		return "", err
	}
	defer scanLog.Close()

	var buf bytes.Buffer
	report.Render(&buf, rep)
	if _, err := scanLog.Write(buf.Bytes()); err != nil {
		return "", err
	}
	return scanLog.Path, nil
}

// renderColored prints the report with terminal colors. The data is the
// same the plain renderer sees; only presentation differs.
func renderColored(rep *recon.ScanReport) {
	header := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	crit := color.New(color.FgRed, color.Bold)

	header.Printf("Scan report for %s (type %s)\n", rep.Target, rep.Type)
	fmt.Printf("Started %s, took %s\n\n", rep.StartedAt.Format("2006-01-02 15:04:05 MST"), rep.Duration.Round(1e6))

	if len(rep.Probes) > 0 {
		header.Println("== Probes ==")
		for _, pr := range rep.Probes {
			var plain bytes.Buffer
			report.RenderProbeLine(&plain, pr)
			line := strings.TrimRight(plain.String(), "\n")
			switch pr.Outcome {
			case scan.Success:
				ok.Println(line)
			case scan.Timeout:
				warn.Println(line)
			default:
				crit.Println(line)
			}
		}
		fmt.Println()
	}

	if rep.Type == recon.TypeFull || rep.Type == recon.TypeTech {
		header.Println("== Technologies ==")
		if len(rep.Signals) == 0 {
			fmt.Println("no known technologies detected")
		}
		for category, names := range fingerprint.GroupByCategory(rep.Signals) {
			fmt.Printf("%-12s %s\n", string(category)+":", strings.Join(names, ", "))
		}
		fmt.Println()
	}

	for _, result := range rep.Analyzers {
		header.Printf("== Analyzer: %s ==\n", result.Analyzer)
		for _, d := range result.Details {
			if d.Value != "" {
				fmt.Printf("  %-20s %s\n", d.Key+":", d.Value)
			}
		}
		for _, f := range result.Findings {
			switch f.Severity {
			case analyzer.Critical:
				crit.Printf("  [%s] %s\n", f.Severity, f.Message)
			case analyzer.Warning:
				warn.Printf("  [%s] %s\n", f.Severity, f.Message)
			default:
				fmt.Printf("  [%s] %s\n", f.Severity, f.Message)
			}
		}
		fmt.Println()
	}
}
