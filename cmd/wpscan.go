package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kevineulenberg/domain-testing-suite/internal/recon"
	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
	"github.com/kevineulenberg/domain-testing-suite/internal/vulnscan"
)

var (
	flagScannerCmd     string
	flagScannerTimeout int
	flagScannerNoLog   bool
)

var wpscanCmd = &cobra.Command{
	Use:   "wpscan <domain>",
	Short: "Run the external WordPress vulnerability scanner against a domain",
	Long: `Invokes the external vulnerability scanner as a subprocess and relays its
tagged progress lines. The scanner's findings are its own business; this
command classifies the stream and passes the exit status through.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := scan.ParseTarget(args[0])
		if err != nil {
			return err
		}

		command := flagScannerCmd
		if command == "" {
			command = viper.GetString("wpscan_command")
		}
		if command == "" {
			command = "wp_scanner"
		}

		runner := &vulnscan.Runner{
			Command: command,
			Args:    []string{"--report-format", "text", "--url"},
			Timeout: time.Duration(flagScannerTimeout) * time.Second,
		}

		success := color.New(color.FgGreen)
		failure := color.New(color.FgRed)
		warning := color.New(color.FgYellow)
		info := color.New(color.FgCyan)

		start := time.Now().UTC()
		result, err := runner.Run(context.Background(), target.Origin(), func(class vulnscan.LineClass, line string) {
			switch class {
			case vulnscan.LineSuccess:
				success.Println(line)
			case vulnscan.LineError:
				failure.Println(line)
			case vulnscan.LineWarning:
				warning.Println(line)
			case vulnscan.LineInfo:
				info.Println(line)
			default:
				fmt.Println(line)
			}
		})
		if err != nil {
			return err
		}

		logger.Infow("scanner finished",
			"target", target.Host(),
			"exit_code", result.ExitCode,
			"lines", result.Lines,
			"elapsed", result.Elapsed,
		)

		if !flagScannerNoLog {
			rep := &recon.ScanReport{
				Target:    target.Host(),
				Type:      recon.Type("wpscan"),
				StartedAt: start,
				Duration:  result.Elapsed,
				VulnScan:  &result,
			}
			if path, err := writeScanLog(rep); err != nil {
				logger.Warnf("scan log not written: %v", err)
			} else {
				fmt.Fprintf(os.Stderr, "log written to %s\n", path)
			}
		}

		if result.ExitCode != 0 {
			return fmt.Errorf("scanner exited with status %d", result.ExitCode)
		}
		return nil
	},
}

func init() {
	wpscanCmd.Flags().StringVar(&flagScannerCmd, "scanner", "", "scanner executable (default wp_scanner, or wpscan_command from config)")
	wpscanCmd.Flags().IntVar(&flagScannerTimeout, "scanner-timeout", 600, "scanner timeout in seconds")
	wpscanCmd.Flags().BoolVar(&flagScannerNoLog, "no-log", false, "skip writing the per-scan log file")
}
