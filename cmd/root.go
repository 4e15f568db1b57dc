package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kevineulenberg/domain-testing-suite/internal/recon"
)

var (
	cfgFile string
	logDir  string
	logger  *zap.SugaredLogger

	flagTimeout     int
	flagConcurrency int
	flagUserAgent   string
)

var rootCmd = &cobra.Command{
	Use:   "dts",
	Short: "Multi-probe reconnaissance of internet domains",
	Long: `domain-testing-suite probes a domain's DNS, TLS, HTTP headers, open
ports and reputation, fingerprints its technology stack, and runs SEO,
accessibility, carbon and link-health heuristics over its landing page.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".domain-testing-suite")
			viper.SetConfigType("yaml")
		}
		_ = viper.ReadInConfig()
		applyConfigDefaults(cmd.Root().PersistentFlags())

		if logDir == "" {
			logDir = "./logs"
		}
		if abs, err := filepath.Abs(logDir); err == nil {
			logDir = abs
		}

		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l.Sugar()
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.domain-testing-suite.yaml)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for per-scan log files (default ./logs)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "per-probe timeout in seconds (default 5)")
	rootCmd.PersistentFlags().IntVar(&flagConcurrency, "concurrency", 0, "maximum concurrent probes (default 8)")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", "", "User-Agent for outbound requests")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wpscanCmd)
	rootCmd.AddCommand(versionCmd)
}

// scanOptions builds one explicit options value from the resolved flags.
// Config-file values were already folded into unset flags by
// applyConfigDefaults; the handful of knobs without flags read viper here.
// Nothing below cmd/ reads viper or flags.
func scanOptions() recon.Options {
	opts := recon.Options{
		ProbeTimeout: 5 * time.Second,
		FetchTimeout: 10 * time.Second,
		Concurrency:  8,
		UserAgent:    flagUserAgent,
	}
	if flagTimeout > 0 {
		opts.ProbeTimeout = time.Duration(flagTimeout) * time.Second
	}
	if flagConcurrency > 0 {
		opts.Concurrency = flagConcurrency
	}
	if t := viper.GetInt("fetch_timeout"); t > 0 {
		opts.FetchTimeout = time.Duration(t) * time.Second
	}
	if ports := viper.GetIntSlice("ports"); len(ports) > 0 {
		opts.Ports = ports
	}
	return opts
}
