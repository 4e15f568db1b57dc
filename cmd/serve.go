package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kevineulenberg/domain-testing-suite/internal/api"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose scans over HTTP with streamed progress",
	Long: `Starts an HTTP server with a single scan endpoint:

    GET /scan?domain=example.com&type=full

The response is chunked plain text: one line per settled probe, the full
report, and a final "scan complete (status N)" marker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		zlog := logger.Desugar()
		server := api.NewServer(api.Config{
			Logger:  zlog,
			Options: scanOptions(),
		})

		httpServer := &http.Server{
			Addr:              flagAddr,
			Handler:           server,
			ReadHeaderTimeout: 10 * time.Second,
		}
		zlog.Info("listening", zap.String("addr", flagAddr))
		return httpServer.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8172", "listen address")
}
