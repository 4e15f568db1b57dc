// Package api exposes the suite over HTTP: one endpoint that accepts a
// domain and a scan-type selector and streams plain-text probe progress back
// as results settle, terminated by a completion marker.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kevineulenberg/domain-testing-suite/internal/recon"
	"github.com/kevineulenberg/domain-testing-suite/internal/report"
)

// Config wires the server's collaborators. The scan itself is injected so
// tests can stub it and so the server stays a thin transport.
type Config struct {
	Logger      *zap.Logger
	ScanTimeout time.Duration // whole-scan bound per request, default 2m
	Options     recon.Options // base options; Type is overridden per request

	// NewSession and RunScan are overridable for tests; nil means the real
	// recon implementations.
	NewSession func(target string, opts recon.Options) (*recon.Session, error)
	RunScan    func(ctx context.Context, session *recon.Session) *recon.ScanReport
}

// Server handles scan requests.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

// NewServer builds a Server with its routes registered.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = 2 * time.Minute
	}
	if cfg.NewSession == nil {
		cfg.NewSession = recon.New
	}
	if cfg.RunScan == nil {
		cfg.RunScan = func(ctx context.Context, session *recon.Session) *recon.ScanReport {
			return session.Run(ctx)
		}
	}
	srv := &Server{cfg: cfg, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/scan", s.handleScan)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// handleScan runs a scan and streams its progress as chunked plain text.
// Each settled probe produces one line immediately; the full report follows,
// then the completion marker with the scan's exit status.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	domain := r.URL.Query().Get("domain")
	if domain == "" {
		http.Error(w, "missing domain parameter", http.StatusBadRequest)
		return
	}

	opts := s.cfg.Options
	opts.Type = recon.ParseType(r.URL.Query().Get("type"))

	session, err := s.cfg.NewSession(domain, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	session.Progress = func(line string) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return
		}
		flusher.Flush()
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ScanTimeout)
	defer cancel()

	start := time.Now()
	s.cfg.Logger.Info("scan started",
		zap.String("target", session.Target.Host()),
		zap.String("type", string(opts.Type)),
		zap.String("remote", r.RemoteAddr),
	)

	rep := s.cfg.RunScan(ctx, session)

	fmt.Fprintln(w)
	report.Render(w, rep)

	status := 0
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		status = 1
	}
	fmt.Fprintf(w, "scan complete (status %d)\n", status)
	flusher.Flush()

	s.cfg.Logger.Info("scan finished",
		zap.String("target", session.Target.Host()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("probes", len(rep.Probes)),
		zap.Int("status", status),
	)
}
