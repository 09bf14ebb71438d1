package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/vitalvas/hostmux/mux"
)

// Server wraps an http.Server built from a Config. TLS material is
// validated when the server is created, before any request is served, so
// a misconfigured HTTPS listener fails at startup rather than on the
// first connection.
type Server struct {
	cfg    *Config
	router *mux.Router
	srv    *http.Server
}

// NewServer builds a server for the given router. When HTTPS is enabled
// the certificate and key files must exist.
func NewServer(cfg *Config, router *mux.Router) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.HTTPS {
		for _, path := range []string{cfg.CertFile, cfg.KeyFile} {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("config: tls material %s: %w", path, err)
			}
		}
	}

	listen := cfg.Listen
	if listen == "" {
		listen = DefaultListen
	}

	return &Server{
		cfg:    cfg,
		router: router,
		srv: &http.Server{
			Addr:              listen,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}, nil
}

// Router returns the router the server dispatches to.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Addr returns the address the server binds to.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// ListenAndServe starts serving, with TLS when configured. It blocks
// until the underlying listener fails or the server is shut down.
func (s *Server) ListenAndServe() error {
	if s.cfg.HTTPS {
		return s.srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
	}
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server using the http.Server shutdown
// sequence.
func (s *Server) Shutdown() error {
	return s.srv.Close()
}
