// README: API server wiring; holds module services and builds the net/http server.
package http

import (
	"context"
	"net/http"
	"time"

	"ridecompare/internal/ai"
	"ridecompare/internal/config"
	"ridecompare/internal/http/handlers"
	"ridecompare/internal/infra"
	"ridecompare/internal/modules/comparison"
	"ridecompare/internal/modules/pricing"
	"ridecompare/internal/modules/routing"
)

// HealthCheck reports the state of one optional backend.
type HealthCheck func(ctx context.Context) error

type ServerDeps struct {
	Pricing    *pricing.Service
	Comparison *comparison.Service
	Routing    *routing.Service
	Places     handlers.PlacesAPI
	Parser     ai.TripParser
	// Verifier enables /api/me when set.
	Verifier    infra.TokenVerifier
	CORSOrigins []string
	Checks      map[string]HealthCheck
}

type Server struct {
	srv *http.Server
}

func NewServer(cfg config.Config, deps ServerDeps) *Server {
	return &Server{srv: &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           NewRouter(deps),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}}
}

func (s *Server) Addr() string { return s.srv.Addr }

// ListenAndServe blocks until Shutdown; http.ErrServerClosed is not an error.
func (s *Server) ListenAndServe() error {
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
