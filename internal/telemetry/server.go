// Package telemetry serves the ops HTTP surface: /healthz and /metrics
// (spec §6, SPEC_FULL §4.7).
package telemetry

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server wires the ops HTTP surface the process exposes alongside the CLI run.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer builds a gorilla/mux router exposing /healthz and /metrics
// against reg (pass the same registry the orchestrator's Metrics were
// created against).
func NewServer(addr string, reg *prometheus.Registry, log zerolog.Logger) *Server {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		log: log,
	}
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListenAndServe blocks serving the ops surface until the process shuts down.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("ops http surface listening")
	return s.httpServer.ListenAndServe()
}

// Close gracefully stops the server.
func (s *Server) Close() error {
	return s.httpServer.Close()
}
