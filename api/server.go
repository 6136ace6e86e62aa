// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jewel-pricing/catalog"
	"jewel-pricing/core/engine"
	"jewel-pricing/internal/logging"
)

// Server is the API server
type Server struct {
	mux     *http.ServeMux
	version string
	log     *zap.Logger
}

// NewServer creates a new API server
func NewServer(version string) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		version: version,
		log:     logging.Logger,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /reprice", s.handleReprice)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server on addr
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("api server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

// handleReprice handles POST /reprice
func (s *Server) handleReprice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	var req RepriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Products) == 0 {
		s.writeError(w, "VALIDATION_ERROR", "products must not be empty", http.StatusBadRequest)
		return
	}

	// The request is self-contained: updates land in a store seeded
	// from the request snapshot and are echoed back in the response.
	store := catalog.NewMemoryStore(req.Products)
	orch := engine.New(nil, store, s.log)

	outcome, runErr := orch.Run(r.Context(), req.Products, &req.Config)
	if outcome == nil {
		// Only configuration failures leave no outcome.
		s.writeError(w, "CONFIG_ERROR", runErr.Error(), http.StatusBadRequest)
		return
	}

	resp := RepriceResponse{
		RequestID:  requestID,
		Success:    runErr == nil,
		Outcome:    outcome,
		Updates:    store.Applied(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if runErr != nil {
		resp.Error = runErr.Error()
	}
	if !req.IncludeTrace {
		resp.Outcome.Trace = nil
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// writeJSON serializes a response
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error envelope
func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
