// Package server provides the HTTP and WebSocket surface of the
// particle system: state control, preset management, camera preview,
// and the particle-frame stream consumed by the browser renderer.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/app"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/capture"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/server/api"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
	Camera    capture.Camera
	Detector  detector.Detector
}

// Server represents the HTTP server for the particle system.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time

	particles *ParticlesHandler
	landmarks *LandmarksHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.HandleFunc("/api/state/mode", s.handleSetMode)
		s.mux.HandleFunc("/api/state/regenerate", s.handleRegenerate)

		s.particles = NewParticlesHandler(s.config.App.Engine())
		s.mux.Handle("/api/particles", s.particles)
	}

	if s.config.Store != nil {
		presetsHandler := api.NewPresetsHandler(s.config.Store)
		s.mux.Handle("/api/presets", presetsHandler)
		s.mux.Handle("/api/presets/", presetsHandler)
	}

	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	if s.config.Camera != nil && s.config.Detector != nil {
		s.landmarks = NewLandmarksHandler(s.config.Detector, s.config.Camera)
		s.mux.Handle("/api/landmarks", s.landmarks)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close stops the WebSocket broadcast loops. Safe to call more than
// once.
func (s *Server) Close() {
	if s.particles != nil {
		s.particles.Close()
	}
	if s.landmarks != nil {
		s.landmarks.Close()
	}
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	writeJSON(w, http.StatusOK, response)
}

type stateResponse struct {
	Mode    string `json:"mode"`
	Gesture string `json:"gesture"`
	Enabled bool   `json:"enabled"`
}

// handleState handles GET requests to /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a := s.config.App
	writeJSON(w, http.StatusOK, stateResponse{
		Mode:    string(a.Engine().Mode()),
		Gesture: string(a.Debouncer().State()),
		Enabled: a.IsEnabled(),
	})
}

// handleSetMode handles POST requests to /api/state/mode.
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	mode := engine.Mode(req.Mode)
	if !mode.Valid() {
		writeJSONError(w, http.StatusBadRequest, "unknown mode: "+req.Mode)
		return
	}

	s.config.App.Engine().SetMode(mode)
	writeJSON(w, http.StatusOK, map[string]string{"mode": req.Mode})
}

// handleRegenerate handles POST requests to /api/state/regenerate and
// rebuilds both target geometries with fresh randomness.
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.config.App.Engine().RegenerateTargets()
	writeJSON(w, http.StatusOK, map[string]string{"status": "regenerated"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
