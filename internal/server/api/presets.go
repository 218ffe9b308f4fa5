// Package api provides HTTP API handlers for the particle animation daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/store"
)

// PresetsHandler handles HTTP requests for animation preset resources.
type PresetsHandler struct {
	store *store.Store
}

// NewPresetsHandler creates a new PresetsHandler with the given store.
func NewPresetsHandler(s *store.Store) *PresetsHandler {
	return &PresetsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *PresetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/presets or /api/presets/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/presets")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type presetRequest struct {
	Name               string  `json:"name"`
	ParticleCount      int     `json:"particle_count"`
	Easing             float64 `json:"easing"`
	RotationEasing     float64 `json:"rotation_easing"`
	HeartbeatAmplitude float64 `json:"heartbeat_amplitude"`
	HeartbeatSpeed     float64 `json:"heartbeat_speed"`
	StarfieldRadius    float64 `json:"starfield_radius"`
	HeartScaleX        float64 `json:"heart_scale_x"`
	HeartScaleY        float64 `json:"heart_scale_y"`
	HeartScaleZ        float64 `json:"heart_scale_z"`
}

type presetResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	ParticleCount      int     `json:"particle_count"`
	Easing             float64 `json:"easing"`
	RotationEasing     float64 `json:"rotation_easing"`
	HeartbeatAmplitude float64 `json:"heartbeat_amplitude"`
	HeartbeatSpeed     float64 `json:"heartbeat_speed"`
	StarfieldRadius    float64 `json:"starfield_radius"`
	HeartScaleX        float64 `json:"heart_scale_x"`
	HeartScaleY        float64 `json:"heart_scale_y"`
	HeartScaleZ        float64 `json:"heart_scale_z"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type listPresetsResponse struct {
	Presets []presetResponse `json:"presets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Preset to a presetResponse.
func toResponse(p *store.Preset) presetResponse {
	return presetResponse{
		ID:                 p.ID,
		Name:               p.Name,
		ParticleCount:      p.ParticleCount,
		Easing:             p.Easing,
		RotationEasing:     p.RotationEasing,
		HeartbeatAmplitude: p.HeartbeatAmplitude,
		HeartbeatSpeed:     p.HeartbeatSpeed,
		StarfieldRadius:    p.StarfieldRadius,
		HeartScaleX:        p.HeartScaleX,
		HeartScaleY:        p.HeartScaleY,
		HeartScaleZ:        p.HeartScaleZ,
		CreatedAt:          p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:          p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// applyDefaults fills zero-valued tunables with the values the engine
// ships with, so a minimal create request yields a usable preset.
func applyDefaults(req *presetRequest) {
	if req.ParticleCount == 0 {
		req.ParticleCount = 20000
	}
	if req.Easing == 0 {
		req.Easing = 0.08
	}
	if req.RotationEasing == 0 {
		req.RotationEasing = 0.1
	}
	if req.HeartbeatSpeed == 0 {
		req.HeartbeatSpeed = 3.0
	}
	if req.StarfieldRadius == 0 {
		req.StarfieldRadius = 2.5
	}
	if req.HeartScaleX == 0 {
		req.HeartScaleX = 1.0
	}
	if req.HeartScaleY == 0 {
		req.HeartScaleY = 1.0
	}
	if req.HeartScaleZ == 0 {
		req.HeartScaleZ = 1.0
	}
}

// validate rejects tunable values the engine cannot run with.
func validate(req *presetRequest) string {
	switch {
	case req.ParticleCount < 0:
		return "particle_count must be positive"
	case req.Easing < 0 || req.Easing > 1:
		return "easing must be in (0, 1]"
	case req.RotationEasing < 0 || req.RotationEasing > 1:
		return "rotation_easing must be in (0, 1]"
	case req.HeartbeatAmplitude < 0 || req.HeartbeatAmplitude >= 1:
		return "heartbeat_amplitude must be in [0, 1)"
	case req.StarfieldRadius < 0:
		return "starfield_radius must be positive"
	case req.HeartScaleX < 0 || req.HeartScaleY < 0 || req.HeartScaleZ < 0:
		return "heart scales must be positive"
	}
	return ""
}

// list handles GET /api/presets and returns all presets.
func (h *PresetsHandler) list(w http.ResponseWriter, r *http.Request) {
	presets, err := h.store.Presets().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list presets")
		return
	}

	response := listPresetsResponse{
		Presets: make([]presetResponse, 0, len(presets)),
	}

	for _, p := range presets {
		response.Presets = append(response.Presets, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/presets/{id} and returns a single preset.
func (h *PresetsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	preset, err := h.store.Presets().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Preset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get preset")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(preset))
}

// create handles POST /api/presets and creates a new preset.
func (h *PresetsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	applyDefaults(&req)
	if msg := validate(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	preset := &store.Preset{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		ParticleCount:      req.ParticleCount,
		Easing:             req.Easing,
		RotationEasing:     req.RotationEasing,
		HeartbeatAmplitude: req.HeartbeatAmplitude,
		HeartbeatSpeed:     req.HeartbeatSpeed,
		StarfieldRadius:    req.StarfieldRadius,
		HeartScaleX:        req.HeartScaleX,
		HeartScaleY:        req.HeartScaleY,
		HeartScaleZ:        req.HeartScaleZ,
	}

	if err := h.store.Presets().Create(preset); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create preset")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(preset))
}

// update handles PUT /api/presets/{id} and updates an existing preset.
func (h *PresetsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	preset, err := h.store.Presets().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Preset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get preset")
		return
	}

	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validate(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// Update fields if provided.
	if req.Name != "" {
		preset.Name = req.Name
	}
	if req.ParticleCount != 0 {
		preset.ParticleCount = req.ParticleCount
	}
	if req.Easing != 0 {
		preset.Easing = req.Easing
	}
	if req.RotationEasing != 0 {
		preset.RotationEasing = req.RotationEasing
	}
	if req.HeartbeatAmplitude != 0 {
		preset.HeartbeatAmplitude = req.HeartbeatAmplitude
	}
	if req.HeartbeatSpeed != 0 {
		preset.HeartbeatSpeed = req.HeartbeatSpeed
	}
	if req.StarfieldRadius != 0 {
		preset.StarfieldRadius = req.StarfieldRadius
	}
	if req.HeartScaleX != 0 {
		preset.HeartScaleX = req.HeartScaleX
	}
	if req.HeartScaleY != 0 {
		preset.HeartScaleY = req.HeartScaleY
	}
	if req.HeartScaleZ != 0 {
		preset.HeartScaleZ = req.HeartScaleZ
	}

	if err := h.store.Presets().Update(preset); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update preset")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(preset))
}

// delete handles DELETE /api/presets/{id} and removes a preset.
func (h *PresetsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Presets().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Preset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete preset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
