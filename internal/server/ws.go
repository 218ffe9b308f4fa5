package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/capture"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/geometry"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local connections only
	},
}

// Particle broadcast parameters.
const (
	// particleBroadcastInterval is ~30 FPS, enough for a smooth preview
	// without saturating a local WebSocket.
	particleBroadcastInterval = 33 * time.Millisecond
	// maxBroadcastPoints caps points per frame; larger clouds are
	// stride-sampled down to this budget.
	maxBroadcastPoints = 5000
)

// ParticlesHandler streams animation frames to WebSocket clients as
// binary messages: a little-endian header (uint32 count, float32 yaw,
// float32 pitch, uint8 mode) followed by count XYZ float32 triplets.
type ParticlesHandler struct {
	engine  *engine.Engine
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	scratch []geometry.Point3D
	buf     bytes.Buffer
}

// NewParticlesHandler creates a ParticlesHandler streaming from the
// given engine.
func NewParticlesHandler(e *engine.Engine) *ParticlesHandler {
	h := &ParticlesHandler{
		engine:  e,
		clients: make(map[*websocket.Conn]bool),
		stopCh:  make(chan struct{}),
	}
	go h.broadcast(h.stopCh)
	return h
}

// Close stops the broadcast loop. Safe to call more than once.
func (h *ParticlesHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ParticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep the connection alive by reading messages until it drops.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast samples the engine and fans frames out to all clients
// until the handler is closed.
func (h *ParticlesHandler) broadcast(stopCh chan struct{}) {
	ticker := time.NewTicker(particleBroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		var yaw, pitch float64
		h.scratch, yaw, pitch = h.engine.Snapshot(h.scratch)
		msg := h.encodeFrame(h.scratch, yaw, pitch, h.engine.Mode())

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.BinaryMessage, msg)
		}
		h.mu.RUnlock()
	}
}

// encodeFrame packs a (possibly stride-sampled) point cloud into the
// binary wire format. The returned slice is valid until the next call.
func (h *ParticlesHandler) encodeFrame(points []geometry.Point3D, yaw, pitch float64, mode engine.Mode) []byte {
	stride := 1
	if len(points) > maxBroadcastPoints {
		stride = (len(points) + maxBroadcastPoints - 1) / maxBroadcastPoints
	}
	count := (len(points) + stride - 1) / stride

	var modeByte uint8
	if mode == engine.ModeHeart {
		modeByte = 1
	}

	h.buf.Reset()
	h.buf.Grow(13 + count*12)

	var header [13]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(count))
	binary.LittleEndian.PutUint32(header[4:8], math.Float32bits(float32(yaw)))
	binary.LittleEndian.PutUint32(header[8:12], math.Float32bits(float32(pitch)))
	header[12] = modeByte
	h.buf.Write(header[:])

	var coord [4]byte
	for i := 0; i < len(points); i += stride {
		p := points[i]
		binary.LittleEndian.PutUint32(coord[:], math.Float32bits(float32(p.X)))
		h.buf.Write(coord[:])
		binary.LittleEndian.PutUint32(coord[:], math.Float32bits(float32(p.Y)))
		h.buf.Write(coord[:])
		binary.LittleEndian.PutUint32(coord[:], math.Float32bits(float32(p.Z)))
		h.buf.Write(coord[:])
	}

	return h.buf.Bytes()
}

// LandmarksHandler broadcasts real-time hand landmarks via WebSocket
// for the browser's skeleton overlay.
type LandmarksHandler struct {
	detector detector.Detector
	camera   capture.Camera
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	stopCh   chan struct{}
}

// NewLandmarksHandler creates a LandmarksHandler with the given
// detector and camera.
func NewLandmarksHandler(d detector.Detector, c capture.Camera) *LandmarksHandler {
	h := &LandmarksHandler{
		detector: d,
		camera:   c,
		clients:  make(map[*websocket.Conn]bool),
		stopCh:   make(chan struct{}),
	}
	go h.broadcast(h.stopCh)
	return h
}

// Close stops the broadcast loop. Safe to call more than once.
func (h *LandmarksHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LandmarksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends landmark data to all connected clients until the
// handler is closed.
func (h *LandmarksHandler) broadcast(stopCh chan struct{}) {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			continue
		}

		hands, err := h.detector.Detect(frame)
		frame.Close()
		if err != nil {
			continue
		}

		msg, _ := json.Marshal(map[string]any{
			"hands":     hands,
			"timestamp": time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
