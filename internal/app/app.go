// Package app wires the capture, detection, gesture, and animation
// components into one controller instance.
package app

import (
	"log"
	"strconv"
	"sync"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/capture"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/gesture"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/plugin"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active hand tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline drops
	// back to idle.
	IdleTimeoutMs = 2000
	// DefaultHookTimeoutMs bounds each hook execution.
	DefaultHookTimeoutMs = 5000
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	HookDir        string
	CameraID       int
	MotionThresh   float64
	Engine         engine.Config
	DebounceFrames int
}

// App owns the full pipeline: camera frames flow through motion gating,
// hand detection, and gesture debouncing into animation mode switches.
// All shared state lives on this object, so multiple instances can run
// side by side and tests stay deterministic.
type App struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionDetector
	detector  detector.Detector
	debouncer *gesture.Debouncer
	engine    *engine.Engine
	hookMgr   *plugin.Manager
	hookExec  *plugin.Executor
	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
}

// New creates an App with the given configuration. The renderer is
// handed to the animation engine and invoked on every tick.
func New(config Config, renderer engine.Renderer) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	threshold := config.DebounceFrames
	if threshold <= 0 {
		threshold = gesture.DefaultThreshold
	}

	a := &App{
		config:    config,
		camera:    capture.NewCamera(config.CameraID),
		motion:    capture.NewMotionDetector(motionThreshold),
		debouncer: gesture.NewDebouncer(threshold),
		engine:    engine.New(config.Engine, renderer),
		hookMgr:   plugin.NewManager(config.HookDir),
		hookExec:  plugin.NewExecutor(hookTimeout(config.Store)),
		enabled:   true,
	}

	// Try MediaPipe first, fall back to the mock detector.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

func hookTimeout(s *store.Store) int {
	if s == nil {
		return DefaultHookTimeoutMs
	}
	value := s.Settings().GetDefault(store.SettingHookTimeoutMs, "")
	if value == "" {
		return DefaultHookTimeoutMs
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms <= 0 {
		return DefaultHookTimeoutMs
	}
	return ms
}

// EngineConfigFromPreset overlays a stored preset onto base.
func EngineConfigFromPreset(base engine.Config, p *store.Preset) engine.Config {
	if p == nil {
		return base
	}
	if p.ParticleCount > 0 {
		base.ParticleCount = p.ParticleCount
	}
	if p.Easing > 0 {
		base.Easing = p.Easing
	}
	if p.RotationEasing > 0 {
		base.RotationEasing = p.RotationEasing
	}
	base.HeartbeatAmplitude = p.HeartbeatAmplitude
	if p.HeartbeatSpeed > 0 {
		base.HeartbeatSpeed = p.HeartbeatSpeed
	}
	if p.StarfieldRadius > 0 {
		base.StarfieldRadius = p.StarfieldRadius
	}
	if p.HeartScaleX > 0 {
		base.Heart.ScaleX = p.HeartScaleX
	}
	if p.HeartScaleY > 0 {
		base.Heart.ScaleY = p.HeartScaleY
	}
	if p.HeartScaleZ > 0 {
		base.Heart.ScaleZ = p.HeartScaleZ
	}
	return base
}

// SetEnabled enables or disables gesture tracking. The animation keeps
// running either way; only gesture input pauses.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		// Pending counts from a half-seen gesture must not survive the pause.
		a.debouncer.Reset()
	}
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// DiscoverHooks scans the hook directory for action hooks.
func (a *App) DiscoverHooks() error {
	return a.hookMgr.Discover()
}

// Start opens the camera and begins the tracking pipeline and the
// animation loop. Starting a running app is a no-op.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.engine.Run()

	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the pipeline and the animation loop and releases capture
// resources. Stopping a stopped app is a no-op.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh == nil {
		return
	}

	close(a.stopCh)
	a.stopCh = nil

	a.engine.Stop()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the animation engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Debouncer returns the gesture debouncer.
func (a *App) Debouncer() *gesture.Debouncer {
	return a.debouncer
}

// HookManager returns the hook manager.
func (a *App) HookManager() *plugin.Manager {
	return a.hookMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
