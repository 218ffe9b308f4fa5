package engine

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/geometry"
)

// Config holds tuning parameters for the animation engine.
type Config struct {
	// ParticleCount is the number of live particles. Fixed at init; both
	// target sets always hold exactly this many points.
	ParticleCount int

	// StarfieldRadius is the radius of the starfield target sphere.
	StarfieldRadius float64

	// Heart configures the heart target geometry.
	Heart geometry.HeartConfig

	// Easing is the per-tick fraction of remaining distance each
	// particle covers. Must be in (0,1) for convergence.
	Easing float64

	// RotationEasing is the independent easing constant for the group
	// rotation.
	RotationEasing float64

	// HeartbeatAmplitude and HeartbeatSpeed shape the pulse applied to
	// the heart target: multiplier = 1 + amplitude*sin(t*speed).
	HeartbeatAmplitude float64
	HeartbeatSpeed     float64

	// Sensitivity is the orientation controller's radians per unit of
	// normalized hand input.
	Sensitivity float64

	// TickRate is the ticks per second of the Run loop.
	TickRate int

	// Seed fixes particle size randomization and target generation for
	// reproducible runs. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ParticleCount:      20000,
		StarfieldRadius:    2.5,
		Heart:              geometry.DefaultHeartConfig(),
		Easing:             0.08,
		RotationEasing:     0.1,
		HeartbeatAmplitude: 0.05,
		HeartbeatSpeed:     3.0,
		Sensitivity:        1.5,
		TickRate:           60,
	}
}

// Engine owns the live particle buffer and the rotation state. All
// mutation of both happens inside Tick; gesture and orientation updates
// only write target fields, which the next tick observes.
type Engine struct {
	mu     sync.Mutex
	config Config

	mode        Mode
	live        []geometry.Point3D
	heartTarget []geometry.Point3D
	starTarget  []geometry.Point3D
	sizes       []float64

	orientation *OrientationController
	yaw, pitch  float64

	elapsed  float64
	tickStep float64

	renderer Renderer
	frame    Frame

	stopCh chan struct{}
}

// New creates an Engine with both target sets generated up front and
// the live buffer starting on the starfield. A nil renderer is allowed;
// ticks then only advance the simulation.
func New(config Config, renderer Renderer) *Engine {
	if config.ParticleCount <= 0 {
		config.ParticleCount = DefaultConfig().ParticleCount
	}
	if config.TickRate <= 0 {
		config.TickRate = DefaultConfig().TickRate
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	heartCfg := config.Heart
	heartCfg.Seed = seed

	e := &Engine{
		config:      config,
		mode:        ModeStarfield,
		heartTarget: geometry.GenerateHeart(config.ParticleCount, heartCfg),
		starTarget:  geometry.GenerateStarfieldSeeded(config.ParticleCount, config.StarfieldRadius, seed),
		sizes:       make([]float64, config.ParticleCount),
		orientation: NewOrientationController(config.Sensitivity),
		tickStep:    1.0 / float64(config.TickRate),
		renderer:    renderer,
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range e.sizes {
		e.sizes[i] = 0.5 + rng.Float64()
	}

	e.live = make([]geometry.Point3D, config.ParticleCount)
	copy(e.live, e.starTarget)

	return e
}

// SetMode switches the active target set. Switching never snaps or
// resets live positions: in-flight particles retarget on the next tick,
// and the heartbeat phase keeps running. An unrecognized mode is
// rejected with a warning and the prior mode is retained.
func (e *Engine) SetMode(mode Mode) {
	if !mode.Valid() {
		log.Printf("ignoring unknown mode %q", mode)
		return
	}

	e.mu.Lock()
	e.mode = mode
	e.mu.Unlock()
}

// Mode returns the active mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetTargetRotation maps normalized input in [-1,1] per axis to the
// target rotation. The rotation itself eases toward the target inside
// Tick.
func (e *Engine) SetTargetRotation(normX, normY float64) {
	e.mu.Lock()
	e.orientation.SetTargetFromInput(normX, normY)
	e.mu.Unlock()
}

// Rotation returns the current eased yaw and pitch.
func (e *Engine) Rotation() (yaw, pitch float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.yaw, e.pitch
}

// Tick advances the animation by one step: it moves every live particle
// a fraction of its remaining distance toward the active target, eases
// the group rotation, and hands the frame to the renderer. It performs
// no heap allocation.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.elapsed += e.tickStep

	beat := 1.0
	if e.mode == ModeHeart {
		beat = 1 + e.config.HeartbeatAmplitude*math.Sin(e.elapsed*e.config.HeartbeatSpeed)
	}

	easing := e.config.Easing
	for i := range e.live {
		var target geometry.Point3D
		if e.mode == ModeHeart {
			target = e.heartTarget[i]
			target.X *= beat
			target.Y *= beat
			target.Z *= beat
		} else {
			target = e.starTarget[i]
		}

		e.live[i].X += (target.X - e.live[i].X) * easing
		e.live[i].Y += (target.Y - e.live[i].Y) * easing
		e.live[i].Z += (target.Z - e.live[i].Z) * easing
	}

	targetYaw, targetPitch := e.orientation.Target()
	e.yaw += (targetYaw - e.yaw) * e.config.RotationEasing
	e.pitch += (targetPitch - e.pitch) * e.config.RotationEasing

	if e.renderer != nil {
		e.frame.Positions = e.live
		e.frame.Sizes = e.sizes
		e.frame.Yaw = e.yaw
		e.frame.Pitch = e.pitch
		e.frame.Mode = e.mode
		e.frame.Pulse = beat
		e.renderer.Render(&e.frame)
	}
}

// RegenerateTargets rebuilds both target sets with fresh randomness.
// Generation happens outside the engine lock; the swap is a single
// locked assignment, so a tick never observes a mix of old and new
// targets. Safe to call while the engine is running.
func (e *Engine) RegenerateTargets() {
	seed := time.Now().UnixNano()

	heartCfg := e.config.Heart
	heartCfg.Seed = seed
	heart := geometry.GenerateHeart(e.config.ParticleCount, heartCfg)
	stars := geometry.GenerateStarfieldSeeded(e.config.ParticleCount, e.config.StarfieldRadius, seed)

	e.mu.Lock()
	e.heartTarget = heart
	e.starTarget = stars
	e.mu.Unlock()
}

// Run drives Tick at the configured tick rate until Stop is called.
// Calling Run while already running is a no-op.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.stopCh != nil {
		e.mu.Unlock()
		return
	}
	stopCh := make(chan struct{})
	e.stopCh = stopCh
	tickRate := e.config.TickRate
	e.mu.Unlock()

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(tickRate))
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				e.Tick()
			}
		}
	}()
}

// Stop halts the Run loop. Immediate and idempotent: stopping an
// already stopped engine is a no-op, and the live buffer is never left
// mid-pass because ticks run to completion.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}
}

// ParticleCount returns the fixed number of live particles.
func (e *Engine) ParticleCount() int {
	return e.config.ParticleCount
}

// Snapshot copies the live buffer into dst, growing it if needed, and
// returns it along with the current rotation. Intended for collaborators
// that sample the animation outside the tick callback.
func (e *Engine) Snapshot(dst []geometry.Point3D) ([]geometry.Point3D, float64, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cap(dst) < len(e.live) {
		dst = make([]geometry.Point3D, len(e.live))
	}
	dst = dst[:len(e.live)]
	copy(dst, e.live)
	return dst, e.yaw, e.pitch
}
