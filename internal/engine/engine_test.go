package engine

import (
	"math"
	"testing"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/geometry"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ParticleCount = 500
	cfg.Seed = 42
	return cfg
}

func TestNew_BufferInvariants(t *testing.T) {
	e := New(testConfig(), nil)

	if e.ParticleCount() != 500 {
		t.Errorf("particle count %d, want 500", e.ParticleCount())
	}
	if len(e.live) != 500 || len(e.heartTarget) != 500 || len(e.starTarget) != 500 {
		t.Errorf("buffer lengths live=%d heart=%d star=%d, want 500 each",
			len(e.live), len(e.heartTarget), len(e.starTarget))
	}
	if e.Mode() != ModeStarfield {
		t.Errorf("initial mode %q, want starfield", e.Mode())
	}
}

func TestEngine_GeometricConvergence(t *testing.T) {
	cfg := testConfig()
	cfg.HeartbeatAmplitude = 0 // fixed target
	e := New(cfg, nil)

	// Ease the starfield-born buffer toward the heart target.
	e.SetMode(ModeHeart)

	initial := make([]geometry.Point3D, len(e.live))
	copy(initial, e.live)

	const k = 30
	for i := 0; i < k; i++ {
		e.Tick()
	}

	bound := math.Pow(1-cfg.Easing, k)
	for i := range e.live {
		target := e.heartTarget[i]
		remX := math.Abs(e.live[i].X - target.X)
		remY := math.Abs(e.live[i].Y - target.Y)
		remZ := math.Abs(e.live[i].Z - target.Z)

		maxX := math.Abs(initial[i].X-target.X)*bound + 1e-9
		maxY := math.Abs(initial[i].Y-target.Y)*bound + 1e-9
		maxZ := math.Abs(initial[i].Z-target.Z)*bound + 1e-9

		if remX > maxX || remY > maxY || remZ > maxZ {
			t.Fatalf("particle %d converged slower than (1-easing)^k: rem (%g,%g,%g) max (%g,%g,%g)",
				i, remX, remY, remZ, maxX, maxY, maxZ)
		}
	}
}

func TestEngine_ModeSwitchNeverTeleports(t *testing.T) {
	cfg := testConfig()
	e := New(cfg, nil)

	for i := 0; i < 10; i++ {
		e.Tick()
	}

	before := make([]geometry.Point3D, len(e.live))
	copy(before, e.live)

	// Retarget mid-flight. The next tick may move each particle at most
	// easing times its distance to the (pulsed) new target.
	e.SetMode(ModeHeart)
	e.Tick()

	maxPulse := 1 + cfg.HeartbeatAmplitude
	for i := range e.live {
		moved := before[i].DistanceTo(e.live[i])
		target := e.heartTarget[i].Mul(maxPulse)
		limit := cfg.Easing*before[i].DistanceTo(target) + 1e-9
		// The pulsed target may be slightly closer than the worst case;
		// use the unpulsed distance as an alternative bound.
		alt := cfg.Easing*before[i].DistanceTo(e.heartTarget[i].Mul(1-cfg.HeartbeatAmplitude)) + 1e-9
		if limit < alt {
			limit = alt
		}
		if moved > limit {
			t.Fatalf("particle %d moved %g on mode switch, limit %g", i, moved, limit)
		}
	}
}

func TestEngine_HeartbeatOnlyInHeartMode(t *testing.T) {
	cfg := testConfig()
	e := New(cfg, nil)

	var pulses []float64
	e.renderer = RendererFunc(func(f *Frame) {
		pulses = append(pulses, f.Pulse)
	})

	for i := 0; i < 5; i++ {
		e.Tick()
	}
	for _, p := range pulses {
		if p != 1.0 {
			t.Errorf("starfield pulse %g, want 1.0", p)
		}
	}

	pulses = pulses[:0]
	e.SetMode(ModeHeart)
	for i := 0; i < 20; i++ {
		e.Tick()
	}
	varied := false
	for _, p := range pulses {
		if p != 1.0 {
			varied = true
		}
		if p < 1-cfg.HeartbeatAmplitude-1e-9 || p > 1+cfg.HeartbeatAmplitude+1e-9 {
			t.Errorf("pulse %g outside amplitude envelope", p)
		}
	}
	if !varied {
		t.Error("heartbeat never deviated from 1.0 in heart mode")
	}
}

func TestEngine_InvalidModeRetained(t *testing.T) {
	e := New(testConfig(), nil)
	e.SetMode(ModeHeart)

	e.SetMode(Mode("nebula"))
	if e.Mode() != ModeHeart {
		t.Errorf("invalid mode request changed mode to %q", e.Mode())
	}
}

func TestEngine_RegenerateTargetsKeepsLengths(t *testing.T) {
	e := New(testConfig(), nil)

	liveBefore := make([]geometry.Point3D, len(e.live))
	copy(liveBefore, e.live)

	e.RegenerateTargets()

	if len(e.heartTarget) != 500 || len(e.starTarget) != 500 {
		t.Errorf("regenerated lengths heart=%d star=%d, want 500 each",
			len(e.heartTarget), len(e.starTarget))
	}
	// Regeneration replaces targets only; the live buffer is untouched.
	for i := range liveBefore {
		if liveBefore[i] != e.live[i] {
			t.Fatalf("regenerate moved live particle %d", i)
		}
	}
}

func TestEngine_RotationEasesTowardTarget(t *testing.T) {
	cfg := testConfig()
	e := New(cfg, nil)

	e.SetTargetRotation(1.0, -1.0)
	wantYaw, wantPitch := e.orientation.Target()

	for i := 0; i < 200; i++ {
		e.Tick()
	}

	yaw, pitch := e.Rotation()
	if math.Abs(yaw-wantYaw) > 1e-3 || math.Abs(pitch-wantPitch) > 1e-3 {
		t.Errorf("rotation (%g, %g) did not converge to target (%g, %g)", yaw, pitch, wantYaw, wantPitch)
	}
}

func TestEngine_StopIdempotent(t *testing.T) {
	e := New(testConfig(), nil)

	e.Stop() // never started
	e.Run()
	e.Run() // second Run is a no-op
	e.Stop()
	e.Stop() // second Stop is a no-op
}

func TestEngine_RendererReceivesLiveBuffer(t *testing.T) {
	var got *Frame
	e := New(testConfig(), RendererFunc(func(f *Frame) { got = f }))

	e.Tick()
	if got == nil {
		t.Fatal("renderer was not invoked")
	}
	if len(got.Positions) != 500 || len(got.Sizes) != 500 {
		t.Errorf("frame sizes positions=%d sizes=%d, want 500 each", len(got.Positions), len(got.Sizes))
	}
	if got.Mode != ModeStarfield {
		t.Errorf("frame mode %q, want starfield", got.Mode)
	}
}

func TestEngine_Snapshot(t *testing.T) {
	e := New(testConfig(), nil)
	e.Tick()

	buf, _, _ := e.Snapshot(nil)
	if len(buf) != 500 {
		t.Fatalf("snapshot length %d, want 500", len(buf))
	}

	// The snapshot is a copy: mutating it must not touch the live buffer.
	buf[0].X += 100
	if e.live[0].X == buf[0].X {
		t.Error("snapshot aliases the live buffer")
	}

	// A large enough destination is reused.
	buf2, _, _ := e.Snapshot(buf)
	if &buf2[0] != &buf[0] {
		t.Error("snapshot reallocated despite sufficient capacity")
	}
}
