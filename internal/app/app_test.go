package app

import (
	"testing"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/capture"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/gesture"
)

func testApp(t *testing.T) *App {
	t.Helper()

	cfg := Config{
		DebounceFrames: 3,
		Engine: engine.Config{
			ParticleCount: 200,
			Seed:          42,
		},
	}
	a := New(cfg, nil)
	a.SetDetector(detector.NewMockDetector())
	return a
}

func frameWith(hand detector.HandLandmarks) []detector.HandLandmarks {
	return []detector.HandLandmarks{hand}
}

func TestApp_FistDrivesHeartMode(t *testing.T) {
	a := testApp(t)

	if a.Engine().Mode() != engine.ModeStarfield {
		t.Fatalf("initial mode %q, want starfield", a.Engine().Mode())
	}

	fist := detector.FistLandmarks()
	for i := 0; i < 3; i++ {
		a.processHands(frameWith(fist))
	}

	if a.Engine().Mode() != engine.ModeHeart {
		t.Errorf("mode %q after confirmed fist, want heart", a.Engine().Mode())
	}
	if a.Debouncer().State() != gesture.StateFist {
		t.Errorf("debouncer state %q, want fist", a.Debouncer().State())
	}
}

func TestApp_OpenDrivesStarfieldMode(t *testing.T) {
	a := testApp(t)

	fist := detector.FistLandmarks()
	for i := 0; i < 3; i++ {
		a.processHands(frameWith(fist))
	}

	open := detector.OpenPalmLandmarks()
	for i := 0; i < 3; i++ {
		a.processHands(frameWith(open))
	}

	if a.Engine().Mode() != engine.ModeStarfield {
		t.Errorf("mode %q after confirmed open palm, want starfield", a.Engine().Mode())
	}
}

func TestApp_SignalLossNeverFlipsMode(t *testing.T) {
	a := testApp(t)

	fist := detector.FistLandmarks()
	for i := 0; i < 3; i++ {
		a.processHands(frameWith(fist))
	}

	// Hand disappears for a while: confirmed state and mode must hold.
	for i := 0; i < 10; i++ {
		a.processHands(nil)
	}

	if a.Engine().Mode() != engine.ModeHeart {
		t.Errorf("mode %q after signal loss, want heart retained", a.Engine().Mode())
	}
	if a.Debouncer().State() != gesture.StateFist {
		t.Errorf("state %q after signal loss, want fist retained", a.Debouncer().State())
	}
}

func TestApp_FlickerSuppressed(t *testing.T) {
	a := testApp(t)

	fist := detector.FistLandmarks()
	open := detector.OpenPalmLandmarks()

	// Alternating frames never reach the debounce threshold.
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			a.processHands(frameWith(fist))
		} else {
			a.processHands(frameWith(open))
		}
	}

	if a.Engine().Mode() != engine.ModeStarfield {
		t.Errorf("flickering input switched mode to %q", a.Engine().Mode())
	}
}

func TestApp_PalmSteersRotation(t *testing.T) {
	a := testApp(t)

	hand := detector.OpenPalmLandmarks()
	a.processHands(frameWith(hand))

	// Ticks ease the rotation toward the palm-derived target.
	for i := 0; i < 200; i++ {
		a.Engine().Tick()
	}

	yaw, pitch := a.Engine().Rotation()
	if yaw == 0 && pitch == 0 {
		t.Error("palm position did not steer rotation")
	}
}

func TestApp_StartStopIdempotent(t *testing.T) {
	a := testApp(t)

	mock := capture.NewMockCamera()
	defer mock.Release()
	a.camera = mock

	if err := a.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("second Start() failed: %v", err)
	}

	a.Stop()
	a.Stop() // no-op
}

func TestApp_DisableResetsPending(t *testing.T) {
	a := testApp(t)

	fist := detector.FistLandmarks()
	a.processHands(frameWith(fist))
	a.processHands(frameWith(fist))

	a.SetEnabled(false)
	a.SetEnabled(true)

	// The earlier partial run must not count toward confirmation.
	a.processHands(frameWith(fist))
	a.processHands(frameWith(fist))
	if a.Engine().Mode() == engine.ModeHeart {
		t.Error("mode switched without a full post-resume run")
	}

	a.processHands(frameWith(fist))
	if a.Engine().Mode() != engine.ModeHeart {
		t.Error("expected mode switch after a full fresh run")
	}
}
