package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/geometry"
)

// MockDetector is a test implementation of the Detector interface.
// It returns either a fixed result or a scripted sequence of results,
// one per Detect call.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	script [][]HandLandmarks
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Script queues per-call results. Each Detect call consumes one entry;
// when the script is exhausted Detect falls back to the fixed hands.
func (m *MockDetector) Script(frames ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, frames...)
}

// Detect returns the pre-configured hands, the next scripted result, or
// the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// basePalm places the wrist and the four finger MCP joints in a typical
// upright hand pose. Fixture poses below differ only in fingertip
// placement.
func basePalm() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = geometry.Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	lm.Points[IndexMCP] = geometry.Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	lm.Points[MiddleMCP] = geometry.Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	lm.Points[RingMCP] = geometry.Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	lm.Points[PinkyMCP] = geometry.Point3D{X: 0.40, Y: 0.72, Z: 0.0}

	// Intermediate joints, roughly between MCP and tip positions. They do
	// not influence classification but keep the skeleton plausible.
	lm.Points[ThumbCMC] = geometry.Point3D{X: 0.55, Y: 0.76, Z: 0.01}
	lm.Points[ThumbMCP] = geometry.Point3D{X: 0.59, Y: 0.72, Z: 0.02}
	lm.Points[ThumbIP] = geometry.Point3D{X: 0.62, Y: 0.68, Z: 0.02}
	lm.Points[IndexPIP] = geometry.Point3D{X: 0.56, Y: 0.58, Z: 0.0}
	lm.Points[IndexDIP] = geometry.Point3D{X: 0.57, Y: 0.48, Z: 0.0}
	lm.Points[MiddlePIP] = geometry.Point3D{X: 0.50, Y: 0.54, Z: 0.0}
	lm.Points[MiddleDIP] = geometry.Point3D{X: 0.50, Y: 0.42, Z: 0.0}
	lm.Points[RingPIP] = geometry.Point3D{X: 0.44, Y: 0.56, Z: 0.0}
	lm.Points[RingDIP] = geometry.Point3D{X: 0.43, Y: 0.46, Z: 0.0}
	lm.Points[PinkyPIP] = geometry.Point3D{X: 0.39, Y: 0.62, Z: 0.0}
	lm.Points[PinkyDIP] = geometry.Point3D{X: 0.38, Y: 0.52, Z: 0.0}

	return lm
}

// OpenPalmLandmarks returns a preset pose with all five fingers
// extended well away from the palm center.
func OpenPalmLandmarks() HandLandmarks {
	lm := basePalm()

	lm.Points[ThumbTip] = geometry.Point3D{X: 0.73, Y: 0.60, Z: 0.03}
	lm.Points[IndexTip] = geometry.Point3D{X: 0.58, Y: 0.35, Z: 0.0}
	lm.Points[MiddleTip] = geometry.Point3D{X: 0.50, Y: 0.28, Z: 0.0}
	lm.Points[RingTip] = geometry.Point3D{X: 0.42, Y: 0.35, Z: 0.0}
	lm.Points[PinkyTip] = geometry.Point3D{X: 0.38, Y: 0.40, Z: 0.0}

	return lm
}

// FistLandmarks returns a preset pose with all five fingertips curled
// in close to the palm center.
func FistLandmarks() HandLandmarks {
	lm := basePalm()

	lm.Points[ThumbTip] = geometry.Point3D{X: 0.54, Y: 0.66, Z: -0.02}
	lm.Points[IndexTip] = geometry.Point3D{X: 0.52, Y: 0.64, Z: -0.04}
	lm.Points[MiddleTip] = geometry.Point3D{X: 0.48, Y: 0.63, Z: -0.04}
	lm.Points[RingTip] = geometry.Point3D{X: 0.44, Y: 0.64, Z: -0.04}
	lm.Points[PinkyTip] = geometry.Point3D{X: 0.41, Y: 0.66, Z: -0.02}

	return lm
}

// PartialLandmarks returns a preset pose with only the index and middle
// fingers extended, landing between the open and fist thresholds.
func PartialLandmarks() HandLandmarks {
	lm := FistLandmarks()

	lm.Points[IndexTip] = geometry.Point3D{X: 0.58, Y: 0.35, Z: 0.0}
	lm.Points[MiddleTip] = geometry.Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	return lm
}

// DegenerateLandmarks returns a pose with every landmark collapsed onto
// one point, as a failed detection sometimes produces.
func DegenerateLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.1,
	}
	for i := range lm.Points {
		lm.Points[i] = geometry.Point3D{X: 0.5, Y: 0.5, Z: 0.0}
	}
	return lm
}
