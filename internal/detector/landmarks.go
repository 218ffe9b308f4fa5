// Package detector provides hand detection interfaces and types for the
// particle system's gesture input.
package detector

import "github.com/AKAshrimp/Interactive-3D-particle-system/internal/geometry"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// fingertips lists the tip landmark of each of the five fingers.
var fingertips = [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// Fingertips returns the landmark indices of the five fingertips.
func Fingertips() [5]int {
	return fingertips
}

// HandLandmarks represents the 21 hand landmarks of one detected hand.
// X and Y are normalized image coordinates in [0,1] with the origin at
// the top-left; Z is relative depth.
type HandLandmarks struct {
	Points     [NumLandmarks]geometry.Point3D `json:"points"`
	Handedness string                         `json:"handedness"` // "Left" or "Right"
	Score      float64                        `json:"score"`
}

// PalmCenter returns the mean of the wrist and the four finger MCP
// joints, a stable reference point near the middle of the palm.
func (h *HandLandmarks) PalmCenter() geometry.Point3D {
	var sum geometry.Point3D
	for _, idx := range [5]int{Wrist, IndexMCP, MiddleMCP, RingMCP, PinkyMCP} {
		sum = sum.Add(h.Points[idx])
	}
	return sum.Mul(1.0 / 5.0)
}

// HandSize returns the wrist to middle-MCP distance, used to normalize
// fingertip distances so classification is scale invariant.
func (h *HandLandmarks) HandSize() float64 {
	return h.Points[Wrist].DistanceTo(h.Points[MiddleMCP])
}
