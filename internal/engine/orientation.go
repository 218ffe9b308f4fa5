package engine

import "math"

// maxTilt clamps target angles to ±0.4π so the cloud cannot flip past
// vertical.
const maxTilt = 0.4 * math.Pi

// OrientationController maps normalized 2D input to target rotation
// angles. It applies no easing itself: it only updates the targets, so
// any input source (hand position, pointer drag, touch) can drive the
// same rotation without duplicating the easing logic in the engine.
type OrientationController struct {
	sensitivity float64
	targetYaw   float64
	targetPitch float64
}

// NewOrientationController creates a controller with the given
// sensitivity in radians per unit of normalized input. Non-positive
// values fall back to 1.
func NewOrientationController(sensitivity float64) *OrientationController {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &OrientationController{sensitivity: sensitivity}
}

// SetTargetFromInput maps input pre-normalized to [-1,1] per axis to
// target yaw and pitch. Horizontal input is sign-inverted so the cloud
// turns toward the hand, and both angles are clamped to ±0.4π.
func (o *OrientationController) SetTargetFromInput(normX, normY float64) {
	o.targetYaw = clamp(-normX*o.sensitivity, -maxTilt, maxTilt)
	o.targetPitch = clamp(normY*o.sensitivity, -maxTilt, maxTilt)
}

// Target returns the current target yaw and pitch.
func (o *OrientationController) Target() (yaw, pitch float64) {
	return o.targetYaw, o.targetPitch
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
