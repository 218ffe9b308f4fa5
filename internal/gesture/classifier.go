// Package gesture converts hand landmarks into debounced gesture states
// that drive the particle animation.
package gesture

import (
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
)

// Label is the instantaneous classification of a single frame.
type Label string

const (
	// LabelOpen means at least four of five fingers are extended.
	LabelOpen Label = "open"
	// LabelFist means at most one finger is extended.
	LabelFist Label = "fist"
	// LabelUnknown covers ambiguous poses and degenerate detections.
	LabelUnknown Label = "unknown"
)

// Classifier parameters. Fingertip distances are normalized by hand
// size, so the thresholds are scale invariant.
const (
	// ExtensionThreshold is the normalized palm-to-fingertip distance
	// above which a finger counts as extended.
	ExtensionThreshold = 1.3

	// minHandSize guards against degenerate detections where the
	// landmarks collapse and normalization would divide by zero.
	minHandSize = 1e-6
)

// Classify returns the instantaneous gesture label for one frame of
// hand landmarks. It is pure and stateless: the same landmarks always
// produce the same label.
//
// A hand with at least four fingertips beyond ExtensionThreshold from
// the palm center is open; one with at most one is a fist. Anything in
// between, and any hand too small to normalize, is unknown.
func Classify(hand *detector.HandLandmarks) Label {
	if hand == nil {
		return LabelUnknown
	}

	size := hand.HandSize()
	if size < minHandSize {
		return LabelUnknown
	}

	center := hand.PalmCenter()

	extended := 0
	for _, tip := range detector.Fingertips() {
		if hand.Points[tip].DistanceTo(center)/size > ExtensionThreshold {
			extended++
		}
	}

	switch {
	case extended >= 4:
		return LabelOpen
	case extended <= 1:
		return LabelFist
	default:
		return LabelUnknown
	}
}
