// Package engine owns the live particle buffer and eases it toward the
// active target geometry on every tick.
package engine

import "github.com/AKAshrimp/Interactive-3D-particle-system/internal/geometry"

// Mode selects which target set live particles ease toward.
type Mode string

const (
	// ModeHeart eases particles toward the heart solid with a heartbeat
	// pulse applied.
	ModeHeart Mode = "heart"
	// ModeStarfield eases particles toward the spherical starfield.
	ModeStarfield Mode = "starfield"
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m == ModeHeart || m == ModeStarfield
}

// Frame is the per-tick payload handed to the rendering collaborator.
//
// Positions aliases the engine's live buffer and Sizes its per-point
// size table: both are valid only for the duration of the Render call
// and must be copied if retained. Yaw and Pitch describe one rigid
// group-level rotation to apply to the whole cloud; positions are not
// pre-rotated.
type Frame struct {
	Positions []geometry.Point3D
	Sizes     []float64
	Yaw       float64
	Pitch     float64
	Mode      Mode
	Pulse     float64
}

// Renderer is the rendering collaborator invoked once per tick with the
// updated frame. Implementations run synchronously inside the tick and
// must return promptly.
type Renderer interface {
	Render(frame *Frame)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(frame *Frame)

// Render implements Renderer.
func (f RendererFunc) Render(frame *Frame) { f(frame) }
