// Package viewer renders animation frames in a desktop window. It is
// the native alternative to the browser client: the engine pushes
// frames into the Viewer, which projects them each display tick.
package viewer

import (
	"image"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/geometry"
)

const (
	defaultWidth  = 960
	defaultHeight = 720

	// cameraDistance pushes the cloud away from the eye; both shapes
	// fit inside a unit-ish sphere after generation.
	cameraDistance = 4.0
	focalLength    = 600.0
)

// Viewer implements engine.Renderer and ebiten.Game. The engine calls
// Render from its tick loop; ebiten calls Draw from the display loop.
// Frames are double-buffered: Render writes the engine-side buffers
// under the lock, and Draw copies them into its own buffers before
// projecting, so the two goroutines never share a backing array
// outside the lock.
type Viewer struct {
	mu    sync.Mutex
	frame engine.Frame
	buf   []geometry.Point3D
	sizes []float64

	// Draw-side buffers, touched only by the ebiten goroutine.
	drawBuf   []geometry.Point3D
	drawSizes []float64

	width  int
	height int
	img    *image.RGBA
	fbImg  *ebiten.Image
}

// New creates a Viewer with the default window size.
func New() *Viewer {
	return &Viewer{
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Render stores a copy of the frame for the next Draw. The engine
// reuses its frame buffers between ticks, so the positions must be
// copied out before returning.
func (v *Viewer) Render(f *engine.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if cap(v.buf) < len(f.Positions) {
		v.buf = make([]geometry.Point3D, len(f.Positions))
		v.sizes = make([]float64, len(f.Sizes))
	}
	v.buf = v.buf[:len(f.Positions)]
	copy(v.buf, f.Positions)
	v.sizes = v.sizes[:len(f.Sizes)]
	copy(v.sizes, f.Sizes)

	v.frame = engine.Frame{
		Positions: v.buf,
		Sizes:     v.sizes,
		Yaw:       f.Yaw,
		Pitch:     f.Pitch,
		Mode:      f.Mode,
		Pulse:     f.Pulse,
	}
}

// snapshot copies the latest frame into the draw-side buffers and
// returns it. The returned slices belong to the caller until the next
// snapshot; Render never writes into them.
func (v *Viewer) snapshot() engine.Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	if cap(v.drawBuf) < len(v.buf) {
		v.drawBuf = make([]geometry.Point3D, len(v.buf))
		v.drawSizes = make([]float64, len(v.sizes))
	}
	v.drawBuf = v.drawBuf[:len(v.buf)]
	copy(v.drawBuf, v.buf)
	v.drawSizes = v.drawSizes[:len(v.sizes)]
	copy(v.drawSizes, v.sizes)

	frame := v.frame
	frame.Positions = v.drawBuf
	frame.Sizes = v.drawSizes
	return frame
}

// Update implements ebiten.Game. The engine drives all animation
// state, so there is nothing to advance here.
func (v *Viewer) Update() error {
	return nil
}

// Draw implements ebiten.Game. It projects the latest frame with a
// simple perspective camera and blits the result.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.img == nil {
		v.img = image.NewRGBA(image.Rect(0, 0, v.width, v.height))
		v.fbImg = ebiten.NewImage(v.width, v.height)
	}

	frame := v.snapshot()

	pix := v.img.Pix
	for i := range pix {
		pix[i] = 0
	}
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xFF
	}

	sinYaw, cosYaw := math.Sin(frame.Yaw), math.Cos(frame.Yaw)
	sinPitch, cosPitch := math.Sin(frame.Pitch), math.Cos(frame.Pitch)

	cx := float64(v.width) / 2
	cy := float64(v.height) / 2

	for i, p := range frame.Positions {
		// Yaw about Y, then pitch about X.
		x := p.X*cosYaw + p.Z*sinYaw
		z := -p.X*sinYaw + p.Z*cosYaw
		y := p.Y*cosPitch - z*sinPitch
		z = p.Y*sinPitch + z*cosPitch

		depth := z + cameraDistance
		if depth <= 0.1 {
			continue
		}

		sx := int(cx + focalLength*x/depth)
		sy := int(cy - focalLength*y/depth)
		if sx < 0 || sx >= v.width || sy < 0 || sy >= v.height {
			continue
		}

		// Nearer points draw brighter.
		shade := 1.0 - (z+2)/6
		if shade < 0.25 {
			shade = 0.25
		} else if shade > 1 {
			shade = 1
		}
		if i < len(frame.Sizes) {
			shade *= 0.7 + 0.3*frame.Sizes[i]
			if shade > 1 {
				shade = 1
			}
		}

		var r, g, b uint8
		if frame.Mode == engine.ModeHeart {
			r = uint8(235 * shade)
			g = uint8(64 * shade)
			b = uint8(108 * shade)
		} else {
			r = uint8(200 * shade)
			g = uint8(220 * shade)
			b = uint8(255 * shade)
		}

		j := (sy*v.width + sx) * 4
		pix[j+0] = r
		pix[j+1] = g
		pix[j+2] = b
		pix[j+3] = 0xFF
	}

	v.fbImg.ReplacePixels(v.img.Pix)
	screen.DrawImage(v.fbImg, nil)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// Run opens the window and blocks until it closes. Must be called
// from the main goroutine.
func (v *Viewer) Run() error {
	ebiten.SetWindowTitle("Particles")
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetTPS(60)
	return ebiten.RunGame(v)
}
