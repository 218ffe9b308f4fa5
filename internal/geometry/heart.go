package geometry

import (
	"math"
	"math/rand"
	"time"
)

// HeartConfig holds tuning parameters for heart point-cloud generation.
type HeartConfig struct {
	// SurfaceRatio is the fraction of points sampled on the outer shell.
	// The remainder fills the interior near the shell.
	SurfaceRatio float64

	// DepthRatio controls how puffy the solid is: the extruded depth of a
	// surface point is DepthRatio times its local outline radius.
	DepthRatio float64

	// Jitter is the per-axis random displacement added to surface points
	// to break up visible parameter rings.
	Jitter float64

	// InteriorBias is the power-law exponent for the interior radial
	// scale. Values below 1 skew samples toward the outer shell.
	InteriorBias float64

	// VoidThreshold is the half-width of the column around the vertical
	// symmetry axis where candidates are rejected. Naive extrusion of the
	// outline collapses the cusp and tip onto that axis, producing a
	// dense streak of points there.
	VoidThreshold float64

	// VoidLeak is the probability of keeping a candidate inside the void
	// column anyway. A small leak avoids a visible empty slot.
	VoidLeak float64

	// ScaleX, ScaleY, ScaleZ stretch the finished cloud per axis.
	ScaleX, ScaleY, ScaleZ float64

	// Seed fixes the random source when non-zero. Zero seeds from the
	// clock.
	Seed int64
}

// DefaultHeartConfig returns a HeartConfig with sensible default values.
func DefaultHeartConfig() HeartConfig {
	return HeartConfig{
		SurfaceRatio:  0.7,
		DepthRatio:    0.45,
		Jitter:        0.02,
		InteriorBias:  0.4,
		VoidThreshold: 0.05,
		VoidLeak:      0.06,
		ScaleX:        1.0,
		ScaleY:        1.0,
		ScaleZ:        1.0,
	}
}

// GenerateHeart produces count points forming a rounded heart solid.
//
// The cloud is a two-phase mixture. Surface points sample a closed
// single-cusp outline curve and extrude it around the vertical axis with
// a depth proportional to the local outline radius, so every depth slice
// stays heart-shaped and thickness tapers toward the cusp and the tip.
// Interior points reuse the outline scaled by a shell-biased radial
// factor. Candidates falling in the thin column around the symmetry axis
// are rejected and resampled except for a small configured leak, which
// suppresses the streak artifact the naive parametrization produces.
//
// Each call owns its own random source; results are independent of any
// prior call. The function always returns exactly count points: the
// rejection loop terminates because acceptance probability is bounded
// below by the leak probability.
func GenerateHeart(count int, cfg HeartConfig) []Point3D {
	if count <= 0 {
		return nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	points := make([]Point3D, 0, count)
	surfaceCount := int(float64(count) * cfg.SurfaceRatio)

	for len(points) < count {
		var p Point3D
		if len(points) < surfaceCount {
			p = sampleHeartSurface(rng, cfg)
		} else {
			p = sampleHeartInterior(rng, cfg)
		}

		// Center-void filter: applies to every candidate, padding included.
		if math.Abs(p.X) < cfg.VoidThreshold && math.Abs(p.Z) < cfg.VoidThreshold {
			if rng.Float64() >= cfg.VoidLeak {
				continue
			}
		}

		points = append(points, p.Scale(cfg.ScaleX, cfg.ScaleY, cfg.ScaleZ))
	}

	return points
}

// heartOutline evaluates the classic closed heart curve at parameter t
// in [0, 2π), normalized to roughly unit scale. The curve has a single
// cusp at the top and a point at the bottom.
func heartOutline(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	return x / 17, y / 17
}

// sampleHeartSurface draws one point on the rounded shell.
func sampleHeartSurface(rng *rand.Rand, cfg HeartConfig) Point3D {
	t := rng.Float64() * 2 * math.Pi
	phi := rng.Float64() * 2 * math.Pi

	hx, hy := heartOutline(t)

	// Revolve the outline's horizontal offset around the vertical axis,
	// flattened by DepthRatio so the solid is a lens rather than a
	// surface of revolution. Depth is proportional to |hx|, which tapers
	// thickness to zero at the cusp and the tip.
	p := Point3D{
		X: hx * math.Cos(phi),
		Y: hy,
		Z: hx * math.Sin(phi) * cfg.DepthRatio,
	}

	// Independent jitter per axis breaks up parameter rings.
	p.X += (rng.Float64()*2 - 1) * cfg.Jitter
	p.Y += (rng.Float64()*2 - 1) * cfg.Jitter
	p.Z += (rng.Float64()*2 - 1) * cfg.Jitter

	return p
}

// sampleHeartInterior draws one point inside the shell, biased outward
// so the core stays sparse.
func sampleHeartInterior(rng *rand.Rand, cfg HeartConfig) Point3D {
	t := rng.Float64() * 2 * math.Pi
	phi := rng.Float64() * 2 * math.Pi

	// Sub-linear power law: most radial factors land above 0.5, keeping
	// the fill near the shell.
	radial := math.Pow(rng.Float64(), cfg.InteriorBias)

	hx, hy := heartOutline(t)
	hx *= radial
	hy *= radial

	return Point3D{
		X: hx * math.Cos(phi),
		Y: hy,
		Z: hx * math.Sin(phi) * cfg.DepthRatio,
	}
}
