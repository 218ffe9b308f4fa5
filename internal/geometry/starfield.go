package geometry

import (
	"math"
	"math/rand"
	"time"
)

// GenerateStarfield produces count points uniformly distributed through
// a sphere of the given radius.
//
// The polar angle is drawn as acos(uniform(-1,1)) to avoid clustering at
// the poles, and the radial distance as radius times the cube root of a
// uniform variate so density is uniform by volume rather than bunched at
// the center. Each call owns its own random source.
func GenerateStarfield(count int, radius float64) []Point3D {
	return GenerateStarfieldSeeded(count, radius, 0)
}

// GenerateStarfieldSeeded is GenerateStarfield with a fixed seed when
// seed is non-zero, for reproducible clouds in tests.
func GenerateStarfieldSeeded(count int, radius float64, seed int64) []Point3D {
	if count <= 0 {
		return nil
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	points := make([]Point3D, count)
	for i := range points {
		azimuth := rng.Float64() * 2 * math.Pi
		polar := math.Acos(rng.Float64()*2 - 1)
		r := radius * math.Cbrt(rng.Float64())

		sinPolar := math.Sin(polar)
		points[i] = Point3D{
			X: r * sinPolar * math.Cos(azimuth),
			Y: r * sinPolar * math.Sin(azimuth),
			Z: r * math.Cos(polar),
		}
	}

	return points
}
