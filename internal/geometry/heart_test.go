package geometry

import (
	"math"
	"testing"
)

func TestGenerateHeart_ExactCount(t *testing.T) {
	cfg := DefaultHeartConfig()
	cfg.Seed = 42

	counts := []int{1, 2, 10, 1000, 20000}
	for _, n := range counts {
		points := GenerateHeart(n, cfg)
		if len(points) != n {
			t.Errorf("GenerateHeart(%d) returned %d points", n, len(points))
		}
	}
}

func TestGenerateHeart_ZeroCount(t *testing.T) {
	points := GenerateHeart(0, DefaultHeartConfig())
	if len(points) != 0 {
		t.Errorf("expected no points for count 0, got %d", len(points))
	}
}

func TestGenerateHeart_CenterVoidLeak(t *testing.T) {
	cfg := DefaultHeartConfig()
	cfg.Seed = 7

	const n = 20000
	points := GenerateHeart(n, cfg)

	// Count points inside the void column, measured in pre-scale units.
	inVoid := 0
	for _, p := range points {
		if math.Abs(p.X/cfg.ScaleX) < cfg.VoidThreshold && math.Abs(p.Z/cfg.ScaleZ) < cfg.VoidThreshold {
			inVoid++
		}
	}

	// The leak probability bounds the fraction of axis-column points that
	// survive the filter. Allow slack for candidates that landed in the
	// column at a higher natural rate before filtering.
	fraction := float64(inVoid) / float64(n)
	if fraction > cfg.VoidLeak {
		t.Errorf("void column fraction %.4f exceeds leak probability %.4f", fraction, cfg.VoidLeak)
	}
}

func TestGenerateHeart_CallIndependence(t *testing.T) {
	cfg := DefaultHeartConfig()
	cfg.Seed = 99

	first := GenerateHeart(500, cfg)
	// An unrelated call in between must not perturb the next seeded call.
	GenerateHeart(1234, DefaultHeartConfig())
	second := GenerateHeart(500, cfg)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seeded calls diverged at point %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateHeart_AxisScales(t *testing.T) {
	cfg := DefaultHeartConfig()
	cfg.Seed = 11

	base := GenerateHeart(1000, cfg)

	cfg.ScaleX = 2.0
	cfg.ScaleY = 0.5
	cfg.ScaleZ = 3.0
	scaled := GenerateHeart(1000, cfg)

	for i := range base {
		if math.Abs(scaled[i].X-base[i].X*2.0) > 1e-12 ||
			math.Abs(scaled[i].Y-base[i].Y*0.5) > 1e-12 ||
			math.Abs(scaled[i].Z-base[i].Z*3.0) > 1e-12 {
			t.Fatalf("per-axis scale changed the underlying shape at point %d", i)
		}
	}
}

func TestGenerateHeart_Bounded(t *testing.T) {
	cfg := DefaultHeartConfig()
	cfg.Seed = 3

	points := GenerateHeart(5000, cfg)
	limit := 1.0 + cfg.Jitter + 1e-9
	for _, p := range points {
		if math.Abs(p.X) > limit || math.Abs(p.Y) > limit || math.Abs(p.Z) > limit {
			t.Fatalf("point %+v escapes the unit envelope", p)
		}
	}
}

func TestHeartOutline_Closed(t *testing.T) {
	x0, y0 := heartOutline(0)
	x1, y1 := heartOutline(2 * math.Pi)
	if math.Abs(x0-x1) > 1e-9 || math.Abs(y0-y1) > 1e-9 {
		t.Errorf("outline is not closed: (%.6f,%.6f) vs (%.6f,%.6f)", x0, y0, x1, y1)
	}
}
