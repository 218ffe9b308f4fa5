package detector

import (
	"errors"
	"math"
	"testing"
)

func TestHandLandmarks_PalmCenter(t *testing.T) {
	lm := basePalm()
	center := lm.PalmCenter()

	wantX := (0.50 + 0.55 + 0.50 + 0.45 + 0.40) / 5
	wantY := (0.80 + 0.68 + 0.66 + 0.68 + 0.72) / 5

	if math.Abs(center.X-wantX) > 1e-9 || math.Abs(center.Y-wantY) > 1e-9 {
		t.Errorf("palm center (%.4f, %.4f), want (%.4f, %.4f)", center.X, center.Y, wantX, wantY)
	}
}

func TestHandLandmarks_HandSize(t *testing.T) {
	lm := basePalm()
	// Wrist (0.50, 0.80) to middle MCP (0.50, 0.66).
	if got := lm.HandSize(); math.Abs(got-0.14) > 1e-9 {
		t.Errorf("hand size %.4f, want 0.14", got)
	}

	deg := DegenerateLandmarks()
	if got := deg.HandSize(); got != 0 {
		t.Errorf("degenerate hand size %.4f, want 0", got)
	}
}

func TestMockDetector_FixedHands(t *testing.T) {
	m := NewMockDetector()
	m.SetHands([]HandLandmarks{OpenPalmLandmarks()})

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(hands))
	}
}

func TestMockDetector_Script(t *testing.T) {
	m := NewMockDetector()
	m.Script(
		[]HandLandmarks{OpenPalmLandmarks()},
		nil,
		[]HandLandmarks{FistLandmarks()},
	)

	first, _ := m.Detect(nil)
	if len(first) != 1 {
		t.Errorf("frame 1: expected 1 hand, got %d", len(first))
	}

	second, _ := m.Detect(nil)
	if len(second) != 0 {
		t.Errorf("frame 2: expected no hands, got %d", len(second))
	}

	third, _ := m.Detect(nil)
	if len(third) != 1 {
		t.Errorf("frame 3: expected 1 hand, got %d", len(third))
	}

	// Script exhausted: falls back to fixed hands (none configured).
	fourth, _ := m.Detect(nil)
	if len(fourth) != 0 {
		t.Errorf("frame 4: expected no hands after script, got %d", len(fourth))
	}
}

func TestMockDetector_Error(t *testing.T) {
	m := NewMockDetector()
	wantErr := errors.New("camera unplugged")
	m.SetError(wantErr)

	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("expected configured error, got %v", err)
	}
}

func TestFixtures_FingertipSpread(t *testing.T) {
	open := OpenPalmLandmarks()
	center := open.PalmCenter()
	size := open.HandSize()

	// Every fingertip of the open palm sits well outside the extension
	// threshold used by the classifier.
	for _, tip := range Fingertips() {
		norm := open.Points[tip].DistanceTo(center) / size
		if norm <= 1.3 {
			t.Errorf("open palm tip %d normalized distance %.3f, want > 1.3", tip, norm)
		}
	}

	fist := FistLandmarks()
	center = fist.PalmCenter()
	size = fist.HandSize()
	for _, tip := range Fingertips() {
		norm := fist.Points[tip].DistanceTo(center) / size
		if norm > 1.3 {
			t.Errorf("fist tip %d normalized distance %.3f, want <= 1.3", tip, norm)
		}
	}
}
