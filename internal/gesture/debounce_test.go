package gesture

import (
	"testing"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
)

func TestDebouncer_InitialState(t *testing.T) {
	d := NewDebouncer(5)
	if got := d.State(); got != StateNone {
		t.Errorf("initial state %q, want none", got)
	}
}

func TestDebouncer_ConfirmsAfterThreshold(t *testing.T) {
	d := NewDebouncer(5)

	// First four agreeing frames must not emit.
	for i := 0; i < 4; i++ {
		state, changed := d.Observe(LabelOpen)
		if changed {
			t.Fatalf("emitted on frame %d, want confirmation on frame 5", i+1)
		}
		if state != StateNone {
			t.Fatalf("state flipped to %q before threshold", state)
		}
	}

	state, changed := d.Observe(LabelOpen)
	if !changed {
		t.Fatal("expected emission on 5th agreeing frame")
	}
	if state != StateOpen {
		t.Fatalf("confirmed state %q, want open", state)
	}

	// Further agreeing frames emit nothing.
	if _, changed := d.Observe(LabelOpen); changed {
		t.Error("re-emitted for already confirmed state")
	}
}

func TestDebouncer_UnknownResetsPending(t *testing.T) {
	d := NewDebouncer(3)

	d.Observe(LabelFist)
	d.Observe(LabelFist)
	d.Observe(LabelUnknown) // resets the run
	d.Observe(LabelFist)
	_, changed := d.Observe(LabelFist)
	if changed {
		t.Fatal("confirmed after interrupted run, want counter reset on unknown")
	}

	_, changed = d.Observe(LabelFist)
	if !changed {
		t.Fatal("expected confirmation after a fresh unbroken run")
	}
}

func TestDebouncer_LabelFlipRestartsCount(t *testing.T) {
	d := NewDebouncer(3)

	d.Observe(LabelFist)
	d.Observe(LabelFist)
	d.Observe(LabelOpen) // pending switches to open with count 1
	d.Observe(LabelFist) // and back to fist with count 1
	if _, changed := d.Observe(LabelFist); changed {
		t.Fatal("confirmed without three consecutive agreeing frames")
	}
	if _, changed := d.Observe(LabelFist); !changed {
		t.Fatal("expected confirmation on third consecutive fist")
	}
}

func TestDebouncer_ExactlyOneEmission(t *testing.T) {
	d := NewDebouncer(5)

	// Establish a confirmed fist.
	for i := 0; i < 5; i++ {
		d.Observe(LabelFist)
	}
	if d.State() != StateFist {
		t.Fatalf("setup failed: state %q", d.State())
	}

	// Five consecutive opens yield exactly one transition, on frame 5.
	emissions := 0
	for i := 0; i < 5; i++ {
		_, changed := d.Observe(LabelOpen)
		if changed {
			emissions++
			if i != 4 {
				t.Errorf("emitted on frame %d, want frame 5", i+1)
			}
		}
	}
	if emissions != 1 {
		t.Errorf("got %d emissions, want exactly 1", emissions)
	}
}

func TestDebouncer_ConfirmedLabelResetsPending(t *testing.T) {
	d := NewDebouncer(3)

	for i := 0; i < 3; i++ {
		d.Observe(LabelOpen)
	}

	// A run toward fist interrupted by the confirmed label must restart.
	d.Observe(LabelFist)
	d.Observe(LabelFist)
	d.Observe(LabelOpen) // matches confirmed, clears pending
	d.Observe(LabelFist)
	d.Observe(LabelFist)
	if _, changed := d.Observe(LabelFist); !changed {
		t.Fatal("expected confirmation after three consecutive fists")
	}
}

func TestDebouncer_Reset(t *testing.T) {
	d := NewDebouncer(2)

	d.Observe(LabelOpen)
	d.Observe(LabelOpen)
	if d.State() != StateOpen {
		t.Fatalf("setup failed: state %q", d.State())
	}

	d.Reset()
	if d.State() != StateNone {
		t.Errorf("state after reset %q, want none", d.State())
	}

	// Reset mid-run clears the pending counter too.
	d.Observe(LabelFist)
	d.Reset()
	d.Observe(LabelFist)
	if _, changed := d.Observe(LabelFist); !changed {
		t.Error("expected a full fresh run to confirm after reset")
	}
}

func TestDebouncer_UpdateWithLandmarks(t *testing.T) {
	d := NewDebouncer(2)

	open := detector.OpenPalmLandmarks()
	d.Update(&open)
	state, changed := d.Update(&open)
	if !changed || state != StateOpen {
		t.Fatalf("two open frames: state %q changed %v", state, changed)
	}

	// Signal loss resets pending but keeps the confirmed state.
	fist := detector.FistLandmarks()
	d.Update(&fist)
	d.Update(nil)
	if _, changed := d.Update(&fist); changed {
		t.Error("confirmed fist despite signal loss breaking the run")
	}
	if d.State() != StateOpen {
		t.Errorf("signal loss flipped state to %q", d.State())
	}
}

func TestDebouncer_ThresholdFallback(t *testing.T) {
	d := NewDebouncer(0)
	for i := 0; i < DefaultThreshold-1; i++ {
		if _, changed := d.Observe(LabelOpen); changed {
			t.Fatalf("emitted on frame %d with default threshold", i+1)
		}
	}
	if _, changed := d.Observe(LabelOpen); !changed {
		t.Error("expected confirmation at the default threshold")
	}
}
