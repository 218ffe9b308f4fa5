package gesture

import (
	"sync"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
)

// State is a debounced, confirmed gesture state.
type State string

const (
	// StateNone is the initial state before any gesture is confirmed.
	StateNone State = "none"
	// StateOpen is a confirmed open palm.
	StateOpen State = "open"
	// StateFist is a confirmed fist.
	StateFist State = "fist"
)

// DefaultThreshold is the number of consecutive agreeing frames required
// before a state change is confirmed.
const DefaultThreshold = 5

// Debouncer smooths frame-by-frame classification flicker: a new state
// is confirmed only after Threshold consecutive frames agree on it.
// Unknown frames and frames matching the already-confirmed state reset
// the pending counter, so a transition always requires an unbroken run.
type Debouncer struct {
	mu           sync.Mutex
	threshold    int
	confirmed    State
	pendingLabel Label
	pendingCount int
}

// NewDebouncer creates a Debouncer requiring threshold consecutive
// agreeing frames. Values below 1 fall back to DefaultThreshold.
func NewDebouncer(threshold int) *Debouncer {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &Debouncer{
		threshold: threshold,
		confirmed: StateNone,
	}
}

// Update classifies one frame of landmarks and feeds the result through
// the debounce state machine. A nil hand (no detection this frame)
// counts as unknown and resets any pending transition. The returned
// bool is true only on the frame where a new state is confirmed.
func (d *Debouncer) Update(hand *detector.HandLandmarks) (State, bool) {
	return d.Observe(Classify(hand))
}

// Observe feeds one raw label through the state machine. Exposed
// separately so alternate classifiers can drive the same debouncing.
func (d *Debouncer) Observe(label Label) (State, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if label == LabelUnknown {
		d.clearPending()
		return d.confirmed, false
	}

	candidate := stateFor(label)
	if candidate == d.confirmed {
		d.clearPending()
		return d.confirmed, false
	}

	if label != d.pendingLabel {
		d.pendingLabel = label
		d.pendingCount = 1
		return d.confirmed, false
	}

	d.pendingCount++
	if d.pendingCount < d.threshold {
		return d.confirmed, false
	}

	d.confirmed = candidate
	d.clearPending()
	return d.confirmed, true
}

// State returns the currently confirmed state.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.confirmed
}

// Reset clears the confirmed state and any pending transition. Safe to
// call at any time, e.g. on signal loss.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirmed = StateNone
	d.clearPending()
}

func (d *Debouncer) clearPending() {
	d.pendingLabel = ""
	d.pendingCount = 0
}

func stateFor(label Label) State {
	switch label {
	case LabelOpen:
		return StateOpen
	case LabelFist:
		return StateFist
	default:
		return StateNone
	}
}
