// Package plugin runs external hook executables when the debouncer
// confirms a gesture transition, so users can bind system actions
// (notifications, media keys, lights) to the animation's state changes.
package plugin

import "encoding/json"

// Event names delivered to hooks.
const (
	// EventGestureConfirmed fires when a gesture transition survives
	// debouncing.
	EventGestureConfirmed = "gesture-confirmed"
	// EventModeChanged fires when the animation switches target geometry.
	EventModeChanged = "mode-changed"
)

// Manifest describes a hook's metadata and the events it subscribes to.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Events       []string        `json:"events"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is the JSON document sent to a hook on stdin.
type Request struct {
	// InvocationID uniquely identifies this dispatch.
	InvocationID string `json:"invocationId"`
	// Event is one of the Event* constants.
	Event string `json:"event"`
	// From and To are the previous and new confirmed gesture states.
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	// Mode is the animation mode after the transition.
	Mode string `json:"mode"`
	// Config is the hook's stored configuration.
	Config json.RawMessage `json:"config,omitempty"`
}

// Response is the JSON document a hook writes to stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook represents a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Subscribed reports whether the hook listens for the given event.
func (h *Hook) Subscribed(event string) bool {
	for _, e := range h.Manifest.Events {
		if e == event {
			return true
		}
	}
	return false
}
