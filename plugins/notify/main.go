// Package main provides a desktop notification hook. It posts an OS
// notification when the animation switches mode.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the hook executor.
type Request struct {
	InvocationID string          `json:"invocationId"`
	Event        string          `json:"event"`
	From         string          `json:"from,omitempty"`
	To           string          `json:"to,omitempty"`
	Mode         string          `json:"mode"`
	Config       json.RawMessage `json:"config,omitempty"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	if req.Event != "mode-changed" {
		writeResponse(Response{Success: true})
		return
	}

	message := fmt.Sprintf("Switched to %s mode (gesture: %s)", req.Mode, req.To)
	if err := notify("Particles", message); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("notification failed: %v", err)})
		return
	}

	writeResponse(Response{Success: true})
}

// notify posts a desktop notification using the platform's native tool.
func notify(title, message string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		return exec.Command("osascript", "-e", script).Run()
	case "linux":
		return exec.Command("notify-send", title, message).Run()
	default:
		return fmt.Errorf("notifications not supported on %s", runtime.GOOS)
	}
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
