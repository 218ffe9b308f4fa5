// Package main provides a logging hook that appends confirmed gesture
// transitions to a file, useful for tuning debounce settings.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
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

// Config controls where the log is written.
type Config struct {
	Path string `json:"path"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	path, err := logPath(req.Config)
	if err != nil {
		writeResponse(Response{Error: err.Error()})
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to open log: %v", err)})
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s %s from=%s to=%s mode=%s\n",
		time.Now().Format(time.RFC3339), req.Event, req.From, req.To, req.Mode)
	if _, err := f.WriteString(line); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to write log: %v", err)})
		return
	}

	writeResponse(Response{Success: true})
}

// logPath resolves the log file location from the hook config,
// defaulting to ~/.particles/gestures.log.
func logPath(raw json.RawMessage) (string, error) {
	if len(raw) > 0 {
		var cfg Config
		if err := json.Unmarshal(raw, &cfg); err == nil && cfg.Path != "" {
			return cfg.Path, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %v", err)
	}
	return filepath.Join(homeDir, ".particles", "gestures.log"), nil
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
