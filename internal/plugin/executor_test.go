package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeHookScript(t *testing.T, content string) *Hook {
	t.Helper()

	tmpDir := t.TempDir()
	scriptPath := filepath.Join(tmpDir, "hook.sh")
	if err := os.WriteFile(scriptPath, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Hook{
		Manifest: Manifest{
			Name:       "test-hook",
			Version:    "1.0.0",
			Executable: "hook.sh",
			Events:     []string{EventGestureConfirmed},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}
}

func TestExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	hook := writeHookScript(t, `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"ok"}}
EOF
`)

	request := &Request{
		InvocationID: "inv-1",
		Event:        EventGestureConfirmed,
		From:         "none",
		To:           "fist",
		Mode:         "heart",
	}

	executor := NewExecutor(5000)
	response, err := executor.Execute(hook, request)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !response.Success {
		t.Error("expected success=true")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "ok" {
		t.Errorf("expected message 'ok', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	hook := writeHookScript(t, `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`)

	request := &Request{
		InvocationID: "inv-2",
		Event:        EventModeChanged,
		Mode:         "starfield",
	}

	executor := NewExecutor(5000)
	response, err := executor.Execute(hook, request)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var data struct {
		Received Request `json:"received"`
	}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data.Received.Event != EventModeChanged {
		t.Errorf("hook received event %q, want %q", data.Received.Event, EventModeChanged)
	}
	if data.Received.Mode != "starfield" {
		t.Errorf("hook received mode %q, want starfield", data.Received.Mode)
	}
}

func TestExecutor_Execute_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	hook := writeHookScript(t, `#!/bin/sh
sleep 5
echo '{"success":true}'
`)

	executor := NewExecutor(200)
	_, err := executor.Execute(hook, &Request{Event: EventModeChanged, Mode: "heart"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestExecutor_Execute_FailureWithStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	hook := writeHookScript(t, `#!/bin/sh
echo "boom" >&2
exit 1
`)

	executor := NewExecutor(5000)
	_, err := executor.Execute(hook, &Request{Event: EventModeChanged, Mode: "heart"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected stderr in error, got %v", err)
	}
}

func TestExecutor_Execute_InvalidJSON(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	hook := writeHookScript(t, `#!/bin/sh
echo "not json"
`)

	executor := NewExecutor(5000)
	_, err := executor.Execute(hook, &Request{Event: EventModeChanged, Mode: "heart"})
	if err == nil {
		t.Fatal("expected parse error")
	}
}
