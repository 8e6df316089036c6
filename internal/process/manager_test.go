//go:build !windows
// +build !windows

package process

import (
	"fmt"
	"os"
	"testing"
)

func TestManager_ReadPID(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	if err := os.WriteFile(testPIDFile, []byte("12345\n"), 0644); err != nil {
		t.Fatalf("Failed to write PID file: %v", err)
	}

	pid, err := ReadPID()
	if err != nil {
		t.Fatalf("ReadPID failed: %v", err)
	}
	if pid != 12345 {
		t.Errorf("Expected PID 12345, got %d", pid)
	}
}

func TestManager_ReadPIDMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return tmpDir + "/missing.pid" }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	if _, err := ReadPID(); err == nil {
		t.Error("Expected error for missing PID file")
	}
}

func TestManager_IsRunning(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	// No PID file at all
	if IsRunning() {
		t.Error("Expected not running when PID file is missing")
	}

	// Our own PID is definitely alive
	pidContent := fmt.Sprintf("%d", os.Getpid())
	if err := os.WriteFile(testPIDFile, []byte(pidContent), 0644); err != nil {
		t.Fatalf("Failed to write PID file: %v", err)
	}
	if !IsRunning() {
		t.Error("Expected running for current process PID")
	}
}

func TestManager_StopNotRunning(t *testing.T) {
	tmpDir := t.TempDir()

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return tmpDir + "/missing.pid" }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	err := StopProcess()
	if err == nil {
		t.Fatal("Expected error when stopping a daemon that is not running")
	}
	if err.Error() != "dockops is not running" {
		t.Errorf("Expected 'dockops is not running' error, got: %v", err)
	}
}

func TestManager_RestartWhenStopped(t *testing.T) {
	tmpDir := t.TempDir()

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return tmpDir + "/missing.pid" }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	// With no daemon running restart degenerates to a plain start
	if err := RestartProcess(); err != nil {
		t.Errorf("Restart with no running daemon failed: %v", err)
	}
}
