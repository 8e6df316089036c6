//go:build !windows
// +build !windows

package process

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func TestLockfile_SingleInstance(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	// First instance should acquire lock successfully
	lock1, err := Acquire()
	if err != nil {
		t.Fatalf("First instance failed to acquire lock: %v", err)
	}
	defer lock1.Release()

	// Second instance should fail to acquire lock
	lock2, err := Acquire()
	if err == nil {
		lock2.Release()
		t.Fatal("Second instance should not have acquired lock")
	}

	if err.Error() != "another dockops instance is already running" {
		t.Errorf("Expected 'another dockops instance is already running' error, got: %v", err)
	}
}

func TestLockfile_ReleaseAndReacquire(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	lock1, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	lock1.Release()

	// Should be able to acquire again after release
	lock2, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to reacquire lock after release: %v", err)
	}
	defer lock2.Release()

	if _, err := os.Stat(testPIDFile); os.IsNotExist(err) {
		t.Error("PID file should exist after reacquisition")
	}
}

func TestLockfile_Check(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	// Check when no lock exists
	running, pid, err := Check()
	if err != nil {
		t.Errorf("Check should not error when no lock exists: %v", err)
	}
	if running {
		t.Error("Check should return false when no process is running")
	}
	if pid != 0 {
		t.Errorf("Check should return PID 0 when no process running, got %d", pid)
	}

	lock, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer lock.Release()

	// Check when lock is held
	running, pid, err = Check()
	if err != nil {
		t.Errorf("Check failed: %v", err)
	}
	if !running {
		t.Error("Check should return true when lock is held")
	}
	if pid != os.Getpid() {
		t.Errorf("Check should return current PID %d, got %d", os.Getpid(), pid)
	}
}

func TestLockfile_ConcurrentAcquisition(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	var successCount, errorCount int32
	done := make(chan bool, 10)

	for i := 0; i < 10; i++ {
		go func() {
			lock, err := Acquire()
			if err == nil {
				atomic.AddInt32(&successCount, 1)
				time.Sleep(100 * time.Millisecond)
				lock.Release()
			} else {
				atomic.AddInt32(&errorCount, 1)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	// Only one acquisition may win
	if successCount != 1 {
		t.Errorf("Expected exactly 1 successful acquisition, got %d", successCount)
	}
	if errorCount != 9 {
		t.Errorf("Expected 9 failed acquisitions, got %d", errorCount)
	}
}

func TestLockfile_CleanupStale(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	// Stale PID file: has a PID but nobody holds the lock
	if err := os.WriteFile(testPIDFile, []byte("99999\n"), 0644); err != nil {
		t.Fatalf("Failed to create stale PID file: %v", err)
	}

	if err := CleanupStale(); err != nil {
		t.Errorf("CleanupStale should not error on stale file: %v", err)
	}

	if _, err := os.Stat(testPIDFile); !os.IsNotExist(err) {
		t.Error("Stale PID file should have been removed")
	}
}

func TestLockfile_PIDFileContent(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	lock, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer lock.Release()

	content, err := os.ReadFile(testPIDFile)
	if err != nil {
		t.Fatalf("Failed to read PID file: %v", err)
	}

	var filePID int
	if _, err := fmt.Sscanf(string(content), "%d", &filePID); err != nil {
		t.Fatalf("Failed to parse PID from file: %v", err)
	}

	if filePID != os.Getpid() {
		t.Errorf("PID file should contain %d, got %d", os.Getpid(), filePID)
	}
}

func TestLockfile_MultipleReleases(t *testing.T) {
	tmpDir := t.TempDir()
	testPIDFile := tmpDir + "/test_dockops.pid"

	originalGetPIDFilePath := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	defer func() { getPIDFilePath = originalGetPIDFilePath }()

	lock, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	// Repeated releases must be safe
	lock.Release()
	lock.Release()
	lock.Release()

	lock2, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock after multiple releases: %v", err)
	}
	defer lock2.Release()
}
