//go:build !windows
// +build !windows

package process

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	constants "dockops/config"
	"dockops/internal/logger"
)

// LockFile represents an exclusive lock on a PID file
type LockFile struct {
	path string
	fd   int
}

// Variable (not function) to allow override in tests
var getPIDFilePath = func() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir != "" {
		return filepath.Join(runtimeDir, "dockops.pid")
	}
	return constants.PID_FILE
}

// Acquire creates and locks the PID file atomically.
// Returns an error if another instance is already running.
func Acquire() (*LockFile, error) {
	pidFile := getPIDFilePath()

	dir := filepath.Dir(pidFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create PID directory: %w", err)
	}

	fd, err := syscall.Open(pidFile, syscall.O_RDWR|syscall.O_CREAT, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open PID file: %w", err)
	}

	// Exclusive non-blocking lock: fails immediately when another
	// daemon holds it
	if err := syscall.Flock(fd, syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		syscall.Close(fd)

		if isStale, stalePID := checkStaleLock(pidFile); isStale {
			logger.Info("Cleaning up stale PID file (process %d no longer exists)", stalePID)
			os.Remove(pidFile)
			return Acquire()
		}

		return nil, fmt.Errorf("another dockops instance is already running")
	}

	if err := syscall.Ftruncate(fd, 0); err != nil {
		syscall.Flock(fd, syscall.LOCK_UN)
		syscall.Close(fd)
		return nil, fmt.Errorf("failed to truncate PID file: %w", err)
	}

	pid := fmt.Sprintf("%d\n", os.Getpid())
	if _, err := syscall.Write(fd, []byte(pid)); err != nil {
		syscall.Flock(fd, syscall.LOCK_UN)
		syscall.Close(fd)
		return nil, fmt.Errorf("failed to write PID: %w", err)
	}

	logger.Info("Acquired PID file lock: %s (PID: %d)", pidFile, os.Getpid())

	// Keep fd open to maintain lock
	return &LockFile{path: pidFile, fd: fd}, nil
}

// Release releases the lock and removes the PID file
func (lf *LockFile) Release() error {
	if lf.fd <= 0 {
		return nil
	}

	logger.Info("Releasing PID file lock: %s", lf.path)

	syscall.Flock(lf.fd, syscall.LOCK_UN)
	syscall.Close(lf.fd)
	os.Remove(lf.path)

	lf.fd = 0
	return nil
}

// Check reports whether another instance is running, and its PID
func Check() (bool, int, error) {
	pidFile := getPIDFilePath()

	fd, err := syscall.Open(pidFile, syscall.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("failed to open PID file: %w", err)
	}
	defer syscall.Close(fd)

	if err := syscall.Flock(fd, syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		// locked by another process
		pid := readPIDFromFd(fd)
		return true, pid, nil
	}

	// lock succeeded, so the PID file is stale
	syscall.Flock(fd, syscall.LOCK_UN)
	return false, 0, nil
}

// checkStaleLock checks if the PID file's owner is gone
func checkStaleLock(pidFile string) (bool, int) {
	fd, err := syscall.Open(pidFile, syscall.O_RDONLY, 0)
	if err != nil {
		return false, 0
	}
	defer syscall.Close(fd)

	if err := syscall.Flock(fd, syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		return false, 0
	}

	syscall.Flock(fd, syscall.LOCK_UN)
	return true, readPIDFromFd(fd)
}

func readPIDFromFd(fd int) int {
	buf := make([]byte, 32)
	n, err := syscall.Read(fd, buf)
	if err != nil || n == 0 {
		return 0
	}

	var pid int
	fmt.Sscanf(string(buf[:n]), "%d", &pid)
	return pid
}

// IsDockopsProcess verifies that the given PID is actually a dockops
// daemon and not an unrelated process that reused the PID
func IsDockopsProcess(pid int) bool {
	if pid <= 0 {
		return false
	}

	var cmdline string

	if runtime.GOOS == "linux" {
		data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
		if err != nil {
			return false
		}
		cmdline = strings.ReplaceAll(string(data), "\x00", " ")
	} else {
		cmd := exec.Command("ps", "-p", fmt.Sprintf("%d", pid), "-o", "command=")
		output, err := cmd.Output()
		if err != nil {
			return false
		}
		cmdline = string(output)
	}

	cmdline = strings.ToLower(cmdline)
	return strings.Contains(cmdline, "dockops") &&
		strings.Contains(cmdline, "daemon")
}

// CleanupStale removes the PID file if its owner is gone or was reused
func CleanupStale() error {
	pidFile := getPIDFilePath()

	running, pid, err := Check()
	if err != nil {
		return err
	}

	if !running {
		os.Remove(pidFile)
		return nil
	}

	if !IsDockopsProcess(pid) {
		logger.Info("PID file contains PID of non-dockops process (%d), cleaning up", pid)
		os.Remove(pidFile)
		return nil
	}

	return fmt.Errorf("dockops daemon is running (PID %d)", pid)
}
