package process

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// ReadPID reads the PID from the PID file
func ReadPID() (int, error) {
	data, err := os.ReadFile(getPIDFilePath())
	if err != nil {
		return 0, err
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return 0, err
	}

	return pid, nil
}

// IsRunning checks if the polling daemon is running
func IsRunning() bool {
	pid, err := ReadPID()
	if err != nil {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Signal 0 checks liveness without delivering anything
	err = process.Signal(syscall.Signal(0))
	return err == nil
}

// StopProcess stops the polling daemon
func StopProcess() error {
	if !IsRunning() {
		return fmt.Errorf("dockops is not running")
	}

	pid, err := ReadPID()
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}

	if err := process.Kill(); err != nil {
		return err
	}

	os.Remove(getPIDFilePath())

	return nil
}

// StartProcess starts the polling daemon in the background
func StartProcess() error {
	if IsRunning() {
		return fmt.Errorf("dockops is already running")
	}

	cmd := exec.Command("bash", "-c", "nohup dockops daemon > /dev/null 2>&1 &")
	if err := cmd.Start(); err != nil {
		return err
	}

	return nil
}

// RestartProcess stops and starts the polling daemon
func RestartProcess() error {
	if IsRunning() {
		if err := StopProcess(); err != nil {
			return err
		}
	}

	return StartProcess()
}
