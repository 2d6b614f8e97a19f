package hotkey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/shirou/gopsutil/v4/process"
)

// ErrNotRunning is returned when no drop-down instance owns the PID file.
var ErrNotRunning = errors.New("no running drop-down instance")

// pidFileName is relative to the XDG runtime directory.
const pidFileName = "qterminal/qterminal.pid"

// PIDFilePath returns the location of the PID file used by external triggers.
func PIDFilePath() (string, error) {
	return xdg.RuntimeFile(pidFileName)
}

// WritePIDFile records the current process so `qterminal toggle` can find
// it. The returned func removes the file.
func WritePIDFile() (func(), error) {
	path, err := PIDFilePath()
	if err != nil {
		return func() {}, fmt.Errorf("resolve pid file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return func() {}, fmt.Errorf("create runtime dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return func() {}, fmt.Errorf("write pid file: %w", err)
	}
	return func() { _ = os.Remove(path) }, nil
}

// FindRunning reads the PID file and verifies the process is alive and is a
// qterminal binary.
func FindRunning(ctx context.Context) (int32, error) {
	path, err := PIDFilePath()
	if err != nil {
		return 0, fmt.Errorf("resolve pid file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("read pid file: %w", err)
	}
	pid, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse pid file %s: %w", path, err)
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("inspect pid %d: %w", pid, err)
	}
	name, err := proc.NameWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("inspect pid %d: %w", pid, err)
	}
	if !strings.Contains(name, "qterminal") {
		// Stale file, the PID was recycled by another program.
		return 0, ErrNotRunning
	}
	return int32(pid), nil
}
