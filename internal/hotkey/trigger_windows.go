//go:build windows

package hotkey

import (
	"context"
	"errors"
)

// ListenSignal is a no-op on Windows; there is no SIGUSR1.
func ListenSignal(_ context.Context, _ func()) {}

// SignalToggle is not supported on Windows.
func SignalToggle(_ int32) error {
	return errors.New("external toggle is not supported on windows")
}
