//go:build !windows

package hotkey

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// ListenSignal calls fn every time the process receives SIGUSR1, until ctx
// is done. Desktop environments bind their own global shortcut to
// `qterminal toggle`, which delivers that signal.
func ListenSignal(ctx context.Context, fn func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGUSR1)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				fn()
			}
		}
	}()
}

// SignalToggle asks the instance with the given pid to toggle.
func SignalToggle(pid int32) error {
	if err := unix.Kill(int(pid), unix.SIGUSR1); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
	return nil
}
