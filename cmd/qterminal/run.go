package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"
	"github.com/ayhanyalcinsoy/qterminal/internal/app"
	"github.com/ayhanyalcinsoy/qterminal/internal/config"
	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/ayhanyalcinsoy/qterminal/internal/theme"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// logFileName is relative to the XDG state directory.
const logFileName = "qterminal/qterminal.log"

type runOptions struct {
	drop    bool
	workdir string
	execute string
}

// openLogger returns a logger writing to the state log file. The TUI owns
// the terminal, so nothing is logged to stderr while it runs.
func openLogger() (*log.Logger, func(), error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return log.New(io.Discard), func() {}, fmt.Errorf("resolve log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}, fmt.Errorf("open log file: %w", err)
	}

	level := log.InfoLevel
	if debugMode {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, func() { _ = f.Close() }, nil
}

func runLocal(ctx context.Context, opts runOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("qterminal needs an interactive terminal")
	}

	mode := window.Normal
	if opts.drop {
		mode = window.Overlay
		// A second drop-down instance toggles the first one instead.
		if pid, err := hotkey.FindRunning(ctx); err == nil && pid != int32(os.Getpid()) {
			return hotkey.SignalToggle(pid)
		}
	}

	logger, closeLog, err := openLogger()
	defer closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	logger.Info("starting", "version", version, "mode", mode)

	store, err := config.Open(logger)
	if store == nil {
		return err
	}
	if err != nil {
		logger.Warn("using default preferences", "err", err)
	}
	if _, statErr := os.Stat(store.Path()); errors.Is(statErr, os.ErrNotExist) {
		if err := store.Save(); err != nil {
			logger.Warn("could not write default preferences", "err", err)
		}
	}
	if debugMode {
		logger.Debug("configuration", "path", store.Path())
	}

	name := store.Theme()
	if themeName != "" {
		name = themeName
	}
	if !theme.Initialize(name) {
		logger.Warn("unknown theme, using the default", "theme", name)
	}

	if mode == window.Overlay {
		removePID, err := hotkey.WritePIDFile()
		defer removePID()
		if err != nil {
			logger.Warn("external toggle disabled", "err", err)
		}
	}

	workdir := opts.workdir
	if workdir == "" {
		workdir, _ = os.Getwd()
	} else if abs, err := filepath.Abs(workdir); err == nil {
		workdir = abs
	}

	model, err := app.New(app.Options{
		Mode:    mode,
		Store:   store,
		Logger:  logger,
		Workdir: workdir,
		Command: opts.execute,
		Version: version,
		// The toggle key is grabbed from the whole desktop so it works
		// while another application has focus.
		DesktopHotkeys: mode == window.Overlay,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	if err := store.Watch(ctx, func() { p.Send(app.ConfigChangedMsg{}) }); err != nil {
		logger.Warn("live config reload disabled", "err", err)
	}
	if mode == window.Overlay {
		hotkey.ListenSignal(ctx, func() { p.Send(app.ToggleMsg{}) })
	}
	if keys := model.DesktopKeys(); keys != nil {
		go forwardDesktopKeys(ctx, keys, p.Send)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			p.Send(tea.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	_, err = p.Run()
	model.Close()
	logger.Info("stopped")

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// forwardDesktopKeys hands keys grabbed from the desktop to the program so
// they are dispatched on its goroutine.
func forwardDesktopKeys(ctx context.Context, keys <-chan hotkey.Sequence, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case seq := <-keys:
			send(app.HotkeyMsg{Sequence: seq})
		}
	}
}

// toggleRunning signals the running drop-down instance.
func toggleRunning(ctx context.Context) error {
	pid, err := hotkey.FindRunning(ctx)
	if err != nil {
		if errors.Is(err, hotkey.ErrNotRunning) {
			return errors.New("no drop-down qterminal is running (start one with qterminal --drop)")
		}
		return err
	}
	return hotkey.SignalToggle(pid)
}
