// Package app is the bubbletea program behind qterminal: the host terminal
// acts as the desktop and the main window (normal or drop-down) is drawn
// onto it.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ayhanyalcinsoy/qterminal/internal/config"
	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/ayhanyalcinsoy/qterminal/internal/tabs"
	"github.com/ayhanyalcinsoy/qterminal/internal/theme"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Timing and limits for notifications and the log ring.
const (
	NotificationDuration = 3 * time.Second
	ErrorDuration        = 6 * time.Second
	MaxLogMessages       = 200
	MaxNotifications     = 3
)

// shortcutOwner is the hotkey-registry owner of the application shortcuts.
const shortcutOwner = "application shortcuts"

// Options configure a Model.
type Options struct {
	Mode    window.Mode
	Store   *config.Store
	Logger  *log.Logger
	Workdir string
	Command string
	Version string
	// DesktopHotkeys grabs the toggle key from the whole desktop, not only
	// while the terminal has focus.
	DesktopHotkeys bool
}

// Model is the bubbletea model of the application.
type Model struct {
	Width  int
	Height int

	Store      *config.Store
	Keybinds   *config.KeybindRegistry
	Hotkeys    *hotkey.Registry
	Window     *window.Controller
	Visibility *window.Visibility
	Tabs       *tabs.Container

	desk    *terminalDisplay
	logger  *log.Logger
	desktop *hotkey.Global

	// Menu state
	ShowMenu      bool
	MenuSelection int

	ShowAbout bool

	// Log viewer state
	ShowLogs        bool
	LogScrollOffset int

	// Exit dialog state
	ShowQuitConfirm      bool
	QuitConfirmSelection int // 0 = yes, 1 = no
	QuitDontAsk          bool

	Notifications []Notification
	LogMessages   []LogMessage

	CPUHistory    []float64
	LastCPUUpdate time.Time
	Now           time.Time

	Version  string
	theme    string
	quitting bool
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// New builds the model, applies the window mode and starts the visibility
// state machine. A drop-down shortcut that cannot be registered is reported
// as a notification, not as an error.
func New(opts Options) (*Model, error) {
	if opts.Store == nil {
		return nil, errors.New("app: a config store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		Store:   opts.Store,
		Hotkeys: hotkey.NewRegistry(),
		Tabs:    tabs.New(opts.Workdir, opts.Command),
		desk:    &terminalDisplay{},
		logger:  logger.WithPrefix("app"),
		Version: opts.Version,
		theme:   opts.Store.Theme(),
		Now:     time.Now(),
	}
	m.loadShortcuts()

	m.Window = window.NewController(opts.Mode, m.desk, opts.Store, logger)
	var service hotkey.Service = m.Hotkeys
	if opts.DesktopHotkeys {
		m.desktop = hotkey.NewGlobal(m.Hotkeys, logger)
		service = m.desktop
		if !m.desktop.Enabled() {
			m.LogWarn("no desktop session: the drop-down key only works while the terminal has focus")
		}
	}
	m.Visibility = window.NewVisibility(m.Window, m.desk, service, opts.Store, logger)

	m.Tabs.SetScrollbar(opts.Store.ScrollbarPosition())
	m.Window.OnLayoutChanged(m.Tabs.ApplyLayout)
	m.Visibility.OnPinChanged(func(pinned bool) {
		if pinned {
			m.ShowNotification("Keep open: on", "info", NotificationDuration)
		} else {
			m.ShowNotification("Keep open: off", "info", NotificationDuration)
		}
	})
	m.Visibility.OnVisibilityChanged(func(s window.VisibilityState) {
		m.logger.Debug("visibility changed", "state", s)
	})

	m.Tabs.AddTab()
	m.Window.ApplyMode()

	if err := m.Visibility.Start(opts.Store.DropShortcut()); err != nil {
		m.ShowNotification(err.Error(), "error", ErrorDuration)
	} else if opts.Mode == window.Overlay {
		m.ShowNotification(fmt.Sprintf("Press %s to show qterminal", m.Visibility.Binding().Display()), "info", NotificationDuration)
	}
	return m, nil
}

// loadShortcuts rebuilds the keybinding registry from the store and claims
// its sequences in the hotkey registry.
func (m *Model) loadShortcuts() {
	m.Hotkeys.ReleaseOwner(shortcutOwner)
	m.Keybinds = config.NewKeybindRegistry(m.Store.Config())
	if err := m.Keybinds.Err(); err != nil {
		m.LogWarn("shortcuts: %v", err)
	}
	if err := m.Keybinds.Claim(m.Hotkeys, shortcutOwner); err != nil {
		m.LogWarn("shortcuts: %v", err)
	}
}

// DesktopKeys delivers toggle keys pressed while another application had
// focus. It is nil when desktop hotkeys are off.
func (m *Model) DesktopKeys() <-chan hotkey.Sequence {
	if m.desktop == nil {
		return nil
	}
	return m.desktop.Events()
}

// Mode returns the window mode.
func (m *Model) Mode() window.Mode { return m.Window.Mode() }

// Quitting reports whether the program is shutting down.
func (m *Model) Quitting() bool { return m.quitting }

// Close persists the window state and releases the hotkeys when the program
// ended without going through the quit action, e.g. on SIGTERM.
func (m *Model) Close() {
	if !m.quitting {
		m.quit()
	}
}

// Log adds a new log message to the log buffer and mirrors it to the file
// logger.
func (m *Model) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(m.LogMessages) > MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-MaxLogMessages:]
	}

	switch level {
	case "ERROR":
		m.logger.Error(message)
	case "WARN":
		m.logger.Warn(message)
	default:
		m.logger.Info(message)
	}
}

// LogInfo logs an informational message.
func (m *Model) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *Model) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *Model) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification and logs it.
func (m *Model) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		m.LogError("%s", message)
	case "warning":
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (m *Model) CleanupNotifications() {
	now := time.Now()
	var active []Notification
	for _, notif := range m.Notifications {
		if now.Sub(notif.StartTime) < notif.Duration {
			active = append(active, notif)
		}
	}
	m.Notifications = active
}

// applyConfig pushes freshly reloaded properties into every component.
func (m *Model) applyConfig() {
	// The old toggle key must be free before the shortcuts are claimed again,
	// since an edit may hand it to an action.
	m.Visibility.Release()
	m.loadShortcuts()
	m.Window.ConfigChanged()
	m.Tabs.SetScrollbar(m.Store.ScrollbarPosition())

	if name := m.Store.Theme(); name != m.theme {
		if !theme.Initialize(name) {
			m.LogWarn("unknown theme %q, using the default", name)
		}
		m.theme = name
	}

	if err := m.Visibility.SetHotkey(m.Store.DropShortcut()); err != nil {
		m.ShowNotification(err.Error(), "error", ErrorDuration)
	}
}

// reloadConfig re-reads the properties file. quiet suppresses the
// notification when nothing changed.
func (m *Model) reloadConfig(quiet bool) {
	changed, err := m.Store.Reload()
	if err != nil {
		m.ShowNotification(fmt.Sprintf("Preferences not reloaded: %v", err), "error", ErrorDuration)
		return
	}
	if !changed {
		if !quiet {
			m.ShowNotification("Preferences unchanged", "info", NotificationDuration)
		}
		return
	}
	m.applyConfig()
	m.ShowNotification("Preferences reloaded", "info", NotificationDuration)
}
