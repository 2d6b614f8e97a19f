package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
)

// TickInterval drives notification expiry, the clock and CPU sampling.
const TickInterval = 500 * time.Millisecond

// TickerMsg represents a periodic tick event for updating the UI.
type TickerMsg time.Time

// ConfigChangedMsg is sent when the properties file changed on disk.
type ConfigChangedMsg struct{}

// ToggleMsg is sent when an external trigger (another qterminal process,
// a desktop-environment shortcut) asks the drop-down to toggle.
type ToggleMsg struct{}

// HotkeyMsg carries a key grabbed from the desktop while the terminal did
// not have focus.
type HotkeyMsg struct {
	Sequence hotkey.Sequence
}

// Init starts the tick timer and takes the first CPU sample.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), sampleCPU)
}

// TickCmd creates a command that generates tick messages.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles every incoming message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.Now = time.Time(msg)
		m.CleanupNotifications()
		cmds := []tea.Cmd{TickCmd()}
		if m.Now.Sub(m.LastCPUUpdate) >= CPUUpdateInterval {
			m.LastCPUUpdate = m.Now
			cmds = append(cmds, sampleCPU)
		}
		return m, tea.Batch(cmds...)

	case cpuSampleMsg:
		m.recordCPU(float64(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.desk.resize(msg.Width, msg.Height)
		m.Window.Recompute()
		return m, nil

	case tea.FocusMsg:
		m.focusIn()
		return m, nil

	case tea.BlurMsg:
		// The host terminal lost focus: no window of ours is active now.
		m.desk.active = activeNone
		m.Visibility.FocusLost()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		m.handleClick(msg.Mouse())
		return m, nil

	case tea.PasteMsg:
		m.paste(msg.Content)
		return m, nil

	case tea.ClipboardMsg:
		m.paste(msg.Content)
		return m, nil

	case ConfigChangedMsg:
		m.reloadConfig(true)
		return m, nil

	case HotkeyMsg:
		m.Hotkeys.Dispatch(msg.Sequence)
		return m, nil

	case ToggleMsg:
		// Goes through the bound toggle key; with none bound (a conflict)
		// the trigger still reaches the drop-down.
		if m.Mode() == window.Overlay && !m.Hotkeys.Dispatch(m.Visibility.Binding()) {
			m.Visibility.Toggle()
		}
		return m, nil
	}
	return m, nil
}

// focusIn restores activation when the host terminal regains focus: to the
// topmost application window, or the main window when it is visible.
func (m *Model) focusIn() {
	if w := m.openWindow(); w != activeNone {
		m.desk.active = w
		return
	}
	if m.desk.visible {
		m.desk.Activate()
	}
}

// handleClick moves activation the way a window manager would: clicking
// the main window activates it, clicking the desktop deactivates it.
func (m *Model) handleClick(mouse tea.Mouse) {
	if m.openWindow() != activeNone {
		return
	}
	if x, y, w, ok := m.pinBounds(); ok && mouse.Button == tea.MouseLeft &&
		mouse.Y == y && mouse.X >= x && mouse.X < x+w {
		m.desk.Activate()
		m.Visibility.TogglePin()
		return
	}
	if m.desk.contains(mouse.X, mouse.Y) {
		if m.desk.active != activeMain {
			m.desk.Activate()
		}
		return
	}
	if m.desk.active == activeMain {
		m.desk.active = activeNone
		m.Visibility.FocusLost()
	}
}

func (m *Model) paste(s string) {
	if !m.desk.mainActive() || m.openWindow() != activeNone {
		return
	}
	m.Tabs.Paste(s)
}

// openWindow returns the topmost open application window other than the
// main one.
func (m *Model) openWindow() string {
	switch {
	case m.ShowQuitConfirm:
		return activeDialog
	case m.ShowAbout:
		return activeAbout
	case m.ShowMenu:
		return activeMenu
	case m.ShowLogs:
		return activeLogs
	}
	return activeNone
}

// openAppWindow hands activation to another application window. The main
// window loses activation, which an overlay survives because the
// application still holds it.
func (m *Model) openAppWindow(name string) {
	m.desk.active = name
	m.Visibility.FocusLost()
}

// closeAppWindow returns activation to the next open application window,
// or to the main window when it is visible.
func (m *Model) closeAppWindow() {
	if w := m.openWindow(); w != activeNone {
		m.desk.active = w
		return
	}
	m.desk.active = activeNone
	if m.desk.visible {
		m.desk.Activate()
	}
}
