package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/ayhanyalcinsoy/qterminal/internal/config"
	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/ayhanyalcinsoy/qterminal/internal/tabs"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
)

// desktopActions work while the main window does not hold activation.
var desktopActions = map[string]bool{
	config.ActionToggleDrop: true,
	config.ActionReload:     true,
	config.ActionLogs:       true,
	config.ActionMenu:       true,
	config.ActionAbout:      true,
	config.ActionQuit:       true,
}

// keySequence normalises a key press into a hotkey sequence.
func keySequence(msg tea.KeyPressMsg) hotkey.Sequence {
	stroke := msg.Keystroke()
	if seq, err := hotkey.Parse(stroke); err == nil {
		return seq
	}
	return hotkey.Sequence(stroke)
}

// handleKey routes a key press: the toggle hotkey first, then any open
// dialog, then application shortcuts, then the focused pane.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	seq := keySequence(msg)
	if m.Hotkeys.Dispatch(seq) {
		return nil
	}

	switch m.openWindow() {
	case activeDialog:
		return m.handleQuitKey(msg)
	case activeAbout:
		m.ShowAbout = false
		m.closeAppWindow()
		return nil
	case activeMenu:
		return m.handleMenuKey(msg, seq)
	case activeLogs:
		m.handleLogsKey(msg, seq)
		return nil
	}

	if action := m.Keybinds.GetAction(seq.String()); action != "" && m.actionAvailable(action) {
		return m.runAction(action)
	}

	if !m.desk.mainActive() {
		return nil
	}
	p := m.Tabs.ActivePane()
	if p == nil {
		return nil
	}
	key := msg.Key()
	switch key.Code {
	case tea.KeyEnter:
		p.Submit()
	case tea.KeyBackspace:
		p.Backspace()
	default:
		if key.Text != "" && key.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
			p.Type(key.Text)
		}
	}
	return nil
}

// modeAllows reports whether action exists in the current window mode.
func (m *Model) modeAllows(action string) bool {
	switch action {
	case config.ActionToggleBorder:
		return m.Mode() == window.Normal
	case config.ActionKeepOpen, config.ActionToggleDrop:
		return m.Mode() == window.Overlay
	}
	return true
}

// actionAvailable reports whether action can run right now.
func (m *Model) actionAvailable(action string) bool {
	if !m.modeAllows(action) {
		return false
	}
	return m.desk.mainActive() || desktopActions[action]
}

// runAction performs a named action.
func (m *Model) runAction(action string) tea.Cmd {
	switch action {
	case config.ActionAddTab:
		m.Tabs.AddTab()
	case config.ActionCloseTab:
		// The last tab stays open until the exit dialog is confirmed.
		if m.Tabs.Len() <= 1 {
			return m.requestClose()
		}
		m.Tabs.CloseTab()
	case config.ActionSplitHorizontal:
		m.Tabs.Split(tabs.Horizontal)
	case config.ActionSplitVertical:
		m.Tabs.Split(tabs.Vertical)
	case config.ActionCollapse:
		m.Tabs.Collapse()
	case config.ActionNextSub:
		m.Tabs.NextPane()
	case config.ActionPrevSub:
		m.Tabs.PrevPane()
	case config.ActionNextTab:
		m.Tabs.NextTab()
	case config.ActionPrevTab:
		m.Tabs.PrevTab()
	case config.ActionMoveTabLeft:
		m.Tabs.MoveLeft()
	case config.ActionMoveTabRight:
		m.Tabs.MoveRight()

	case config.ActionCopy:
		sel := m.Tabs.Selection()
		if sel == "" {
			return nil
		}
		m.ShowNotification("Copied to clipboard", "info", NotificationDuration)
		return tea.SetClipboard(sel)
	case config.ActionPaste:
		return tea.ReadClipboard

	case config.ActionToggleBorder:
		m.Window.ToggleBorder()
	case config.ActionToggleTabBar:
		m.Window.ToggleTabBar()
	case config.ActionTabsTop:
		m.Window.SetTabPosition(window.TabTop)
	case config.ActionTabsBottom:
		m.Window.SetTabPosition(window.TabBottom)
	case config.ActionTabsLeft:
		m.Window.SetTabPosition(window.TabLeft)
	case config.ActionTabsRight:
		m.Window.SetTabPosition(window.TabRight)
	case config.ActionScrollbarNone:
		m.setScrollbar(tabs.ScrollbarNone)
	case config.ActionScrollbarLeft:
		m.setScrollbar(tabs.ScrollbarLeft)
	case config.ActionScrollbarRight:
		m.setScrollbar(tabs.ScrollbarRight)

	case config.ActionKeepOpen:
		m.Visibility.TogglePin()
	case config.ActionToggleDrop:
		m.Visibility.Toggle()
	case config.ActionReload:
		m.reloadConfig(false)
	case config.ActionLogs:
		m.ShowLogs = true
		m.LogScrollOffset = max(len(m.LogMessages)-m.logsPerPage(), 0)
		m.openAppWindow(activeLogs)
	case config.ActionMenu:
		m.ShowMenu = true
		m.MenuSelection = 0
		m.openAppWindow(activeMenu)
	case config.ActionAbout:
		m.ShowAbout = true
		m.openAppWindow(activeAbout)
	case config.ActionQuit:
		return m.requestClose()
	}
	return nil
}

func (m *Model) setScrollbar(pos string) {
	m.Tabs.SetScrollbar(pos)
	m.Store.SetScrollbarPosition(pos)
	if err := m.Store.Save(); err != nil {
		m.LogWarn("could not persist scrollbar position: %v", err)
	}
}

// requestClose asks for confirmation when the exit dialog is enabled and
// quits otherwise.
func (m *Model) requestClose() tea.Cmd {
	if !m.Store.AskOnExit() {
		return m.quit()
	}
	m.ShowQuitConfirm = true
	m.QuitConfirmSelection = 0
	m.QuitDontAsk = false
	m.openAppWindow(activeDialog)
	return nil
}

// quit persists window state, releases the hotkeys and stops the program.
func (m *Model) quit() tea.Cmd {
	m.Window.PersistGeometry()
	if err := m.Store.Save(); err != nil {
		m.LogError("could not save preferences: %v", err)
	}
	m.Visibility.Release()
	m.Hotkeys.ReleaseOwner(shortcutOwner)
	m.quitting = true
	return tea.Quit
}

func (m *Model) handleQuitKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "left", "right", "tab", "h", "l":
		m.QuitConfirmSelection = 1 - m.QuitConfirmSelection
	case "space", "d":
		m.QuitDontAsk = !m.QuitDontAsk
	case "y":
		return m.confirmQuit()
	case "n", "esc":
		m.cancelQuit()
	case "enter":
		if m.QuitConfirmSelection == 0 {
			return m.confirmQuit()
		}
		m.cancelQuit()
	}
	return nil
}

func (m *Model) confirmQuit() tea.Cmd {
	m.ShowQuitConfirm = false
	if m.QuitDontAsk {
		m.Store.SetAskOnExit(false)
	}
	return m.quit()
}

func (m *Model) cancelQuit() {
	m.ShowQuitConfirm = false
	m.closeAppWindow()
}

// MenuItems returns the actions offered by the menu in the current mode.
func (m *Model) MenuItems() []string {
	var items []string
	for _, action := range config.Actions() {
		if m.modeAllows(action) && action != config.ActionMenu {
			items = append(items, action)
		}
	}
	return items
}

func (m *Model) handleMenuKey(msg tea.KeyPressMsg, seq hotkey.Sequence) tea.Cmd {
	items := m.MenuItems()
	if m.Keybinds.GetAction(seq.String()) == config.ActionMenu {
		m.closeMenu()
		return nil
	}
	switch msg.String() {
	case "up", "k":
		m.MenuSelection = (m.MenuSelection - 1 + len(items)) % len(items)
	case "down", "j":
		m.MenuSelection = (m.MenuSelection + 1) % len(items)
	case "home":
		m.MenuSelection = 0
	case "end":
		m.MenuSelection = len(items) - 1
	case "esc", "q":
		m.closeMenu()
	case "enter":
		action := items[m.MenuSelection]
		m.closeMenu()
		if m.actionAvailable(action) {
			return m.runAction(action)
		}
	}
	return nil
}

func (m *Model) closeMenu() {
	m.ShowMenu = false
	m.closeAppWindow()
}

func (m *Model) handleLogsKey(msg tea.KeyPressMsg, seq hotkey.Sequence) {
	maxScroll := max(len(m.LogMessages)-m.logsPerPage(), 0)
	if m.Keybinds.GetAction(seq.String()) == config.ActionLogs {
		m.closeLogs()
		return
	}
	switch msg.String() {
	case "up", "k":
		m.LogScrollOffset = max(m.LogScrollOffset-1, 0)
	case "down", "j":
		m.LogScrollOffset = min(m.LogScrollOffset+1, maxScroll)
	case "g", "home":
		m.LogScrollOffset = 0
	case "G", "end":
		m.LogScrollOffset = maxScroll
	case "esc", "q":
		m.closeLogs()
	}
}

func (m *Model) closeLogs() {
	m.ShowLogs = false
	m.closeAppWindow()
}
