package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/ayhanyalcinsoy/qterminal/internal/config"
	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/ayhanyalcinsoy/qterminal/internal/tabs"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
	"github.com/charmbracelet/x/ansi"
)

func newModel(t *testing.T, mode window.Mode, props string) *Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if props != "" {
		if err := os.WriteFile(path, []byte(props), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store := config.NewStore(path, nil)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m, err := New(Options{Mode: mode, Store: store, Version: "test"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 51})
	return m
}

func reopen(t *testing.T, m *Model) *config.Store {
	t.Helper()
	store := config.NewStore(m.Store.Path(), nil)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func press(m *Model, code rune, mod tea.KeyMod) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code, Mod: mod})
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func hasNotification(m *Model, typ, substr string) bool {
	for _, n := range m.Notifications {
		if n.Type == typ && strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

// =============================================================================
// Drop-down Visibility Tests
// =============================================================================

func TestOverlay_StartsHidden(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	if m.Visibility.State() != window.Hidden || m.desk.visible {
		t.Fatal("drop-down should start hidden")
	}
	if m.Visibility.Binding() != "f12" {
		t.Errorf("binding = %q", m.Visibility.Binding())
	}
	if !hasNotification(m, "info", "F12") {
		t.Error("expected a hint about the hotkey")
	}
}

func TestOverlay_HotkeyToggles(t *testing.T) {
	m := newModel(t, window.Overlay, "")

	press(m, tea.KeyF12, 0)
	if m.Visibility.State() != window.Shown || !m.desk.mainActive() {
		t.Fatal("F12 should show and activate the drop-down")
	}
	want := window.Rect{X: 30, Y: 0, Width: 140, Height: 22}
	if m.desk.geometry != want {
		t.Errorf("geometry = %v, want %v", m.desk.geometry, want)
	}
	if m.desk.raised == 0 {
		t.Error("showing should raise the window")
	}

	press(m, tea.KeyF12, 0)
	if m.Visibility.State() != window.Hidden || m.desk.visible {
		t.Error("F12 should hide the drop-down again")
	}
}

func TestOverlay_BlurHides(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	press(m, tea.KeyF12, 0)

	m.Update(tea.BlurMsg{})
	if m.Visibility.State() != window.Hidden {
		t.Error("losing focus should hide an unpinned drop-down")
	}

	m.Update(tea.FocusMsg{})
	if m.Visibility.State() != window.Hidden || m.desk.AnyWindowActive() {
		t.Error("regaining focus should not bring the drop-down back")
	}
}

func TestOverlay_PinnedStaysOpen(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	press(m, tea.KeyF12, 0)
	press(m, 'k', tea.ModAlt)

	if !m.Visibility.KeepOpen() {
		t.Fatal("alt+k should engage the pin")
	}
	for i := 0; i < 10; i++ {
		m.Update(tea.BlurMsg{})
		m.Update(tea.FocusMsg{})
	}
	if m.Visibility.State() != window.Shown {
		t.Error("a pinned drop-down should survive focus loss")
	}
	if !reopen(t, m).KeepOpen() {
		t.Error("pin should be persisted")
	}
}

func TestOverlay_DialogKeepsDropDown(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	press(m, tea.KeyF12, 0)

	press(m, tea.KeyF10, 0)
	if !m.ShowMenu || m.desk.active != activeMenu {
		t.Fatal("F10 should open the menu and give it activation")
	}
	if m.Visibility.State() != window.Shown {
		t.Error("opening an application window should not hide the drop-down")
	}

	press(m, tea.KeyEscape, 0)
	if m.ShowMenu || !m.desk.mainActive() {
		t.Error("closing the menu should reactivate the drop-down")
	}
}

func TestOverlay_ClickOutsideHides(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	press(m, tea.KeyF12, 0)

	m.Update(tea.MouseClickMsg{X: 100, Y: 5, Button: tea.MouseLeft})
	if m.Visibility.State() != window.Shown {
		t.Fatal("clicking inside should keep the drop-down")
	}

	m.Update(tea.MouseClickMsg{X: 5, Y: 40, Button: tea.MouseLeft})
	if m.Visibility.State() != window.Hidden {
		t.Error("clicking the desktop should hide the drop-down")
	}
}

func TestOverlay_FollowsResize(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	press(m, tea.KeyF12, 0)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 21})
	want := window.Rect{X: 15, Y: 0, Width: 70, Height: 9}
	if m.desk.geometry != want {
		t.Errorf("geometry = %v, want %v", m.desk.geometry, want)
	}
}

func TestToggleMsg(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	m.Update(ToggleMsg{})
	if m.Visibility.State() != window.Shown {
		t.Error("ToggleMsg should show the drop-down")
	}

	n := newModel(t, window.Normal, "")
	n.Update(ToggleMsg{})
	if n.Visibility.State() != window.Shown {
		t.Error("ToggleMsg should not affect a normal window")
	}
}

func TestToggleMsg_DispatchesBinding(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	transitions := 0
	m.Visibility.OnVisibilityChanged(func(window.VisibilityState) { transitions++ })

	m.Update(ToggleMsg{})
	m.Update(ToggleMsg{})
	if m.Visibility.State() != window.Hidden || transitions != 2 {
		t.Fatalf("two toggles should show then hide, transitions = %d", transitions)
	}
	if !m.Hotkeys.Bound(m.Visibility.Binding()) {
		t.Error("the toggle key should stay bound")
	}

	// Without a bound key the signal still reaches the drop-down.
	m.Visibility.Release()
	m.Update(ToggleMsg{})
	if m.Visibility.State() != window.Shown || transitions != 3 {
		t.Error("ToggleMsg should toggle when no key is bound")
	}
}

func TestHotkeyMsg(t *testing.T) {
	m := newModel(t, window.Overlay, "")

	m.Update(HotkeyMsg{Sequence: hotkey.MustParse("F12")})
	if m.Visibility.State() != window.Shown || !m.desk.mainActive() {
		t.Fatal("a desktop press of the toggle key should show the drop-down")
	}

	m.Update(HotkeyMsg{Sequence: hotkey.MustParse("F11")})
	if m.Visibility.State() != window.Shown {
		t.Error("an unbound key should be ignored")
	}

	m.Update(HotkeyMsg{Sequence: hotkey.MustParse("F12")})
	if m.Visibility.State() != window.Hidden {
		t.Error("a second press should hide the drop-down")
	}
}

func TestOverlay_PinClick(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	if _, _, _, ok := m.pinBounds(); ok {
		t.Fatal("the pin should not be clickable while hidden")
	}
	press(m, tea.KeyF12, 0)

	x, y, w, ok := m.pinBounds()
	if !ok || w == 0 {
		t.Fatal("a shown drop-down should expose the pin")
	}
	m.Update(tea.MouseClickMsg{X: x + w - 1, Y: y, Button: tea.MouseLeft})
	if !m.Visibility.KeepOpen() {
		t.Fatal("clicking the pin should engage it")
	}
	if m.Visibility.State() != window.Shown || !m.desk.mainActive() {
		t.Error("clicking the pin should keep the drop-down shown and active")
	}
	if !reopen(t, m).KeepOpen() {
		t.Error("pin should be persisted")
	}

	m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseRight})
	if !m.Visibility.KeepOpen() {
		t.Error("only the left button should toggle the pin")
	}
	m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if m.Visibility.KeepOpen() {
		t.Error("a second click should release the pin")
	}
}

func TestOverlay_HotkeyConflict(t *testing.T) {
	m := newModel(t, window.Overlay, "[drop]\nshortcut = \"alt+t\"\n")
	if !m.Visibility.Binding().IsEmpty() {
		t.Fatal("a conflicting shortcut must not be bound")
	}
	if !hasNotification(m, "error", "already bound") {
		t.Errorf("expected a conflict notification, got %+v", m.Notifications)
	}

	press(m, 't', tea.ModAlt)
	if m.Tabs.Len() != 1 || m.Visibility.State() != window.Hidden {
		t.Error("tab shortcuts should not act while the drop-down is hidden")
	}

	// The drop-down stays reachable from the menu.
	press(m, tea.KeyF10, 0)
	m.MenuSelection = slices.Index(m.MenuItems(), config.ActionToggleDrop)
	press(m, tea.KeyEnter, 0)
	if m.Visibility.State() != window.Shown {
		t.Error("the menu should be able to show the drop-down")
	}
}

// =============================================================================
// Normal Window Tests
// =============================================================================

func TestNormal_Defaults(t *testing.T) {
	m := newModel(t, window.Normal, "")
	if m.Visibility.State() != window.Shown || !m.desk.mainActive() {
		t.Fatal("normal window should start shown and active")
	}
	if m.desk.state != window.StateMaximized {
		t.Errorf("state = %v", m.desk.state)
	}
	if m.desk.geometry != (window.Rect{Width: 200, Height: 50}) {
		t.Errorf("geometry = %v", m.desk.geometry)
	}

	m.Update(tea.BlurMsg{})
	if m.Visibility.State() != window.Shown {
		t.Error("a normal window ignores focus loss")
	}
	if !m.Visibility.Binding().IsEmpty() {
		t.Error("a normal window binds no hotkey")
	}
}

func TestNormal_RestoresGeometry(t *testing.T) {
	m := newModel(t, window.Normal, "[window]\ngeometry = \"10,2,120,30\"\nstate = \"normal\"\n")
	want := window.Rect{X: 10, Y: 2, Width: 120, Height: 30}
	if m.desk.geometry != want || m.desk.state != window.StateNormal {
		t.Errorf("geometry = %v %v, want %v", m.desk.geometry, m.desk.state, want)
	}
}

func TestNormal_ToggleBorder(t *testing.T) {
	m := newModel(t, window.Normal, "")
	if m.desk.flags.Has(window.FlagFrameless) {
		t.Fatal("normal window starts decorated")
	}
	press(m, 'b', tea.ModAlt)
	if !m.desk.flags.Has(window.FlagFrameless) || !m.desk.mainActive() {
		t.Error("alt+b should make the window frameless and keep it active")
	}
	if !reopen(t, m).TabBarLayout().Borderless {
		t.Error("borderless should be persisted")
	}
}

func TestMenuItemsByMode(t *testing.T) {
	overlay := newModel(t, window.Overlay, "").MenuItems()
	normal := newModel(t, window.Normal, "").MenuItems()

	if slices.Contains(overlay, config.ActionToggleBorder) || !slices.Contains(overlay, config.ActionKeepOpen) {
		t.Errorf("overlay menu = %v", overlay)
	}
	if !slices.Contains(normal, config.ActionToggleBorder) || slices.Contains(normal, config.ActionKeepOpen) {
		t.Errorf("normal menu = %v", normal)
	}
	if slices.Contains(normal, config.ActionMenu) {
		t.Error("the menu should not list itself")
	}
}

// =============================================================================
// Tab and Pane Tests
// =============================================================================

func TestTyping(t *testing.T) {
	m := newModel(t, window.Normal, "")
	typeText(m, "ls")
	press(m, tea.KeyBackspace, 0)
	typeText(m, "s -l")
	press(m, tea.KeyEnter, 0)

	p := m.Tabs.ActivePane()
	if len(p.Lines) != 1 || p.Lines[0] != "$ ls -l" {
		t.Errorf("lines = %q", p.Lines)
	}
}

func TestTypingIgnoredWhenHidden(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	typeText(m, "abc")
	if m.Tabs.ActivePane().Input != "" {
		t.Error("keys must not reach a hidden drop-down")
	}
}

func TestTabShortcuts(t *testing.T) {
	m := newModel(t, window.Normal, "")
	press(m, 't', tea.ModAlt)
	press(m, 'h', tea.ModAlt)
	if m.Tabs.Len() != 2 || len(m.Tabs.Active().Panes) != 2 {
		t.Fatalf("tabs = %d panes = %d", m.Tabs.Len(), len(m.Tabs.Active().Panes))
	}
	press(m, tea.KeyPgUp, tea.ModCtrl)
	if m.Tabs.ActiveIndex() != 0 {
		t.Errorf("ctrl+pgup should select the previous tab, active = %d", m.Tabs.ActiveIndex())
	}
}

func TestCloseLastTabAsks(t *testing.T) {
	m := newModel(t, window.Normal, "")
	if cmd := press(m, 'w', tea.ModAlt); cmd != nil {
		t.Fatal("closing the last tab should ask first")
	}
	if !m.ShowQuitConfirm || m.desk.active != activeDialog {
		t.Fatal("exit dialog should be open and active")
	}
	if m.Tabs.Len() != 1 {
		t.Fatalf("the tab was closed before the answer, len = %d", m.Tabs.Len())
	}

	typeText(m, "n")
	if m.ShowQuitConfirm || !m.desk.mainActive() {
		t.Error("cancelling should return to the main window")
	}
	if m.Tabs.Len() != 1 || m.Tabs.Active() == nil {
		t.Errorf("cancelling should keep the last tab, len = %d", m.Tabs.Len())
	}

	typeText(m, "hi")
	if got := m.Tabs.ActivePane().Input; got != "hi" {
		t.Errorf("the kept tab should still take input, input = %q", got)
	}
}

func TestCopyAndPaste(t *testing.T) {
	m := newModel(t, window.Normal, "")
	typeText(m, "echo hi")

	if cmd := press(m, 'c', tea.ModAlt); cmd == nil {
		t.Error("copy should set the clipboard")
	}
	if cmd := press(m, 'v', tea.ModAlt); cmd == nil {
		t.Error("paste should read the clipboard")
	}

	m.Update(tea.ClipboardMsg{Content: " there"})
	m.Update(tea.PasteMsg{Content: "!\npwd"})
	p := m.Tabs.ActivePane()
	if len(p.Lines) != 1 || p.Lines[0] != "$ echo hi there!" || p.Input != "pwd" {
		t.Errorf("pane = %q / %q", p.Lines, p.Input)
	}
}

func TestLayoutActions(t *testing.T) {
	m := newModel(t, window.Normal, "")

	press(m, 'm', tea.ModAlt)
	if m.Tabs.Layout().TabBarVisible || m.desk.margins != (window.Margins{}) {
		t.Error("alt+m should hide the tab bar and clear the margins")
	}
	press(m, 'm', tea.ModAlt)

	m.runAction(config.ActionTabsLeft)
	if m.Tabs.Layout().Position != window.TabLeft || m.desk.margins.Left != 4 {
		t.Errorf("layout = %+v margins = %+v", m.Tabs.Layout(), m.desk.margins)
	}

	m.runAction(config.ActionScrollbarLeft)
	if m.Tabs.Scrollbar() != tabs.ScrollbarLeft {
		t.Error("scrollbar not moved")
	}
	store := reopen(t, m)
	if store.ScrollbarPosition() != tabs.ScrollbarLeft || store.TabBarLayout().Position != window.TabLeft {
		t.Error("layout not persisted")
	}
}

// =============================================================================
// Exit Tests
// =============================================================================

func TestQuitDialog(t *testing.T) {
	m := newModel(t, window.Normal, "")
	press(m, 'q', tea.ModCtrl)
	if !m.ShowQuitConfirm {
		t.Fatal("ctrl+q should open the exit dialog")
	}

	press(m, tea.KeySpace, 0)
	if !m.QuitDontAsk {
		t.Fatal("space should tick do-not-ask-again")
	}
	if cmd := press(m, tea.KeyEnter, 0); !isQuit(cmd) {
		t.Fatal("confirming should quit")
	}
	if !m.Quitting() {
		t.Error("model should be quitting")
	}

	store := reopen(t, m)
	if store.AskOnExit() {
		t.Error("do-not-ask-again should be persisted")
	}
	if r, st, ok := store.MainWindowGeometry(); !ok || st != window.StateMaximized || r.Width != 200 {
		t.Errorf("geometry not persisted: %v %v %v", r, st, ok)
	}
}

func TestQuitWithoutAsking(t *testing.T) {
	m := newModel(t, window.Overlay, "[window]\nask_on_exit = false\n")
	if cmd := press(m, 'q', tea.ModCtrl); !isQuit(cmd) {
		t.Fatal("ctrl+q should quit at once")
	}
	if m.Hotkeys.Bound("f12") {
		t.Error("quitting should release the toggle hotkey")
	}
	if _, _, ok := reopen(t, m).MainWindowGeometry(); ok {
		t.Error("drop-down geometry is never persisted")
	}
}

// =============================================================================
// Live Config Tests
// =============================================================================

func TestConfigChanged(t *testing.T) {
	m := newModel(t, window.Overlay, "")

	props := "[drop]\nwidth = 50\nshortcut = \"F11\"\n\n[window]\nscrollbar_position = \"none\"\n"
	if err := os.WriteFile(m.Store.Path(), []byte(props), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Update(ConfigChangedMsg{})

	press(m, tea.KeyF12, 0)
	if m.Visibility.State() != window.Hidden {
		t.Error("the old hotkey should be released")
	}
	press(m, tea.KeyF11, 0)
	if m.Visibility.State() != window.Shown {
		t.Fatal("the new hotkey should toggle")
	}
	if m.desk.geometry.Width != 100 {
		t.Errorf("width = %d, want 100", m.desk.geometry.Width)
	}
	if m.Tabs.Scrollbar() != tabs.ScrollbarNone {
		t.Error("scrollbar setting not applied")
	}
	if !hasNotification(m, "info", "reloaded") {
		t.Error("expected a reload notification")
	}
}

func TestConfigChanged_ToggleKeyMovesToShortcut(t *testing.T) {
	m := newModel(t, window.Overlay, "[drop]\nshortcut = \"alt+g\"\n")
	if m.Visibility.Binding() != "alt+g" {
		t.Fatalf("binding = %q", m.Visibility.Binding())
	}

	props := "[drop]\nshortcut = \"F12\"\n\n[shortcuts]\nadd_tab = [\"alt+g\"]\n"
	if err := os.WriteFile(m.Store.Path(), []byte(props), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Update(ConfigChangedMsg{})

	for _, msg := range m.LogMessages {
		if msg.Level == "WARN" && strings.Contains(msg.Message, "already bound") {
			t.Errorf("unexpected conflict warning: %s", msg.Message)
		}
	}
	if m.Visibility.Binding() != "f12" {
		t.Errorf("binding = %q, want f12", m.Visibility.Binding())
	}
	if err := m.Hotkeys.Bind(hotkey.MustParse("alt+g"), func() {}); !errors.Is(err, hotkey.ErrAlreadyBound) {
		t.Errorf("alt+g should belong to the add tab shortcut, Bind() error = %v", err)
	}

	press(m, tea.KeyF12, 0)
	press(m, 'g', tea.ModAlt)
	if m.Tabs.Len() != 2 {
		t.Errorf("alt+g should add a tab, len = %d", m.Tabs.Len())
	}
}

func TestConfigChanged_Invalid(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	if err := os.WriteFile(m.Store.Path(), []byte("[drop\nwidth ="), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Update(ConfigChangedMsg{})
	if !hasNotification(m, "error", "not reloaded") {
		t.Error("expected an error notification")
	}
	if m.Visibility.Binding() != "f12" {
		t.Error("a broken file must not change the hotkey")
	}
}

// =============================================================================
// Rendering Tests
// =============================================================================

func TestView_Hidden(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	out := ansi.Strip(m.GetCanvas().Render())
	if !strings.Contains(out, "press F12") {
		t.Error("desktop should show the hotkey hint")
	}
	if strings.Contains(out, "Shell No. 1") {
		t.Error("hidden drop-down must not be drawn")
	}
}

func TestView_Shown(t *testing.T) {
	m := newModel(t, window.Overlay, "")
	press(m, tea.KeyF12, 0)
	out := ansi.Strip(m.GetCanvas().Render())
	for _, want := range []string{"Shell No. 1", "keep open", "drop-down", "CPU:"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	view := m.View()
	if !view.AltScreen || !view.ReportFocus {
		t.Error("view should use the alt screen and report focus")
	}
}

func TestView_Dialogs(t *testing.T) {
	m := newModel(t, window.Normal, "")
	tests := []struct {
		action string
		want   string
	}{
		{config.ActionMenu, "New tab"},
		{config.ActionAbout, "qterminal test"},
		{config.ActionLogs, "Logs"},
		{config.ActionQuit, "Exit qterminal?"},
	}
	for _, tt := range tests {
		m.runAction(tt.action)
		if out := ansi.Strip(m.GetCanvas().Render()); !strings.Contains(out, tt.want) {
			t.Errorf("%s: view missing %q", tt.action, tt.want)
		}
		press(m, tea.KeyEscape, 0)
		if m.openWindow() != activeNone {
			t.Errorf("%s: escape should close it", tt.action)
		}
	}
}

// =============================================================================
// Notification and Log Tests
// =============================================================================

func TestNotificationsExpire(t *testing.T) {
	m := newModel(t, window.Normal, "")
	m.Notifications = nil
	m.ShowNotification("fresh", "info", time.Minute)
	m.Notifications = append(m.Notifications, Notification{
		ID: "old", Message: "old", Type: "info",
		StartTime: time.Now().Add(-time.Hour), Duration: time.Second,
	})

	_, cmd := m.Update(TickerMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(m.Notifications) != 1 || m.Notifications[0].Message != "fresh" {
		t.Errorf("notifications = %+v", m.Notifications)
	}
}

func TestLogRing(t *testing.T) {
	m := newModel(t, window.Normal, "")
	for i := 0; i < MaxLogMessages+50; i++ {
		m.LogInfo("message %d", i)
	}
	if len(m.LogMessages) != MaxLogMessages {
		t.Fatalf("len = %d", len(m.LogMessages))
	}
	last := m.LogMessages[len(m.LogMessages)-1].Message
	if last != fmt.Sprintf("message %d", MaxLogMessages+49) {
		t.Errorf("last = %q", last)
	}
}

func TestCPUGraph(t *testing.T) {
	m := &Model{}
	if got, want := m.GetCPUGraph(), "CPU:"+strings.Repeat(" ", 10)+"   0%"; got != want {
		t.Errorf("empty graph = %q", got)
	}
	for _, v := range []float64{0, 50, 100, 250} {
		m.recordCPU(v)
	}
	got := m.GetCPUGraph()
	if !strings.HasSuffix(got, "100%") || !strings.Contains(got, "▁▅██") {
		t.Errorf("graph = %q", got)
	}
}

func TestClose(t *testing.T) {
	m := newModel(t, window.Normal, "")
	m.Close()
	if !m.Quitting() {
		t.Fatal("Close should shut the model down")
	}
	if _, _, ok := reopen(t, m).MainWindowGeometry(); !ok {
		t.Error("Close should persist the geometry")
	}
	m.Close()
}
