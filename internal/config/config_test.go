package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayhanyalcinsoy/qterminal/internal/config"
	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
)

func newStore(t *testing.T) *config.Store {
	t.Helper()
	return config.NewStore(filepath.Join(t.TempDir(), "config.toml"), nil)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Drop.Width != 70 || cfg.Drop.Height != 45 {
		t.Errorf("drop size = %dx%d, want 70x45", cfg.Drop.Width, cfg.Drop.Height)
	}
	if cfg.Drop.Shortcut != "F12" {
		t.Errorf("drop shortcut = %q", cfg.Drop.Shortcut)
	}
	if !cfg.Window.AskOnExit {
		t.Error("ask on exit should default to true")
	}
	if cfg.Window.TabsPosition != "top" {
		t.Errorf("tabs position = %q", cfg.Window.TabsPosition)
	}
}

// =============================================================================
// Store Tests
// =============================================================================

func TestStore_LoadMissingFile(t *testing.T) {
	s := newStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("Load of a missing file should succeed: %v", err)
	}
	if got := s.OverlayConfig(); got.WidthPercent != 70 || got.HeightPercent != 45 || got.Screen != -1 {
		t.Errorf("OverlayConfig = %+v", got)
	}
	if _, _, ok := s.MainWindowGeometry(); ok {
		t.Error("no geometry should be persisted yet")
	}
}

func TestStore_LoadPartialFileKeepsDefaults(t *testing.T) {
	s := newStore(t)
	writeFile(t, s.Path(), "[drop]\nwidth = 60\n")

	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := s.OverlayConfig()
	if got.WidthPercent != 60 || got.HeightPercent != 45 {
		t.Errorf("OverlayConfig = %+v", got)
	}
	if !s.AskOnExit() {
		t.Error("absent ask_on_exit should keep its default")
	}
	if s.DropShortcut() != "f12" {
		t.Errorf("DropShortcut = %q", s.DropShortcut())
	}
}

func TestStore_LoadClampsValues(t *testing.T) {
	s := newStore(t)
	writeFile(t, s.Path(), `
[drop]
width = 150
height = -5

[window]
tabs_position = "diagonal"
scrollbar_position = "middle"
`)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := s.OverlayConfig()
	if got.WidthPercent != 100 || got.HeightPercent != 0 {
		t.Errorf("OverlayConfig = %+v", got)
	}
	if s.TabBarLayout().Position != window.TabTop {
		t.Errorf("invalid tab position should fall back to top")
	}
	if s.ScrollbarPosition() != "right" {
		t.Errorf("ScrollbarPosition = %q", s.ScrollbarPosition())
	}
}

func TestStore_LoadInvalidTOML(t *testing.T) {
	s := newStore(t)
	writeFile(t, s.Path(), "[drop\nwidth = ")
	if err := s.Load(); err == nil {
		t.Fatal("expected a parse error")
	}
	if s.OverlayConfig().WidthPercent != 70 {
		t.Error("defaults should survive a parse error")
	}
}

func TestStore_SaveRoundTrip(t *testing.T) {
	s := newStore(t)
	s.SetOverlaySize(60, 80)
	s.SetKeepOpen(true)
	s.SetTabBarLayout(window.TabBarLayout{Position: window.TabLeft, TabBarVisible: false, Borderless: true})
	s.SetMainWindowGeometry(window.Rect{X: 1, Y: 2, Width: 100, Height: 30}, window.StateMaximized)
	s.SetAskOnExit(false)
	if err := s.SetDropShortcut("shift+ctrl+f12"); err != nil {
		t.Fatalf("SetDropShortcut failed: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := config.NewStore(s.Path(), nil)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := loaded.OverlayConfig(); got.WidthPercent != 60 || got.HeightPercent != 80 {
		t.Errorf("OverlayConfig = %+v", got)
	}
	if !loaded.KeepOpen() {
		t.Error("keep open not persisted")
	}
	want := window.TabBarLayout{Position: window.TabLeft, Borderless: true}
	if got := loaded.TabBarLayout(); got != want {
		t.Errorf("TabBarLayout = %+v, want %+v", got, want)
	}
	r, st, ok := loaded.MainWindowGeometry()
	if !ok || r != (window.Rect{X: 1, Y: 2, Width: 100, Height: 30}) || st != window.StateMaximized {
		t.Errorf("MainWindowGeometry = %v %v %v", r, st, ok)
	}
	if loaded.AskOnExit() {
		t.Error("ask on exit not persisted")
	}
	if loaded.DropShortcut() != "ctrl+shift+f12" {
		t.Errorf("DropShortcut = %q", loaded.DropShortcut())
	}
}

func TestStore_SetDropShortcutInvalid(t *testing.T) {
	s := newStore(t)
	if err := s.SetDropShortcut("Ctrl+"); err == nil {
		t.Error("expected an error for a malformed shortcut")
	}
	if s.DropShortcut() != "f12" {
		t.Errorf("shortcut should be unchanged, got %q", s.DropShortcut())
	}
}

func TestStore_InvalidShortcutFallsBack(t *testing.T) {
	s := newStore(t)
	writeFile(t, s.Path(), "[drop]\nshortcut = \"Bogus+Q\"\n")
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if got := s.DropShortcut(); got != hotkey.MustParse(config.DefaultDropShortcut) {
		t.Errorf("DropShortcut = %q", got)
	}
}

func TestStore_BadGeometryIgnored(t *testing.T) {
	s := newStore(t)
	writeFile(t, s.Path(), "[window]\ngeometry = \"garbage\"\n")
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := s.MainWindowGeometry(); ok {
		t.Error("unparsable geometry should read as absent")
	}
}

func TestStore_Reload(t *testing.T) {
	s := newStore(t)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	changed, err := s.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("our own write must not count as a change")
	}

	writeFile(t, s.Path(), "[drop]\nheight = 90\n")
	changed, err = s.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if !changed || s.OverlayConfig().HeightPercent != 90 {
		t.Errorf("changed = %v, height = %d", changed, s.OverlayConfig().HeightPercent)
	}
}

func TestStore_SaveSkipsUnchanged(t *testing.T) {
	s := newStore(t)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(s.Path(), old, old); err != nil {
		t.Fatal(err)
	}

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Error("Save rewrote an unchanged file")
	}
}

func TestStore_Reset(t *testing.T) {
	s := newStore(t)
	s.SetKeepOpen(true)
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.KeepOpen() {
		t.Error("Reset should restore defaults")
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[drop]") {
		t.Errorf("reset file content:\n%s", data)
	}
}

func TestStore_Watch(t *testing.T) {
	s := newStore(t)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan struct{}, 16)
	if err := s.Watch(ctx, func() { events <- struct{}{} }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	writeFile(t, s.Path(), "[drop]\nwidth = 50\n")
	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	// Unrelated files in the same directory are ignored.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(filepath.Dir(s.Path()), "other.toml"), "x = 1\n")
	for len(events) > 0 {
		<-events
	}
	select {
	case <-events:
		t.Error("unexpected notification for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

// =============================================================================
// KeybindRegistry Tests
// =============================================================================

func TestKeybindRegistry_GetKeys(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	keys := registry.GetKeys(config.ActionAddTab)
	if len(keys) != 1 || keys[0] != "alt+t" {
		t.Errorf("GetKeys(add_tab) = %v", keys)
	}
}

func TestKeybindRegistry_GetAction(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	tests := []struct {
		key  string
		want string
	}{
		{"alt+t", config.ActionAddTab},
		{"Alt+T", config.ActionAddTab},
		{"shift+alt+left", config.ActionMoveTabLeft},
		{"ctrl+pgdown", config.ActionNextTab},
		{"alt+right", config.ActionNextTab},
		{"f10", config.ActionMenu},
		{"ctrl+shift+alt+super+hyper+x", ""},
		{"Ctrl+", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := registry.GetAction(tt.key); got != tt.want {
				t.Errorf("GetAction(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeybindRegistry_GetKeysForDisplay(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	if got := registry.GetKeysForDisplay(config.ActionNextTab); got != "Ctrl+Pgdown, Alt+Right" {
		t.Errorf("GetKeysForDisplay(next_tab) = %q", got)
	}
	if got := registry.GetKeysForDisplay(config.ActionAbout); got != "" {
		t.Errorf("about has no default key, got %q", got)
	}
}

func TestKeybindRegistry_Overrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Shortcuts[config.ActionAddTab] = []string{"ctrl+t"}
	cfg.Shortcuts[config.ActionQuit] = []string{}
	cfg.Shortcuts["launch_rockets"] = []string{"alt+r"}
	cfg.Shortcuts[config.ActionAbout] = []string{"alt+c"} // taken by copy

	registry := config.NewKeybindRegistry(cfg)

	if registry.GetAction("ctrl+t") != config.ActionAddTab {
		t.Error("override not applied")
	}
	if registry.GetAction("alt+t") != "" {
		t.Error("overridden default should be released")
	}
	if len(registry.GetKeys(config.ActionQuit)) != 0 {
		t.Error("an empty override should unbind the action")
	}
	if !registry.IsCustom(config.ActionAddTab) || registry.IsCustom(config.ActionCloseTab) {
		t.Error("IsCustom mismatch")
	}
	if registry.GetAction("alt+c") != config.ActionCopy {
		t.Error("duplicate key must stay with its first action")
	}

	err := registry.Err()
	if err == nil {
		t.Fatal("expected problems to be reported")
	}
	if !strings.Contains(err.Error(), "launch_rockets") || !strings.Contains(err.Error(), "already bound") {
		t.Errorf("Err = %v", err)
	}
}

func TestKeybindRegistry_Claim(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())
	reg := hotkey.NewRegistry()
	if err := registry.Claim(reg, "application shortcuts"); err != nil {
		t.Fatalf("Claim failed: %v", err)
	}

	err := reg.Bind("alt+t", func() {})
	if !errors.Is(err, hotkey.ErrAlreadyBound) {
		t.Errorf("expected conflict with the New tab shortcut, got %v", err)
	}
	if err := reg.Bind("f12", func() {}); err != nil {
		t.Errorf("F12 should be free: %v", err)
	}
}

func TestGetKeybindings(t *testing.T) {
	sections := config.GetKeybindings(nil)
	if len(sections) == 0 {
		t.Fatal("expected keybinding sections")
	}
	var drop, normal bool
	for _, s := range sections {
		switch s.Condition {
		case "drop":
			drop = true
		case "!drop":
			normal = true
		}
		for _, b := range s.Bindings {
			if b.Key == "" || b.Description == "" {
				t.Errorf("section %s has an empty binding %+v", s.Title, b)
			}
		}
	}
	if !drop || !normal {
		t.Error("expected sections for both window modes")
	}
}

// =============================================================================
// Action Descriptions Tests
// =============================================================================

func TestActionDescriptions(t *testing.T) {
	for _, action := range config.Actions() {
		desc, ok := config.ActionDescriptions[action]
		if !ok {
			t.Errorf("Expected description for action %q", action)
			continue
		}
		if desc == "" {
			t.Errorf("Description for %q should not be empty", action)
		}
	}
	for action := range config.DefaultShortcuts {
		if _, ok := config.ActionDescriptions[action]; !ok {
			t.Errorf("default shortcut for unknown action %q", action)
		}
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkKeybindRegistry_GetAction(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetAction("alt+t")
	}
}

func BenchmarkKeybindRegistry_GetKeys(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetKeys(config.ActionAddTab)
	}
}
