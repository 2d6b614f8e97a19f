package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// Store is the settings store handed to the window core and the shell. It
// is owned by the application root and is not safe for concurrent use.
type Store struct {
	path   string
	cfg    *Config
	logger *log.Logger

	// synced is the file content as last read or written. Reload uses it to
	// ignore change notifications caused by our own writes.
	synced []byte
}

var _ window.Settings = (*Store)(nil)

// NewStore returns a store backed by path, populated with defaults. Call
// Load to read the file.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, cfg: DefaultConfig(), logger: logger.WithPrefix("config")}
}

// Open resolves the XDG properties path and loads it.
func Open(logger *log.Logger) (*Store, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	s := NewStore(path, logger)
	return s, s.Load()
}

// Path returns the properties file location.
func (s *Store) Path() string { return s.path }

// Config returns the live properties.
func (s *Store) Config() *Config { return s.cfg }

// Load reads the properties file. Absent keys, and an absent file, take
// their defaults. On a parse error the previous values are kept.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("no properties file, using defaults", "path", s.path)
			s.cfg = DefaultConfig()
			s.synced = nil
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	return s.decode(data)
}

func (s *Store) decode(data []byte) error {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	if fixed := cfg.normalize(); len(fixed) > 0 {
		s.logger.Warn("replaced invalid properties", "keys", fixed)
	}
	s.cfg = cfg
	s.synced = data
	return nil
}

// Reload re-reads the file and reports whether its content differs from
// what the store last read or wrote.
func (s *Store) Reload() (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", s.path, err)
	}
	if bytes.Equal(data, s.synced) {
		return false, nil
	}
	if err := s.decode(data); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes all properties. The file is replaced atomically and left
// untouched when nothing changed.
func (s *Store) Save() error {
	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	if s.synced != nil && bytes.Equal(data, s.synced) {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	s.synced = data
	s.logger.Debug("saved properties", "path", s.path)
	return nil
}

// Reset restores the defaults and writes them.
func (s *Store) Reset() error {
	s.cfg = DefaultConfig()
	s.synced = nil
	return s.Save()
}

// OverlayConfig implements window.Settings.
func (s *Store) OverlayConfig() window.OverlayConfig {
	return window.OverlayConfig{
		WidthPercent:  s.cfg.Drop.Width,
		HeightPercent: s.cfg.Drop.Height,
		Screen:        s.cfg.Drop.Screen,
	}
}

// SetOverlaySize sets the drop-down size in percent of the desktop.
func (s *Store) SetOverlaySize(width, height int) {
	s.cfg.Drop.Width = min(max(width, 0), 100)
	s.cfg.Drop.Height = min(max(height, 0), 100)
}

// TabBarLayout implements window.Settings.
func (s *Store) TabBarLayout() window.TabBarLayout {
	pos, err := window.ParseTabPosition(s.cfg.Window.TabsPosition)
	if err != nil {
		s.logger.Debug("bad tab position", "err", err)
	}
	return window.TabBarLayout{
		Position:      pos,
		TabBarVisible: !s.cfg.Window.TabBarHidden,
		Borderless:    s.cfg.Window.Borderless,
	}
}

// SetTabBarLayout implements window.Settings.
func (s *Store) SetTabBarLayout(l window.TabBarLayout) {
	s.cfg.Window.TabsPosition = l.Position.String()
	s.cfg.Window.TabBarHidden = !l.TabBarVisible
	s.cfg.Window.Borderless = l.Borderless
}

// KeepOpen implements window.Settings.
func (s *Store) KeepOpen() bool { return s.cfg.Drop.KeepOpen }

// SetKeepOpen implements window.Settings.
func (s *Store) SetKeepOpen(v bool) { s.cfg.Drop.KeepOpen = v }

// MainWindowGeometry implements window.Settings.
func (s *Store) MainWindowGeometry() (window.Rect, window.State, bool) {
	if s.cfg.Window.Geometry == "" {
		return window.Rect{}, window.StateNormal, false
	}
	r, err := window.ParseRect(s.cfg.Window.Geometry)
	if err != nil {
		s.logger.Warn("ignoring persisted geometry", "err", err)
		return window.Rect{}, window.StateNormal, false
	}
	return r, window.ParseState(s.cfg.Window.State), true
}

// SetMainWindowGeometry implements window.Settings.
func (s *Store) SetMainWindowGeometry(r window.Rect, st window.State) {
	s.cfg.Window.Geometry = r.String()
	s.cfg.Window.State = st.String()
}

// DropShortcut returns the configured toggle hotkey. An unparsable value
// falls back to the default.
func (s *Store) DropShortcut() hotkey.Sequence {
	seq, err := hotkey.Parse(s.cfg.Drop.Shortcut)
	if err != nil {
		s.logger.Warn("invalid drop shortcut, using default", "shortcut", s.cfg.Drop.Shortcut, "err", err)
		return hotkey.MustParse(DefaultDropShortcut)
	}
	return seq
}

// SetDropShortcut validates and stores the toggle hotkey.
func (s *Store) SetDropShortcut(key string) error {
	seq, err := hotkey.Parse(key)
	if err != nil {
		return err
	}
	s.cfg.Drop.Shortcut = seq.Display()
	return nil
}

// AskOnExit reports whether closing asks for confirmation.
func (s *Store) AskOnExit() bool { return s.cfg.Window.AskOnExit }

// SetAskOnExit sets the exit confirmation flag.
func (s *Store) SetAskOnExit(v bool) { s.cfg.Window.AskOnExit = v }

// ScrollbarPosition returns "none", "left" or "right".
func (s *Store) ScrollbarPosition() string { return s.cfg.Window.ScrollbarPosition }

// SetScrollbarPosition stores the scrollbar placement.
func (s *Store) SetScrollbarPosition(pos string) { s.cfg.Window.ScrollbarPosition = pos }

// Theme returns the configured bubbletint theme id.
func (s *Store) Theme() string { return s.cfg.Appearance.Theme }
