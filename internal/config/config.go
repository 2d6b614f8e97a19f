// Package config holds the persisted properties of the terminal: drop-down
// geometry and hotkey, tab-bar layout, window geometry, exit confirmation,
// theme and shortcut overrides. Properties live in a TOML file under the XDG
// config directory.
package config

import (
	"strings"

	"github.com/adrg/xdg"
)

const configFileName = "qterminal/config.toml"

// Defaults used whenever a property is absent from the file.
const (
	DefaultDropWidth    = 70
	DefaultDropHeight   = 45
	DefaultDropShortcut = "F12"
	DefaultTabsPosition = "top"
	DefaultScrollbar    = "right"
	DefaultTheme        = "default"
)

// Config is the on-disk representation of the properties file.
type Config struct {
	Drop       DropConfig          `toml:"drop"`
	Window     WindowConfig        `toml:"window"`
	Appearance AppearanceConfig    `toml:"appearance"`
	Shortcuts  map[string][]string `toml:"shortcuts"`
}

// DropConfig configures the drop-down overlay.
type DropConfig struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Screen   int    `toml:"screen"`
	KeepOpen bool   `toml:"keep_open"`
	Shortcut string `toml:"shortcut"`
}

// WindowConfig configures the main window and its tab bar.
type WindowConfig struct {
	TabsPosition      string `toml:"tabs_position"`
	TabBarHidden      bool   `toml:"tabbar_hidden"`
	Borderless        bool   `toml:"borderless"`
	ScrollbarPosition string `toml:"scrollbar_position"`
	AskOnExit         bool   `toml:"ask_on_exit"`
	Geometry          string `toml:"geometry,omitempty"`
	State             string `toml:"state,omitempty"`
}

// AppearanceConfig selects colours.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the built-in properties.
func DefaultConfig() *Config {
	return &Config{
		Drop: DropConfig{
			Width:    DefaultDropWidth,
			Height:   DefaultDropHeight,
			Screen:   -1,
			Shortcut: DefaultDropShortcut,
		},
		Window: WindowConfig{
			TabsPosition:      DefaultTabsPosition,
			ScrollbarPosition: DefaultScrollbar,
			AskOnExit:         true,
		},
		Appearance: AppearanceConfig{Theme: DefaultTheme},
		Shortcuts:  map[string][]string{},
	}
}

// GetConfigPath returns the path of the properties file, creating the
// parent directory if needed.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(configFileName)
}

// normalize clamps out-of-range values back into their documented domain.
// It reports the names of the properties it had to fix.
func (c *Config) normalize() []string {
	var fixed []string
	clampPercent := func(name string, v *int) {
		if *v < 0 || *v > 100 {
			fixed = append(fixed, name)
			*v = min(max(*v, 0), 100)
		}
	}
	clampPercent("drop.width", &c.Drop.Width)
	clampPercent("drop.height", &c.Drop.Height)

	switch strings.ToLower(c.Window.TabsPosition) {
	case "top", "bottom", "left", "right", "north", "south", "west", "east":
	default:
		fixed = append(fixed, "window.tabs_position")
		c.Window.TabsPosition = DefaultTabsPosition
	}
	switch strings.ToLower(c.Window.ScrollbarPosition) {
	case "none", "left", "right":
	default:
		fixed = append(fixed, "window.scrollbar_position")
		c.Window.ScrollbarPosition = DefaultScrollbar
	}
	if c.Appearance.Theme == "" {
		c.Appearance.Theme = DefaultTheme
	}
	if c.Shortcuts == nil {
		c.Shortcuts = map[string][]string{}
	}
	return fixed
}
