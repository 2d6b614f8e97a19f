// Package theme provides the colours of the terminal window, its tab bar,
// the desktop bar and the dialogs.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// An empty name or "none" disables theming and standard terminal colors are used.
// It reports whether the requested theme was found.
func Initialize(themeName string) bool {
	if themeName == "" || themeName == "none" {
		enabled = false
		return true
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return false
	}
	return true
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Terminal colors
func TerminalFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

func TerminalBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// Window frame colors. The drop-down frame uses the accent so it stands out
// from whatever is underneath.
func FrameNormal() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#7f7f7f")
	}
	return t.BrightBlack
}

func FrameDrop() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

func TitleFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

// Tab bar colors
func TabActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

func TabInactive() color.Color {
	return lipgloss.Color("#808090")
}

func TabBarBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

// PinEngaged colors the keep-open button while the pin is on.
func PinEngaged() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func PinReleased() color.Color {
	return lipgloss.Color("#808090")
}

func Scrollbar() color.Color {
	return lipgloss.Color("#303040")
}

// Desktop colors
func DesktopBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func DesktopBarBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func DesktopBarFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

func DesktopBarAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

// Menu and dialog colors
func MenuBorder() color.Color {
	return lipgloss.Color("14")
}

func MenuKey() color.Color {
	return lipgloss.Color("11")
}

func MenuDim() color.Color {
	return lipgloss.Color("8")
}

func MenuSelected() color.Color {
	return lipgloss.Color("12")
}

func DialogBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff6b6b")
	}
	return t.BrightRed
}

// Notification colors
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

func NotificationWarning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func NotificationInfo() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0000ee")
	}
	return t.Blue
}

func NotificationFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}
