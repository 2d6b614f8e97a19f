package app

import (
	"fmt"

	"github.com/ayhanyalcinsoy/qterminal/internal/window"
)

// DesktopBarHeight is the number of rows the desktop bar takes at the
// bottom of the host terminal. It plays the part of a panel: the available
// area excludes it.
const DesktopBarHeight = 1

// Application windows that can hold activation besides the main window.
const (
	activeNone   = ""
	activeMain   = "main"
	activeMenu   = "menu"
	activeAbout  = "about"
	activeLogs   = "logs"
	activeDialog = "dialog"
)

// terminalDisplay is the host terminal seen as a one-screen desktop. It
// records what the window core asks for and the model renders from it.
type terminalDisplay struct {
	width, height int

	geometry window.Rect
	state    window.State
	flags    window.Flags
	margins  window.Margins
	style    window.StyleSheet
	visible  bool
	raised   int

	// active names the application window holding activation, or
	// activeNone when the desktop has it.
	active string
}

var (
	_ window.Display  = (*terminalDisplay)(nil)
	_ window.AppFocus = (*terminalDisplay)(nil)
)

func (d *terminalDisplay) resize(width, height int) {
	d.width, d.height = width, height
}

// ScreenGeometry implements window.Display. Screen 0 and negative screens
// are the host terminal; there are no others.
func (d *terminalDisplay) ScreenGeometry(screen int) (window.Rect, error) {
	if screen > 0 {
		return window.Rect{}, fmt.Errorf("screen %d: %w", screen, window.ErrGeometryUnavailable)
	}
	if d.width <= 0 || d.height <= DesktopBarHeight {
		return window.Rect{}, window.ErrGeometryUnavailable
	}
	return window.Rect{Width: d.width, Height: d.height - DesktopBarHeight}, nil
}

func (d *terminalDisplay) SetGeometry(r window.Rect)           { d.geometry = r }
func (d *terminalDisplay) SetWindowState(s window.State)       { d.state = s }
func (d *terminalDisplay) SetFlags(f window.Flags)             { d.flags = f }
func (d *terminalDisplay) SetContentsMargins(m window.Margins) { d.margins = m }
func (d *terminalDisplay) SetStyleSheet(s window.StyleSheet)   { d.style = s }
func (d *terminalDisplay) Show()                               { d.visible = true }
func (d *terminalDisplay) Raise()                              { d.raised++ }
func (d *terminalDisplay) Activate()                           { d.active = activeMain }

// Hide implements window.Display. A hidden main window loses activation.
func (d *terminalDisplay) Hide() {
	d.visible = false
	if d.active == activeMain {
		d.active = activeNone
	}
}

// AnyWindowActive implements window.AppFocus.
func (d *terminalDisplay) AnyWindowActive() bool {
	return d.active != activeNone
}

// contains reports whether the cell (x, y) lies inside the visible main
// window.
func (d *terminalDisplay) contains(x, y int) bool {
	if !d.visible {
		return false
	}
	r := d.geometry
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// mainActive reports whether keyboard input goes to the main window.
func (d *terminalDisplay) mainActive() bool {
	return d.visible && d.active == activeMain
}
