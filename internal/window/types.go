// Package window implements the main-window presentation core: the mode
// controller that turns configuration into geometry, flags, margins and a
// stylesheet descriptor, and the visibility state machine that drives the
// drop-down overlay.
package window

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is the presentation style of a window. It is fixed at construction.
type Mode int

const (
	// Normal is a conventional, decorated, persistent window.
	Normal Mode = iota
	// Overlay is the frameless, topmost, hotkey-toggled drop-down window.
	Overlay
)

func (m Mode) String() string {
	switch m {
	case Overlay:
		return "overlay"
	default:
		return "normal"
	}
}

// VisibilityState is the transient shown/hidden state of a window.
type VisibilityState int

const (
	// Hidden means the window is not on screen.
	Hidden VisibilityState = iota
	// Shown means the window is on screen.
	Shown
)

func (v VisibilityState) String() string {
	if v == Shown {
		return "shown"
	}
	return "hidden"
}

// TabPosition is the edge the tab bar is attached to.
type TabPosition int

const (
	TabTop TabPosition = iota
	TabBottom
	TabLeft
	TabRight
)

var tabPositionNames = [...]string{"top", "bottom", "left", "right"}

func (p TabPosition) String() string {
	if p < TabTop || p > TabRight {
		return "top"
	}
	return tabPositionNames[p]
}

// ParseTabPosition converts a config value into a TabPosition. The compass
// names ("north", "south", ...) are accepted as well.
func ParseTabPosition(s string) (TabPosition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "north":
		return TabTop, nil
	case "bottom", "south":
		return TabBottom, nil
	case "left", "west":
		return TabLeft, nil
	case "right", "east":
		return TabRight, nil
	}
	return TabTop, fmt.Errorf("unknown tab position %q", s)
}

// TabBarLayout drives the margin and stylesheet computation.
type TabBarLayout struct {
	Position      TabPosition
	TabBarVisible bool
	Borderless    bool
}

// OverlayConfig sizes and places the drop-down window.
type OverlayConfig struct {
	WidthPercent  int
	HeightPercent int
	// Screen selects the display; negative means the primary screen.
	Screen int
}

// Clamped returns a copy with both percentages forced into [0,100].
func (c OverlayConfig) Clamped() OverlayConfig {
	c.WidthPercent = min(max(c.WidthPercent, 0), 100)
	c.HeightPercent = min(max(c.HeightPercent, 0), 100)
	return c
}

// Rect is a rectangle in desktop coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// String encodes the rectangle as the "x,y,w,h" geometry blob.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
}

// ParseRect parses an "x,y,w,h" geometry blob.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("invalid geometry %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("invalid geometry %q: %w", s, err)
		}
		vals[i] = v
	}
	return Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// Margins are per-edge content margins in pixels.
type Margins struct {
	Left, Top, Right, Bottom int
}

// pixelsPerCell converts pixel margins to terminal cells, rounding up.
const pixelsPerCell = 4

// Cells scales the margins to character cells for the terminal desktop.
func (m Margins) Cells() Margins {
	cells := func(px int) int {
		if px <= 0 {
			return 0
		}
		return (px + pixelsPerCell - 1) / pixelsPerCell
	}
	return Margins{Left: cells(m.Left), Top: cells(m.Top), Right: cells(m.Right), Bottom: cells(m.Bottom)}
}

// Flags are the window-manager hints requested for a window.
type Flags uint8

const (
	FlagFrameless Flags = 1 << iota
	FlagStaysOnTop
	FlagNoMinimize
	FlagDialog
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

func (f Flags) String() string {
	var names []string
	if f.Has(FlagFrameless) {
		names = append(names, "frameless")
	}
	if f.Has(FlagStaysOnTop) {
		names = append(names, "stays-on-top")
	}
	if f.Has(FlagNoMinimize) {
		names = append(names, "no-minimize")
	}
	if f.Has(FlagDialog) {
		names = append(names, "dialog")
	}
	if len(names) == 0 {
		return "decorated"
	}
	return strings.Join(names, "|")
}

// State is the persisted window state of a Normal-mode window.
type State int

const (
	StateNormal State = iota
	StateMaximized
	StateFullscreen
)

func (s State) String() string {
	switch s {
	case StateMaximized:
		return "maximized"
	case StateFullscreen:
		return "fullscreen"
	default:
		return "normal"
	}
}

// ParseState decodes the window-state blob. Unknown values map to StateNormal.
func ParseState(s string) State {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "maximized":
		return StateMaximized
	case "fullscreen":
		return StateFullscreen
	default:
		return StateNormal
	}
}

// StyleSheet describes the cosmetic frame around the window content.
type StyleSheet struct {
	// Framed draws a thin border around a frameless overlay.
	Framed bool
	// TabBarInset shifts the tab strip away from the window edge.
	TabBarInset int
	// CornerInset offsets the corner widget (the pin button) from the tab bar.
	CornerInset int
}
