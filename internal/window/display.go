package window

import "errors"

// ErrGeometryUnavailable is returned by a Display that cannot report the
// available desktop area.
var ErrGeometryUnavailable = errors.New("desktop geometry unavailable")

// Display is the display system the core talks to. Every method except
// ScreenGeometry is a fire-and-forget request.
type Display interface {
	// ScreenGeometry returns the available area (excluding panels and docks)
	// of the given screen. A negative screen selects the primary screen.
	ScreenGeometry(screen int) (Rect, error)
	SetGeometry(r Rect)
	SetWindowState(s State)
	SetFlags(f Flags)
	SetContentsMargins(m Margins)
	SetStyleSheet(s StyleSheet)
	Show()
	Hide()
	Raise()
	Activate()
}

// AppFocus answers whether any window of the application currently holds
// activation. It is queried across the whole application, not per window.
type AppFocus interface {
	AnyWindowActive() bool
}

// Settings is the slice of the settings store the core reads and persists.
type Settings interface {
	OverlayConfig() OverlayConfig
	TabBarLayout() TabBarLayout
	SetTabBarLayout(l TabBarLayout)
	KeepOpen() bool
	SetKeepOpen(v bool)
	// MainWindowGeometry returns the persisted Normal-mode geometry. ok is
	// false when nothing has been persisted yet.
	MainWindowGeometry() (r Rect, s State, ok bool)
	SetMainWindowGeometry(r Rect, s State)
	Save() error
}
