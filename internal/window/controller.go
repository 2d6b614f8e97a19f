package window

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Fallback size used when neither the desktop nor a previous geometry can
// provide one.
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// Controller turns the window mode, tab-bar layout and overlay config into
// concrete geometry, flags, margins and a stylesheet descriptor.
type Controller struct {
	mode     Mode
	display  Display
	settings Settings
	logger   *log.Logger

	overlay OverlayConfig
	layout  TabBarLayout

	// Persisted Normal-mode geometry, read once at construction.
	restored      Rect
	restoredState State
	hasRestored   bool

	geometry    Rect
	state       State
	hasGeometry bool
	flags       Flags
	margins     Margins
	style       StyleSheet

	layoutObservers []func(TabBarLayout)
}

// NewController creates a controller for a window of the given mode. A nil
// logger discards output.
func NewController(mode Mode, display Display, settings Settings, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		mode:     mode,
		display:  display,
		settings: settings,
		logger:   logger.WithPrefix("window"),
		overlay:  settings.OverlayConfig().Clamped(),
		layout:   settings.TabBarLayout(),
	}
	if mode == Normal {
		c.restored, c.restoredState, c.hasRestored = settings.MainWindowGeometry()
		if c.hasRestored && c.restored.Empty() && c.restoredState == StateNormal {
			c.logger.Debug("ignoring empty persisted geometry", "geometry", c.restored)
			c.hasRestored = false
		}
	}
	return c
}

// Mode returns the immutable window mode.
func (c *Controller) Mode() Mode { return c.mode }

// Geometry returns the last geometry sent to the display.
func (c *Controller) Geometry() Rect { return c.geometry }

// Flags returns the last flags sent to the display.
func (c *Controller) Flags() Flags { return c.flags }

// Margins returns the current content margins.
func (c *Controller) Margins() Margins { return c.margins }

// StyleSheet returns the current stylesheet descriptor.
func (c *Controller) StyleSheet() StyleSheet { return c.style }

// Layout returns the current tab-bar layout.
func (c *Controller) Layout() TabBarLayout { return c.layout }

// Overlay returns the current overlay configuration.
func (c *Controller) Overlay() OverlayConfig { return c.overlay }

// OnLayoutChanged registers fn to be called after every layout refresh.
func (c *Controller) OnLayoutChanged(fn func(TabBarLayout)) {
	c.layoutObservers = append(c.layoutObservers, fn)
}

// FlagsFor returns the window flags requested for a mode and layout.
func FlagsFor(mode Mode, layout TabBarLayout) Flags {
	if mode == Overlay {
		return FlagFrameless | FlagStaysOnTop | FlagNoMinimize | FlagDialog
	}
	if layout.Borderless {
		return FlagFrameless
	}
	return 0
}

// ApplyMode sets the platform flags for the mode and recomputes geometry
// and layout.
func (c *Controller) ApplyMode() {
	c.flags = FlagsFor(c.mode, c.layout)
	c.display.SetFlags(c.flags)
	c.logger.Debug("applied mode", "mode", c.mode, "flags", c.flags)
	c.Recompute()
}

// Recompute refreshes geometry, margins and stylesheet.
func (c *Controller) Recompute() {
	c.RecomputeGeometry()
	c.applyLayout()
}

// RecomputeGeometry computes and applies the window geometry. The display
// is only touched when the result differs from what was last applied.
func (c *Controller) RecomputeGeometry() Rect {
	var (
		next  Rect
		state State
	)
	if c.mode == Overlay {
		next = c.overlayGeometry()
	} else {
		next, state = c.normalGeometry()
	}

	if c.hasGeometry && next == c.geometry && state == c.state {
		return c.geometry
	}

	if c.mode == Normal && (!c.hasGeometry || state != c.state) {
		c.display.SetWindowState(state)
	}
	c.geometry = next
	c.state = state
	c.hasGeometry = true
	c.display.SetGeometry(next)
	c.logger.Debug("geometry", "mode", c.mode, "rect", next, "state", state)
	return next
}

// OverlayGeometry computes the drop-down rectangle for an available area:
// percentage-sized, horizontally centred within avail and anchored to the
// top edge of the screen (row 0) whatever avail's own top is. Each
// dimension is at least one unit.
func OverlayGeometry(avail Rect, cfg OverlayConfig) Rect {
	cfg = cfg.Clamped()
	w := max(avail.Width*cfg.WidthPercent/100, 1)
	h := max(avail.Height*cfg.HeightPercent/100, 1)
	return Rect{
		X:      avail.X + (avail.Width-w)/2,
		Y:      0,
		Width:  w,
		Height: h,
	}
}

func (c *Controller) overlayGeometry() Rect {
	avail, err := c.availableArea(c.overlay.Screen)
	if err != nil {
		c.logger.Warn("using last known geometry", "err", err)
		return c.fallback()
	}
	return OverlayGeometry(avail, c.overlay)
}

func (c *Controller) normalGeometry() (Rect, State) {
	if c.hasRestored && c.restoredState == StateNormal {
		return c.restored, StateNormal
	}

	// Maximized and fullscreen windows, and windows with nothing persisted,
	// fill the available area of the primary screen.
	state := StateMaximized
	if c.hasRestored {
		state = c.restoredState
	}
	avail, err := c.availableArea(-1)
	if err != nil {
		c.logger.Warn("using last known geometry", "err", err)
		return c.fallback(), state
	}
	return avail, state
}

// availableArea queries the display, falling back to the primary screen when
// a secondary screen is unavailable.
func (c *Controller) availableArea(screen int) (Rect, error) {
	r, err := c.display.ScreenGeometry(screen)
	if (err != nil || r.Empty()) && screen >= 0 {
		c.logger.Debug("screen unavailable, trying primary", "screen", screen, "err", err)
		r, err = c.display.ScreenGeometry(-1)
	}
	if err == nil && r.Empty() {
		err = ErrGeometryUnavailable
	}
	if err != nil && !errors.Is(err, ErrGeometryUnavailable) {
		err = errors.Join(ErrGeometryUnavailable, err)
	}
	return r, err
}

func (c *Controller) fallback() Rect {
	if c.hasGeometry && !c.geometry.Empty() {
		return c.geometry
	}
	return Rect{Width: FallbackWidth, Height: FallbackHeight}
}

// RecomputeMargins derives the content margins from the tab-bar layout.
// Margins only exist next to a visible tab bar.
func RecomputeMargins(layout TabBarLayout) Margins {
	if !layout.TabBarVisible {
		return Margins{}
	}
	switch layout.Position {
	case TabTop:
		return Margins{Top: 4, Bottom: 3}
	case TabBottom:
		return Margins{Bottom: 4}
	case TabLeft:
		return Margins{Left: 4, Bottom: 3}
	case TabRight:
		return Margins{Right: 4, Bottom: 3}
	}
	return Margins{}
}

// StyleSheetFor returns the stylesheet descriptor for a mode and layout.
func StyleSheetFor(mode Mode, layout TabBarLayout) StyleSheet {
	s := StyleSheet{Framed: mode == Overlay}
	switch layout.Position {
	case TabTop, TabBottom:
		s.TabBarInset = 1
		s.CornerInset = 1
	}
	return s
}

func (c *Controller) applyLayout() {
	c.margins = RecomputeMargins(c.layout)
	c.style = StyleSheetFor(c.mode, c.layout)
	c.display.SetContentsMargins(c.margins)
	c.display.SetStyleSheet(c.style)
	for _, fn := range c.layoutObservers {
		fn(c.layout)
	}
}

// ToggleBorder flips the borderless setting, persists it and refreshes the
// layout. In Normal mode the flags are re-applied and the window is shown
// and re-activated so it keeps input focus across the flag change. The
// overlay is always frameless, so only the persisted value changes there.
func (c *Controller) ToggleBorder() {
	c.layout.Borderless = !c.layout.Borderless
	c.persistLayout()

	if c.mode == Normal {
		c.flags = FlagsFor(c.mode, c.layout)
		c.display.SetFlags(c.flags)
		c.display.Show()
		c.display.Activate()
	}
	c.applyLayout()
}

// ToggleTabBar flips tab-bar visibility, persists it and refreshes the layout.
func (c *Controller) ToggleTabBar() {
	c.layout.TabBarVisible = !c.layout.TabBarVisible
	c.persistLayout()
	c.applyLayout()
}

// SetTabPosition moves the tab bar to another edge.
func (c *Controller) SetTabPosition(p TabPosition) {
	if c.layout.Position == p {
		return
	}
	c.layout.Position = p
	c.persistLayout()
	c.applyLayout()
}

// ConfigChanged re-reads the overlay config and layout from the settings
// store, persists them and recomputes everything.
func (c *Controller) ConfigChanged() {
	c.overlay = c.settings.OverlayConfig().Clamped()
	layout := c.settings.TabBarLayout()
	borderChanged := layout.Borderless != c.layout.Borderless
	c.layout = layout

	if borderChanged {
		c.flags = FlagsFor(c.mode, c.layout)
		c.display.SetFlags(c.flags)
	}
	c.persistLayout()
	c.Recompute()
}

// PersistGeometry records the current Normal-mode geometry and state in the
// settings store. Overlay geometry is always derived, so nothing is stored.
func (c *Controller) PersistGeometry() {
	if c.mode != Normal || !c.hasGeometry {
		return
	}
	c.settings.SetMainWindowGeometry(c.geometry, c.state)
}

func (c *Controller) persistLayout() {
	c.settings.SetTabBarLayout(c.layout)
	if err := c.settings.Save(); err != nil {
		c.logger.Warn("could not persist layout", "err", err)
	}
}
