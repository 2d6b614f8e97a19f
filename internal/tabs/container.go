// Package tabs is the tab strip of the main window: tabs holding one or
// more split panes, the tab-bar placement and the scrollbar placement.
package tabs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ayhanyalcinsoy/qterminal/internal/window"
	"github.com/google/uuid"
)

// Orientation is the direction a tab's panes are laid out in.
type Orientation int

const (
	// Horizontal places panes side by side.
	Horizontal Orientation = iota
	// Vertical stacks panes.
	Vertical
)

// Scrollbar placements.
const (
	ScrollbarNone  = "none"
	ScrollbarLeft  = "left"
	ScrollbarRight = "right"
)

// Pane is a single scratch session inside a tab. It keeps the lines that
// were entered and the line being edited.
type Pane struct {
	ID      uuid.UUID
	Workdir string
	Command string
	Lines   []string
	Input   string
}

// Type appends text to the input line.
func (p *Pane) Type(s string) { p.Input += s }

// Backspace removes the last rune of the input line.
func (p *Pane) Backspace() {
	if p.Input == "" {
		return
	}
	r := []rune(p.Input)
	p.Input = string(r[:len(r)-1])
}

// Submit moves the input line into the pane's history.
func (p *Pane) Submit() {
	p.Lines = append(p.Lines, "$ "+p.Input)
	p.Input = ""
}

// Tab is one entry of the tab strip.
type Tab struct {
	ID    uuid.UUID
	Title string
	Panes []*Pane
	Focus int
	Split Orientation
}

// ActivePane returns the focused pane.
func (t *Tab) ActivePane() *Pane {
	if len(t.Panes) == 0 {
		return nil
	}
	return t.Panes[t.Focus]
}

// Container holds the tabs of one window.
type Container struct {
	tabs      []*Tab
	active    int
	layout    window.TabBarLayout
	scrollbar string
	workdir   string
	command   string
	counter   int
}

// New returns an empty container. New panes start in workdir and run
// command, either of which may be empty.
func New(workdir, command string) *Container {
	return &Container{
		layout:    window.TabBarLayout{Position: window.TabTop, TabBarVisible: true},
		scrollbar: ScrollbarRight,
		workdir:   workdir,
		command:   command,
	}
}

func (c *Container) newPane() *Pane {
	return &Pane{ID: uuid.New(), Workdir: c.workdir, Command: c.command}
}

// Len returns the number of tabs.
func (c *Container) Len() int { return len(c.tabs) }

// Tabs returns the tabs in strip order.
func (c *Container) Tabs() []*Tab { return c.tabs }

// ActiveIndex returns the index of the current tab, or -1 when empty.
func (c *Container) ActiveIndex() int {
	if len(c.tabs) == 0 {
		return -1
	}
	return c.active
}

// Active returns the current tab, or nil when empty.
func (c *Container) Active() *Tab {
	if len(c.tabs) == 0 {
		return nil
	}
	return c.tabs[c.active]
}

// ActivePane returns the focused pane of the current tab.
func (c *Container) ActivePane() *Pane {
	if t := c.Active(); t != nil {
		return t.ActivePane()
	}
	return nil
}

// AddTab inserts a new tab after the current one and switches to it.
func (c *Container) AddTab() *Tab {
	c.counter++
	t := &Tab{
		ID:    uuid.New(),
		Title: fmt.Sprintf("Shell No. %d", c.counter),
		Panes: []*Pane{c.newPane()},
	}
	if len(c.tabs) == 0 {
		c.tabs = []*Tab{t}
		c.active = 0
		return t
	}
	c.active++
	c.tabs = slices.Insert(c.tabs, c.active, t)
	return t
}

// CloseTab removes the current tab and returns how many remain.
func (c *Container) CloseTab() int {
	if len(c.tabs) == 0 {
		return 0
	}
	c.tabs = slices.Delete(c.tabs, c.active, c.active+1)
	if c.active >= len(c.tabs) {
		c.active = max(len(c.tabs)-1, 0)
	}
	return len(c.tabs)
}

// SwitchTo makes the tab at index current.
func (c *Container) SwitchTo(index int) bool {
	if index < 0 || index >= len(c.tabs) {
		return false
	}
	c.active = index
	return true
}

// NextTab switches to the following tab, wrapping around.
func (c *Container) NextTab() {
	if n := len(c.tabs); n > 0 {
		c.active = (c.active + 1) % n
	}
}

// PrevTab switches to the preceding tab, wrapping around.
func (c *Container) PrevTab() {
	if n := len(c.tabs); n > 0 {
		c.active = (c.active - 1 + n) % n
	}
}

// MoveLeft swaps the current tab with its left neighbour.
func (c *Container) MoveLeft() bool {
	if c.active <= 0 || len(c.tabs) < 2 {
		return false
	}
	c.tabs[c.active-1], c.tabs[c.active] = c.tabs[c.active], c.tabs[c.active-1]
	c.active--
	return true
}

// MoveRight swaps the current tab with its right neighbour.
func (c *Container) MoveRight() bool {
	if c.active >= len(c.tabs)-1 {
		return false
	}
	c.tabs[c.active+1], c.tabs[c.active] = c.tabs[c.active], c.tabs[c.active+1]
	c.active++
	return true
}

// Split adds a pane to the current tab next to the focused one.
func (c *Container) Split(o Orientation) *Pane {
	t := c.Active()
	if t == nil {
		return nil
	}
	p := c.newPane()
	t.Split = o
	t.Focus++
	t.Panes = slices.Insert(t.Panes, t.Focus, p)
	return p
}

// Collapse removes the focused pane unless it is the last one of its tab.
func (c *Container) Collapse() bool {
	t := c.Active()
	if t == nil || len(t.Panes) < 2 {
		return false
	}
	t.Panes = slices.Delete(t.Panes, t.Focus, t.Focus+1)
	if t.Focus >= len(t.Panes) {
		t.Focus = len(t.Panes) - 1
	}
	return true
}

// NextPane focuses the following pane of the current tab.
func (c *Container) NextPane() {
	if t := c.Active(); t != nil && len(t.Panes) > 0 {
		t.Focus = (t.Focus + 1) % len(t.Panes)
	}
}

// PrevPane focuses the preceding pane of the current tab.
func (c *Container) PrevPane() {
	if t := c.Active(); t != nil && len(t.Panes) > 0 {
		t.Focus = (t.Focus - 1 + len(t.Panes)) % len(t.Panes)
	}
}

// Selection returns the text the copy action puts on the clipboard: the
// input line, or the last entered line when the input is empty.
func (c *Container) Selection() string {
	p := c.ActivePane()
	if p == nil {
		return ""
	}
	if p.Input != "" {
		return p.Input
	}
	if n := len(p.Lines); n > 0 {
		return strings.TrimPrefix(p.Lines[n-1], "$ ")
	}
	return ""
}

// Paste types s into the focused pane. Newlines submit lines.
func (c *Container) Paste(s string) {
	p := c.ActivePane()
	if p == nil {
		return
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		p.Type(line)
		if i < len(lines)-1 {
			p.Submit()
		}
	}
}

// Layout returns the tab-bar layout last applied.
func (c *Container) Layout() window.TabBarLayout { return c.layout }

// ApplyLayout follows the window's tab-bar position and visibility.
func (c *Container) ApplyLayout(l window.TabBarLayout) { c.layout = l }

// Scrollbar returns the scrollbar placement.
func (c *Container) Scrollbar() string { return c.scrollbar }

// SetScrollbar sets the scrollbar placement. Unknown values select the
// right side.
func (c *Container) SetScrollbar(pos string) {
	switch pos {
	case ScrollbarNone, ScrollbarLeft, ScrollbarRight:
		c.scrollbar = pos
	default:
		c.scrollbar = ScrollbarRight
	}
}
