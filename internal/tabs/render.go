package tabs

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/ayhanyalcinsoy/qterminal/internal/theme"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
	"github.com/charmbracelet/x/ansi"
)

const (
	sideStripMax = 18
	sideStripMin = 6
)

// View renders the tab strip and the panes of the current tab into a
// width x height block.
func (c *Container) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if !c.layout.TabBarVisible || len(c.tabs) == 0 {
		return c.body(width, height)
	}

	switch c.layout.Position {
	case window.TabBottom:
		if height < 2 {
			return c.body(width, height)
		}
		return lipgloss.JoinVertical(lipgloss.Left, c.body(width, height-1), c.strip(width))
	case window.TabLeft, window.TabRight:
		sw := min(sideStripMax, max(width/4, sideStripMin))
		if width <= sw {
			return c.body(width, height)
		}
		side := c.sideStrip(sw, height)
		if c.layout.Position == window.TabLeft {
			return lipgloss.JoinHorizontal(lipgloss.Top, side, c.body(width-sw, height))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, c.body(width-sw, height), side)
	default:
		if height < 2 {
			return c.body(width, height)
		}
		return lipgloss.JoinVertical(lipgloss.Left, c.strip(width), c.body(width, height-1))
	}
}

func (c *Container) label(i int) string {
	return fmt.Sprintf(" %d:%s ", i+1, c.tabs[i].Title)
}

func (c *Container) tabStyle(i int) lipgloss.Style {
	s := lipgloss.NewStyle().Background(theme.TabBarBg())
	if i == c.active {
		return s.Foreground(theme.TabActive()).Bold(true)
	}
	return s.Foreground(theme.TabInactive())
}

// strip renders the one-line tab bar used at the top or bottom edge.
func (c *Container) strip(width int) string {
	per := max(width/len(c.tabs), 4)
	var b strings.Builder
	for i := range c.tabs {
		b.WriteString(c.tabStyle(i).Render(ansi.Truncate(c.label(i), per, "…")))
	}
	line := ansi.Truncate(b.String(), width, "")
	return lipgloss.NewStyle().Width(width).Background(theme.TabBarBg()).Render(line)
}

// sideStrip renders the tab bar used at the left or right edge.
func (c *Container) sideStrip(width, height int) string {
	lines := make([]string, 0, height)
	for i := range c.tabs {
		if len(lines) == height {
			break
		}
		lines = append(lines, c.tabStyle(i).Width(width).Render(ansi.Truncate(c.label(i), width, "…")))
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Background(theme.TabBarBg()).
		Render(strings.Join(lines, "\n"))
}

func (c *Container) body(width, height int) string {
	t := c.Active()
	if t == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TabInactive()).Render("no open tabs"))
	}

	n := len(t.Panes)
	views := make([]string, n)
	for i, p := range t.Panes {
		w, h := width, height
		if t.Split == Horizontal {
			w = width / n
			if i == n-1 {
				w = width - (width/n)*(n-1)
			}
		} else {
			h = height / n
			if i == n-1 {
				h = height - (height/n)*(n-1)
			}
		}
		views[i] = c.pane(p, w, h, i == t.Focus)
	}
	if t.Split == Horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, views...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

func (c *Container) pane(p *Pane, width, height int, focused bool) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	contentWidth := width
	if c.scrollbar != ScrollbarNone && width > 1 {
		contentWidth--
	}

	prompt := "$ " + p.Input
	if focused {
		prompt += "█"
	}
	lines := append(append([]string{}, p.Lines...), prompt)
	total := len(lines)
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, contentWidth, "")
	}

	fg := theme.TerminalFg()
	if !focused {
		fg = theme.TabInactive()
	}
	content := lipgloss.NewStyle().
		Width(contentWidth).
		Height(height).
		MaxHeight(height).
		Foreground(fg).
		Render(strings.Join(lines, "\n"))

	if contentWidth == width {
		return content
	}
	bar := scrollbar(height, total)
	if c.scrollbar == ScrollbarLeft {
		return lipgloss.JoinHorizontal(lipgloss.Top, bar, content)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, content, bar)
}

// scrollbar draws a one-column bar whose thumb sits at the bottom, since
// panes always show their newest lines.
func scrollbar(height, total int) string {
	thumb := height
	if total > height {
		thumb = max(height*height/total, 1)
	}
	rows := make([]string, height)
	for i := range rows {
		if i >= height-thumb {
			rows[i] = "┃"
		} else {
			rows[i] = "│"
		}
	}
	return lipgloss.NewStyle().Foreground(theme.Scrollbar()).Render(strings.Join(rows, "\n"))
}
