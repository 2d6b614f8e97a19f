package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/ayhanyalcinsoy/qterminal/internal/config"
	"github.com/ayhanyalcinsoy/qterminal/internal/theme"
	"github.com/ayhanyalcinsoy/qterminal/internal/window"
	"github.com/charmbracelet/x/ansi"
)

// Z-order of the desktop layers.
const (
	zDesktop = iota
	zDesktopBar
	zWindow
	zPin
	zDialog
	zNotifications
)

// View returns the rendered view.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	view.WindowTitle = m.title()
	return view
}

func (m *Model) title() string {
	if t := m.Tabs.Active(); t != nil {
		return "qterminal: " + t.Title
	}
	return "qterminal"
}

// GetCanvas composes the desktop, the main window and every overlay.
func (m *Model) GetCanvas() *lipgloss.Canvas {
	if m.Width <= 0 || m.Height <= 0 {
		return lipgloss.NewCanvas(0, 0)
	}
	canvas := lipgloss.NewCanvas(m.Width, m.Height)

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(m.renderDesktop()).Z(zDesktop).ID("desktop"),
		lipgloss.NewLayer(m.renderDesktopBar()).Y(m.Height - DesktopBarHeight).Z(zDesktopBar).ID("desktop-bar"),
	}

	if m.desk.visible {
		r := m.desk.geometry
		layers = append(layers, lipgloss.NewLayer(m.renderWindow()).X(r.X).Y(r.Y).Z(zWindow).ID("main-window"))
		if x, y, _, ok := m.pinBounds(); ok {
			layers = append(layers, lipgloss.NewLayer(m.renderPin()).X(x).Y(y).Z(zPin).ID("pin"))
		}
	}

	var dialog string
	switch m.openWindow() {
	case activeDialog:
		dialog = m.renderQuitConfirmDialog()
	case activeAbout:
		dialog = m.renderAbout()
	case activeMenu:
		dialog = m.renderMenu()
	case activeLogs:
		dialog = m.renderLogViewer()
	}
	if dialog != "" {
		w, h := lipgloss.Width(dialog), lipgloss.Height(dialog)
		layers = append(layers, lipgloss.NewLayer(dialog).
			X(max((m.Width-w)/2, 0)).
			Y(max((m.Height-DesktopBarHeight-h)/2, 0)).
			Z(zDialog).ID("dialog"))
	}

	layers = append(layers, m.notificationLayers()...)

	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas
}

func (m *Model) renderDesktop() string {
	hint := ""
	if m.Mode() == window.Overlay && !m.desk.visible {
		if key := m.Visibility.Binding(); !key.IsEmpty() {
			hint = fmt.Sprintf("press %s to drop down qterminal", key.Display())
		} else {
			hint = fmt.Sprintf("no drop-down shortcut; use %s for the menu", m.Keybinds.GetKeysForDisplay(config.ActionMenu))
		}
	}
	return lipgloss.NewStyle().
		Width(m.Width).
		Height(max(m.Height-DesktopBarHeight, 0)).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Background(theme.DesktopBg()).
		Foreground(theme.DesktopBarFg()).
		Render(hint)
}

func (m *Model) renderDesktopBar() string {
	base := lipgloss.NewStyle().Background(theme.DesktopBarBg()).Foreground(theme.DesktopBarFg())
	accent := base.Foreground(theme.DesktopBarAccent()).Bold(true)

	parts := []string{accent.Render(" qterminal ")}
	if m.Mode() == window.Overlay {
		parts = append(parts, base.Render(" drop-down "))
		if key := m.Visibility.Binding(); !key.IsEmpty() {
			parts = append(parts, base.Render(" "+key.Display()+" "))
		} else {
			parts = append(parts, base.Foreground(theme.NotificationError()).Render(" no hotkey "))
		}
		if m.Visibility.KeepOpen() {
			parts = append(parts, accent.Render(" pinned "))
		}
	} else {
		parts = append(parts, base.Render(" window "))
	}
	left := strings.Join(parts, "")
	right := base.Render(fmt.Sprintf(" %s  %s ", m.GetCPUGraph(), m.Now.Format("15:04")))

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return ansi.Truncate(left, m.Width, "")
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}

// renderWindow draws the main window at its current geometry, clipped to
// the host terminal.
func (m *Model) renderWindow() string {
	r := m.desk.geometry
	width := min(r.Width, m.Width-r.X)
	height := min(r.Height, m.Height-DesktopBarHeight-r.Y)
	if width <= 0 || height <= 0 {
		return ""
	}

	decorated := !m.desk.flags.Has(window.FlagFrameless)
	style := lipgloss.NewStyle().Background(theme.TerminalBg())
	innerW, innerH := width, height
	switch {
	case decorated:
		style = style.Border(lipgloss.RoundedBorder()).BorderForeground(theme.FrameNormal())
		innerW -= 2
		innerH -= 3 // borders and the title row
	case m.desk.style.Framed:
		// The drop-down hangs from the top edge, so it has no top border.
		style = style.Border(lipgloss.NormalBorder(), false, true, true, true).BorderForeground(theme.FrameDrop())
		innerW -= 2
		innerH--
	}

	cells := m.desk.margins.Cells()
	contentW := innerW - cells.Left - cells.Right
	contentH := innerH - cells.Top - cells.Bottom
	if contentW < 1 || contentH < 1 {
		return lipgloss.NewStyle().Width(width).Height(height).Background(theme.TerminalBg()).Render("")
	}

	body := lipgloss.NewStyle().
		Padding(cells.Top, cells.Right, cells.Bottom, cells.Left).
		Render(m.Tabs.View(contentW, contentH))

	if decorated {
		titleBar := lipgloss.NewStyle().
			Width(innerW).
			Foreground(theme.TitleFg()).
			Bold(true).
			Render(ansi.Truncate(" "+m.title(), innerW, "…"))
		body = lipgloss.JoinVertical(lipgloss.Left, titleBar, body)
	}
	return style.Render(body)
}

// pinBounds places the keep-open toggle on the bottom border of a visible
// drop-down, inset from the corner.
func (m *Model) pinBounds() (x, y, width int, ok bool) {
	if m.Mode() != window.Overlay || !m.desk.visible {
		return 0, 0, 0, false
	}
	r := m.desk.geometry
	width = lipgloss.Width(m.renderPin())
	x = max(r.X+r.Width-width-1-m.desk.style.CornerInset, r.X)
	y = max(r.Y+r.Height-1, r.Y)
	return x, y, width, true
}

// renderPin draws the keep-open toggle in the corner of the drop-down.
func (m *Model) renderPin() string {
	if m.Visibility.KeepOpen() {
		return lipgloss.NewStyle().Foreground(theme.PinEngaged()).Bold(true).Render(" ◆ keep open ")
	}
	return lipgloss.NewStyle().Foreground(theme.PinReleased()).Render(" ◇ keep open ")
}

func (m *Model) dialogBox(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DialogBorder()).
		Padding(1, 3).
		Render(content)
}

// renderQuitConfirmDialog returns the exit confirmation dialog.
func (m *Model) renderQuitConfirmDialog() string {
	selectedColor := theme.MenuSelected()
	unselectedColor := theme.MenuDim()

	title := lipgloss.NewStyle().
		Foreground(selectedColor).
		Bold(true).
		Render("Exit qterminal?")

	button := func(label string, selected bool) string {
		s := lipgloss.NewStyle().
			Foreground(unselectedColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(unselectedColor).
			Padding(0, 1)
		if selected {
			s = s.Foreground(selectedColor).BorderForeground(selectedColor).Bold(true)
		}
		return s.Render(label)
	}
	buttonRow := lipgloss.JoinHorizontal(lipgloss.Center,
		button("yes", m.QuitConfirmSelection == 0), "   ", button("no", m.QuitConfirmSelection == 1))

	check := "[ ]"
	if m.QuitDontAsk {
		check = "[x]"
	}
	dontAsk := lipgloss.NewStyle().Foreground(unselectedColor).Render(check + " do not ask again (space)")

	return m.dialogBox(lipgloss.JoinVertical(lipgloss.Center, title, "", buttonRow, "", dontAsk))
}

func (m *Model) renderAbout() string {
	version := m.Version
	if version == "" {
		version = "dev"
	}
	dim := lipgloss.NewStyle().Foreground(theme.MenuDim())
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.MenuSelected()).Bold(true).Render("qterminal " + version),
		"",
		"A lightweight terminal with a drop-down mode.",
		"",
		dim.Render("mode:   " + m.Mode().String()),
		dim.Render("config: " + m.Store.Path()),
	}
	if key := m.Visibility.Binding(); !key.IsEmpty() {
		lines = append(lines, dim.Render("hotkey: "+key.Display()))
	}
	return m.dialogBox(strings.Join(lines, "\n"))
}

// renderMenu lists the available actions with their shortcuts, scrolled so
// the selection stays visible.
func (m *Model) renderMenu() string {
	items := m.MenuItems()
	if len(items) == 0 {
		return ""
	}
	m.MenuSelection = min(max(m.MenuSelection, 0), len(items)-1)

	// Borders, header, padding and the footer take nine rows.
	visible := max(min(len(items), m.Height-DesktopBarHeight-9), 1)
	start := min(max(m.MenuSelection-visible/2, 0), len(items)-visible)

	rows := make([][]string, 0, visible)
	for _, action := range items[start : start+visible] {
		rows = append(rows, []string{config.ActionDescriptions[action], m.Keybinds.GetKeysForDisplay(action)})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.MenuKey()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	selected := m.MenuSelection - start

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.MenuBorder())).
		Headers("Action", "Keys").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == selected:
				return cellStyle.Foreground(theme.MenuSelected()).Bold(true)
			case col == 1:
				return cellStyle.Foreground(theme.MenuKey())
			}
			return cellStyle
		})

	footer := lipgloss.NewStyle().Foreground(theme.MenuDim()).Render("↑/↓ select  enter run  esc close")
	return lipgloss.JoinVertical(lipgloss.Center, t.Render(), footer)
}

// logsPerPage is the number of log lines the viewer shows at once.
func (m *Model) logsPerPage() int {
	return max(m.Height-DesktopBarHeight-8, 1)
}

func (m *Model) renderLogViewer() string {
	per := m.logsPerPage()
	start := min(m.LogScrollOffset, max(len(m.LogMessages)-per, 0))
	end := min(start+per, len(m.LogMessages))
	width := max(min(m.Width-10, 100), 20)

	var lines []string
	for _, msg := range m.LogMessages[start:end] {
		levelStyle := lipgloss.NewStyle().Foreground(theme.NotificationInfo())
		switch msg.Level {
		case "ERROR":
			levelStyle = levelStyle.Foreground(theme.NotificationError())
		case "WARN":
			levelStyle = levelStyle.Foreground(theme.NotificationWarning())
		}
		line := fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), levelStyle.Render(fmt.Sprintf("%-5s", msg.Level)), msg.Message)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	if len(lines) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.MenuDim()).Render("no log messages"))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.MenuSelected()).Render("Logs")
	hint := lipgloss.NewStyle().Foreground(theme.MenuDim()).Render(fmt.Sprintf("%d-%d of %d  j/k scroll  esc close", start+min(1, end), end, len(m.LogMessages)))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DialogBorder()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(lines, "\n"), "", hint))
}

// notificationLayers stacks active notifications in the top-right corner.
func (m *Model) notificationLayers() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	maxWidth := min(max(m.Width-8, 20), 60)
	y := 1
	for i, notif := range m.Notifications {
		if i >= MaxNotifications {
			break
		}
		color, icon := theme.NotificationInfo(), "ℹ"
		switch notif.Type {
		case "error":
			color, icon = theme.NotificationError(), "✕"
		case "warning":
			color, icon = theme.NotificationWarning(), "⚠"
		}

		message := ansi.Truncate(notif.Message, maxWidth-8, "…")
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Foreground(theme.NotificationFg()).
			Padding(0, 1).
			MaxWidth(maxWidth).
			Render(fmt.Sprintf("%s  %s", lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon), message))

		x := max(m.Width-lipgloss.Width(box)-2, 0)
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(zNotifications).ID("notif-"+notif.ID))
		y += lipgloss.Height(box) + 1
	}
	return layers
}
