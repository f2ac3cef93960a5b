package ui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const minListWidth = 20

func (m Model) contentHeight() int {
	return max(m.height-2, 1)
}

func (m Model) listWidth() int {
	return max(m.width*2/5, minListWidth)
}

func (m Model) listHeight() int {
	return m.contentHeight()
}

func (m Model) detailSize() (int, int) {
	return max(m.width-m.listWidth()-1, 1), m.contentHeight()
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	left := styles.Title.Render(m.title)
	var right string
	switch {
	case !m.snapshot.HasData():
		right = styles.MutedText.Render("connecting")
	case m.snapshot.IsOffline():
		right = styles.Danger.Render("offline")
	default:
		rs := m.snapshot.Records
		right = styles.Text.Render(fmt.Sprintf("%d record%s", rs.Len(), rs.Plural()))
	}
	line := left + "  " + right
	return styles.Header.Width(m.width).Render(line)
}

func (m Model) renderContent() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	if len(m.snapshot.Items) == 0 {
		msg := "No records"
		if !m.snapshot.HasData() {
			msg = "Waiting for the first fetch..."
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	sepColor := m.theme.Border
	if m.focusDetail {
		sepColor = m.theme.BorderFocus
	}
	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color(sepColor)).
		Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), sep, m.detail.View())
}

// renderList renders the visible window of record rows, keeping the
// selection in view.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	width := m.listWidth()
	height := m.listHeight()

	start := 0
	if m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := min(start+height, len(m.snapshot.Items))

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		rec := m.snapshot.Items[i]
		row := fitWidth(fmt.Sprintf("%6d  %s", rec.ID(), m.summary(i)), width)
		if i == m.selectedRow {
			row = styles.Selected.Render(row)
		} else {
			row = styles.Text.Render(row)
		}
		lines = append(lines, row)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// summary renders a record with the preferred template for its type.
func (m Model) summary(i int) string {
	rec := m.snapshot.Items[i]
	return html.UnescapeString(rec.Render(m.prefs.Template(rec.Type())))
}

func (m Model) renderDetail() string {
	rec, ok := m.selected()
	if !ok {
		return ""
	}
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.TypeBadge(rec.Type()))
	b.WriteString(styles.AccentText.Render(fmt.Sprintf(" #%d", rec.ID())))
	b.WriteString("\n\n")

	width := 0
	for name := range rec.All() {
		width = max(width, lipgloss.Width(name))
	}
	for name := range rec.All() {
		label := styles.MutedText.Render(name + strings.Repeat(" ", width-lipgloss.Width(name)))
		value := html.UnescapeString(rec.RenderField(name))
		b.WriteString(label)
		b.WriteString("  ")
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var line string
	if code, msg, ok := m.snapshot.ServerError(); ok {
		line = styles.Danger.Render(fmt.Sprintf("error %d: %s", code, msg))
	} else if err := m.snapshot.LastError; err != nil {
		prefix := "fetch failed"
		if m.snapshot.IsOffline() {
			prefix = "offline"
		}
		line = styles.Warning.Render(fmt.Sprintf("%s: %v", prefix, err))
	} else if m.saveErr != nil {
		line = styles.Warning.Render(fmt.Sprintf("save prefs: %v", m.saveErr))
	} else {
		updated := "never"
		if !m.snapshot.LastUpdated.IsZero() {
			updated = m.snapshot.LastUpdated.Format("15:04:05")
		}
		line = fmt.Sprintf("%d shown · updated %s · h for help", len(m.snapshot.Items), updated)
	}
	return styles.Footer.Width(m.width).Render(fitWidth(line, max(m.width-2, 1)))
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, binding := range m.keys.helpBindings() {
		h := binding.Help()
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%-10s", h.Key)))
		b.WriteString(styles.Text.Render(h.Desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// fitWidth truncates s to width cells and pads it on the right.
func fitWidth(s string, width int) string {
	s = lipgloss.NewStyle().Inline(true).MaxWidth(width).Render(s)
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
