// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/output"
	"github.com/staranto/ptop/internal/textwidth"
)

const (
	// Lines used by the title, filter, column header, status and short help.
	chromeLines = 5
	maxColWidth = 40
	colGap      = 1
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(themeColor("colors.title", "#b08800", "#f6be00"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e05050"))
	onStyle     = lipgloss.NewStyle().Bold(true).Foreground(themeColor("colors.odd", "#0088a0", "#00c8f0"))
	offStyle    = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// themeColor prefers the configured color, else an adaptive default.
func themeColor(key, light, dark string) lipgloss.TerminalColor {
	if c, err := config.GetString(key); err == nil && c != "" {
		return lipgloss.Color(c)
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func (m *Model) tableHeight() int {
	return max(m.height-chromeLines, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.tableView())
	b.WriteString(m.statusView())
	b.WriteByte('\n')
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func (m Model) t(key string, args ...any) string {
	return locale.T(m.settings.Language, key, args...)
}

func flag(on bool, label string) string {
	if on {
		return onStyle.Render(label)
	}
	return offStyle.Render(label)
}

func (m Model) titleView() string {
	parts := []string{
		titleStyle.Render(m.t(locale.ProcessesTitle)),
		flag(m.options.UseRegex, ".*"),
		flag(m.options.IgnoreCase, "Aa"),
		flag(m.options.WholeWord, "\\b"),
		flag(m.byCommand, "cmd"),
	}

	cols := m.columns()
	if m.sortIdx < len(cols) {
		dir := "▲"
		if m.sortDesc {
			dir = "▼"
		}
		parts = append(parts, m.t(locale.SortBy)+": "+output.Title(cols[m.sortIdx])+dir)
	}

	return strings.Join(parts, " ")
}

// widths sizes each column to its widest cell, capped at maxColWidth. The
// last column takes whatever is left of the terminal.
func (m Model) widths(cols attrs.AttrList, first, last int) []int {
	mode := m.settings.WidthMode
	w := make([]int, len(cols))
	for i, c := range cols {
		w[i] = textwidth.Width(output.Title(c), mode)
		for _, row := range m.visible[first:last] {
			w[i] = max(w[i], textwidth.Width(output.InterfaceToString(row[c.OutputKey]), mode))
		}
		w[i] = min(w[i], maxColWidth)
	}

	if n := len(w); n > 0 {
		used := 0
		for _, x := range w[:n-1] {
			used += x + colGap
		}
		if rest := m.width - used; rest > 0 {
			w[n-1] = rest
		}
	}
	return w
}

func (m Model) cell(s string, width int, numeric bool) string {
	mode := m.settings.WidthMode
	s = textwidth.Truncate(s, width, mode)
	if numeric {
		return strings.Repeat(" ", max(width-textwidth.Width(s, mode), 0)) + s
	}
	return textwidth.Pad(s, width, mode)
}

func (m Model) rowView(cols attrs.AttrList, widths []int, cell func(attrs.Attr) string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		numeric := false
		if col, ok := attrs.Lookup(c.Key); ok {
			numeric = col.Numeric
		}
		parts[i] = m.cell(cell(c), widths[i], numeric)
	}
	return strings.Join(parts, strings.Repeat(" ", colGap))
}

func (m Model) tableView() string {
	cols := m.columns()
	h := m.tableHeight()
	first := min(m.offset, len(m.visible))
	last := min(first+h, len(m.visible))
	widths := m.widths(cols, first, last)

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.rowView(cols, widths, output.Title)))
	b.WriteByte('\n')

	if len(m.visible) == 0 {
		b.WriteString(offStyle.Render(m.t(locale.NoData)))
		b.WriteByte('\n')
		h--
	}

	for i := first; i < last; i++ {
		row := m.visible[i]
		line := m.rowView(cols, widths, func(a attrs.Attr) string {
			return output.InterfaceToString(row[a.OutputKey])
		})
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	// Keep the status line pinned to the bottom.
	for i := last - first; i < h; i++ {
		b.WriteByte('\n')
	}

	return b.String()
}

func (m Model) statusView() string {
	var parts []string

	if err := m.active.Err(); err != nil {
		parts = append(parts, errorStyle.Render(m.t(locale.ErrorTitle)+": "+locale.Describe(m.settings.Language, err)))
	}
	if m.harvestErr != nil {
		parts = append(parts, errorStyle.Render(m.harvestErr.Error()))
	}
	if m.frozen {
		parts = append(parts, onStyle.Render(m.t(locale.StatusFrozen, m.keys.Freeze.Help().Key)))
	}
	parts = append(parts, m.t(locale.ShownOfTotal, m.shown, len(m.records)))

	return strings.Join(parts, "  ")
}

func (m Model) helpView() string {
	h := m.help
	h.ShowAll = true

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.t(locale.HelpTitle)),
		"",
		h.FullHelpView(m.keys.FullHelp()),
		"",
		offStyle.Render(m.t(locale.EscToClose)),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(body))
}
