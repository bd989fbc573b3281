package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

const (
	barWidth     = 40
	maxColWidth  = 28
	defaultWidth = 100
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginTop(1)
	bodyStyle    = lipgloss.NewStyle()
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("57"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderContent lays out every section of a page for a terminal of the
// given width.
func renderContent(c *report.Content, width int) string {
	var parts []string
	for _, s := range c.Sections {
		parts = append(parts, renderSection(s, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSection(s report.Section, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	parts := []string{headingStyle.Render(s.Heading)}

	if s.Body != "" {
		parts = append(parts, bodyStyle.Width(width-4).Render(s.Body))
	}

	if s.Table != nil {
		parts = append(parts, renderTable(s.Table))
	}

	if s.Chart != nil {
		parts = append(parts, renderChart(s.Chart))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTable draws a static bubbles table sized to its content.
func renderTable(t *report.Table) string {
	columns := make([]table.Column, len(t.Columns))
	for i, title := range t.Columns {
		w := lipgloss.Width(title)

		for _, row := range t.Rows {
			if i < len(row) {
				w = max(w, lipgloss.Width(row[i]))
			}
		}

		columns[i] = table.Column{Title: title, Width: min(w, maxColWidth)}
	}

	rows := make([]table.Row, len(t.Rows))
	for i, r := range t.Rows {
		row := make(table.Row, len(columns))
		copy(row, r)
		rows[i] = row
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Cell
	tbl.SetStyles(s)

	return tbl.View()
}

// renderChart draws horizontal bars scaled to the largest value.
func renderChart(c *report.Chart) string {
	labelWidth := 0
	peak := 0.0

	for _, b := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		peak = math.Max(peak, b.Value)
	}

	var sb strings.Builder

	for _, b := range c.Bars {
		n := 0
		if peak > 0 {
			n = int(math.Round(b.Value / peak * barWidth))
		}

		fmt.Fprintf(&sb, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, b.Label)),
			barStyle.Render(strings.Repeat("█", n)),
			formatValue(b.Value, c.Unit),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatValue(v float64, unit string) string {
	switch unit {
	case "amount":
		return fmt.Sprintf("$%.0f", v)
	case "":
		return fmt.Sprintf("%.0f", v)
	}

	return fmt.Sprintf("%.0f %s", v, unit)
}
