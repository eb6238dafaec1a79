package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable is a simple table component for rendering static data.
// Columns flagged in RightAlign render right-aligned, which keeps numeric
// KPI columns readable.
type SimpleTable struct {
	Title      string
	Headers    []string
	Rows       [][]string
	RightAlign []bool // optional, per-column
	Selected   int    // highlighted row index; -1 for none
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers ...string) *SimpleTable {
	return &SimpleTable{
		Title:    title,
		Headers:  headers,
		Rows:     make([][]string, 0),
		Selected: -1,
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	// Padding is included in lipgloss widths.
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	selStyle := styles.Body.Padding(0, 1).Background(styles.Theme.Secondary).Bold(true)
	sepStyle := styles.Muted

	align := func(i int, base lipgloss.Style) lipgloss.Style {
		if i < len(t.RightAlign) && t.RightAlign[i] {
			return base.Align(lipgloss.Right)
		}
		return base
	}

	for i, h := range t.Headers {
		sb.WriteString(align(i, headerStyle).Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for r, row := range t.Rows {
		base := rowStyle
		if r == t.Selected {
			base = selStyle
		}
		for i, cell := range row {
			if i < len(colWidths) {
				sb.WriteString(align(i, base).Width(colWidths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(sepStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
