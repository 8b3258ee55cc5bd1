package observ

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Table renders reports as a bordered table, one row per phase and file.
// Columns are file, phase, milliseconds and note.
func Table(reports map[string]Report, order []string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("file", "phase", "ms", "note")

	var total float64
	for _, path := range order {
		report, ok := reports[path]
		if !ok {
			continue
		}
		for _, p := range report.Phases {
			t.Row(path, p.Name, fmt.Sprintf("%.2f", p.DurationMS), p.Note)
		}
		total += report.TotalMS
	}
	t.Row("", "total", fmt.Sprintf("%.2f", total), "")

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 2:
			return numberStyle
		default:
			return cellStyle
		}
	})
	return t.Render()
}
