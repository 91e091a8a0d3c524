package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/postcraft/internal/history"
)

func (a *App) renderHistory() string {
	var b strings.Builder

	title := styleTitle.Render(fmt.Sprintf("Content history (%d entries)", a.state.historyTotal))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var body string
	switch {
	case a.state.historyError != nil:
		body = lipgloss.NewStyle().Foreground(colorError).Render(a.state.historyError.Error())
	case len(a.state.history) == 0:
		body = styleSubtitle.Render("No content history found.")
	default:
		lines := make([]string, len(a.state.history))
		for i, e := range a.state.history {
			lines[i] = history.Line(i+1, e)
		}
		body = strings.Join(lines, "\n")
	}

	box := styleBox.Copy().
		Width(min(80, a.width-4)).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if a.state.backend != nil {
		where := styleSubtitle.Render("Posts are written to " + a.state.backend.OutputDir())
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, where))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
