package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderProcessing() string {
	var b strings.Builder

	title := styleTitle.Render("Generating")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if a.state.lastInput != "" {
		asked := styleSubtitle.Render("> " + truncate(strings.Join(strings.Fields(a.state.lastInput), " "), 100))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
		b.WriteString("\n\n")
	}

	stages := []string{
		a.state.spinner.View() + " Writer is researching and writing the caption",
		a.state.spinner.View() + " Illustrator is writing the image prompt",
	}
	stagesBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(stages, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, stagesBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
