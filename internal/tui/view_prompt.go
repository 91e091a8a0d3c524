package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type terminator int

const (
	termNone terminator = iota
	termEnd
	termCancel
)

// splitTerminator checks whether the last non-empty line of s is END or
// CANCEL and returns the text before it
func splitTerminator(s string) (string, terminator) {
	lines := strings.Split(strings.TrimRight(s, " \t\n"), "\n")
	last := strings.ToUpper(strings.TrimSpace(lines[len(lines)-1]))

	var term terminator
	switch last {
	case "END":
		term = termEnd
	case "CANCEL":
		term = termCancel
	default:
		return s, termNone
	}
	return strings.Join(lines[:len(lines)-1], "\n"), term
}

func (a *App) renderPrompt() string {
	var b strings.Builder

	title := styleTitle.Render("Natural language prompt")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	hint := styleSubtitle.Render("Tell me exactly what you want. Style, audience, length and extras are picked up from your words.")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		BorderForeground(colorSecondary).
		Render(a.state.promptInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Ctrl+S] Generate  or type END on its own line  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) renderTopic() string {
	var b strings.Builder

	title := styleTitle.Render("Quick topic")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	hint := styleSubtitle.Render("Enter a wine or food topic. Default style and options are used.")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(min(66, a.width-4)).
		BorderForeground(colorSecondary).
		Render(a.state.topicInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Enter] Generate  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
