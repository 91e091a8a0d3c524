package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	title := styleTitle.Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	usage := []string{
		styleLabel.Render("Writing a prompt"),
		"  Be specific about the topic: wines, foods, pairings",
		"  Mention a style: casual, professional, fun, elegant, educational",
		"  Add requirements: no emojis, call to action, hashtags, short or detailed",
		"  Name an audience: beginners, experts, foodies, sommeliers",
		"  Say \"don't save\" to keep a post out of the history",
		"",
		styleLabel.Render("Prompt shapes"),
		"  Create a [STYLE] post about [TOPIC] for [AUDIENCE] with [REQUIREMENTS]",
		"  Write [LENGTH] content about [TOPIC] that is [TONE] and includes [ELEMENTS]",
		"",
		styleLabel.Render("Formats"),
		"  story, list or tips, question or quiz",
		"",
		styleLabel.Render("When two styles are named the first one wins."),
	}

	box := styleBox.Copy().
		Width(min(80, a.width-4)).
		Render(strings.Join(usage, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	shortcuts := []string{
		"  Ctrl+S         Submit a prompt",
		"  END / CANCEL   Submit or cancel from the last line",
		"  Esc            Go back",
		"  Ctrl+C         Quit",
	}
	shortcutsBox := styleBox.Copy().
		Width(min(80, a.width-4)).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
