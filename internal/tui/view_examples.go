package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type example struct {
	Prompt      string
	Explanation string
}

var examples = []example{
	{
		Prompt:      "Create a fun and casual Instagram post about pairing Italian Chianti with aged cheese. Make it educational but keep it light and include a call to action.",
		Explanation: "Names the topic, the style (fun/casual), the tone and asks for a call to action.",
	},
	{
		Prompt:      "Write an elegant and sophisticated post about summer rosé wines. Focus on French varieties and include food pairing suggestions. No emojis please.",
		Explanation: "Sets the style (elegant), a region focus, the content and a formatting preference.",
	},
	{
		Prompt:      "Generate a short and concise post about artisanal chocolate and wine pairings for beginners. Make it approachable and include hashtags.",
		Explanation: "Sets the length (short), the audience (beginners), the tone and asks for hashtags.",
	},
}

func (a *App) renderExamples() string {
	var b strings.Builder

	title := styleTitle.Render("Example prompts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	width := min(76, a.width-4)
	for i, ex := range examples {
		style := styleBox.Copy().Width(width)
		if i == a.state.exampleCursor {
			style = style.BorderForeground(colorSecondary)
		}
		text := fmt.Sprintf("%d. %q\n\n%s", i+1, ex.Prompt, styleSubtitle.Render("Why this works: "+ex.Explanation))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, style.Render(text)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	status := styleStatusBar.Render("[j/k] Navigate  [Enter] Use this prompt  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
