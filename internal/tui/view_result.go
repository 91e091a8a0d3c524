package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder

	res := a.state.result
	if res == nil || res.Artifact == nil {
		return a.renderMenu()
	}
	art := res.Artifact

	title := lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true).
		Render("Content generated")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	info := []string{
		styleLabel.Render("Topic:   ") + art.Topic,
		styleLabel.Render("Style:   ") + res.Parsed.Style.String(),
	}
	if reqs := res.Parsed.Requirements(); len(reqs) > 0 {
		info = append(info, styleLabel.Render("Extras:  ")+strings.Join(reqs, ", "))
	}
	if res.Parsed.Audience != "" {
		info = append(info, styleLabel.Render("For:     ")+res.Parsed.Audience)
	}
	saved := "saved to history"
	if !res.Parsed.SaveFile {
		saved = "not saved to history"
	}
	info = append(info, styleLabel.Render("Output:  ")+fmt.Sprintf("%s (%s)", art.Path, saved))

	infoBox := styleBox.Copy().
		Width(min(76, a.width-4)).
		Render(strings.Join(info, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, infoBox))
	b.WriteString("\n")

	resultBox := styleBox.Copy().
		Width(min(76, a.width-4)).
		BorderForeground(colorPrimary).
		Render(a.state.viewport.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render(fmt.Sprintf("[j/k] Scroll %3.f%%  [Enter] Menu", a.state.viewport.ScrollPercent()*100))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
