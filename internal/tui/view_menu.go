package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/postcraft/internal/config"
)

const logo = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┬─┐┌─┐┌─┐┌┬┐
├─┘│ │└─┐ │ │  ├┬┘├─┤├┤  │ 
┴  └─┘└─┘ ┴ └─┘┴└─┴ ┴└   ┴ 
`

type menuAction int

const (
	actionPrompt menuAction = iota
	actionTopic
	actionExamples
	actionHistory
	actionHelp
	actionExit
)

var menuItems = []struct {
	label  string
	action menuAction
}{
	{"Natural language prompt", actionPrompt},
	{"Quick topic", actionTopic},
	{"Example prompts", actionExamples},
	{"Content history", actionHistory},
	{"Help", actionHelp},
	{"Exit", actionExit},
}

func (a *App) renderMenu() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n")
	subtitle := styleSubtitle.Render("Instagram posts for wine and food, from plain instructions")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	var lines []string
	for i, item := range menuItems {
		label := fmt.Sprintf("%d. %s", i+1, item.label)
		if i == a.state.menuCursor {
			lines = append(lines, styleSelected.Render("> "+label))
		} else {
			lines = append(lines, styleSubtitle.Render("  "+label))
		}
	}
	menu := styleBox.Copy().
		Width(40).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, menu))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.connectionStatus()))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[1-6] Select  [j/k] Navigate  [s] Settings  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}

func (a *App) connectionStatus() string {
	name := a.state.config.Provider
	if p := config.GetProvider(name); p != nil {
		name = p.Name
	}

	switch {
	case !a.state.providerReady && a.state.providerError != nil:
		return lipgloss.NewStyle().Foreground(colorError).
			Render(truncate(a.state.providerError.Error(), 70) + "  [r] Retry")
	case !a.state.providerReady:
		return styleSubtitle.Render("Connecting to " + name + "...")
	case a.state.providerError != nil:
		return lipgloss.NewStyle().Foreground(colorSecondary).
			Render(fmt.Sprintf("%s did not answer a ping, generation may fail", name))
	default:
		return lipgloss.NewStyle().Foreground(colorSuccess).
			Render(fmt.Sprintf("Connected to %s (%s)", name, a.state.config.Model))
	}
}
