package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/postcraft/internal/config"
)

const setupWidth = 60

func (a *App) renderSetup() string {
	var body string
	switch a.state.setupStep {
	case 0:
		body = a.renderProviderSelection()
	case 1:
		body = a.renderAPIKeyEntry()
	}

	var b strings.Builder
	a.center(&b, styleLogo.Render(logo))
	b.WriteString("\n")
	a.center(&b, styleSubtitle.Render(fmt.Sprintf("Setup, step %d of 2", a.state.setupStep+1)))
	b.WriteString("\n\n")
	b.WriteString(body)

	return a.centerVertically(b.String())
}

func (a *App) renderProviderSelection() string {
	var b strings.Builder

	a.center(&b, styleLabel.Render("Which model provider should write your posts?"))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(config.Providers)*2)
	for i, p := range config.Providers {
		mark := "  "
		if p.ID == a.state.config.Provider {
			mark = "* "
		}
		name := fmt.Sprintf("%s%-12s %s", mark, p.Name, p.DefaultModel)

		if i == a.state.selectedProvider {
			rows = append(rows, styleSelected.Render("> "+name))
			rows = append(rows, styleSubtitle.Render("    "+p.Description))
			continue
		}
		rows = append(rows, lipgloss.NewStyle().Foreground(colorMuted).Render("  "+name))
	}

	a.center(&b, styleBox.Copy().Width(setupWidth).Render(strings.Join(rows, "\n")))
	b.WriteString("\n\n")

	esc := "Quit"
	if a.state.settingsReturn {
		esc = "Back"
	}
	a.center(&b, styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] "+esc))

	return b.String()
}

func (a *App) renderAPIKeyEntry() string {
	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		return a.renderProviderSelection()
	}

	var b strings.Builder

	a.center(&b, styleLabel.Render(provider.Name+" API key"))
	b.WriteString("\n\n")

	var notes []string
	if provider.SignupURL != "" {
		notes = append(notes, "Get a key at "+provider.SignupURL)
	}
	if provider.ID == "gemini" {
		notes = append(notes, "or put GEMINI_API_KEY in a .env file and restart")
	}
	notes = append(notes, "Saved to "+a.state.config.Path())
	for _, n := range notes {
		a.center(&b, styleSubtitle.Render(n))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	a.center(&b, styleBox.Copy().
		Width(setupWidth).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View()))
	b.WriteString("\n\n")

	a.center(&b, styleStatusBar.Render("[Enter] Save  [Esc] Choose another provider"))

	return b.String()
}

// center writes s centred on the terminal width
func (a *App) center(b *strings.Builder, s string) {
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s))
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := max(0, (a.height-lines)/2)
	return strings.Repeat("\n", padding) + content
}
