package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/postcraft/internal/config"
)

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	if a.state.settingsMode == "model" {
		provider := config.GetProvider(a.state.config.Provider)
		switch {
		case key.Matches(msg, keys.Back):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if a.state.settingsSelected > 0 {
				a.state.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if provider != nil && a.state.settingsSelected < len(provider.Models)-1 {
				a.state.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			if provider == nil || len(provider.Models) == 0 {
				return nil
			}
			a.state.config.Model = provider.Models[a.state.settingsSelected]
			a.state.settingsMode = ""
			return a.finishSetup()
		}
		return nil
	}

	switch msg.String() {
	case "esc":
		a.view = viewMenu
	case "p":
		a.state.settingsReturn = true
		a.state.setupStep = 0
		a.view = viewSetup
	case "m":
		a.state.settingsMode = "model"
		a.state.settingsSelected = 0
	case "k":
		if p := config.GetProvider(a.state.config.Provider); p != nil && p.NeedsAPIKey {
			a.state.settingsReturn = true
			a.state.setupStep = 1
			a.state.apiKeyInput.Reset()
			a.state.apiKeyInput.Focus()
			a.view = viewSetup
			return textinput.Blink
		}
	}
	return nil
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}

func (a *App) renderSettings() string {
	if a.state.settingsMode == "model" {
		return a.renderSettingsModel()
	}

	var b strings.Builder
	cfg := a.state.config

	title := styleTitle.Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}
	writer, illustrator := cfg.AgentModels()

	search := cfg.Search.Provider
	if search == "" {
		search = "none"
	}

	configLines := []string{
		fmt.Sprintf("  Provider:     %s", providerName),
		fmt.Sprintf("  Model:        %s", cfg.Model),
		fmt.Sprintf("  Writer:       %s", writer),
		fmt.Sprintf("  Illustrator:  %s", illustrator),
		fmt.Sprintf("  API Key:      %s", maskKey(cfg.APIKey)),
		"",
		fmt.Sprintf("  Output:       %s", cfg.OutputDir),
		fmt.Sprintf("  History:      %s", cfg.History),
		fmt.Sprintf("  Search:       %s (%d results)", search, cfg.Search.MaxResults),
		fmt.Sprintf("  Config file:  %s", cfg.Path()),
	}

	configBox := styleBox.Copy().
		Width(min(70, a.width-4)).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
	}
	actionsBox := styleBox.Copy().
		Width(min(70, a.width-4)).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder

	title := styleTitle.Render("Select Model")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		desc := styleSubtitle.Render("No model list for this provider, set model in the config file")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
		return a.centerVertically(b.String())
	}

	var lines []string
	for i, model := range provider.Models {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		current := ""
		if model == a.state.config.Model {
			current = " (current)"
		}
		line := fmt.Sprintf("%s%s%s", cursor, model, current)
		if i == a.state.settingsSelected {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
