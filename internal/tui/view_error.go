package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/postcraft/internal/agent"
	"github.com/sant0-9/postcraft/internal/config"
	"github.com/sant0-9/postcraft/internal/intent"
)

// suggestionsFor returns hints for the user based on the error
func suggestionsFor(err error) []string {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, intent.ErrInvalidInput):
		return []string{
			"Your instruction did not contain a topic",
			"Try: Create a fun post about Italian Chianti wine",
		}
	case errors.Is(err, config.ErrMissingAPIKey):
		return []string{
			"Set GEMINI_API_KEY in your .env file or environment",
			"Or press [s] to open settings",
		}
	case errors.Is(err, agent.ErrEmptyResponse):
		return []string{
			"The model returned an empty answer",
			"Press [r] to try again or rephrase the topic",
		}
	}

	errLower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		return []string{
			"Check your API key in ~/.config/postcraft/config.yaml",
			"Or press [s] to open settings",
		}
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429"):
		return []string{
			"You've hit the API rate limit",
			"Wait a moment and press [r] to retry",
		}
	case strings.Contains(errLower, "ollama"):
		return []string{
			"Make sure Ollama is running: ollama serve",
			"Or switch to a cloud provider in settings",
		}
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout"):
		return []string{
			"Check your internet connection",
			"Or try using Ollama for offline mode",
		}
	case strings.Contains(errLower, "permission denied") || strings.Contains(errLower, "read-only"):
		return []string{
			"The output directory is not writable",
			"Set output_dir in the config or POSTCRAFT_OUTPUT_DIR",
		}
	}
	return nil
}

func (a *App) renderError() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	err := a.state.processingError
	if err == nil {
		err = a.state.providerError
	}
	errMsg := "Unknown error"
	if err != nil {
		errMsg = err.Error()
	}

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if suggestions := suggestionsFor(err); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[r] Retry  [s] Settings  [Esc] Menu")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
