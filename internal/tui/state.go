package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sant0-9/postcraft/internal/config"
	"github.com/sant0-9/postcraft/internal/content"
	"github.com/sant0-9/postcraft/internal/history"
)

type jobKind int

const (
	jobPrompt jobKind = iota
	jobTopic
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Menu
	menuCursor    int
	exampleCursor int

	// Settings
	settingsMode     string
	settingsSelected int
	settingsReturn   bool

	// Inputs
	promptInput textarea.Model
	topicInput  textinput.Model

	// Backend
	backend       Backend
	providerReady bool
	providerError error

	// Processing
	spinner   spinner.Model
	cancel    context.CancelFunc
	// jobID identifies the running job, replies from older jobs are dropped
	jobID     int
	lastKind  jobKind
	lastInput string

	// Result
	result   *content.Result
	viewport viewport.Model

	// History
	history      []history.Entry
	historyTotal int
	historyError error

	processingError error
}

func newState() *state {
	prompt := textarea.New()
	prompt.Placeholder = "Create a fun post about Italian Chianti wine..."
	prompt.ShowLineNumbers = false
	prompt.CharLimit = 4000
	prompt.SetWidth(70)
	prompt.SetHeight(8)

	topic := textinput.New()
	topic.Placeholder = "Sparkling water and food to go with it"
	topic.CharLimit = 300
	topic.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = styleSelected

	return &state{
		apiKeyInput: apiKey,
		promptInput: prompt,
		topicInput:  topic,
		spinner:     spin,
		viewport:    viewport.New(70, 12),
	}
}
