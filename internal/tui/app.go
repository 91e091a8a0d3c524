package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/postcraft/internal/config"
	"github.com/sant0-9/postcraft/internal/content"
	"github.com/sant0-9/postcraft/internal/history"
	"github.com/sant0-9/postcraft/internal/intent"
	"github.com/sant0-9/postcraft/internal/llm"
)

type view int

const (
	viewMenu view = iota
	viewSetup
	viewPrompt
	viewTopic
	viewProcessing
	viewResult
	viewHistory
	viewExamples
	viewHelp
	viewSettings
	viewError
)

const historyLimit = 10

// Backend is the part of the content generator the interface drives
type Backend interface {
	ProcessPrompt(ctx context.Context, raw string) (*content.Result, error)
	QuickTopic(ctx context.Context, topic string) (*content.Artifact, error)
	History(ctx context.Context) ([]history.Entry, error)
	OutputDir() string
}

// BackendFactory builds a backend once the config is complete
type BackendFactory func(cfg *config.Config) (Backend, error)

// PingFunc checks the configured provider is reachable
type PingFunc func(ctx context.Context, cfg *config.Config) error

type Options struct {
	Config     *config.Config
	NeedsSetup bool
	NewBackend BackendFactory
	// Ping defaults to pinging llm.NewProvider(cfg)
	Ping   PingFunc
	Logger *slog.Logger
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool

	newBackend BackendFactory
	ping       PingFunc
	logger     *slog.Logger
}

func NewApp(opts Options) *App {
	s := newState()
	s.config = opts.Config
	if s.config == nil {
		s.config = config.DefaultConfig()
		opts.NeedsSetup = true
	}
	s.needsSetup = opts.NeedsSetup

	if opts.Ping == nil {
		opts.Ping = pingProvider
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &App{
		view:       viewMenu,
		state:      s,
		newBackend: opts.NewBackend,
		ping:       opts.Ping,
		logger:     opts.Logger,
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}
	return tea.Batch(tea.WindowSize(), a.connect())
}

func pingProvider(ctx context.Context, cfg *config.Config) error {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}
	return provider.Ping(ctx)
}

// connect builds the backend and checks the provider. A failed ping is only
// a warning, the backend is still usable.
func (a *App) connect() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		backend, err := a.newBackend(cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return backendReadyMsg{backend: backend, pingErr: a.ping(ctx, cfg)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.settingsReturn = false
		a.state.providerReady = false
		a.state.providerError = nil
		a.view = viewMenu
		return a, a.connect()

	case setupErrorMsg:
		a.state.processingError = msg.error
		a.view = viewError
		return a, nil

	case backendReadyMsg:
		a.state.backend = msg.backend
		a.state.providerReady = true
		a.state.providerError = msg.pingErr
		if msg.pingErr != nil {
			a.logger.Warn("provider ping failed", "provider", a.state.config.Provider, "error", msg.pingErr)
		}
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.logger.Error("provider unavailable", "provider", a.state.config.Provider, "error", msg.error)
		return a, nil

	case generatedMsg:
		return a, a.handleGenerated(msg)

	case historyLoadedMsg:
		a.state.history = history.Recent(msg.entries, historyLimit)
		a.state.historyTotal = len(msg.entries)
		a.state.historyError = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.view != viewProcessing {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Forward everything else (cursor blink) to the focused input
	switch {
	case a.view == viewSetup && a.state.setupStep == 1:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewPrompt:
		var cmd tea.Cmd
		a.state.promptInput, cmd = a.state.promptInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewTopic:
		var cmd tea.Cmd
		a.state.topicInput, cmd = a.state.topicInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize() {
	w := min(76, a.width-4)
	if w < 20 {
		w = 20
	}
	a.state.promptInput.SetWidth(w - 4)
	a.state.topicInput.Width = w - 6
	a.state.viewport.Width = w - 4
	a.state.viewport.Height = max(5, a.height-16)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		if a.state.cancel != nil {
			a.state.cancel()
		}
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewMenu:
		return a.handleMenuKey(msg)
	case viewPrompt:
		return a.handlePromptKey(msg)
	case viewTopic:
		return a.handleTopicKey(msg)
	case viewProcessing:
		if key.Matches(msg, keys.Back) && a.state.cancel != nil {
			a.state.cancel()
			a.state.cancel = nil
			a.view = viewMenu
		}
		return nil
	case viewResult:
		return a.handleResultKey(msg)
	case viewExamples:
		return a.handleExamplesKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewError:
		return a.handleErrorKey(msg)
	default:
		// history and help only go back
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Enter) {
			a.view = viewMenu
		}
		return nil
	}
}

func (a *App) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Up):
		if a.state.menuCursor > 0 {
			a.state.menuCursor--
		}
		return nil
	case key.Matches(msg, keys.Down):
		if a.state.menuCursor < len(menuItems)-1 {
			a.state.menuCursor++
		}
		return nil
	case key.Matches(msg, keys.Enter):
		return a.selectMenu(menuItems[a.state.menuCursor].action)
	case key.Matches(msg, keys.Settings):
		a.view = viewSettings
		return nil
	case key.Matches(msg, keys.Retry):
		if !a.state.providerReady {
			a.state.providerError = nil
			return a.connect()
		}
		return nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= len(menuItems) {
		a.state.menuCursor = int(s[0] - '1')
		return a.selectMenu(menuItems[a.state.menuCursor].action)
	}
	return nil
}

func (a *App) selectMenu(act menuAction) tea.Cmd {
	switch act {
	case actionPrompt:
		a.view = viewPrompt
		a.state.promptInput.Reset()
		return a.state.promptInput.Focus()
	case actionTopic:
		a.view = viewTopic
		a.state.topicInput.Reset()
		a.state.topicInput.Focus()
		return textinput.Blink
	case actionExamples:
		a.view = viewExamples
		return nil
	case actionHistory:
		a.view = viewHistory
		a.state.history = nil
		a.state.historyError = nil
		return a.loadHistory()
	case actionHelp:
		a.view = viewHelp
		return nil
	case actionExit:
		a.quitting = true
		return tea.Quit
	}
	return nil
}

func (a *App) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.state.promptInput.Blur()
		a.view = viewMenu
		return nil
	case key.Matches(msg, keys.Submit):
		return a.submitPrompt(a.state.promptInput.Value())
	case key.Matches(msg, keys.Enter):
		body, term := splitTerminator(a.state.promptInput.Value())
		switch term {
		case termEnd:
			return a.submitPrompt(body)
		case termCancel:
			a.state.promptInput.Blur()
			a.view = viewMenu
			return nil
		}
	}

	var cmd tea.Cmd
	a.state.promptInput, cmd = a.state.promptInput.Update(msg)
	return cmd
}

func (a *App) submitPrompt(raw string) tea.Cmd {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	a.state.promptInput.Blur()
	return a.startJob(jobPrompt, raw)
}

func (a *App) handleTopicKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.state.topicInput.Blur()
		a.view = viewMenu
		return nil
	case key.Matches(msg, keys.Enter):
		topic := strings.TrimSpace(a.state.topicInput.Value())
		if topic == "" {
			return nil
		}
		a.state.topicInput.Blur()
		return a.startJob(jobTopic, topic)
	}

	var cmd tea.Cmd
	a.state.topicInput, cmd = a.state.topicInput.Update(msg)
	return cmd
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		a.view = viewMenu
		return nil
	}
	var cmd tea.Cmd
	a.state.viewport, cmd = a.state.viewport.Update(msg)
	return cmd
}

func (a *App) handleExamplesKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewMenu
	case key.Matches(msg, keys.Up):
		if a.state.exampleCursor > 0 {
			a.state.exampleCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.exampleCursor < len(examples)-1 {
			a.state.exampleCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.view = viewPrompt
		a.state.promptInput.SetValue(examples[a.state.exampleCursor].Prompt)
		return a.state.promptInput.Focus()
	}
	return nil
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Retry):
		if a.state.lastInput != "" && a.state.backend != nil {
			return a.startJob(a.state.lastKind, a.state.lastInput)
		}
	case key.Matches(msg, keys.Settings):
		a.view = viewSettings
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		a.view = viewMenu
	}
	return nil
}

func (a *App) startJob(kind jobKind, input string) tea.Cmd {
	a.state.lastKind = kind
	a.state.lastInput = input
	a.state.processingError = nil

	if a.state.backend == nil {
		err := a.state.providerError
		if err == nil {
			err = errors.New("not connected to a provider yet")
		}
		a.state.processingError = err
		a.view = viewError
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.state.cancel = cancel
	a.state.jobID++
	a.view = viewProcessing

	id := a.state.jobID
	backend := a.state.backend
	run := func() tea.Msg {
		defer cancel()
		switch kind {
		case jobTopic:
			art, err := backend.QuickTopic(ctx, input)
			return generatedMsg{
				jobID:  id,
				result: &content.Result{Original: input, Parsed: intent.NewRequest(input), Artifact: art},
				err:    err,
			}
		default:
			res, err := backend.ProcessPrompt(ctx, input)
			return generatedMsg{jobID: id, result: res, err: err}
		}
	}

	return tea.Batch(a.state.spinner.Tick, run)
}

func (a *App) handleGenerated(msg generatedMsg) tea.Cmd {
	// a reply from a cancelled or superseded job
	if msg.jobID != a.state.jobID || a.view != viewProcessing {
		return nil
	}
	a.state.cancel = nil

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			a.view = viewMenu
			return nil
		}
		a.state.processingError = msg.err
		a.view = viewError
		return nil
	}

	a.state.result = msg.result
	a.state.viewport.SetContent(msg.result.Artifact.Content)
	a.state.viewport.GotoTop()
	a.view = viewResult
	return nil
}

func (a *App) loadHistory() tea.Cmd {
	backend := a.state.backend
	return func() tea.Msg {
		if backend == nil {
			return historyLoadedMsg{err: errors.New("not connected to a provider yet")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := backend.History(ctx)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Back):
			if a.state.settingsReturn {
				a.state.settingsReturn = false
				a.view = viewSettings
				return nil
			}
			a.quitting = true
			return tea.Quit
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			if a.state.config.Provider != provider.ID {
				a.state.config.APIKey = ""
			}
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Reset()
				a.state.apiKeyInput.Focus()
				return textinput.Blink
			}
			return a.finishSetup()
		}

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Back):
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil
		case key.Matches(msg, keys.Enter):
			apiKey := strings.TrimSpace(a.state.apiKeyInput.Value())
			if apiKey == "" {
				return nil
			}
			a.state.config.APIKey = apiKey
			a.state.apiKeyInput.Blur()
			return a.finishSetup()
		default:
			var cmd tea.Cmd
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
			return cmd
		}
	}

	return nil
}

func (a *App) finishSetup() tea.Cmd {
	a.state.setupStep = 0
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerErrorMsg struct{ error }

type backendReadyMsg struct {
	backend Backend
	pingErr error
}

type generatedMsg struct {
	jobID  int
	result *content.Result
	err    error
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewPrompt:
		return a.renderPrompt()
	case viewTopic:
		return a.renderTopic()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewHistory:
		return a.renderHistory()
	case viewExamples:
		return a.renderExamples()
	case viewHelp:
		return a.renderHelp()
	case viewSettings:
		return a.renderSettings()
	case viewError:
		return a.renderError()
	default:
		return a.renderMenu()
	}
}
