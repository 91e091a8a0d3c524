package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sant0-9/postcraft/internal/llm"
	"github.com/sant0-9/postcraft/internal/search"
)

// ErrEmptyResponse is returned when a member produces no usable text
var ErrEmptyResponse = errors.New("empty response")

// Agent is a single team member backed by an LLM
type Agent struct {
	Name           string
	Role           string
	Description    string
	ExpectedOutput string
	Model          string

	Provider llm.Provider

	// Searcher is optional. When set, results for the topic are added to
	// the prompt before the call.
	Searcher   search.Searcher
	MaxResults int

	Logger *slog.Logger
}

// Task is one unit of work handed to an agent
type Task struct {
	Topic        string
	Instructions []string
	// Shared is output from other members the agent should build on
	Shared string
}

// Run sends the task to the provider and returns the cleaned response
func (a *Agent) Run(ctx context.Context, task Task) (string, error) {
	logger := a.logger()

	req := llm.NewRequest(a.Model, a.systemPrompt(task), a.userPrompt(ctx, task))

	logger.Debug("agent request", "agent", a.Name, "model", a.Model, "topic", task.Topic)
	resp, err := a.Provider.Complete(ctx, req)
	if errors.Is(err, llm.ErrNoContent) {
		return "", fmt.Errorf("%s: %w: %w", a.Name, ErrEmptyResponse, err)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", a.Name, err)
	}

	out := Sanitize(resp.Content)
	if out == "" {
		return "", fmt.Errorf("%s: %w", a.Name, ErrEmptyResponse)
	}
	logger.Debug("agent response", "agent", a.Name, "chars", len(out), "tokens", resp.Usage.TotalTokens)

	return out, nil
}

func (a *Agent) systemPrompt(task Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Your name is %s.\n\n", a.Name)
	sb.WriteString(strings.TrimSpace(a.Role))
	sb.WriteString("\n\n")
	sb.WriteString(withTopic(a.Description, task.Topic))

	if len(task.Instructions) > 0 {
		sb.WriteString("\n\nInstructions:\n")
		for _, in := range task.Instructions {
			fmt.Fprintf(&sb, "- %s\n", in)
		}
	}

	if a.ExpectedOutput != "" {
		fmt.Fprintf(&sb, "\nExpected output: %s", withTopic(a.ExpectedOutput, task.Topic))
	}

	return strings.TrimSpace(sb.String())
}

func (a *Agent) userPrompt(ctx context.Context, task Task) string {
	var sb strings.Builder

	if notes := a.research(ctx, task.Topic); notes != "" {
		sb.WriteString("Research notes:\n")
		sb.WriteString(notes)
		sb.WriteString("\n\n")
	}

	if task.Shared != "" {
		sb.WriteString("Shared by the team:\n")
		sb.WriteString(task.Shared)
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "Topic: %s", task.Topic)
	return sb.String()
}

// research never fails the run. A search error only loses the notes.
func (a *Agent) research(ctx context.Context, topic string) string {
	if a.Searcher == nil || topic == "" {
		return ""
	}

	results, err := a.Searcher.Search(ctx, topic, a.MaxResults)
	if err != nil {
		a.logger().Warn("search failed, continuing without research",
			"agent", a.Name, "searcher", a.Searcher.Name(), "error", err)
		return ""
	}
	return search.FormatResults(results)
}

func (a *Agent) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withTopic(s, topic string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "{topic}", topic)
}
