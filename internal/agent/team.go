package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sant0-9/postcraft/internal/config"
	"github.com/sant0-9/postcraft/internal/intent"
	"github.com/sant0-9/postcraft/internal/llm"
	"github.com/sant0-9/postcraft/internal/search"
)

const (
	postHeading   = "- Post"
	promptHeading = "- Prompt to generate an illustration"
)

// Output is the compiled result of a team run
type Output struct {
	Post        string
	ImagePrompt string
	// Content is Post and ImagePrompt laid out under the team template
	Content string
}

// Team runs the Writer then the Illustrator, sharing the caption with the
// Illustrator, and compiles both into one post
type Team struct {
	Name        string
	Writer      *Agent
	Illustrator *Agent
	logger      *slog.Logger
}

func NewTeam(writer, illustrator *Agent, logger *slog.Logger) *Team {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Team{
		Name:        "Instagram Team",
		Writer:      writer,
		Illustrator: illustrator,
		logger:      logger,
	}
}

// NewInstagramTeam wires both members to provider using the models from cfg
func NewInstagramTeam(cfg *config.Config, provider llm.Provider, searcher search.Searcher, logger *slog.Logger) *Team {
	writerModel, illustratorModel := cfg.AgentModels()
	return NewTeam(
		NewWriter(provider, writerModel, searcher, cfg.Search.MaxResults, logger),
		NewIllustrator(provider, illustratorModel, logger),
		logger,
	)
}

func (t *Team) Run(ctx context.Context, req intent.Request) (*Output, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t.logger.Info("team run", "team", t.Name, "topic", req.Topic, "style", req.Style.String(), "flags", req.Flags.String())

	post, err := t.Writer.Run(ctx, Task{
		Topic:        req.Topic,
		Instructions: WriterInstructions(req),
	})
	if err != nil {
		return nil, fmt.Errorf("writer failed: %w", err)
	}
	post = StripEmoji(post)
	if post == "" {
		return nil, fmt.Errorf("writer failed: %w", ErrEmptyResponse)
	}

	imagePrompt, err := t.Illustrator.Run(ctx, Task{
		Topic:        req.Topic,
		Instructions: IllustratorInstructions(req),
		Shared:       fmt.Sprintf("%s wrote this caption:\n%s", t.Writer.Name, post),
	})
	if err != nil {
		return nil, fmt.Errorf("illustrator failed: %w", err)
	}

	return &Output{
		Post:        post,
		ImagePrompt: imagePrompt,
		Content:     Compile(post, imagePrompt),
	}, nil
}

// Compile lays out the caption and image prompt under the team template
func Compile(post, imagePrompt string) string {
	var sb strings.Builder
	sb.WriteString(postHeading)
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(post))
	sb.WriteString("\n\n")
	sb.WriteString(promptHeading)
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(imagePrompt))
	sb.WriteString("\n")
	return sb.String()
}

// WriterInstructions turns the parsed request into caption instructions
func WriterInstructions(req intent.Request) []string {
	ins := []string{
		fmt.Sprintf("Use %s tone.", req.Style.Describe()),
		"Do not use emojis in the caption.",
	}

	switch req.Length {
	case intent.LengthShort:
		ins = append(ins, "Keep the caption short and concise, no more than three sentences before the call to action.")
	case intent.LengthDetailed:
		ins = append(ins, "Write a detailed caption with tasting notes and pairing suggestions.")
	}

	if req.Audience != "" {
		ins = append(ins, fmt.Sprintf("Write for %s.", req.Audience))
	}

	switch req.Format {
	case intent.FormatStory:
		ins = append(ins, "Tell it as a short story.")
	case intent.FormatList:
		ins = append(ins, "Structure the caption as a short list of tips.")
	case intent.FormatQuestion:
		ins = append(ins, "Open with a question that invites comments.")
	}

	if req.Flags.Has(intent.FlagNoEmojis) {
		ins = append(ins, "Emojis are strictly forbidden, including in hashtags.")
	}
	if req.Flags.Has(intent.FlagIncludeCTA) {
		ins = append(ins, "The call to action at the end is required.")
	}
	if req.Flags.Has(intent.FlagIncludeHashtags) {
		ins = append(ins, "End with exactly 5 relevant hashtags.")
	}

	return ins
}

// IllustratorInstructions keeps the picture in line with the caption
func IllustratorInstructions(req intent.Request) []string {
	ins := []string{
		"Describe a single photo: subject, setting, lighting and composition.",
		"Return only the prompt text.",
	}
	if req.Style != intent.StyleDefault {
		ins = append(ins, fmt.Sprintf("Match %s mood.", req.Style.Describe()))
	}
	return ins
}
