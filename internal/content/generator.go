// Package content turns instructions into saved Instagram posts.
package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sant0-9/postcraft/internal/agent"
	"github.com/sant0-9/postcraft/internal/history"
	"github.com/sant0-9/postcraft/internal/intent"
)

const PostFileName = "post.txt"

// Coordinator produces a post for a request
type Coordinator interface {
	Run(ctx context.Context, req intent.Request) (*agent.Output, error)
}

// Artifact is one generated post
type Artifact struct {
	ID          string         `json:"id"`
	Topic       string         `json:"topic"`
	Timestamp   time.Time      `json:"timestamp"`
	Content     string         `json:"content"`
	Post        string         `json:"post"`
	ImagePrompt string         `json:"image_prompt"`
	Request     intent.Request `json:"request"`
	// Path is where post.txt was written
	Path string `json:"path"`
}

// Result pairs a raw instruction with what was made from it
type Result struct {
	Original string         `json:"original_prompt"`
	Parsed   intent.Request `json:"parsed_instruction"`
	Artifact *Artifact      `json:"artifact"`
}

type Generator struct {
	team      Coordinator
	history   history.Log
	outputDir string
	logger    *slog.Logger
	now       func() time.Time
}

func NewGenerator(team Coordinator, log history.Log, outputDir string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		team:      team,
		history:   log,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

func (g *Generator) OutputDir() string {
	return g.outputDir
}

// History returns every saved entry, oldest first
func (g *Generator) History(ctx context.Context) ([]history.Entry, error) {
	return g.history.List(ctx)
}

// Generate runs the team for req, writes post.txt and records the post in
// the history unless req.SaveFile is false
func (g *Generator) Generate(ctx context.Context, req intent.Request) (*Artifact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := g.now()
	g.logger.Info("generating post", "topic", req.Topic, "style", req.Style.String())

	out, err := g.team.Run(ctx, req)
	if err != nil {
		g.logger.Error("generation failed", "topic", req.Topic, "error", err)
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	art := &Artifact{
		ID:          uuid.NewString(),
		Topic:       req.Topic,
		Timestamp:   g.now(),
		Content:     out.Content,
		Post:        out.Post,
		ImagePrompt: out.ImagePrompt,
		Request:     req,
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	art.Path = filepath.Join(g.outputDir, PostFileName)
	if err := os.WriteFile(art.Path, []byte(art.Content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", PostFileName, err)
	}

	if req.SaveFile {
		entry := history.Entry{ID: art.ID, Timestamp: art.Timestamp, Topic: art.Topic, Content: art.Content}
		if err := g.history.Append(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to save history: %w", err)
		}
	}

	g.logger.Info("post generated", "topic", req.Topic, "path", art.Path, "saved", req.SaveFile, "elapsed", g.now().Sub(start))
	return art, nil
}

// ProcessPrompt parses a free-text instruction and generates from it
func (g *Generator) ProcessPrompt(ctx context.Context, raw string) (*Result, error) {
	req := intent.Parse(raw)
	g.logger.Debug("parsed instruction", "topic", req.Topic, "style", req.Style.String(),
		"length", req.Length.String(), "audience", req.Audience, "format", req.Format.String(),
		"flags", req.Flags.String(), "save", req.SaveFile)

	res := &Result{Original: raw, Parsed: req}
	art, err := g.Generate(ctx, req)
	if err != nil {
		return res, err
	}
	res.Artifact = art
	return res, nil
}

// QuickTopic generates a post for a bare topic with default options
func (g *Generator) QuickTopic(ctx context.Context, topic string) (*Artifact, error) {
	return g.Generate(ctx, intent.NewRequest(topic))
}
