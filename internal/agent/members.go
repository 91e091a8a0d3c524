package agent

import (
	"log/slog"

	"github.com/sant0-9/postcraft/internal/llm"
	"github.com/sant0-9/postcraft/internal/search"
)

const (
	WriterName      = "Writer"
	IllustratorName = "Illustrator"
)

const writerRole = `You are an experienced digital marketer who specializes in Instagram posts.
You know how to write an engaging, SEO-friendly post.
You know all about wine, cheese, and gourmet foods found in grocery stores.
You are also a wine sommelier who knows how to make recommendations.`

const writerDescription = `Write clear, engaging content about the requested {topic}.
Write an Instagram caption about the requested {topic}.
Write a short call to action at the end of the message.
Add 5 hashtags to the caption.
If you encounter a character encoding error, remove the character before sending your response.`

const illustratorRole = `You are an illustrator who specializes in pictures of wines, cheeses, and fine foods found in grocery stores.`

const illustratorDescription = `Based on the caption created by the Writer, create a prompt to generate an engaging photo about the requested {topic}.
If you encounter a character encoding error, remove the character before sending your response.`

// NewWriter creates the caption writer. searcher may be nil.
func NewWriter(provider llm.Provider, model string, searcher search.Searcher, maxResults int, logger *slog.Logger) *Agent {
	return &Agent{
		Name:           WriterName,
		Role:           writerRole,
		Description:    writerDescription,
		ExpectedOutput: "Caption for Instagram about the {topic}.",
		Model:          model,
		Provider:       provider,
		Searcher:       searcher,
		MaxResults:     maxResults,
		Logger:         logger,
	}
}

// NewIllustrator creates the image prompt writer
func NewIllustrator(provider llm.Provider, model string, logger *slog.Logger) *Agent {
	return &Agent{
		Name:           IllustratorName,
		Role:           illustratorRole,
		Description:    illustratorDescription,
		ExpectedOutput: "Prompt to generate a picture.",
		Model:          model,
		Provider:       provider,
		Logger:         logger,
	}
}
