package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/sant0-9/postcraft/internal/config"
)

// Result is a single web search hit
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher looks up background material for a topic
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// New creates the searcher named in cfg. An empty or "none" provider
// returns nil, which callers treat as search disabled.
func New(cfg config.SearchConfig) (Searcher, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "duckduckgo":
		return NewDuckDuckGo(), nil
	case "tavily":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("tavily search requires an API key")
		}
		return NewTavily(cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}

// FormatResults renders results as a numbered list for a prompt
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
		if r.URL != "" {
			fmt.Fprintf(&sb, "   %s\n", r.URL)
		}
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func clampResults(n int) int {
	if n <= 0 {
		return 5
	}
	if n > 20 {
		return 20
	}
	return n
}
