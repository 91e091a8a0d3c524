package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sant0-9/postcraft/internal/config"
	"github.com/sant0-9/postcraft/internal/intent"
	"github.com/sant0-9/postcraft/internal/llm"
	"github.com/sant0-9/postcraft/internal/search"
)

// fakeProvider answers by the agent name found in the system prompt
type fakeProvider struct {
	mu       sync.Mutex
	replies  map[string]string
	errs     map[string]error
	requests []*llm.CompletionRequest
}

func (f *fakeProvider) Name() string                   { return "fake" }
func (f *fakeProvider) Ping(ctx context.Context) error { return nil }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)

	system := req.Messages[0].Content
	for name, reply := range f.replies {
		if strings.HasPrefix(system, "Your name is "+name+".") {
			if err := f.errs[name]; err != nil {
				return nil, err
			}
			return &llm.CompletionResponse{Content: reply}, nil
		}
	}
	return nil, llm.ErrNoContent
}

type fakeSearcher struct {
	results []search.Result
	err     error
	queries []string
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func TestAgentRunBuildsPrompt(t *testing.T) {
	fp := &fakeProvider{replies: map[string]string{WriterName: "  Cin cin!  "}}
	fs := &fakeSearcher{results: []search.Result{{Title: "Chianti DOCG", URL: "https://example.com"}}}
	w := NewWriter(fp, "writer-model", fs, 3, nil)

	out, err := w.Run(context.Background(), Task{Topic: "Chianti", Instructions: []string{"Be brief."}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "Cin cin!" {
		t.Errorf("Run() = %q, want trimmed reply", out)
	}

	req := fp.requests[0]
	if req.Model != "writer-model" {
		t.Errorf("Model = %q", req.Model)
	}
	system, user := req.Messages[0].Content, req.Messages[1].Content
	for _, want := range []string{"Your name is Writer.", "sommelier", "caption about the requested Chianti", "- Be brief.", "Expected output: Caption for Instagram about the Chianti."} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q:\n%s", want, system)
		}
	}
	if strings.Contains(system, "{topic}") {
		t.Error("system prompt still contains {topic}")
	}
	if !strings.Contains(user, "Research notes:\n1. Chianti DOCG") || !strings.HasSuffix(user, "Topic: Chianti") {
		t.Errorf("user prompt = %q", user)
	}
	if len(fs.queries) != 1 || fs.queries[0] != "Chianti" {
		t.Errorf("queries = %v", fs.queries)
	}
}

func TestAgentRunSearchFailureIsIgnored(t *testing.T) {
	fp := &fakeProvider{replies: map[string]string{WriterName: "caption"}}
	w := NewWriter(fp, "m", &fakeSearcher{err: errors.New("blocked")}, 5, nil)

	if _, err := w.Run(context.Background(), Task{Topic: "Port"}); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if strings.Contains(fp.requests[0].Messages[1].Content, "Research notes") {
		t.Error("user prompt has research notes after a failed search")
	}
}

func TestAgentRunEmpty(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"blank", "   \n\t"},
		{"only control characters", "\x00\x07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProvider{replies: map[string]string{IllustratorName: tt.reply}}
			_, err := NewIllustrator(fp, "m", nil).Run(context.Background(), Task{Topic: "Brie"})
			if !errors.Is(err, ErrEmptyResponse) {
				t.Errorf("Run() error = %v, want ErrEmptyResponse", err)
			}
		})
	}

	fp := &fakeProvider{}
	_, err := NewIllustrator(fp, "m", nil).Run(context.Background(), Task{Topic: "Brie"})
	if !errors.Is(err, ErrEmptyResponse) || !errors.Is(err, llm.ErrNoContent) {
		t.Errorf("Run() error = %v, want ErrEmptyResponse wrapping ErrNoContent", err)
	}
}

func TestTeamRun(t *testing.T) {
	fp := &fakeProvider{replies: map[string]string{
		WriterName:      "Chianti meets Pecorino 🍷\nTry it tonight!\n#chianti",
		IllustratorName: "A rustic table with a glass of Chianti and aged Pecorino",
	}}
	team := NewTeam(NewWriter(fp, "w", nil, 0, nil), NewIllustrator(fp, "i", nil), nil)

	req := intent.Parse("Create a fun post about Italian Chianti with aged cheese, add a call to action")
	out, err := team.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if out.Post != "Chianti meets Pecorino\nTry it tonight!\n#chianti" {
		t.Errorf("Post = %q, want emoji removed", out.Post)
	}
	if !strings.HasPrefix(out.Content, "- Post\n\nChianti meets Pecorino") {
		t.Errorf("Content = %q", out.Content)
	}
	if !strings.Contains(out.Content, "- Prompt to generate an illustration\n\nA rustic table") {
		t.Errorf("Content = %q", out.Content)
	}

	if len(fp.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(fp.requests))
	}
	writerSystem := fp.requests[0].Messages[0].Content
	for _, want := range []string{"fun, playful and energetic", "Do not use emojis in the caption.", "call to action at the end is required"} {
		if !strings.Contains(writerSystem, want) {
			t.Errorf("writer prompt missing %q", want)
		}
	}
	illustratorUser := fp.requests[1].Messages[1].Content
	if !strings.Contains(illustratorUser, "Writer wrote this caption:\nChianti meets Pecorino") {
		t.Errorf("illustrator did not see the caption: %q", illustratorUser)
	}
}

func TestTeamRunErrors(t *testing.T) {
	boom := &llm.APIError{Provider: "fake", StatusCode: 400}

	tests := []struct {
		name    string
		errs    map[string]error
		replies map[string]string
		req     intent.Request
		wantErr error
	}{
		{
			name:    "invalid request",
			req:     intent.Request{},
			wantErr: intent.ErrInvalidInput,
		},
		{
			name:    "writer fails",
			replies: map[string]string{WriterName: "x", IllustratorName: "y"},
			errs:    map[string]error{WriterName: boom},
			req:     intent.NewRequest("Gouda"),
			wantErr: boom,
		},
		{
			name:    "caption is only emoji",
			replies: map[string]string{WriterName: "🍷🧀", IllustratorName: "y"},
			req:     intent.NewRequest("Gouda"),
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "illustrator empty",
			replies: map[string]string{WriterName: "caption", IllustratorName: " "},
			req:     intent.NewRequest("Gouda"),
			wantErr: ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProvider{replies: tt.replies, errs: tt.errs}
			team := NewTeam(NewWriter(fp, "w", nil, 0, nil), NewIllustrator(fp, "i", nil), nil)
			_, err := team.Run(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriterInstructions(t *testing.T) {
	req := intent.Parse("A short story about Riesling for beginners, no emojis, #hashtags")
	got := strings.Join(WriterInstructions(req), "\n")

	for _, want := range []string{"short and concise", "Write for beginners.", "short story", "strictly forbidden", "exactly 5 relevant hashtags"} {
		if !strings.Contains(got, want) {
			t.Errorf("instructions missing %q:\n%s", want, got)
		}
	}

	plain := strings.Join(WriterInstructions(intent.NewRequest("Riesling")), "\n")
	if !strings.Contains(plain, "neutral to fun and conversational") {
		t.Errorf("default instructions = %q", plain)
	}
}

func TestNewInstagramTeam(t *testing.T) {
	cfg := config.DefaultConfig()
	team := NewInstagramTeam(cfg, &fakeProvider{}, nil, nil)
	if team.Writer.Model != "gemini-2.0-flash-lite" || team.Illustrator.Model != "gemini-2.0-flash" {
		t.Errorf("models = %s, %s", team.Writer.Model, team.Illustrator.Model)
	}
	if team.Writer.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want 5", team.Writer.MaxResults)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\r\nbreak", "line\nbreak"},
		{"bad\xffbyte", "badbyte"},
		{"nul\x00here", "nulhere"},
		{"keep\ttabs", "keep\ttabs"},
		{"repl\uFFFDaced", "replaced"},
		{"rosé", "rosé"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripEmoji(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"no emoji here", "no emoji here"},
		{"Cheers 🥂 to rosé", "Cheers to rosé"},
		{"🍷 wine", "wine"},
		{"family 👨‍👩‍👧 time", "family time"},
		{"sun ☀️", "sun"},
	}
	for _, tt := range tests {
		if got := StripEmoji(tt.in); got != tt.want {
			t.Errorf("StripEmoji(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
