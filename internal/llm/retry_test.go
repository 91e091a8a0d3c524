package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sant0-9/postcraft/internal/config"
)

type scriptedProvider struct {
	errs  []error
	calls int
}

func (s *scriptedProvider) Name() string                   { return "scripted" }
func (s *scriptedProvider) Ping(ctx context.Context) error { return nil }

func (s *scriptedProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	s.calls++
	if s.calls <= len(s.errs) && s.errs[s.calls-1] != nil {
		return nil, s.errs[s.calls-1]
	}
	return &CompletionResponse{Content: "ok"}, nil
}

func TestWithRetry(t *testing.T) {
	transient := &APIError{Provider: "x", StatusCode: 503}
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"first try", nil, 1, false},
		{"recovers", []error{transient, transient}, 3, false},
		{"gives up", []error{transient, transient, transient}, 3, true},
		{"client error", []error{&APIError{StatusCode: 400}}, 1, true},
		{"no content", []error{ErrNoContent}, 1, true},
		{"network error", []error{errors.New("connection reset"), nil}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := &scriptedProvider{errs: tt.errs}
			p := WithRetry(sp, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond})

			_, err := p.Complete(context.Background(), NewRequest("", "", "hi"))
			if (err != nil) != tt.wantErr {
				t.Errorf("Complete() error = %v, wantErr %v", err, tt.wantErr)
			}
			if sp.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", sp.calls, tt.wantCalls)
			}
		})
	}
}

func TestWithRetrySingleAttemptIsUnwrapped(t *testing.T) {
	sp := &scriptedProvider{}
	if p := WithRetry(sp, RetryPolicy{MaxAttempts: 1}); p != Provider(sp) {
		t.Errorf("WithRetry() = %T, want the original provider", p)
	}
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	sp := &scriptedProvider{errs: []error{&APIError{StatusCode: 500}, &APIError{StatusCode: 500}}}
	p := WithRetry(sp, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Complete(ctx, NewRequest("", "", "hi"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Complete() error = %v, want context.Canceled", err)
	}
	if sp.calls != 1 {
		t.Errorf("calls = %d, want 1", sp.calls)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		baseURL  string
		wantName string
		wantErr  error
	}{
		{"gemini", "gemini", "k", "", "gemini", nil},
		{"groq", "groq", "k", "", "groq", nil},
		{"ollama without key", "ollama", "", "", "ollama", nil},
		{"custom", "custom", "", "http://localhost:8080/v1", "custom", nil},
		{"missing key", "gemini", "", "", "", config.ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Provider = tt.provider
			cfg.APIKey = tt.apiKey
			cfg.BaseURL = tt.baseURL

			p, err := NewProvider(cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewProvider() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewProviderRejectsUnknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider = "mystery"
	if _, err := NewProvider(cfg); err == nil {
		t.Error("NewProvider() error = nil, want error")
	}
}

func TestRetryPolicyFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		rc   config.RetryConfig
		want RetryPolicy
	}{
		{"unset", config.RetryConfig{}, DefaultRetryPolicy()},
		{"attempts only", config.RetryConfig{MaxAttempts: 5}, RetryPolicy{MaxAttempts: 5, BaseDelay: 2 * time.Second}},
		{"delay only", config.RetryConfig{BaseDelay: time.Second}, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}},
		{"both", config.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond}, RetryPolicy{MaxAttempts: 1, BaseDelay: time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryPolicy(tt.rc); got != tt.want {
				t.Errorf("retryPolicy(%+v) = %+v, want %+v", tt.rc, got, tt.want)
			}
		})
	}
}
