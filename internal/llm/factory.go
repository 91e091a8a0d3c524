package llm

import (
	"fmt"

	"github.com/sant0-9/postcraft/internal/config"
)

// NewProvider creates a provider from config, wrapped with the configured
// retry policy
func NewProvider(cfg *config.Config) (Provider, error) {
	info := config.GetProvider(cfg.Provider)
	if info != nil && info.NeedsAPIKey && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, config.ErrMissingAPIKey)
	}

	var p Provider
	switch cfg.Provider {
	case "gemini":
		g := NewGeminiProvider(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			g.baseURL = cfg.BaseURL
		}
		p = g

	case "ollama":
		p = NewOllamaProvider(cfg.BaseURL, cfg.Model)

	case "openai":
		o := NewOpenAIProvider(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			o.baseURL = cfg.BaseURL
		}
		p = o

	case "groq":
		p = NewCompatibleProvider("groq", groqBaseURL, cfg.APIKey, cfg.Model)

	case "openrouter":
		p = NewCompatibleProvider("openrouter", openRouterBaseURL, cfg.APIKey, cfg.Model)

	case "anthropic":
		a := NewAnthropicProvider(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			a.baseURL = cfg.BaseURL
		}
		p = a

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		p = NewCompatibleProvider("custom", cfg.BaseURL, cfg.APIKey, cfg.Model)

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	return WithRetry(p, retryPolicy(cfg.Retry)), nil
}

// retryPolicy fills unset fields of the configured policy from
// DefaultRetryPolicy
func retryPolicy(rc config.RetryConfig) RetryPolicy {
	policy := DefaultRetryPolicy()
	if rc.MaxAttempts > 0 {
		policy.MaxAttempts = rc.MaxAttempts
	}
	if rc.BaseDelay > 0 {
		policy.BaseDelay = rc.BaseDelay
	}
	return policy
}
