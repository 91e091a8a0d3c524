package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	SignupURL    string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google, fast flash models",
		NeedsAPIKey:  true,
		SignupURL:    "https://aistudio.google.com/app/apikey",
		Models:       []string{"gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-pro"},
		DefaultModel: "gemini-2.0-flash",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		NeedsAPIKey:  true,
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, great writing",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.anthropic.com/",
		Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		DefaultModel: "claude-3-5-haiku-20241022",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.groq.com/keys",
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		SignupURL:    "https://openrouter.ai/keys",
		Models:       []string{"google/gemini-2.0-flash-001", "anthropic/claude-3.5-sonnet", "openai/gpt-4o"},
		DefaultModel: "google/gemini-2.0-flash-001",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		NeedsAPIKey:  false,
		Models:       []string{"llama3.1:8b", "qwen2.5:7b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// AgentModels returns the writer and illustrator models. The per-agent
// fields only apply to gemini; other providers use Model for both.
func (c *Config) AgentModels() (writer, illustrator string) {
	writer, illustrator = c.Model, c.Model
	if c.Provider != "gemini" {
		return writer, illustrator
	}
	if c.WriterModel != "" {
		writer = c.WriterModel
	}
	if c.IllustratorModel != "" {
		illustrator = c.IllustratorModel
	}
	return writer, illustrator
}
