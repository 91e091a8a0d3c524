package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned when a hosted provider has no key configured
var ErrMissingAPIKey = errors.New("API key is required: set GEMINI_API_KEY in your .env file or environment, or run setup")

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	WriterModel      string `yaml:"writer_model,omitempty"`
	IllustratorModel string `yaml:"illustrator_model,omitempty"`

	OutputDir string `yaml:"output_dir"`
	History   string `yaml:"history"`

	Search SearchConfig `yaml:"search"`
	Retry  RetryConfig  `yaml:"retry"`

	// path is where the config was loaded from, empty for defaults
	path string
}

type SearchConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key,omitempty"`
	MaxResults int    `yaml:"max_results"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:         "gemini",
		Model:            "gemini-2.0-flash",
		WriterModel:      "gemini-2.0-flash-lite",
		IllustratorModel: "gemini-2.0-flash",
		OutputDir:        "./output",
		History:          "json",
		Search: SearchConfig{
			Provider:   "duckduckgo",
			MaxResults: 5,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "postcraft"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the default config file. It returns nil, nil when no file exists.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config file, filling unset fields from DefaultConfig.
// It returns nil, nil when the file does not exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.path = path

	return cfg, nil
}

// LoadOrDefault reads path, or the default location when path is empty.
// found is false when there is no file, in which case the defaults are
// returned and Save writes to path.
func LoadOrDefault(path string) (cfg *Config, found bool, err error) {
	if path == "" {
		cfg, err = Load()
	} else {
		cfg, err = LoadFile(path)
	}
	if err != nil {
		return nil, false, err
	}
	if cfg != nil {
		return cfg, true, nil
	}

	cfg = DefaultConfig()
	cfg.path = path
	return cfg, false, nil
}

// Path returns the file the config was loaded from or will be saved to
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	path, _ := ConfigPath()
	return path
}

func (c *Config) Save() error {
	path := c.Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	c.path = path
	return nil
}

// ApplyEnv overrides fields from the environment. GEMINI_API_KEY only
// applies to the gemini provider.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("POSTCRAFT_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("POSTCRAFT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("POSTCRAFT_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.Provider == "gemini" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := os.Getenv("POSTCRAFT_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Search.APIKey = v
		if c.Search.Provider == "" || c.Search.Provider == "duckduckgo" {
			c.Search.Provider = "tavily"
		}
	}
	if v := os.Getenv("POSTCRAFT_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.MaxAttempts = n
		}
	}
}

// Validate checks the fields needed before any generation
func (c *Config) Validate() error {
	info := GetProvider(c.Provider)
	if info == nil && c.Provider != "custom" {
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
	if info != nil && info.NeedsAPIKey && c.APIKey == "" {
		return fmt.Errorf("%s: %w", c.Provider, ErrMissingAPIKey)
	}
	switch c.History {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown history backend: %s", c.History)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
