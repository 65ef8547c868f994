// Package config loads uxguard configuration from YAML with environment
// overrides. Absent files yield defaults; a present but malformed file is
// an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "uxguard.yaml"

// Config holds all uxguard configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Knowledge base location
	Knowledge KnowledgeConfig `yaml:"knowledge"`

	// Composition model
	LLM LLMConfig `yaml:"llm"`

	// Web server
	Server ServerConfig `yaml:"server"`

	// Query log
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// PDF export
	Export ExportConfig `yaml:"export"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// KnowledgeConfig locates the curated documents. Dir is searched for
// risks.yaml and references.yaml, then Dir/data; when neither exists the
// embedded base is used.
type KnowledgeConfig struct {
	Dir string `yaml:"dir"`
}

// LLMConfig configures the composition client. Model and BaseURL left empty
// fall through to the provider's defaults. No API key means composition is
// off and every answer is served from the curated entries directly.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// ServerConfig configures the web UI.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// TelemetryConfig configures the append-only query log.
type TelemetryConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// ExportConfig configures where PDF artifacts land.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "uxguard",
		Version: "1.0.0",

		Knowledge: KnowledgeConfig{
			Dir: ".",
		},

		LLM: LLMConfig{
			Provider: "openai",
			Timeout:  "30s",
		},

		Server: ServerConfig{
			Addr: ":8080",
		},

		Telemetry: TelemetryConfig{
			Path: "data/telemetry.db",
		},

		Export: ExportConfig{
			Dir: ".",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Provider keys
// are checked in order, so a later key wins when several are set.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		if c.LLM.Provider == "" {
			c.LLM.Provider = "openai"
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "gemini"
	}

	if model := os.Getenv("UXGUARD_LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if url := os.Getenv("UXGUARD_LLM_BASE_URL"); url != "" {
		c.LLM.BaseURL = url
	}
	if addr := os.Getenv("UXGUARD_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if dir := os.Getenv("UXGUARD_KNOWLEDGE_DIR"); dir != "" {
		c.Knowledge.Dir = dir
	}
	if path := os.Getenv("UXGUARD_TELEMETRY_DB"); path != "" {
		c.Telemetry.Path = path
	}
}

// GetLLMTimeout returns the composition timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ValidProviders lists the supported composition providers.
var ValidProviders = []string{"openai", "gemini"}

// Validate validates the configuration. A missing API key is not an error:
// the tool runs fully without composition.
func (c *Config) Validate() error {
	validProvider := false
	for _, p := range ValidProviders {
		if c.LLM.Provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}

	if !c.Telemetry.Disabled && c.Telemetry.Path == "" {
		return fmt.Errorf("telemetry enabled but no database path configured")
	}

	return nil
}

// ComposerConfigured reports whether an API key is available.
func (c *Config) ComposerConfigured() bool {
	return c.LLM.APIKey != ""
}
