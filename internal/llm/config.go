package llm

import "time"

// Defaults for the refinement configuration.
const (
	DefaultBaseURL      = "http://localhost:11434"
	DefaultModel        = "llama3.1"
	DefaultTemperature  = 0.1
	DefaultMaxTokens    = 2500
	DefaultProbeTimeout = 5 * time.Second
	DefaultTimeout      = 30 * time.Second
)

// Config holds configuration for the LLM refinement step. Enabled is a
// pointer so an absent key defaults to true while an explicit false
// disables refinement.
type Config struct {
	Enabled      *bool         `yaml:"enabled" mapstructure:"enabled"`
	BaseURL      string        `yaml:"base_url" mapstructure:"base_url"`
	Model        string        `yaml:"model" mapstructure:"model"`
	Temperature  float64       `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens    int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Prompt       string        `yaml:"prompt" mapstructure:"prompt"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// IsEnabled reports the effective enabled flag (default true).
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ApplyDefaults fills unset fields with documented defaults.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}
