package whisper

import (
	"path/filepath"
	"strings"
)

// Defaults for the whisper engine configuration.
const (
	DefaultModelsDir   = "models"
	DefaultModel       = "small"
	DefaultLanguage    = "en"
	DefaultTask        = "transcribe"
	DefaultTemperature = 0.0
)

// Config holds configuration for the local whisper engine. All options
// are fixed for the engine's lifetime; changing them means constructing
// a new engine.
type Config struct {
	ModelsDir   string  `json:"models_dir" yaml:"models_dir" mapstructure:"models_dir"`
	Model       string  `json:"model" yaml:"model" mapstructure:"model"`
	Language    string  `json:"language" yaml:"language" mapstructure:"language"`
	Task        string  `json:"task" yaml:"task" mapstructure:"task"`
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	Threads     uint    `json:"threads,omitempty" yaml:"threads" mapstructure:"threads"`
}

// ApplyDefaults fills unset fields with documented defaults.
func (c *Config) ApplyDefaults() {
	if c.ModelsDir == "" {
		c.ModelsDir = DefaultModelsDir
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Task == "" {
		c.Task = DefaultTask
	}
}

// ModelPath resolves the ggml model file path. Short names like "small"
// resolve to "ggml-small.bin" under ModelsDir; explicit filenames are
// used as-is.
func (c Config) ModelPath() string {
	name := c.Model
	if !strings.HasSuffix(name, ".bin") {
		name = "ggml-" + name + ".bin"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.ModelsDir, name)
}

// Options exports the config as a generic option bag for the registry.
func (c Config) Options() map[string]any {
	return map[string]any{
		"models_dir":  c.ModelsDir,
		"model":       c.Model,
		"language":    c.Language,
		"task":        c.Task,
		"temperature": c.Temperature,
		"threads":     c.Threads,
	}
}

// ConfigFromOptions builds a Config from a generic option bag.
func ConfigFromOptions(opts map[string]any) Config {
	c := Config{}
	if v, ok := opts["models_dir"].(string); ok {
		c.ModelsDir = v
	}
	if v, ok := opts["model"].(string); ok {
		c.Model = v
	}
	if v, ok := opts["language"].(string); ok {
		c.Language = v
	}
	if v, ok := opts["task"].(string); ok {
		c.Task = v
	}
	switch v := opts["temperature"].(type) {
	case float64:
		c.Temperature = v
	case int:
		c.Temperature = float64(v)
	}
	switch v := opts["threads"].(type) {
	case uint:
		c.Threads = v
	case int:
		if v > 0 {
			c.Threads = uint(v)
		}
	}
	return c
}
