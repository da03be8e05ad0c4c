// Package config loads the service configuration from a YAML settings
// file, with optional .env overlay and documented defaults for every
// missing key.
package config

import (
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/Rakk301/speech-to-text-app/internal/errors"
	"github.com/Rakk301/speech-to-text-app/internal/llm"
	"github.com/Rakk301/speech-to-text-app/internal/logger"
	"github.com/Rakk301/speech-to-text-app/internal/transcription/whisper"
)

// Config is the root configuration for the service.
type Config struct {
	STT     STTConfig      `yaml:"stt" mapstructure:"stt"`
	Whisper whisper.Config `yaml:"whisper" mapstructure:"whisper"`
	LLM     llm.Config     `yaml:"llm" mapstructure:"llm"`
	Log     logger.Config  `yaml:"log" mapstructure:"log"`
}

// STTConfig selects the active transcription provider.
type STTConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// Default returns a configuration populated with the documented defaults.
func Default() Config {
	return Config{
		STT: STTConfig{Provider: whisper.ProviderName},
		Whisper: whisper.Config{
			ModelsDir:   whisper.DefaultModelsDir,
			Model:       whisper.DefaultModel,
			Language:    whisper.DefaultLanguage,
			Task:        whisper.DefaultTask,
			Temperature: whisper.DefaultTemperature,
		},
		LLM: llm.Config{
			BaseURL:      llm.DefaultBaseURL,
			Model:        llm.DefaultModel,
			Temperature:  llm.DefaultTemperature,
			MaxTokens:    llm.DefaultMaxTokens,
			ProbeTimeout: llm.DefaultProbeTimeout,
			Timeout:      llm.DefaultTimeout,
		},
		Log: logger.Config{Level: "info", Format: "console"},
	}
}

// Load reads the settings file at path. A missing or unparseable file is
// an error: the service refuses to start on broken configuration.
// Missing sections and keys fall back to defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.ConfigError("Config file not found: "+path, err)
	}

	// Optional .env overlay for environment variable overrides.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("STT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.ConfigError("Failed to load configuration", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.ConfigError("Failed to parse configuration", err)
	}

	// Fill unset fields from defaults.
	if err := mergo.Merge(cfg, Default()); err != nil {
		return nil, apperrors.ConfigError("Failed to apply configuration defaults", err)
	}

	if err := cfg.Log.Validate(); err != nil {
		return nil, apperrors.ConfigError(err.Error(), err)
	}

	return cfg, nil
}
