package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/Rakk301/speech-to-text-app/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, "stt:\n  provider: whisper\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.STT.Provider != "whisper" {
		t.Errorf("expected provider whisper, got %q", cfg.STT.Provider)
	}
	if cfg.Whisper.Model != "small" {
		t.Errorf("expected default model small, got %q", cfg.Whisper.Model)
	}
	if cfg.Whisper.Language != "en" {
		t.Errorf("expected default language en, got %q", cfg.Whisper.Language)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434" {
		t.Errorf("expected default base_url, got %q", cfg.LLM.BaseURL)
	}
	if !cfg.LLM.IsEnabled() {
		t.Error("llm must default to enabled")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Log.Level)
	}
}

func TestLoadEmptySectionsDefault(t *testing.T) {
	path := writeConfig(t, "# empty config\n{}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.STT.Provider != "whisper" {
		t.Errorf("expected default provider whisper, got %q", cfg.STT.Provider)
	}
}

func TestLoadExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
whisper:
  model: base
  language: de
  task: translate
llm:
  enabled: false
  model: mistral
  max_tokens: 512
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Whisper.Model != "base" || cfg.Whisper.Language != "de" || cfg.Whisper.Task != "translate" {
		t.Errorf("explicit whisper values lost: %+v", cfg.Whisper)
	}
	if cfg.LLM.IsEnabled() {
		t.Error("explicit enabled:false must disable llm")
	}
	if cfg.LLM.Model != "mistral" || cfg.LLM.MaxTokens != 512 {
		t.Errorf("explicit llm values lost: %+v", cfg.LLM)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeConfigError {
		t.Errorf("expected CONFIG_ERROR, got %s", appErr.Code)
	}
}

func TestLoadUnparseableFileFails(t *testing.T) {
	path := writeConfig(t, "stt: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparseable config file")
	}
}
