package whisper

import (
	"path/filepath"
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	c := Config{}
	c.ApplyDefaults()
	if c.Model != "small" {
		t.Errorf("expected default model 'small', got %q", c.Model)
	}
	if c.Language != "en" {
		t.Errorf("expected default language 'en', got %q", c.Language)
	}
	if c.Task != "transcribe" {
		t.Errorf("expected default task 'transcribe', got %q", c.Task)
	}
	if c.Temperature != 0.0 {
		t.Errorf("expected default temperature 0.0, got %f", c.Temperature)
	}
}

func TestConfigApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{Model: "base", Language: "de", Task: "translate", Temperature: 0.4}
	c.ApplyDefaults()
	if c.Model != "base" || c.Language != "de" || c.Task != "translate" || c.Temperature != 0.4 {
		t.Errorf("explicit values must be preserved, got %+v", c)
	}
}

func TestModelPathResolution(t *testing.T) {
	c := Config{ModelsDir: "models", Model: "small"}
	if got := c.ModelPath(); got != filepath.Join("models", "ggml-small.bin") {
		t.Errorf("short name resolution failed, got %q", got)
	}

	c = Config{ModelsDir: "models", Model: "ggml-tiny.en.bin"}
	if got := c.ModelPath(); got != filepath.Join("models", "ggml-tiny.en.bin") {
		t.Errorf("explicit filename resolution failed, got %q", got)
	}
}

func TestConfigOptionsRoundTrip(t *testing.T) {
	c := Config{ModelsDir: "m", Model: "base", Language: "fr", Task: "translate", Temperature: 0.2, Threads: 4}
	got := ConfigFromOptions(c.Options())
	if got != c {
		t.Errorf("expected %+v, got %+v", c, got)
	}
}

func TestConfigFromOptionsNumericCoercion(t *testing.T) {
	got := ConfigFromOptions(map[string]any{"temperature": 1, "threads": 2})
	if got.Temperature != 1.0 {
		t.Errorf("expected int temperature coerced to 1.0, got %f", got.Temperature)
	}
	if got.Threads != 2 {
		t.Errorf("expected int threads coerced to 2, got %d", got.Threads)
	}
}
