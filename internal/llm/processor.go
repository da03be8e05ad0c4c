// Package llm implements the optional transcription refinement step
// backed by Ollama's generate API.
//
// Process is total: refinement failures of any kind degrade to returning
// the input text unchanged. A transcription must never be lost because
// the refinement tier is down.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Rakk301/speech-to-text-app/internal/logger"
)

// defaultPrompt asks for a cleanup pass that preserves meaning. The
// {text} placeholder is substituted with the raw transcription.
const defaultPrompt = `Please clean up and improve the following transcription.
Fix grammar, punctuation, and formatting while preserving the original meaning.
Make it more readable and professional.

Transcription: {text}

Improved text:`

// textPlaceholder is the single substitution point in prompt templates.
const textPlaceholder = "{text}"

// Processor rewrites raw transcription text via a local Ollama server.
type Processor struct {
	cfg    Config
	client *http.Client
	log    *logger.Logger
}

// New creates a refinement processor. The configuration is fixed for the
// processor's lifetime; changed configuration means a new processor.
func New(cfg Config, log *logger.Logger) *Processor {
	cfg.ApplyDefaults()
	return &Processor{
		cfg:    cfg,
		client: &http.Client{},
		log:    log.WithComponent("llm"),
	}
}

// Name returns the backend name.
func (p *Processor) Name() string { return "ollama" }

// IsAvailable checks if the Ollama server is reachable.
func (p *Processor) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/api/tags", http.NoBody)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Process rewrites text for grammar and punctuation. It never returns an
// error: if refinement is disabled or fails at any step, the input is
// returned unchanged.
func (p *Processor) Process(ctx context.Context, text string) string {
	if !p.cfg.IsEnabled() {
		p.log.Debug("Refinement disabled, returning original text")
		return text
	}

	if !p.IsAvailable(ctx) {
		p.log.Warn("Ollama not available, returning original text", map[string]interface{}{
			"base_url": p.cfg.BaseURL,
		})
		return text
	}

	processed, err := p.generate(ctx, p.renderPrompt(text))
	if err != nil {
		p.log.Warn("Refinement failed, returning original text", map[string]interface{}{
			"error": err.Error(),
		})
		return text
	}
	if processed == "" {
		p.log.Warn("LLM returned empty response, returning original text")
		return text
	}

	p.log.Info("Refinement completed", map[string]interface{}{
		"chars": len(processed),
	})
	return processed
}

// renderPrompt substitutes the text placeholder in the configured
// template, falling back to the default cleanup prompt.
func (p *Processor) renderPrompt(text string) string {
	template := p.cfg.Prompt
	if template == "" {
		template = defaultPrompt
	}
	return strings.ReplaceAll(template, textPlaceholder, text)
}

// --- internal Ollama API types ---

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// generate issues a single non-streaming generation call with a bounded
// timeout and returns the trimmed output.
func (p *Processor) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  p.cfg.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: p.cfg.Temperature,
			NumPredict:  p.cfg.MaxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{status: resp.StatusCode}
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Response), nil
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama API error: status %d", e.status)
}
