// Package whisper implements the transcription provider backed by a
// local whisper.cpp model loaded in memory.
package whisper

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	apperrors "github.com/Rakk301/speech-to-text-app/internal/errors"
	"github.com/Rakk301/speech-to-text-app/internal/logger"
	"github.com/Rakk301/speech-to-text-app/internal/provider"
	"github.com/Rakk301/speech-to-text-app/internal/transcription"
)

// ProviderName is the registered name for the whisper provider.
const ProviderName = "whisper"

// Engine implements transcription.Provider using whisper.cpp. The model
// artifact is loaded once at construction and is safe for concurrent
// inference: each Transcribe call runs in its own whisper context.
type Engine struct {
	cfg   Config
	model whisper.Model
	log   *logger.Logger
}

// New loads the configured ggml model and returns a ready engine.
// Loading is the expensive step; construction fails if the model file
// is missing or cannot be loaded.
func New(cfg Config, log *logger.Logger) (*Engine, error) {
	cfg.ApplyDefaults()

	modelPath := cfg.ModelPath()
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("whisper model not found: %s", modelPath)
	}

	log = log.WithComponent("whisper")
	log.Info("Loading whisper model", map[string]interface{}{
		"model": cfg.Model,
		"path":  modelPath,
	})

	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model: %w", err)
	}

	log.Info("Whisper model loaded", map[string]interface{}{
		"multilingual": model.IsMultilingual(),
	})

	return &Engine{cfg: cfg, model: model, log: log}, nil
}

// Factory returns a provider.Factory that creates whisper engines from
// a generic option bag.
func Factory(log *logger.Logger) provider.Factory[transcription.Provider] {
	return func(opts map[string]any) (transcription.Provider, error) {
		return New(ConfigFromOptions(opts), log)
	}
}

// Name returns the provider name.
func (e *Engine) Name() string { return ProviderName }

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// IsAvailable reports whether the model artifact is loaded.
func (e *Engine) IsAvailable(ctx context.Context) bool {
	return e.model != nil
}

// Transcribe converts an audio file to text.
func (e *Engine) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, apperrors.NotFound("Audio file", req.AudioPath)
	}

	e.log.Info("Transcribing audio", map[string]interface{}{
		"path": req.AudioPath,
	})

	samples, err := decodeSamples(req.AudioPath)
	if err != nil {
		return nil, apperrors.EngineFailure(fmt.Errorf("convert audio: %w", err))
	}

	wctx, err := e.model.NewContext()
	if err != nil {
		return nil, apperrors.EngineFailure(fmt.Errorf("create whisper context: %w", err))
	}

	if e.cfg.Language != "" {
		if err := wctx.SetLanguage(e.cfg.Language); err != nil {
			e.log.Warn("Failed to set language", map[string]interface{}{
				"language": e.cfg.Language,
				"error":    err.Error(),
			})
		}
	}
	wctx.SetTranslate(e.cfg.Task == "translate")
	wctx.SetTemperature(float32(e.cfg.Temperature))
	if e.cfg.Threads > 0 {
		wctx.SetThreads(e.cfg.Threads)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, apperrors.EngineFailure(fmt.Errorf("whisper process: %w", err))
	}

	var text strings.Builder
	var segments []transcription.Segment
	for {
		segment, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.EngineFailure(fmt.Errorf("read segment: %w", err))
		}
		text.WriteString(segment.Text)
		segments = append(segments, transcription.Segment{
			Start: segment.Start.Seconds(),
			End:   segment.End.Seconds(),
			Text:  segment.Text,
		})
	}

	result := &transcription.Result{
		Text:     strings.TrimSpace(text.String()),
		Segments: segments,
		Duration: float64(len(samples)) / float64(targetSampleRate),
		Language: e.cfg.Language,
	}

	e.log.Info("Transcription completed", map[string]interface{}{
		"chars":    len(result.Text),
		"segments": len(segments),
	})

	return result, nil
}

// Close releases the loaded model.
func (e *Engine) Close() error {
	if e.model == nil {
		return nil
	}
	e.log.Debug("Releasing whisper model")
	return e.model.Close()
}
