// Package session holds the server's single mutable state: the active
// transcription engine and the active refinement processor.
//
// Reads go through an atomic pointer so request handlers always observe
// a fully constructed engine. Swaps (explicit switch, per-request
// override, or model reload) are serialized by a mutex and published
// with a single atomic store. A failed construction never replaces the
// active engine. Replaced engines are not closed: in-flight
// transcriptions finish against the reference they captured at call
// start.
package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Rakk301/speech-to-text-app/internal/config"
	apperrors "github.com/Rakk301/speech-to-text-app/internal/errors"
	"github.com/Rakk301/speech-to-text-app/internal/llm"
	"github.com/Rakk301/speech-to-text-app/internal/logger"
	"github.com/Rakk301/speech-to-text-app/internal/provider"
	"github.com/Rakk301/speech-to-text-app/internal/transcription"
	"github.com/Rakk301/speech-to-text-app/internal/transcription/whisper"
)

// entry wraps the active engine for atomic replacement.
type entry struct {
	engine transcription.Provider
}

// Session is the server's shared state across all requests.
type Session struct {
	registry *provider.Registry[transcription.Provider]
	cfg      *config.Config
	log      *logger.Logger

	engine  atomic.Pointer[entry]
	refiner atomic.Pointer[llm.Processor]
	mu      sync.Mutex // serializes swaps and config mutation
}

// New constructs the initial session state from configuration: the
// declared provider is built eagerly, and the refiner is created from
// the llm section. Construction failure aborts startup.
func New(cfg *config.Config, registry *provider.Registry[transcription.Provider], log *logger.Logger) (*Session, error) {
	s := &Session{
		registry: registry,
		cfg:      cfg,
		log:      log.WithComponent("session"),
	}

	name := cfg.STT.Provider
	if name == "" {
		name = whisper.ProviderName
	}

	s.log.Info("Initializing STT provider", map[string]interface{}{
		"provider": name,
	})
	engine, err := registry.Create(name, s.providerOptions(name))
	if err != nil {
		return nil, err
	}
	s.engine.Store(&entry{engine: engine})

	s.refiner.Store(llm.New(cfg.LLM, log))

	s.log.Info("All models loaded")
	return s, nil
}

// providerOptions returns the configuration section for a provider kind.
// Unknown kinds get an empty option bag.
func (s *Session) providerOptions(name string) map[string]any {
	if name == whisper.ProviderName {
		return s.cfg.Whisper.Options()
	}
	return map[string]any{}
}

// Engine returns the currently active engine. Never nil after New
// succeeds.
func (s *Session) Engine() transcription.Provider {
	return s.engine.Load().engine
}

// CurrentProvider returns the kind name the active engine reports.
func (s *Session) CurrentProvider() string {
	return s.Engine().Name()
}

// Providers lists registered provider kinds.
func (s *Session) Providers() []provider.Info {
	return s.registry.List()
}

// Switch replaces the active engine with a newly constructed one of the
// given kind. On construction failure the previous engine stays active.
func (s *Session) Switch(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := s.registry.Create(name, s.providerOptions(name))
	if err != nil {
		return err
	}
	s.engine.Store(&entry{engine: engine})
	s.log.Info("Switched provider", map[string]interface{}{
		"provider": name,
	})
	return nil
}

// Overrides carries optional whisper option overrides for Reload. Nil
// fields keep the current value.
type Overrides struct {
	Model       *string
	Language    *string
	Task        *string
	Temperature *float64
}

// Reload merges the overrides onto the current whisper configuration,
// reconstructs the engine, and replaces the active one. The merged
// configuration is written back so a subsequent Reload without overrides
// is idempotent. On failure the previous engine and configuration stay
// in place.
func (s *Session) Reload(ov Overrides) (whisper.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.cfg.Whisper
	if ov.Model != nil {
		merged.Model = *ov.Model
	}
	if ov.Language != nil {
		merged.Language = *ov.Language
	}
	if ov.Task != nil {
		merged.Task = *ov.Task
	}
	if ov.Temperature != nil {
		merged.Temperature = *ov.Temperature
	}
	merged.ApplyDefaults()

	s.log.Info("Reloading whisper model", map[string]interface{}{
		"model":       merged.Model,
		"language":    merged.Language,
		"task":        merged.Task,
		"temperature": merged.Temperature,
	})

	engine, err := s.registry.Create(whisper.ProviderName, merged.Options())
	if err != nil {
		return whisper.Config{}, err
	}

	s.engine.Store(&entry{engine: engine})
	s.cfg.Whisper = merged
	s.log.Info("Whisper model reloaded")
	return merged, nil
}

// Transcribe runs the transcription pipeline: optional provider swap,
// engine transcription against the captured reference, then the
// fail-open refinement step. It returns the final text and the name of
// the provider that produced it.
func (s *Session) Transcribe(ctx context.Context, audioPath, providerOverride string) (string, string, error) {
	if providerOverride != "" && providerOverride != s.CurrentProvider() {
		s.log.Info("Switching to provider", map[string]interface{}{
			"provider": providerOverride,
		})
		if err := s.Switch(providerOverride); err != nil {
			return "", "", err
		}
	}

	// Capture the active engine once; a concurrent swap must not change
	// the engine used for this call.
	engine := s.Engine()

	result, err := engine.Transcribe(ctx, transcription.Request{AudioPath: audioPath})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			err = apperrors.EngineFailure(err)
		}
		return "", "", err
	}

	text := result.Text
	if refiner := s.refiner.Load(); refiner != nil {
		text = refiner.Process(ctx, text)
	}

	return text, engine.Name(), nil
}

// Close releases the currently active engine.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.Engine().(transcription.Closeable); ok {
		return c.Close()
	}
	return nil
}
