// Package transcription defines the engine adapter interface and common
// types for speech-to-text backends.
//
// It follows the provider pattern: backends are constructed by name
// through a registry, and the active backend is replaceable at runtime.
package transcription

import (
	"context"

	"github.com/Rakk301/speech-to-text-app/internal/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe converts the referenced audio file to text.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// Closeable is optionally implemented by backends holding resources
// that need explicit release (e.g. a loaded model artifact).
type Closeable interface {
	Close() error
}

// NewRegistry creates a new provider registry for transcription backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
