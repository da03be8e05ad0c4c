// Package provider defines the generic provider contract and registry
// used to construct runtime-selectable backends by name.
package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's kind name (e.g. "whisper").
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from a generic option bag.
type Factory[T Provider] func(opts map[string]any) (T, error)

// Info describes a registered provider kind.
type Info struct {
	Name        string `json:"-"`
	Available   bool   `json:"available"`
	Description string `json:"description"`
}
