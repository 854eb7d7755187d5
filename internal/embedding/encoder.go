package embedding

import "context"

// Encoder wraps a Provider behind a capability flag determined once at
// construction. When the provider cannot be probed successfully, every
// Encode call returns nil and the semantic subsystem degrades to inert
// instead of erroring: keyword search stays usable without embeddings.
type Encoder struct {
	provider  Provider
	available bool
}

// NewEncoder probes the provider exactly once and records the result.
// A nil provider or a failed probe yields an unavailable encoder.
func NewEncoder(ctx context.Context, provider Provider) *Encoder {
	e := &Encoder{provider: provider}
	if provider == nil {
		return e
	}
	if err := provider.Check(ctx); err != nil {
		return e
	}
	e.available = true
	return e
}

// Available reports whether a working embedding model was found.
func (e *Encoder) Available() bool {
	return e.available
}

// Encode maps text to a dense vector. Empty input maps to a nil vector,
// and provider failures downgrade to nil rather than propagating.
func (e *Encoder) Encode(ctx context.Context, text string) []float32 {
	if !e.available || text == "" {
		return nil
	}
	emb, err := e.provider.Embed(ctx, text)
	if err != nil {
		return nil
	}
	return emb.Vector
}

// ModelName returns the underlying model name, or "" when unavailable.
func (e *Encoder) ModelName() string {
	if !e.available {
		return ""
	}
	return e.provider.ModelName()
}

// Dimensions returns the provider's output dimensionality, or 0 when
// unavailable.
func (e *Encoder) Dimensions() int {
	if !e.available {
		return 0
	}
	return e.provider.Dimensions()
}
