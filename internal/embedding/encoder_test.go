package embedding

import (
	"context"
	"errors"
	"testing"
)

// stubProvider is a deterministic Provider for encoder tests.
type stubProvider struct {
	vectors    map[string][]float32
	checkErr   error
	embedErr   error
	checkCalls int
}

func (s *stubProvider) Embed(ctx context.Context, text string) (Embedding, error) {
	if s.embedErr != nil {
		return Embedding{}, s.embedErr
	}
	if v, ok := s.vectors[text]; ok {
		return Embedding{Vector: v}, nil
	}
	return Embedding{Vector: []float32{0, 0, 0}}, nil
}

func (s *stubProvider) Check(ctx context.Context) error {
	s.checkCalls++
	return s.checkErr
}

func (s *stubProvider) ModelName() string { return "stub-model" }
func (s *stubProvider) Dimensions() int   { return 3 }

func TestNewEncoder_ProbesOnce(t *testing.T) {
	provider := &stubProvider{}
	enc := NewEncoder(context.Background(), provider)

	if !enc.Available() {
		t.Error("encoder should be available with a healthy provider")
	}
	if provider.checkCalls != 1 {
		t.Errorf("Check called %d times, want 1", provider.checkCalls)
	}

	// Further encoder calls never re-probe.
	enc.Encode(context.Background(), "text")
	enc.Encode(context.Background(), "more text")
	if provider.checkCalls != 1 {
		t.Errorf("Check called %d times after encoding, want 1", provider.checkCalls)
	}
}

func TestNewEncoder_Unavailable(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{
			name:     "nil provider",
			provider: nil,
		},
		{
			name:     "failed probe",
			provider: &stubProvider{checkErr: errors.New("model not loaded")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder(context.Background(), tt.provider)

			if enc.Available() {
				t.Error("encoder should not be available")
			}
			if v := enc.Encode(context.Background(), "some text"); v != nil {
				t.Errorf("Encode() = %v, want nil", v)
			}
			if enc.ModelName() != "" {
				t.Errorf("ModelName() = %q, want empty", enc.ModelName())
			}
			if enc.Dimensions() != 0 {
				t.Errorf("Dimensions() = %d, want 0", enc.Dimensions())
			}
		})
	}
}

func TestEncoder_Encode(t *testing.T) {
	provider := &stubProvider{
		vectors: map[string][]float32{
			"hello": {1, 0, 0},
		},
	}
	enc := NewEncoder(context.Background(), provider)

	t.Run("known text", func(t *testing.T) {
		got := enc.Encode(context.Background(), "hello")
		if len(got) != 3 || got[0] != 1 {
			t.Errorf("Encode() = %v, want [1 0 0]", got)
		}
	})

	t.Run("empty input maps to nil", func(t *testing.T) {
		if got := enc.Encode(context.Background(), ""); got != nil {
			t.Errorf("Encode(\"\") = %v, want nil", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := enc.Encode(context.Background(), "hello")
		b := enc.Encode(context.Background(), "hello")
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("Encode not deterministic: %v vs %v", a, b)
			}
		}
	})
}

func TestEncoder_Encode_ProviderError(t *testing.T) {
	provider := &stubProvider{embedErr: errors.New("backend gone")}
	enc := NewEncoder(context.Background(), provider)

	if got := enc.Encode(context.Background(), "text"); got != nil {
		t.Errorf("Encode() = %v, want nil on provider error", got)
	}
}
