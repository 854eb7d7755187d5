package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewOllamaProvider_Defaults(t *testing.T) {
	provider := NewOllamaProvider()

	if provider.baseURL != DefaultOllamaURL {
		t.Errorf("baseURL = %s, want %s", provider.baseURL, DefaultOllamaURL)
	}
	if provider.model != DefaultModel {
		t.Errorf("model = %s, want %s", provider.model, DefaultModel)
	}
	if provider.dimensions != DefaultDimensions {
		t.Errorf("dimensions = %d, want %d", provider.dimensions, DefaultDimensions)
	}
	if provider.client == nil {
		t.Error("client should not be nil")
	}
}

func TestNewOllamaProvider_WithOptions(t *testing.T) {
	customURL := "http://custom:8080"
	customModel := "custom-model"
	customDimensions := 768
	customTimeout := 60 * time.Second

	provider := NewOllamaProvider(
		WithBaseURL(customURL),
		WithModel(customModel),
		WithDimensions(customDimensions),
		WithTimeout(customTimeout),
	)

	if provider.baseURL != customURL {
		t.Errorf("baseURL = %s, want %s", provider.baseURL, customURL)
	}
	if provider.model != customModel {
		t.Errorf("model = %s, want %s", provider.model, customModel)
	}
	if provider.dimensions != customDimensions {
		t.Errorf("dimensions = %d, want %d", provider.dimensions, customDimensions)
	}
	if provider.client.Timeout != customTimeout {
		t.Errorf("timeout = %v, want %v", provider.client.Timeout, customTimeout)
	}
}

// fakeOllama serves the two Ollama endpoints the provider uses.
func fakeOllama(t *testing.T, models []string, embedding []float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case apiPathTags:
			resp := ollamaTagsResponse{}
			for _, m := range models {
				resp.Models = append(resp.Models, ollamaModel{Name: m})
			}
			json.NewEncoder(w).Encode(resp)
		case apiPathEmbeddings:
			json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: embedding})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestOllamaProvider_Check(t *testing.T) {
	tests := []struct {
		name    string
		models  []string
		wantErr bool
	}{
		{
			name:    "model present",
			models:  []string{"all-minilm:l6-v2", "llama3"},
			wantErr: false,
		},
		{
			name:    "model missing",
			models:  []string{"llama3"},
			wantErr: true,
		},
		{
			name:    "no models",
			models:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeOllama(t, tt.models, nil)
			defer srv.Close()

			provider := NewOllamaProvider(WithBaseURL(srv.URL))
			err := provider.Check(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOllamaProvider_Check_ServerDown(t *testing.T) {
	srv := fakeOllama(t, nil, nil)
	srv.Close() // connection refused from here on

	provider := NewOllamaProvider(WithBaseURL(srv.URL))
	if err := provider.Check(context.Background()); err == nil {
		t.Error("expected error when server is unreachable")
	}
}

func TestOllamaProvider_Embed(t *testing.T) {
	vec := make([]float32, DefaultDimensions)
	vec[0] = 0.5
	srv := fakeOllama(t, []string{DefaultModel}, vec)
	defer srv.Close()

	provider := NewOllamaProvider(WithBaseURL(srv.URL))
	emb, err := provider.Embed(context.Background(), "transformer architectures")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if emb.Dimensions() != DefaultDimensions {
		t.Errorf("Dimensions() = %d, want %d", emb.Dimensions(), DefaultDimensions)
	}
	if emb.Vector[0] != 0.5 {
		t.Errorf("Vector[0] = %f, want 0.5", emb.Vector[0])
	}
}

func TestOllamaProvider_Embed_DimensionMismatch(t *testing.T) {
	srv := fakeOllama(t, []string{DefaultModel}, []float32{1, 2, 3})
	defer srv.Close()

	provider := NewOllamaProvider(WithBaseURL(srv.URL))
	_, err := provider.Embed(context.Background(), "text")
	if err == nil {
		t.Error("expected error for wrong embedding dimensions")
	}
}

func TestFormatErrorBody(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple error message",
			input:    "error occurred",
			expected: "error occurred",
		},
		{
			name:     "empty body",
			input:    "",
			expected: "",
		},
		{
			name:     "json error",
			input:    `{"error": "not found"}`,
			expected: `{"error": "not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatErrorBody(strings.NewReader(tt.input))
			if result != tt.expected {
				t.Errorf("formatErrorBody() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestProviders_ImplementProvider(t *testing.T) {
	var _ Provider = (*OllamaProvider)(nil)
	var _ Provider = (*OpenAIProvider)(nil)
}
