package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Default settings for the OpenAI embedding backend.
const (
	DefaultOpenAIModel      = "text-embedding-3-small"
	DefaultOpenAIDimensions = 1536
)

// openAIModelDimensions maps known embedding models to their output size.
var openAIModelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIProvider generates embeddings using the OpenAI API.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

// NewOpenAIProvider creates an OpenAI embedding provider.
// An empty baseURL uses the default OpenAI endpoint.
func NewOpenAIProvider(apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	dims, ok := openAIModelDimensions[model]
	if !ok {
		dims = DefaultOpenAIDimensions
	}

	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		dimensions: dims,
	}, nil
}

// Check verifies the provider is usable. The API key was validated at
// construction; a network round-trip is deferred to the first Embed call.
func (p *OpenAIProvider) Check(ctx context.Context) error {
	if p.client == nil {
		return errors.New("openai client not initialized")
	}
	return nil
}

// Embed generates an embedding for the given text.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) (Embedding, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return Embedding{}, fmt.Errorf("creating embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return Embedding{}, errors.New("empty embedding response")
	}

	return Embedding{Vector: resp.Data[0].Embedding}, nil
}

// ModelName returns the name of the embedding model.
func (p *OpenAIProvider) ModelName() string {
	return p.model
}

// Dimensions returns the expected vector dimensions.
func (p *OpenAIProvider) Dimensions() int {
	return p.dimensions
}
