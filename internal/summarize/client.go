// Package summarize calls an LLM to produce paper summaries, insights,
// tags, and extracted metadata.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	// DefaultModel is the chat model used for summarization.
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout bounds each completion request.
	DefaultTimeout = 120 * time.Second

	// requestsPerSecond is a conservative client-side rate limit.
	requestsPerSecond = 2

	// maxInputChars bounds the paper text included in a prompt.
	maxInputChars = 16000

	// maxAbstractChars bounds the abstract included in the tag prompt.
	maxAbstractChars = 1000

	// maxMetadataChars bounds first-page text in the metadata prompt.
	maxMetadataChars = 2000

	// maxTags caps how many suggested tags are kept.
	maxTags = 5
)

// jsonObject finds a JSON object embedded in a model response.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// Metadata is the bibliographic data extracted from a paper's first page.
type Metadata struct {
	Title       string `json:"title"`
	Authors     string `json:"authors"`
	Publication string `json:"publication"`
	Date        string `json:"date"`
	Abstract    string `json:"abstract"`
}

// Client is a rate-limited LLM client.
type Client struct {
	api     *openai.Client
	model   string
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// NewClient creates a summarization client. baseURL may be empty for the
// default OpenAI endpoint, or point at any compatible server.
func NewClient(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	c := &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// complete sends one prompt and returns the model's text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

// Summarize produces a structured Markdown summary of the paper text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, summaryPrompt(truncate(text, maxInputChars)))
}

// KeyInsights extracts the paper's novel contributions and implications.
func (c *Client) KeyInsights(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, insightsPrompt(truncate(text, maxInputChars)))
}

// SuggestTags proposes up to five short tags for a paper.
func (c *Client) SuggestTags(ctx context.Context, title, abstract string) ([]string, error) {
	resp, err := c.complete(ctx, tagsPrompt(title, truncate(abstract, maxAbstractChars)))
	if err != nil {
		return nil, err
	}
	return parseTags(resp), nil
}

// ExtractMetadata pulls bibliographic fields from first-page text.
func (c *Client) ExtractMetadata(ctx context.Context, firstPage string) (*Metadata, error) {
	resp, err := c.complete(ctx, metadataPrompt(truncate(firstPage, maxMetadataChars)))
	if err != nil {
		return nil, err
	}
	return parseMetadata(resp)
}

// parseTags turns a model response into a clean tag list: comma or
// newline separated, trimmed, lowercased, explanatory lines dropped.
func parseTags(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\n", ","), ",")

	var tags []string
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		tag = strings.Trim(tag, ".\"'")
		if tag == "" || len(tag) >= 50 || strings.Contains(tag, ":") || strings.HasPrefix(tag, "tag") {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

// parseMetadata extracts the JSON object from a model response. Models
// sometimes wrap JSON in prose or code fences; take the outermost object.
func parseMetadata(text string) (*Metadata, error) {
	match := jsonObject.FindString(text)
	if match == "" {
		return nil, errors.New("no JSON object in metadata response")
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(match), &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata JSON: %w", err)
	}
	return &meta, nil
}

// truncate bounds text to maxLen bytes.
func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen]
}
