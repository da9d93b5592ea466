package llm

import (
	"context"
	"net/http"
	"time"
)

const (
	perplexityBaseURL      = "https://api.perplexity.ai"
	perplexityDefaultModel = "sonar"
)

// PerplexityClient calls the Perplexity chat-completions API. It supplies the
// supplementary data-enrichment pass for paid tiers; its API is wire
// compatible with the OpenAI chat shape.
type PerplexityClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewPerplexityClient creates a Perplexity client with the given credentials.
func NewPerplexityClient(apiKey, baseURL, model string, timeout time.Duration) *PerplexityClient {
	if baseURL == "" {
		baseURL = perplexityBaseURL
	}
	if model == "" {
		model = perplexityDefaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PerplexityClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (c *PerplexityClient) Name() string { return "perplexity" }

// Complete implements Provider via POST /chat/completions.
func (c *PerplexityClient) Complete(ctx context.Context, prompt string) (string, error) {
	return chatComplete(ctx, c.client, c.baseURL+"/chat/completions", c.apiKey, chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
}
