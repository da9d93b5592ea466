package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openaiBaseURL      = "https://api.openai.com"
	openaiDefaultModel = "gpt-4o-mini"
)

// OpenAIClient calls the OpenAI chat-completions API. It is used as the
// primary analytical pass for every tier.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAIClient creates an OpenAI client. Empty baseURL/model fall back to
// the public endpoint and default model; timeout bounds every request.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = openaiBaseURL
	}
	if model == "" {
		model = openaiDefaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (c *OpenAIClient) Name() string { return "openai" }

// Complete implements Provider via POST /v1/chat/completions.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return chatComplete(ctx, c.client, c.baseURL+"/v1/chat/completions", c.apiKey, chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
}

// chatComplete posts an OpenAI-style chat request and extracts the first
// choice. Both configured providers speak this wire shape.
func chatComplete(ctx context.Context, client *http.Client, endpoint, apiKey string, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var out chatResponse
		if json.Unmarshal(raw, &out) == nil && out.Error != nil {
			return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("malformed completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion response contains no choices")
	}
	return out.Choices[0].Message.Content, nil
}
