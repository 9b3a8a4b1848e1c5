// Package llm talks to a local Ollama server and extracts a suggestion from
// its free-text replies.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrUnavailable means the server could not be reached or answered with
	// a non-2xx status.
	ErrUnavailable = errors.New("llm service unavailable")
	// ErrBadResponse means the server answered 2xx but without a string
	// "response" field.
	ErrBadResponse = errors.New("llm response has no text")
)

// Client calls the Ollama /api/generate endpoint in non-streaming mode.
type Client struct {
	url   string
	model string
	http  *http.Client
}

// NewClient builds a Client. timeout bounds one whole generation; local
// models are slow, so minutes are normal.
func NewClient(url, model string, timeout time.Duration) *Client {
	return &Client{url: url, model: model, http: &http.Client{Timeout: timeout}}
}

// URL is the generate endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Model is the model name sent with every request.
func (c *Client) Model() string { return c.model }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Generate sends prompt and returns the model's reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	raw, ok := out["response"]
	if !ok {
		return "", ErrBadResponse
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", ErrBadResponse
	}
	return text, nil
}
