// Package stylist proxies outfit suggestion requests to an
// OpenAI-compatible chat completion API.
package stylist

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

const (
	defaultTimeout = 60 * time.Second

	completionsPath = "/v1/chat/completions"
)

// Client calls a chat completion endpoint to generate outfit
// suggestions. A client with an empty API key is disabled; callers
// should check Enabled before use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *slog.Logger
}

// NewClient creates a stylist client. baseURL is injectable so tests
// can point at a local server.
func NewClient(baseURL, apiKey, model string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
	}
}

// Enabled reports whether an API key was configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Complete sends a chat completion request and returns the assistant
// message content.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.Enabled() {
		return "", errors.Upstream("stylist is not configured")
	}

	reqBody := completionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("stylist request", "model", c.model)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Upstream("stylist service unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", errors.RateLimited("stylist service rate limit exceeded")
	case resp.StatusCode == http.StatusUnauthorized:
		return "", errors.Upstream("stylist API key rejected")
	default:
		return "", errors.Upstream(fmt.Sprintf("stylist service returned status %d", resp.StatusCode))
	}

	var completion completionResponse
	if err := json.UnmarshalRead(resp.Body, &completion); err != nil {
		return "", errors.Upstream("failed to parse stylist response").WithCause(err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.Upstream("stylist returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// Wire types for the chat completion API.

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
