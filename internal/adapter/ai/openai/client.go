// Package openai implements the optional domain.Suggester port against an
// OpenAI-compatible chat-completions endpoint. The core analysis never
// depends on it; when unconfigured the enhancement path is simply disabled.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

const (
	systemPrompt = "You are an expert hiring manager."
	// promptTextLimit caps how much resume text is sent to the provider.
	promptTextLimit = 3000
	temperature     = 0.2
	maxTokens       = 600
)

// Client calls a chat-completions API with retry on transient failures.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	maxElapsed time.Duration
}

// New constructs a Client. baseURL is the API root (e.g.
// "https://api.openai.com/v1"); model is the chat model name.
func New(apiKey, baseURL, model string, timeout, maxElapsed time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		maxElapsed: maxElapsed,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
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
	} `json:"error"`
}

// Suggest asks the provider for improvement suggestions for the resume in the
// given target domain.
func (c *Client) Suggest(ctx domain.Context, resumeText, jobDomain string) (string, error) {
	if len(resumeText) > promptTextLimit {
		resumeText = resumeText[:promptTextLimit]
	}
	prompt := fmt.Sprintf("Act as a pro hiring manager. Resume text: '''%s''' Domain: %s. "+
		"Provide concise, actionable improvement suggestions organized by area: "+
		"skill highlighting, experience description, projects, overall structure.", resumeText, jobDomain)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("op=openai.Suggest: %w", err)
	}

	var out string
	op := func() error {
		out, err = c.doOnce(ctx, body)
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("op=openai.Suggest: %w", err)
	}
	return out, nil
}

func (c *Client) doOnce(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err // network errors are retryable
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("provider status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", backoff.Permanent(fmt.Errorf("provider status %d: %s", resp.StatusCode, truncate(data, 200)))
	}
	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if cr.Error != nil {
		return "", backoff.Permanent(fmt.Errorf("provider error: %s", cr.Error.Message))
	}
	if len(cr.Choices) == 0 {
		return "", backoff.Permanent(fmt.Errorf("empty choices"))
	}
	return cr.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
