// Package llmclient talks to an OpenAI-compatible chat completion
// endpoint over raw net/http, the same way the teacher's OpenAIClient
// does (no vendor SDK). It adds the two behaviors the pipeline needs on
// top of a bare chat call: linear-backoff retry and prompt templating
// (spec §6).
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/shellmaster/sm/internal/redact"
)

// Client is the interface the pipeline depends on. Invoke fills tmpl
// with params, sends it to the model, and returns both the raw model
// text and the formatted prompt actually sent (useful for debug
// logging and tests).
type Client interface {
	Invoke(ctx context.Context, tmpl PromptTemplate, params map[string]string) (text string, formattedPrompt string, err error)
}

// retryDelays is the linear backoff schedule: 0.5s, 1.0s, 1.5s (spec §6).
var retryDelays = []time.Duration{
	500 * time.Millisecond,
	1000 * time.Millisecond,
	1500 * time.Millisecond,
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	Temperature float32         `json:"temperature"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Error   *openaiError   `json:"error,omitempty"`
}

type openaiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// OpenAIClient implements Client against any OpenAI-compatible chat
// completions endpoint (local vLLM/llama.cpp servers included, hence the
// configurable BaseURL).
type OpenAIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	model      string
}

// New builds an OpenAIClient pointed at baseURL (expected to already
// include the /v1 prefix) using apiKey and model. A token-bucket
// limiter paces calls at 2/s with a burst of 2, enough to avoid hammering
// a locally hosted model while never meaningfully throttling a single
// interactive CLI session.
func New(baseURL, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// Invoke fills tmpl with params and sends it as a single user message,
// retrying up to 3 attempts with linear backoff on transport or
// non-2xx-status failures (spec §6). The last error is returned verbatim
// on terminal failure so callers can downgrade gracefully.
func (c *OpenAIClient) Invoke(ctx context.Context, tmpl PromptTemplate, params map[string]string) (string, string, error) {
	prompt, err := tmpl.Render(params)
	if err != nil {
		return "", "", fmt.Errorf("llmclient: rendering template %s: %w", tmpl.Name, err)
	}

	var lastErr error
	attempts := 1 + len(retryDelays)
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelays[attempt-1]):
			case <-ctx.Done():
				return "", prompt, ctx.Err()
			}
		}

		text, err := c.chatOnce(ctx, prompt)
		if err == nil {
			return text, prompt, nil
		}
		lastErr = err
		slog.Warn("llmclient: attempt failed", "template", tmpl.Name, "attempt", attempt+1, "error", redact.String(err.Error()))
	}

	return "", prompt, fmt.Errorf("llmclient: %s exhausted retries: %w", tmpl.Name, lastErr)
}

func (c *OpenAIClient) chatOnce(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody, err := json.Marshal(openaiRequest{
		Model:       c.model,
		Messages:    []openaiMessage{{Role: "user", Content: prompt}},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, redact.String(string(body)))
	}

	var parsed openaiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error: %s: %s", parsed.Error.Type, redact.String(parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return parsed.Choices[0].Message.Content, nil
}
