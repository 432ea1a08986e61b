package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tantaind/videodigest/internal/logger"
)

const systemMessage = "You are a helpful assistant specializing in video content analysis. " +
	"Always provide direct responses based on the given transcript without asking for more content."

// ProviderConfig is the fully resolved endpoint description. It is built once
// at startup; nothing consults environment or config during calls.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type openaiClient struct {
	hc     *http.Client
	url    string
	apiKey string
	model  string
	log    logger.Logger
}

// NewOpenAI creates a client for any OpenAI-compatible chat completions
// endpoint. The per-call timeout comes from the request context, so the
// http.Client carries none of its own.
func NewOpenAI(cfg ProviderConfig, log logger.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai client: missing API key")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai client: missing model")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &openaiClient{
		hc:     &http.Client{},
		url:    base + "/chat/completions",
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		log:    log,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openaiClient) Complete(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxOutputTokens,
	})
	if err != nil {
		return "", &CallError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &CallError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		// Network failures and timeouts are retried.
		return "", &CallError{Transient: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &CallError{
			Transient: transientStatus(resp.StatusCode),
			Status:    resp.StatusCode,
			Err:       fmt.Errorf("%s", strings.TrimSpace(string(msg))),
		}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &CallError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(out.Choices) == 0 {
		return "", &CallError{Status: resp.StatusCode, Err: errors.New("response has no choices")}
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
