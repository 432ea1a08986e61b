package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/tantaind/videodigest/internal/logger"
)

type geminiClient struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	log        logger.Logger
}

// NewGemini creates a Gemini-backed client that rotates through the supplied
// API keys when one hits its quota. A single key is the common case; rotation
// then degrades to plain retry classification.
func NewGemini(apiKeys []string, model string, log logger.Logger) (Client, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("gemini client: no API keys")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiClient{apiKeys: apiKeys, model: model, log: log}, nil
}

func (g *geminiClient) Complete(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIdx := g.pickKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			MaxOutputTokens: int32(maxOutputTokens),
		})
		if err != nil {
			if isQuotaError(err) {
				g.log.Warn(ctx, "gemini key %d rate limited, rotating", keyIdx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", &CallError{
				Transient: isRetryableGeminiError(err),
				Err:       fmt.Errorf("generate content: %w", err),
			}
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return strings.TrimSpace(text.String()), nil
		}

		return "", &CallError{Err: errors.New("empty response from gemini")}
	}

	// Every key is exhausted; the condition is a rate limit, so retryable.
	return "", &CallError{Transient: true, Err: fmt.Errorf("all %d API keys exhausted: %w", attempts, lastErr)}
}

func (g *geminiClient) pickKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *geminiClient) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// isRetryableGeminiError matches the conditions transientStatus covers for
// the HTTP client: per-call timeouts and server-side failures. The genai SDK
// surfaces gRPC-style status names in the error text.
func isRetryableGeminiError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"500", "502", "503", "504", "UNAVAILABLE", "INTERNAL", "DEADLINE_EXCEEDED"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
