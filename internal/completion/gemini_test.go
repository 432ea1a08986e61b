package completion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tantaind/videodigest/internal/logger"
)

func TestNewGeminiValidation(t *testing.T) {
	if _, err := NewGemini(nil, "gemini-2.5-flash", logger.New("error")); err == nil {
		t.Error("NewGemini() error = nil, want non-nil for empty key list")
	}
	if _, err := NewGemini([]string{"k1", "k2"}, "", logger.New("error")); err != nil {
		t.Errorf("NewGemini() error = %v, want nil with keys and default model", err)
	}
}

func TestGeminiErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantTransient bool
	}{
		{
			name:          "per-call deadline exceeded",
			err:           fmt.Errorf("rpc failed: %w", context.DeadlineExceeded),
			wantTransient: true,
		},
		{
			name:          "server unavailable",
			err:           errors.New("Error 503, Message: The model is overloaded, Status: UNAVAILABLE"),
			wantTransient: true,
		},
		{
			name:          "internal server error",
			err:           errors.New("Error 500, Status: INTERNAL"),
			wantTransient: true,
		},
		{
			name:          "invalid argument",
			err:           errors.New("Error 400, Message: bad request, Status: INVALID_ARGUMENT"),
			wantTransient: false,
		},
		{
			name:          "permission denied",
			err:           errors.New("Error 403, Status: PERMISSION_DENIED"),
			wantTransient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableGeminiError(tt.err); got != tt.wantTransient {
				t.Errorf("isRetryableGeminiError() = %v, want %v", got, tt.wantTransient)
			}

			// The wrapped CallError must carry the same classification
			// through to the dispatcher's retry decision.
			callErr := &CallError{
				Transient: isRetryableGeminiError(tt.err),
				Err:       fmt.Errorf("generate content: %w", tt.err),
			}
			if got := IsTransient(callErr); got != tt.wantTransient {
				t.Errorf("IsTransient() = %v, want %v", got, tt.wantTransient)
			}
		})
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("Error 429, Status: RESOURCE_EXHAUSTED"), true},
		{errors.New("quota exceeded for this project"), true},
		{errors.New("Error 401, Status: UNAUTHENTICATED"), false},
	}
	for _, tt := range tests {
		if got := isQuotaError(tt.err); got != tt.want {
			t.Errorf("isQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
