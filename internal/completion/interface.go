package completion

import "context"

// Client performs one blocking completion call. Implementations must respect
// ctx cancellation and classify failures via CallError so the dispatcher can
// decide whether to retry.
type Client interface {
	Complete(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}
