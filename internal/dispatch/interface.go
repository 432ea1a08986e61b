package dispatch

import (
	"context"
	"time"

	"github.com/tantaind/videodigest/internal/chunker"
	"github.com/tantaind/videodigest/internal/prompts"
)

// Result is the outcome for exactly one chunk, matched by Index. The chunk's
// start offset is carried through so the merger can emit time markers.
type Result struct {
	Index       int
	Text        string
	Err         error // nil means Ok
	StartOffset float64
	HasOffset   bool
}

// Failed reports whether the chunk could not be processed.
func (r Result) Failed() bool { return r.Err != nil }

// Options bounds one dispatch run.
type Options struct {
	MaxParallelCalls  int
	MaxOutputTokens   int
	MaxAttempts       int // total attempts per chunk, >= 1
	RequestTimeout    time.Duration
	RequestsPerMinute int // 0 disables the rate gate
}

// Dispatcher fans chunks out to the completion endpoint under bounded
// concurrency and collects one Result per chunk. Execution order is
// unspecified; the returned slice is in chunk index order regardless.
type Dispatcher interface {
	Process(ctx context.Context, chunks []chunker.Chunk, style prompts.Style, opts Options) ([]Result, error)
}
