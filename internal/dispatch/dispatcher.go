package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tantaind/videodigest/internal/chunker"
	"github.com/tantaind/videodigest/internal/completion"
	"github.com/tantaind/videodigest/internal/prompts"
)

// Process runs the bounded worker pool. One producer feeds the queue, up to
// MaxParallelCalls workers each make one blocking call at a time, and every
// worker writes only its own chunk's slot in the result slice, so results can
// never be attributed to the wrong chunk.
//
// The first chunk that fails terminally closes the intake: chunks not yet
// dispatched are marked aborted without spending a network call, while
// in-flight requests finish naturally.
func (d *implDispatcher) Process(ctx context.Context, chunks []chunker.Chunk, style prompts.Style, opts Options) ([]Result, error) {
	if opts.MaxParallelCalls <= 0 || opts.MaxAttempts <= 0 {
		return nil, fmt.Errorf("dispatch: invalid options: parallel=%d attempts=%d", opts.MaxParallelCalls, opts.MaxAttempts)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = time.Minute
	}

	results := make([]Result, len(chunks))
	for i, c := range chunks {
		results[i] = Result{Index: c.Index, StartOffset: c.StartOffset, HasOffset: c.HasOffset, Err: errAborted}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerMinute)/60, 1)
	}

	in := make(chan chunker.Chunk)
	stop := make(chan struct{})
	var stopOnce sync.Once
	halt := func() { stopOnce.Do(func() { close(stop) }) }

	workers := opts.MaxParallelCalls
	if workers > len(chunks) {
		workers = len(chunks)
	}

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				case <-ctx.Done():
					return
				case c, ok := <-in:
					if !ok {
						return
					}
					// A chunk may slip through the select after halt; do not
					// spend a call on it.
					select {
					case <-stop:
						return
					default:
					}
					res := d.processChunk(ctx, c, style, opts, limiter)
					results[c.Index] = res
					if res.Failed() {
						halt()
					}
				}
			}
		}()
	}

	go func() {
		defer close(in)
		for _, c := range chunks {
			select {
			case in <- c:
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	var failed []int
	terminal := false
	for _, r := range results {
		if !r.Failed() {
			continue
		}
		failed = append(failed, r.Index)
		if !errors.Is(r.Err, errAborted) && !errors.Is(r.Err, context.Canceled) && !errors.Is(r.Err, context.DeadlineExceeded) {
			terminal = true
		}
	}
	if len(failed) > 0 {
		// Cancellation with no chunk of its own to blame is the caller's
		// doing, not a processing failure.
		if err := ctx.Err(); err != nil && !terminal {
			return results, err
		}
		sort.Ints(failed)
		return results, &PartialProcessingError{FailedIndices: failed}
	}
	return results, nil
}

// processChunk performs up to MaxAttempts calls for one chunk with
// exponential backoff between attempts. Only transient failures are retried.
func (d *implDispatcher) processChunk(ctx context.Context, c chunker.Chunk, style prompts.Style, opts Options, limiter *rate.Limiter) Result {
	res := Result{Index: c.Index, StartOffset: c.StartOffset, HasOffset: c.HasOffset}
	prompt := style.Render(c.Text)

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			backoff := d.backoff << uint(attempt-2)
			d.logger.Warn(ctx, "chunk %d attempt %d/%d failed: %v (retrying in %s)",
				c.Index, attempt-1, opts.MaxAttempts, lastErr, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				res.Err = ctx.Err()
				return res
			}
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				res.Err = err
				return res
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, opts.RequestTimeout)
		text, err := d.client.Complete(callCtx, prompt, opts.MaxOutputTokens)
		cancel()

		if err == nil {
			res.Text = strings.TrimSpace(text)
			return res
		}
		lastErr = err
		if !completion.IsTransient(err) {
			res.Err = err
			return res
		}
	}

	res.Err = fmt.Errorf("chunk %d failed after %d attempts: %w", c.Index, opts.MaxAttempts, lastErr)
	return res
}
