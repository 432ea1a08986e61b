package job

import (
	"context"
	"fmt"

	"github.com/tantaind/videodigest/internal/chunker"
	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/dispatch"
	"github.com/tantaind/videodigest/internal/merger"
	"github.com/tantaind/videodigest/internal/transcript"
)

func (r *implRunner) Run(ctx context.Context, ref transcript.SourceRef, jobCfg config.Job) (*merger.Document, error) {
	if err := jobCfg.Validate(); err != nil {
		return nil, err
	}
	style, err := r.prompts.Get(jobCfg.Style)
	if err != nil {
		return nil, err
	}

	tr, err := r.resolver.Resolve(ctx, ref, jobCfg)
	if err != nil {
		return nil, fmt.Errorf("acquire transcript: %w", err)
	}
	if tr.Empty() {
		return nil, ErrEmptyTranscript
	}

	chunks := chunker.Split(tr, jobCfg.ChunkSizeChars)
	if len(chunks) == 0 {
		return nil, ErrEmptyTranscript
	}
	r.log.Info(ctx, "processing %d chunks from %s (style=%s, parallel=%d)",
		len(chunks), ref.Locator, jobCfg.Style, jobCfg.MaxParallelCalls)

	results, err := r.dispatcher.Process(ctx, chunks, style, dispatch.Options{
		MaxParallelCalls:  jobCfg.MaxParallelCalls,
		MaxOutputTokens:   jobCfg.MaxOutputTokens,
		MaxAttempts:       jobCfg.MaxAttempts,
		RequestTimeout:    jobCfg.RequestTimeout,
		RequestsPerMinute: jobCfg.RequestsPerMinute,
	})
	if err != nil {
		return nil, err
	}

	return merger.Merge(results, merger.Options{
		Style:         jobCfg.Style,
		TitleLine:     style.TitleLine,
		Source:        ref,
		HasTimestamps: tr.HasTimestamps,
	})
}
