package job

import (
	"context"
	"errors"

	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/merger"
	"github.com/tantaind/videodigest/internal/transcript"
)

// ErrEmptyTranscript means acquisition succeeded but yielded no usable text.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Runner executes the full pipeline for one source: acquire transcript,
// chunk, process in parallel, merge.
type Runner interface {
	Run(ctx context.Context, ref transcript.SourceRef, jobCfg config.Job) (*merger.Document, error)
}
