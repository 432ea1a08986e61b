package config

import (
	"errors"
	"fmt"
	"time"
)

// TranscriptionMode selects how downloaded audio is turned into text.
type TranscriptionMode string

const (
	ModeCloudRemote   TranscriptionMode = "cloud"
	ModeLocalOnDevice TranscriptionMode = "local"
)

var (
	ErrInvalidChunkSize   = errors.New("chunk size must be positive")
	ErrInvalidParallelism = errors.New("parallelism must be positive")
)

// Job carries everything the core needs for one run. It is read-only to the
// core; the CLI resolves it from Config plus flags before calling the runner.
type Job struct {
	Style             string
	ChunkSizeChars    int
	MaxParallelCalls  int
	MaxOutputTokens   int
	MaxAttempts       int
	RequestTimeout    time.Duration
	RequestsPerMinute int
	ForceDownload     bool
	TranscriptionMode TranscriptionMode
}

// Validate rejects bad parameters before any network call is made.
func (j Job) Validate() error {
	if j.ChunkSizeChars <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, j.ChunkSizeChars)
	}
	if j.MaxParallelCalls <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidParallelism, j.MaxParallelCalls)
	}
	if j.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive, got %d", j.MaxOutputTokens)
	}
	if j.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be positive, got %d", j.MaxAttempts)
	}
	switch j.TranscriptionMode {
	case ModeCloudRemote, ModeLocalOnDevice:
	default:
		return fmt.Errorf("unknown transcription mode %q", j.TranscriptionMode)
	}
	return nil
}

// Job builds the per-run parameters from the loaded config.
func (c *Config) Job(style string, forceDownload bool) Job {
	if style == "" {
		style = c.Prompts.DefaultStyle
	}
	return Job{
		Style:             style,
		ChunkSizeChars:    c.Processing.ChunkSizeChars,
		MaxParallelCalls:  c.Processing.MaxParallelCalls,
		MaxOutputTokens:   c.Processing.MaxOutputTokens,
		MaxAttempts:       c.Processing.MaxAttempts,
		RequestTimeout:    time.Duration(c.Processing.RequestTimeoutSeconds) * time.Second,
		RequestsPerMinute: c.Processing.RequestsPerMinute,
		ForceDownload:     forceDownload,
		TranscriptionMode: TranscriptionMode(c.Transcription.Mode),
	}
}
