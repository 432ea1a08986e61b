package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/transcript"
	"github.com/tantaind/videodigest/pkg/executor"
)

// Whisper runs the whisper.cpp binary against a local WAV file and parses
// the SRT sidecar it produces.
type Whisper struct {
	binary   string
	model    string
	language string
	exec     executor.Executor
	log      logger.Logger
}

func NewWhisper(binary, model, language string, exec executor.Executor, log logger.Logger) *Whisper {
	if language == "" {
		language = "auto"
	}
	return &Whisper{
		binary:   binary,
		model:    model,
		language: language,
		exec:     exec,
		log:      log,
	}
}

func (w *Whisper) Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, bool, error) {
	if w.binary == "" || w.model == "" {
		return nil, false, fmt.Errorf("whisper binary and model must be configured for local transcription")
	}

	prefix := strings.TrimSuffix(audioPath, ".wav")
	args := []string{
		"-m", w.model,
		"-f", audioPath,
		"-osrt",
		"-l", w.language,
		"--output-file", prefix,
	}

	w.log.Info(ctx, "transcribing %s with %s", audioPath, w.binary)
	if _, err := w.exec.Execute(ctx, w.binary, args...); err != nil {
		return nil, false, fmt.Errorf("whisper execution: %w", err)
	}

	srtPath := prefix + ".srt"
	data, err := os.ReadFile(srtPath)
	if err != nil {
		return nil, false, fmt.Errorf("read whisper output: %w", err)
	}
	defer os.Remove(srtPath)

	segments, err := ParseSRT(string(data))
	if err != nil {
		return nil, false, err
	}
	if len(segments) == 0 {
		return nil, false, fmt.Errorf("whisper produced an empty transcript")
	}
	return segments, true, nil
}
