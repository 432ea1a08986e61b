package chunker

import (
	"strings"

	"github.com/tantaind/videodigest/internal/transcript"
)

// Chunk is one bounded slice of transcript text, consumed by exactly one
// dispatcher task. Immutable after creation.
type Chunk struct {
	Index       int
	Text        string
	StartOffset float64 // offset of the first segment in the chunk
	HasOffset   bool
}

// Split greedily packs transcript segments into chunks of at most maxChars
// characters. Chunks only break at segment boundaries, so a single segment
// longer than maxChars becomes one oversized chunk: the cap is soft, never a
// mid-word cut. Concatenating the chunk texts in index order reproduces the
// transcript text.
func Split(t *transcript.Transcript, maxChars int) []Chunk {
	if t == nil || maxChars <= 0 {
		return nil
	}

	var chunks []Chunk
	var b strings.Builder
	var start float64
	started := false

	flush := func() {
		if b.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:       len(chunks),
			Text:        b.String(),
			StartOffset: start,
			HasOffset:   t.HasTimestamps && started,
		})
		b.Reset()
		started = false
	}

	for _, seg := range t.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		// +1 for the joining newline.
		if b.Len() > 0 && b.Len()+1+len(text) > maxChars {
			flush()
		}
		if b.Len() == 0 {
			start = seg.Start
			started = true
		} else {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}
	flush()

	return chunks
}
