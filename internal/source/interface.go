package source

import (
	"context"

	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/transcript"
)

// CaptionProvider fetches an existing caption track for a hosted video.
type CaptionProvider interface {
	Fetch(ctx context.Context, locator, language string) ([]transcript.Segment, error)
}

// Downloader produces a local audio file for a source reference. The
// returned cleanup releases any temporary files it created.
type Downloader interface {
	FetchAudio(ctx context.Context, ref transcript.SourceRef) (path string, cleanup func(), err error)
}

// Transcriber converts a local audio file into segments. The bool result
// reports whether the segments carry real start offsets.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, bool, error)
}

// Resolver turns a source reference into a transcript, choosing the
// cheapest acquisition path available for the source kind.
type Resolver interface {
	Resolve(ctx context.Context, ref transcript.SourceRef, job config.Job) (*transcript.Transcript, error)
}
