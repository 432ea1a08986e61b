package source

import (
	"context"
	"fmt"

	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/transcript"
)

func (r *implResolver) Resolve(ctx context.Context, ref transcript.SourceRef, job config.Job) (*transcript.Transcript, error) {
	switch ref.Kind {
	case transcript.KindYouTube:
		if !job.ForceDownload {
			tr, err := r.fromCaptions(ctx, ref)
			if err == nil {
				return tr, nil
			}
			// Any caption failure falls through to the expensive path.
			r.log.Warn(ctx, "caption fetch failed for %s, falling back to download: %v", ref.Locator, err)
		}
		return r.downloadAndTranscribe(ctx, ref, job)
	case transcript.KindVideoURL, transcript.KindGoogleDrive, transcript.KindDropbox, transcript.KindLocalFile:
		return r.downloadAndTranscribe(ctx, ref, job)
	default:
		return nil, &AcquisitionError{Kind: KindUnsupported, Err: fmt.Errorf("kind %q", ref.Kind)}
	}
}

func (r *implResolver) fromCaptions(ctx context.Context, ref transcript.SourceRef) (*transcript.Transcript, error) {
	segments, err := r.captions.Fetch(ctx, ref.Locator, ref.Language)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("caption track is empty")
	}
	r.log.Info(ctx, "using caption track for %s (%d cues)", ref.Locator, len(segments))
	return &transcript.Transcript{
		Segments:      segments,
		HasTimestamps: true,
		SourceKind:    ref.Kind,
		Language:      ref.Language,
	}, nil
}

func (r *implResolver) downloadAndTranscribe(ctx context.Context, ref transcript.SourceRef, job config.Job) (*transcript.Transcript, error) {
	t, ok := r.transcribers[job.TranscriptionMode]
	if !ok {
		return nil, &AcquisitionError{Kind: KindTranscriptionFailed, Err: fmt.Errorf("no transcriber for mode %q", job.TranscriptionMode)}
	}

	audioPath, cleanup, err := r.downloader.FetchAudio(ctx, ref)
	if err != nil {
		return nil, &AcquisitionError{Kind: KindDownloadFailed, Err: err}
	}
	defer cleanup()

	segments, timed, err := t.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, &AcquisitionError{Kind: KindTranscriptionFailed, Err: err}
	}

	r.log.Info(ctx, "transcribed %s into %d segments (timed=%v)", ref.Locator, len(segments), timed)
	return &transcript.Transcript{
		Segments:      segments,
		HasTimestamps: timed,
		SourceKind:    ref.Kind,
		Language:      ref.Language,
	}, nil
}
