package source

import (
	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/logger"
)

type implResolver struct {
	captions     CaptionProvider
	downloader   Downloader
	transcribers map[config.TranscriptionMode]Transcriber
	log          logger.Logger
}

func New(captions CaptionProvider, downloader Downloader, transcribers map[config.TranscriptionMode]Transcriber, log logger.Logger) Resolver {
	return &implResolver{
		captions:     captions,
		downloader:   downloader,
		transcribers: transcribers,
		log:          log,
	}
}
