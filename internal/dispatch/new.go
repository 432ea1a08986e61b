package dispatch

import (
	"time"

	"github.com/tantaind/videodigest/internal/completion"
	"github.com/tantaind/videodigest/internal/logger"
)

type implDispatcher struct {
	client  completion.Client
	logger  logger.Logger
	backoff time.Duration // base delay before the first retry
}

// New creates a Dispatcher backed by the given completion client.
func New(client completion.Client, log logger.Logger) Dispatcher {
	return &implDispatcher{
		client:  client,
		logger:  log,
		backoff: time.Second,
	}
}
