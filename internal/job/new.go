package job

import (
	"github.com/tantaind/videodigest/internal/dispatch"
	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/prompts"
	"github.com/tantaind/videodigest/internal/source"
)

type implRunner struct {
	resolver   source.Resolver
	dispatcher dispatch.Dispatcher
	prompts    prompts.Store
	log        logger.Logger
}

func New(resolver source.Resolver, dispatcher dispatch.Dispatcher, store prompts.Store, log logger.Logger) Runner {
	return &implRunner{
		resolver:   resolver,
		dispatcher: dispatcher,
		prompts:    store,
		log:        log,
	}
}
