package dispatch

import (
	"errors"
	"fmt"
)

// errAborted marks chunks that were never dispatched because an earlier chunk
// had already failed terminally.
var errAborted = errors.New("not dispatched: job aborted after earlier chunk failure")

// PartialProcessingError reports which chunks could not be processed. A job
// that produces it has no usable document; there is no best-effort merge of
// the chunks that did succeed.
type PartialProcessingError struct {
	FailedIndices []int
}

func (e *PartialProcessingError) Error() string {
	return fmt.Sprintf("processing failed for chunks %v", e.FailedIndices)
}
