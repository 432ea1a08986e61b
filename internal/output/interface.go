package output

import (
	"context"

	"github.com/tantaind/videodigest/internal/merger"
)

// Format selects the on-disk rendering of a document.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatDocx     Format = "docx"
)

// Writer persists merged documents.
type Writer interface {
	// Write renders the document into dir and returns the path written.
	Write(ctx context.Context, doc *merger.Document, dir string, format Format) (string, error)
}
