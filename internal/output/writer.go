package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/merger"
)

type implWriter struct {
	log logger.Logger
	now func() time.Time
}

func New(log logger.Logger) Writer {
	return &implWriter{log: log, now: time.Now}
}

func (w *implWriter) Write(ctx context.Context, doc *merger.Document, dir string, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := Filename(doc)
	switch format {
	case FormatMarkdown, "":
		path := filepath.Join(dir, name+".md")
		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			doc.Title,
			w.now().Format("2006-01-02 15:04"),
			strings.TrimSpace(doc.Body),
		)
		if err := os.WriteFile(path, []byte(md), 0644); err != nil {
			return "", fmt.Errorf("write markdown: %w", err)
		}
		w.log.Info(ctx, "[DONE] %s -> %s", doc.Title, path)
		return path, nil
	case FormatDocx:
		path := filepath.Join(dir, name+".docx")
		if err := markdownToDocx(doc.Title, doc.Body, path); err != nil {
			return "", fmt.Errorf("write docx: %w", err)
		}
		w.log.Info(ctx, "[DONE] %s -> %s", doc.Title, path)
		return path, nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Filename derives a filesystem-safe base name from the document title,
// falling back to the source locator.
func Filename(doc *merger.Document) string {
	base := doc.Title
	if base == "" {
		base = doc.Source.Locator
	}
	base = unsafeFilenameChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if len(base) > 120 {
		base = base[:120]
	}
	if base == "" {
		base = "digest"
	}
	return base
}
