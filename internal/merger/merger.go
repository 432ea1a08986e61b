package merger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tantaind/videodigest/internal/captions"
	"github.com/tantaind/videodigest/internal/dispatch"
	"github.com/tantaind/videodigest/internal/transcript"
)

// Document is the assembled output of one processing run.
type Document struct {
	Title  string
	Body   string
	Source transcript.SourceRef
	Style  string
}

type Options struct {
	Style         string
	TitleLine     bool
	Source        transcript.SourceRef
	HasTimestamps bool
}

// Merge assembles per-chunk results into a single document in chunk-index
// order. Every result must have succeeded; partial merges are the caller's
// decision to make, not this package's.
func Merge(results []dispatch.Result, opts Options) (*Document, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to merge")
	}
	for _, r := range results {
		if r.Failed() {
			return nil, fmt.Errorf("cannot merge: chunk %d failed: %w", r.Index, r.Err)
		}
	}

	sorted := make([]dispatch.Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	doc := &Document{Source: opts.Source, Style: opts.Style}

	var pieces []string
	for _, r := range sorted {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		if opts.TitleLine && doc.Title == "" {
			text = extractTitle(text, doc)
			if text == "" {
				continue
			}
		}
		if header := sectionHeader(r, opts); header != "" {
			text = header + "\n\n" + text
		}
		pieces = append(pieces, text)
	}
	if doc.Title == "" {
		doc.Title = defaultTitle(opts.Source)
	}
	doc.Body = strings.Join(pieces, "\n\n")
	return doc, nil
}

// extractTitle lifts the first line of the first piece into the document
// title and returns the remainder of the piece.
func extractTitle(text string, doc *Document) string {
	line, rest, _ := strings.Cut(text, "\n")
	doc.Title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "# "))
	return strings.TrimSpace(rest)
}

// sectionHeader renders a time marker for a chunk, with a deep link back
// into the video when the source supports one.
func sectionHeader(r dispatch.Result, opts Options) string {
	if !opts.HasTimestamps || !r.HasOffset {
		return ""
	}
	stamp := transcript.FormatTimestamp(r.StartOffset)
	if opts.Source.Kind == transcript.KindYouTube {
		if id, err := captions.ExtractVideoID(opts.Source.Locator); err == nil {
			return fmt.Sprintf("**[%s](https://www.youtube.com/watch?v=%s&t=%d)**", stamp, id, int(r.StartOffset))
		}
	}
	return fmt.Sprintf("**%s**", stamp)
}

func defaultTitle(ref transcript.SourceRef) string {
	if ref.Locator == "" {
		return "Transcript digest"
	}
	base := ref.Locator
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 && i < len(base)-1 {
		base = base[i+1:]
	}
	return base
}
