package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// SourceKind identifies where a transcript comes from. The set is closed;
// the resolver switches over it exhaustively.
type SourceKind string

const (
	KindYouTube     SourceKind = "youtube"
	KindVideoURL    SourceKind = "video-url"
	KindLocalFile   SourceKind = "local-file"
	KindGoogleDrive SourceKind = "google-drive"
	KindDropbox     SourceKind = "dropbox"
)

// SourceRef points at one video/audio source. Immutable once created.
type SourceRef struct {
	Kind     SourceKind
	Locator  string // URL or local path
	Language string // caption language hint; "auto" or empty means auto-detect
}

// Segment is one time-aligned piece of transcript text.
// Offsets are non-decreasing within a transcript.
type Segment struct {
	Start float64 // seconds from the beginning of the media
	Text  string
}

// Transcript is the raw text of one source, produced once per job.
// When HasTimestamps is false the segment offsets are meaningless and
// must not be rendered as time markers.
type Transcript struct {
	Segments      []Segment
	HasTimestamps bool
	SourceKind    SourceKind
	Language      string
}

// Empty reports whether the transcript carries no usable text.
func (t *Transcript) Empty() bool {
	if t == nil {
		return true
	}
	for _, s := range t.Segments {
		if strings.TrimSpace(s.Text) != "" {
			return false
		}
	}
	return true
}

// Text joins all segment texts, one segment per line.
func (t *Transcript) Text() string {
	var b strings.Builder
	for _, s := range t.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}
	return b.String()
}

var (
	youtubePattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:youtube\.com/|youtu\.be/)`)
	drivePattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:drive|docs)\.google\.com/`)
	dropboxPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?dropbox\.com/`)
)

// DetectKind classifies a locator string into a SourceKind. Anything that is
// not a recognized URL is assumed to be a local file path.
func DetectKind(locator string) SourceKind {
	switch {
	case youtubePattern.MatchString(locator):
		return KindYouTube
	case drivePattern.MatchString(locator):
		return KindGoogleDrive
	case dropboxPattern.MatchString(locator):
		return KindDropbox
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return KindVideoURL
	default:
		return KindLocalFile
	}
}

// FormatTimestamp renders seconds as HH:MM:SS.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
