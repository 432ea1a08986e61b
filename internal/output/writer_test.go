package output

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/merger"
	"github.com/tantaind/videodigest/internal/transcript"
)

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	w := &implWriter{
		log: logger.New("error"),
		now: func() time.Time { return time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC) },
	}

	doc := &merger.Document{
		Title: "Pipeline Talk",
		Body:  "First point.\n\nSecond point.",
		Style: "summary",
	}
	path, err := w.Write(context.Background(), doc, dir, FormatMarkdown)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "Pipeline-Talk.md" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "# Pipeline Talk\n\n_2026-03-14 09:26_\n\n") {
		t.Errorf("markdown header wrong:\n%s", got)
	}
	if !strings.Contains(got, "Second point.") {
		t.Errorf("markdown body missing content:\n%s", got)
	}
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()
	w := New(logger.New("error"))

	doc := &merger.Document{
		Title: "Styled Output",
		Body:  "# Heading\n\n- **bold** bullet\n\nPlain paragraph with [00:01:05](https://example.com&t=65) link.",
	}
	path, err := w.Write(context.Background(), doc, dir, FormatDocx)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat docx: %v", err)
	}
	if info.Size() == 0 {
		t.Error("docx file is empty")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	w := New(logger.New("error"))
	_, err := w.Write(context.Background(), &merger.Document{Title: "x"}, t.TempDir(), Format("pdf"))
	if err == nil {
		t.Error("Write() error = nil, want non-nil for unknown format")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		doc  merger.Document
		want string
	}{
		{
			name: "title with spaces and punctuation",
			doc:  merger.Document{Title: "How to: Build / Ship!"},
			want: "How-to-Build-Ship",
		},
		{
			name: "falls back to locator",
			doc:  merger.Document{Source: transcript.SourceRef{Locator: "https://youtu.be/abc"}},
			want: "https-youtu.be-abc",
		},
		{
			name: "empty everything",
			doc:  merger.Document{},
			want: "digest",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(&tt.doc); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}
