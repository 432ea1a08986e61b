package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tantaind/videodigest/internal/logger"
)

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"talk.mp4", true},
		{"TALK.MP4", true},
		{"podcast.mp3", true},
		{"recording.wav", true},
		{"episode.m4a", true},
		{"notes.txt", false},
		{"summary.md", false},
		{"archive.tar.gz", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := isMediaFile(tt.path); got != tt.want {
			t.Errorf("isMediaFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherHandlesNewFile(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{})

	handler := func(_ context.Context, path string) error {
		mu.Lock()
		handled = append(handled, path)
		mu.Unlock()
		close(done)
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settleDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Let the watch loop come up before writing.
	time.Sleep(50 * time.Millisecond)

	mediaPath := filepath.Join(dir, "incoming.mp4")
	if err := os.WriteFile(mediaPath, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked for new media file")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != mediaPath {
		t.Errorf("handled = %v, want [%s]", handled, mediaPath)
	}
}

func TestWatcherRejectsMissingDir(t *testing.T) {
	if _, err := New("/nonexistent/path/for/sure", func(context.Context, string) error { return nil }, logger.New("error"), 1); err == nil {
		t.Error("New() error = nil, want non-nil for missing directory")
	}
}
