package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/tantaind/videodigest/internal/logger"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFFfake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestGroq(baseURL string) *Groq {
	g := NewGroq("test-key", logger.New("error"))
	g.baseURL = baseURL
	return g
}

func TestGroqTranscribeVerboseJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != groqWhisperModel {
			t.Errorf("model = %q, want %q", got, groqWhisperModel)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q", got)
		}
		w.Write([]byte(`{
			"text": "hello world goodbye",
			"duration": 12.5,
			"segments": [
				{"start": 0, "text": " hello world"},
				{"start": 6.2, "text": " goodbye"}
			]
		}`))
	}))
	defer srv.Close()

	g := newTestGroq(srv.URL)
	segments, timed, err := g.Transcribe(context.Background(), writeTempAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if !timed {
		t.Error("Transcribe() timed = false, want true")
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Text != "hello world" {
		t.Errorf("segment text not trimmed: %q", segments[0].Text)
	}
	if segments[1].Start != 6.2 {
		t.Errorf("segment 1 start = %v, want 6.2", segments[1].Start)
	}
}

func TestGroqTranscribePlainTextFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "only flat text came back"}`))
	}))
	defer srv.Close()

	g := newTestGroq(srv.URL)
	segments, timed, err := g.Transcribe(context.Background(), writeTempAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if timed {
		t.Error("Transcribe() timed = true, want false for plain text")
	}
	if len(segments) != 1 || segments[0].Text != "only flat text came back" {
		t.Errorf("unexpected segments: %+v", segments)
	}
}

func TestGroqTranscribeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := newTestGroq(srv.URL)
	if _, _, err := g.Transcribe(context.Background(), writeTempAudio(t)); err == nil {
		t.Error("Transcribe() error = nil, want non-nil for 401")
	}

	g2 := NewGroq("", logger.New("error"))
	if _, _, err := g2.Transcribe(context.Background(), writeTempAudio(t)); err == nil {
		t.Error("Transcribe() error = nil, want non-nil for missing key")
	}
}

func TestGroqTranscribeEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "  "}`))
	}))
	defer srv.Close()

	g := newTestGroq(srv.URL)
	if _, _, err := g.Transcribe(context.Background(), writeTempAudio(t)); err == nil {
		t.Error("Transcribe() error = nil, want non-nil for empty transcript")
	}
}
