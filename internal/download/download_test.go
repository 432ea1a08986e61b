package download

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/transcript"
)

// fakeExecutor records ffmpeg invocations and fabricates the output file.
type fakeExecutor struct {
	commands [][]string
	fail     bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.commands = append(f.commands, append([]string{name}, args...))
	if f.fail {
		return "", os.ErrPermission
	}
	// Last arg is the ffmpeg output path.
	out := args[len(args)-1]
	if err := os.WriteFile(out, []byte("RIFF"), 0644); err != nil {
		return "", err
	}
	return "", nil
}

func newTestDownloader(t *testing.T, cobaltURL string) (*Downloader, *fakeExecutor) {
	t.Helper()
	exec := &fakeExecutor{}
	d := New(config.DownloadConfig{
		CobaltBaseURL: cobaltURL,
		FFmpegBinary:  "ffmpeg",
		TempDir:       t.TempDir(),
	}, exec, logger.New("error"))
	return d, exec
}

func TestFetchAudioLocalFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.mp4")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	d, exec := newTestDownloader(t, "")
	wav, cleanup, err := d.FetchAudio(context.Background(), transcript.SourceRef{
		Kind:    transcript.KindLocalFile,
		Locator: src,
	})
	if err != nil {
		t.Fatalf("FetchAudio() error = %v", err)
	}
	defer cleanup()

	if len(exec.commands) != 1 {
		t.Fatalf("ffmpeg invocations = %d, want 1", len(exec.commands))
	}
	cmd := strings.Join(exec.commands[0], " ")
	for _, want := range []string{"-ar 16000", "-ac 1", "pcm_s16le", src} {
		if !strings.Contains(cmd, want) {
			t.Errorf("ffmpeg command missing %q: %s", want, cmd)
		}
	}
	if _, err := os.Stat(wav); err != nil {
		t.Errorf("wav file missing: %v", err)
	}

	cleanup()
	if _, err := os.Stat(wav); !os.IsNotExist(err) {
		t.Error("cleanup did not remove wav")
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("cleanup removed the caller's local file")
	}
}

func TestFetchAudioLocalFileMissing(t *testing.T) {
	d, _ := newTestDownloader(t, "")
	_, _, err := d.FetchAudio(context.Background(), transcript.SourceRef{
		Kind:    transcript.KindLocalFile,
		Locator: "/nonexistent/talk.mp4",
	})
	if err == nil {
		t.Error("FetchAudio() succeeded for missing file")
	}
}

func TestFetchAudioViaCobalt(t *testing.T) {
	var mediaServed bool
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaServed = true
		w.Write([]byte("media-bytes"))
	}))
	defer media.Close()

	cobalt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["url"] != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("url = %q", req["url"])
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "stream", "url": media.URL})
	}))
	defer cobalt.Close()

	d, exec := newTestDownloader(t, cobalt.URL)
	wav, cleanup, err := d.FetchAudio(context.Background(), transcript.SourceRef{
		Kind:    transcript.KindYouTube,
		Locator: "https://youtu.be/dQw4w9WgXcQ",
	})
	if err != nil {
		t.Fatalf("FetchAudio() error = %v", err)
	}
	defer cleanup()

	if !mediaServed {
		t.Error("media URL was never fetched")
	}
	if len(exec.commands) != 1 {
		t.Errorf("ffmpeg invocations = %d, want 1", len(exec.commands))
	}
	if _, err := os.Stat(wav); err != nil {
		t.Errorf("wav file missing: %v", err)
	}
}

func TestFetchAudioCobaltError(t *testing.T) {
	cobalt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "text": "unsupported service"})
	}))
	defer cobalt.Close()

	d, _ := newTestDownloader(t, cobalt.URL)
	_, _, err := d.FetchAudio(context.Background(), transcript.SourceRef{
		Kind:    transcript.KindVideoURL,
		Locator: "https://example.com/v/1",
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported service") {
		t.Errorf("FetchAudio() error = %v, want cobalt error text", err)
	}
}

func TestDriveDirectURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			"share link",
			"https://drive.google.com/file/d/1AbC_dEf-9/view?usp=sharing",
			"https://drive.google.com/uc?export=download&id=1AbC_dEf-9",
			false,
		},
		{
			"open link",
			"https://drive.google.com/open?id=1AbC_dEf-9",
			"https://drive.google.com/uc?export=download&id=1AbC_dEf-9",
			false,
		},
		{"no id", "https://drive.google.com/drive/my-drive", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := driveDirectURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("driveDirectURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("driveDirectURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDropboxDirectURL(t *testing.T) {
	got, err := dropboxDirectURL("https://www.dropbox.com/s/abc123/talk.mp4?dl=0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "dl=1") {
		t.Errorf("dropboxDirectURL() = %q, want dl=1", got)
	}
}
