package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"

	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/transcript"
	"github.com/tantaind/videodigest/pkg/executor"
)

// Downloader obtains a transcription-ready WAV file for any source kind.
// Remote sources are fetched to a temp file first; local files skip the
// download and go straight to the ffmpeg conversion.
type Downloader struct {
	cobaltBase string
	ffmpeg     string
	tempDir    string
	hc         *http.Client
	exec       executor.Executor
	log        logger.Logger
}

func New(cfg config.DownloadConfig, exec executor.Executor, log logger.Logger) *Downloader {
	return &Downloader{
		cobaltBase: cfg.CobaltBaseURL,
		ffmpeg:     cfg.FFmpegBinary,
		tempDir:    cfg.TempDir,
		hc:         &http.Client{},
		exec:       exec,
		log:        log,
	}
}

// FetchAudio returns the path of a 16 kHz mono WAV for the source, plus a
// cleanup func removing whatever temp files were created.
func (d *Downloader) FetchAudio(ctx context.Context, ref transcript.SourceRef) (string, func(), error) {
	switch ref.Kind {
	case transcript.KindLocalFile:
		if _, err := os.Stat(ref.Locator); err != nil {
			return "", nil, fmt.Errorf("local file: %w", err)
		}
		return d.convertToWAV(ctx, ref.Locator, false)

	case transcript.KindYouTube, transcript.KindVideoURL:
		mediaURL, err := d.resolveCobaltURL(ctx, ref.Locator)
		if err != nil {
			return "", nil, err
		}
		return d.downloadAndConvert(ctx, mediaURL)

	case transcript.KindGoogleDrive:
		direct, err := driveDirectURL(ref.Locator)
		if err != nil {
			return "", nil, err
		}
		return d.downloadAndConvert(ctx, direct)

	case transcript.KindDropbox:
		direct, err := dropboxDirectURL(ref.Locator)
		if err != nil {
			return "", nil, err
		}
		return d.downloadAndConvert(ctx, direct)

	default:
		return "", nil, fmt.Errorf("no download strategy for source kind %q", ref.Kind)
	}
}

func (d *Downloader) downloadAndConvert(ctx context.Context, mediaURL string) (string, func(), error) {
	rawPath := filepath.Join(d.tempDir, "media_"+uuid.NewString()+".bin")

	if err := d.downloadTo(ctx, mediaURL, rawPath); err != nil {
		os.Remove(rawPath)
		return "", nil, err
	}

	wavPath, cleanup, err := d.convertToWAV(ctx, rawPath, true)
	if err != nil {
		os.Remove(rawPath)
		return "", nil, err
	}
	return wavPath, cleanup, nil
}

func (d *Downloader) downloadTo(ctx context.Context, mediaURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return err
	}

	resp, err := d.hc.Do(req)
	if err != nil {
		return fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download media: status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("download media: %w", err)
	}
	d.log.Debug(ctx, "downloaded %d bytes to %s", n, dest)
	return nil
}

// convertToWAV runs ffmpeg to produce 16 kHz mono PCM, the input Whisper
// handles best. removeInput also deletes the source file during cleanup.
func (d *Downloader) convertToWAV(ctx context.Context, inputPath string, removeInput bool) (string, func(), error) {
	wavPath := filepath.Join(d.tempDir, "audio_"+uuid.NewString()+".wav")

	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}
	if _, err := d.exec.Execute(ctx, d.ffmpeg, args...); err != nil {
		return "", nil, fmt.Errorf("ffmpeg convert: %w", err)
	}

	cleanup := func() {
		os.Remove(wavPath)
		if removeInput {
			os.Remove(inputPath)
		}
	}
	return wavPath, cleanup, nil
}

var driveIDPattern = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)

// driveDirectURL converts a Drive share link to the direct-download form.
func driveDirectURL(shareURL string) (string, error) {
	if m := driveIDPattern.FindStringSubmatch(shareURL); m != nil {
		return "https://drive.google.com/uc?export=download&id=" + m[1], nil
	}
	u, err := url.Parse(shareURL)
	if err == nil {
		if id := u.Query().Get("id"); id != "" {
			return "https://drive.google.com/uc?export=download&id=" + id, nil
		}
	}
	return "", fmt.Errorf("could not extract file ID from Drive link %q", shareURL)
}

// dropboxDirectURL rewrites a share link to force a file download.
func dropboxDirectURL(shareURL string) (string, error) {
	u, err := url.Parse(shareURL)
	if err != nil {
		return "", fmt.Errorf("parse Dropbox link: %w", err)
	}
	q := u.Query()
	q.Set("dl", "1")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
