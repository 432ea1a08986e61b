package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/transcript"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqWhisperModel = "whisper-large-v3"
)

// Groq transcribes audio through Groq's hosted Whisper endpoint
// (OpenAI-compatible). verbose_json gives per-segment start offsets.
type Groq struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	model   string
	log     logger.Logger
}

func NewGroq(apiKey string, log logger.Logger) *Groq {
	return &Groq{
		hc:      &http.Client{},
		baseURL: groqBaseURL,
		apiKey:  apiKey,
		model:   groqWhisperModel,
		log:     log,
	}
}

type whisperResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio file and returns time-aligned segments. When
// the service answers with plain text and no alignment, a single untimed
// segment is returned and the second result is false.
func (g *Groq) Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, bool, error) {
	if g.apiKey == "" {
		return nil, false, fmt.Errorf("groq API key not configured")
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, false, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, false, err
	}
	mw.WriteField("model", g.model)
	mw.WriteField("response_format", "verbose_json")
	mw.WriteField("temperature", "0")
	if err := mw.Close(); err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.hc.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, false, fmt.Errorf("transcription request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode transcription: %w", err)
	}

	var segments []transcript.Segment
	for _, s := range out.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{Start: s.Start, Text: text})
	}
	if len(segments) > 0 {
		g.log.Debug(ctx, "groq returned %d segments over %.1fs", len(segments), out.Duration)
		return segments, true, nil
	}

	if text := strings.TrimSpace(out.Text); text != "" {
		return []transcript.Segment{{Start: 0, Text: text}}, false, nil
	}
	return nil, false, fmt.Errorf("transcription response contained no text")
}
