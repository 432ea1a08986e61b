package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/transcript"
)

const timedTextURL = "https://www.youtube.com/api/timedtext"

// videoIDPattern accepts watch, share, embed and short-link URL shapes.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
func ExtractVideoID(rawURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("could not extract YouTube video ID from %q", rawURL)
	}
	return m[1], nil
}

// Client fetches existing YouTube captions through the timedtext endpoint.
type Client struct {
	hc      *http.Client
	baseURL string
	log     logger.Logger
}

func New(log logger.Logger) *Client {
	return &Client{
		hc:      &http.Client{},
		baseURL: timedTextURL,
		log:     log,
	}
}

// json3 caption payload: one event per cue, text split across segs.
type timedText struct {
	Events []struct {
		StartMs int64 `json:"tStartMs"`
		Segs    []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Fetch returns one segment per caption cue. Any failure (bad locator,
// request error, no caption track) is reported to the caller, which treats
// it as "fall through to download and transcribe".
func (c *Client) Fetch(ctx context.Context, locator, language string) ([]transcript.Segment, error) {
	id, err := ExtractVideoID(locator)
	if err != nil {
		return nil, err
	}
	if language == "" || language == "auto" {
		language = "en"
	}

	q := url.Values{}
	q.Set("v", id)
	q.Set("lang", language)
	q.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch captions: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read captions: %w", err)
	}
	// YouTube answers an empty 200 when there is no track for the language.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("no %s caption track for video %s", language, id)
	}

	var tt timedText
	if err := json.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse captions: %w", err)
	}

	var segments []transcript.Segment
	for _, ev := range tt.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{
			Start: float64(ev.StartMs) / 1000,
			Text:  text,
		})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("caption track for video %s is empty", id)
	}

	c.log.Debug(ctx, "fetched %d caption cues for video %s (%s)", len(segments), id, language)
	return segments, nil
}
