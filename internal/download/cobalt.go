package download

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Cobalt proxies media extraction for YouTube and generic video URLs.
// The response shape varies across instance versions, so several fields are
// probed for the download URL.
type cobaltResponse struct {
	Status   string `json:"status"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Download string `json:"download"`
	Audio    string `json:"audio"`
	File     string `json:"file"`
	Links    []struct {
		URL string `json:"url"`
	} `json:"links"`
}

func (d *Downloader) resolveCobaltURL(ctx context.Context, mediaURL string) (string, error) {
	if d.cobaltBase == "" {
		return "", fmt.Errorf("cobalt base URL not configured")
	}

	body, err := json.Marshal(map[string]string{"url": mediaURL})
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(d.cobaltBase, "/") + "/api/json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("cobalt request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cobalt request: status %d", resp.StatusCode)
	}

	var payload cobaltResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("cobalt response: %w", err)
	}

	if payload.Status == "error" {
		if payload.Text != "" {
			return "", fmt.Errorf("cobalt: %s", payload.Text)
		}
		return "", fmt.Errorf("cobalt returned an error")
	}

	for _, candidate := range []string{payload.URL, payload.Download, payload.Audio, payload.File} {
		if candidate != "" {
			return candidate, nil
		}
	}
	if len(payload.Links) > 0 && payload.Links[0].URL != "" {
		return payload.Links[0].URL, nil
	}

	return "", fmt.Errorf("cobalt response did not include a download URL")
}
