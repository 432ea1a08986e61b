package transcribe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tantaind/videodigest/internal/transcript"
)

var srtTimePattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s+-->`)

// ParseSRT converts SubRip text into segments. Cue numbers are ignored;
// only the start time of each cue is kept. Multi-line cue text is joined
// with spaces.
func ParseSRT(data string) ([]transcript.Segment, error) {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(data), "\n\n")

	var segments []transcript.Segment
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// Layout is: index, timing line, then one or more text lines.
		// Tolerate a missing index line.
		timeIdx := -1
		for i, line := range lines {
			if srtTimePattern.MatchString(strings.TrimSpace(line)) {
				timeIdx = i
				break
			}
		}
		if timeIdx < 0 || timeIdx == len(lines)-1 {
			continue
		}

		start, err := parseSRTTime(strings.TrimSpace(lines[timeIdx]))
		if err != nil {
			return nil, err
		}

		text := strings.TrimSpace(strings.Join(lines[timeIdx+1:], " "))
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{Start: start, Text: text})
	}
	return segments, nil
}

func parseSRTTime(line string) (float64, error) {
	m := srtTimePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, fmt.Errorf("malformed SRT timing line: %q", line)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])
	return float64(h*3600+min*60+sec) + float64(ms)/1000, nil
}
