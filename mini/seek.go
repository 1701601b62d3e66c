package mini

import (
	"strconv"
	"strings"
	"time"
)

// parseSeek reads "42%", a plain number of seconds, "MM:SS" or "HH:MM:SS"
// and returns the fraction of duration it points at.
func parseSeek(s string, duration time.Duration) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || duration <= 0 {
		return 0, false
	}

	if percent, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(percent), 64)
		if err != nil || p < 0 || p > 100 {
			return 0, false
		}
		return p / 100, true
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}

	var seconds int
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, false
		}
		seconds = seconds*60 + n
	}

	offset := time.Duration(seconds) * time.Second
	if offset > duration {
		return 0, false
	}
	return float64(offset) / float64(duration), true
}

// parseVolume reads a percentage in [0,100].
func parseVolume(s string) (float64, bool) {
	v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return float64(v) / 100, true
}
