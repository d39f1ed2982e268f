package probe

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinary is the ffprobe executable used when none is specified.
const DefaultBinary = "ffprobe"

// Prober reads audio durations via ffprobe.
type Prober struct {
	binary string
}

// New builds a Prober. An empty binary falls back to DefaultBinary.
func New(binary string) *Prober {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	return &Prober{binary: binary}
}

type formatResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration returns the duration of the audio file at path in seconds.
// Absence of ffprobe, an unparsable container, or any other failure yields
// ok=false rather than an error: duration is advisory and analytics treat
// unknown durations as zero.
func (p *Prober) Duration(ctx context.Context, path string) (float64, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, false
	}

	cmd := exec.CommandContext(ctx, p.binary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, false
	}

	var result formatResult
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(result.Format.Duration), 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return seconds, true
}
