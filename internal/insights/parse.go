package insights

import (
	"encoding/json"
	"strings"

	"openrecorder/internal/services"
)

// parseArray decodes a JSON array from a model response. Models are asked
// for a bare array but sometimes wrap it in prose, so a strict parse of the
// trimmed response is tried first and then the substring between the first
// '[' and the last ']'. No further repair is attempted.
func parseArray(operation, response string, target any) error {
	trimmed := strings.TrimSpace(response)
	if json.Unmarshal([]byte(trimmed), target) == nil {
		return nil
	}

	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start >= 0 && end > start {
		if json.Unmarshal([]byte(trimmed[start:end+1]), target) == nil {
			return nil
		}
	}
	return services.Wrap(services.ErrMalformedResponse, "insights", operation, snippet(trimmed), nil)
}

func snippet(s string) string {
	clean := strings.Join(strings.Fields(s), " ")
	const limit = 120
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	if clean == "" {
		clean = "<empty>"
	}
	return "response snippet: " + clean
}
