package main

import (
	"encoding/json"
	"io"
)

// writeJSON encodes v as indented JSON. Escaping is left off so paths and
// transcript text render readably.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
