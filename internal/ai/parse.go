package ai

import (
	"encoding/json"
	"strings"
)

// StripCodeFences removes markdown code-fence markers anywhere in the text.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DecodeJSON strips code fences from a model reply and unmarshals it into v.
func DecodeJSON(reply string, v any) error {
	return json.Unmarshal([]byte(StripCodeFences(reply)), v)
}
