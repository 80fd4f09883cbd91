package llm

import "strings"

// StripCodeFences removes markdown code-fence wrapping from a completion.
// Models add fences around JSON output despite instructions not to.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
