package content

import "strings"

// narrationPriority is the fixed field order tried for read-aloud text. The
// first present, truthy candidate wins.
var narrationPriority = []string{
	"simple_explanation",
	"conceptual_briefing",
	"immediate_action",
	"understanding",
	"content",
}

// StructuredPlaceholder is spoken instead of raw serialized data.
const StructuredPlaceholder = "The response contains structured content. Please view it on screen."

// NarrationText selects the single best field of a payload for speech
// synthesis. When the winning candidate looks like serialized data (leading
// brace, bracket, or code fence) the fixed placeholder is substituted; the
// second return reports that substitution. This check misfires on
// legitimate text starting with those characters, which is accepted as the
// lesser risk against reading raw data aloud.
func NarrationText(payload map[string]interface{}) (string, bool) {
	for _, key := range narrationPriority {
		v, ok := payload[key]
		if !ok || !IsTruthy(v) {
			continue
		}
		text := Stringify(v)
		if text == "" {
			continue
		}
		if LooksLikeStructuredData(text) {
			return StructuredPlaceholder, true
		}
		return text, false
	}
	return "", false
}

// LooksLikeStructuredData reports whether text appears to be serialized
// structure rather than prose.
func LooksLikeStructuredData(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "{") ||
		strings.HasPrefix(trimmed, "[") ||
		strings.HasPrefix(trimmed, "```")
}
