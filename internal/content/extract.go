package content

import (
	"regexp"
	"strings"

	"teachassist/internal/models"
)

// ExtractRole selects the synthesized fallback label when no text pattern
// matches.
type ExtractRole int

const (
	// RoleExample falls back to the label "Example"
	RoleExample ExtractRole = iota
	// RoleQuestion falls back to the label "Question"
	RoleQuestion
	// RoleLeveled falls back to a difficulty name cycled by position
	RoleLeveled
)

// LevelNames are the three difficulty names cycled over positionally when a
// question carries no explicit level.
var LevelNames = []string{"Basic Recall", "Application", "Critical Thinking"}

// Pattern attempts, in fixed priority order. The first match wins.
var (
	// 1. Strong-emphasis-prefixed label: **Label:** body / __Label__ body
	boldLabelRe = regexp.MustCompile(`(?s)^(?:\*\*|__)([^*_\n]{1,80}?)(?:\*\*|__)\s*:?\s*(.+)$`)
	// 2. Bracketed or parenthesized short label at start: [Basic] body, (Application) body
	bracketLabelRe = regexp.MustCompile(`(?s)^\[([^\]\n]{1,40})\]\s*:?\s*(.+)$`)
	parenLabelRe   = regexp.MustCompile(`(?s)^\(([^)\n]{1,40})\)\s*:?\s*(.+)$`)
	// 3. Known keyword label at start
	keywordLabelRe = regexp.MustCompile(`(?s)^(Basic|Application|Critical Thinking|Level\s*\d+)\s*:?\s+(.+)$`)
)

// ExtractLabel pulls a (label, body) pair out of one free-text string,
// trying patterns in priority order. It never fails: the final fallback
// returns a synthesized label with the entire text as body. index is the
// item's position within its list and only matters for RoleLeveled.
func ExtractLabel(text string, role ExtractRole, index int) models.ExtractedLabel {
	text = strings.TrimSpace(text)

	// 1. Strong-emphasis-prefixed label
	if m := boldLabelRe.FindStringSubmatch(text); m != nil {
		label := strings.TrimSuffix(strings.TrimSpace(m[1]), ":")
		return models.ExtractedLabel{Label: label, Body: strings.TrimSpace(m[2])}
	}

	// 2. Bracketed / parenthesized short label
	for _, re := range []*regexp.Regexp{bracketLabelRe, parenLabelRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return models.ExtractedLabel{Label: strings.TrimSpace(m[1]), Body: strings.TrimSpace(m[2])}
		}
	}

	// 3. Known keyword label
	if m := keywordLabelRe.FindStringSubmatch(text); m != nil {
		return models.ExtractedLabel{Label: strings.TrimSpace(m[1]), Body: strings.TrimSpace(m[2])}
	}

	// 4. Generic "X: Y" with a short left side. The length guard avoids
	// splitting on a colon buried inside a long sentence.
	if idx := strings.Index(text, ":"); idx > 0 && idx < 100 {
		left := text[:idx]
		body := strings.TrimSpace(text[idx+1:])
		if !strings.Contains(left, "\n") && body != "" {
			return models.ExtractedLabel{Label: strings.TrimSpace(left), Body: body}
		}
	}

	// 5. First-sentence heuristic
	if idx := strings.IndexAny(text, ".!?"); idx > 0 && idx < 80 {
		body := strings.TrimSpace(text[idx+1:])
		if body != "" {
			return models.ExtractedLabel{Label: strings.TrimSpace(text[:idx]), Body: body}
		}
	}

	// 6. Fallback: synthesized label, full text as body
	return models.ExtractedLabel{Label: fallbackLabel(role, index), Body: text}
}

func fallbackLabel(role ExtractRole, index int) string {
	switch role {
	case RoleQuestion:
		return "Question"
	case RoleLeveled:
		if index < 0 {
			index = 0
		}
		return LevelNames[index%len(LevelNames)]
	default:
		return "Example"
	}
}

// Instruction splitting.
var (
	// Numbered or step prefixes: "1.", "1)", "Step 1:"
	stepPrefixRe = regexp.MustCompile(`(?:^|\s)(?:Step\s*\d+\s*:|\d+[.)])\s*`)
	stepStripRe  = regexp.MustCompile(`^(?:Step\s*\d+\s*:|\d+[.)])\s*`)
)

// SplitInstructions extracts an ordered list of steps from one free-text
// block. It splits on numbered prefixes first; if that yields fewer than
// two fragments it retries on sentence boundaries before a digit; if still
// nothing, the whole text is a single step. Numeric prefixes are stripped
// from each fragment.
func SplitInstructions(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	steps := splitAt(text, stepPrefixRe.FindAllStringIndex(text, -1))
	if len(steps) >= 2 {
		return steps
	}

	// Retry: split on ". " immediately before a digit
	var cuts [][]int
	for i := 0; i+2 < len(text); i++ {
		if text[i] == '.' && text[i+1] == ' ' && text[i+2] >= '0' && text[i+2] <= '9' {
			cuts = append(cuts, []int{i + 1, i + 2})
		}
	}
	steps = splitAt(text, cuts)
	if len(steps) >= 2 {
		return steps
	}

	return []string{stripStepPrefix(text)}
}

// splitAt cuts text at each match start, strips step prefixes, and drops
// empty fragments.
func splitAt(text string, matches [][]int) []string {
	if len(matches) == 0 {
		return nil
	}
	var out []string
	prev := 0
	for _, m := range matches {
		if frag := stripStepPrefix(strings.TrimSpace(text[prev:m[0]])); frag != "" {
			out = append(out, frag)
		}
		prev = m[0]
	}
	if frag := stripStepPrefix(strings.TrimSpace(text[prev:])); frag != "" {
		out = append(out, frag)
	}
	return out
}

func stripStepPrefix(s string) string {
	return strings.TrimSpace(stepStripRe.ReplaceAllString(s, ""))
}

// CycledLevel returns the difficulty name for a question at the given
// position when no explicit level was supplied.
func CycledLevel(index int) string {
	if index < 0 {
		index = 0
	}
	return LevelNames[index%len(LevelNames)]
}

// TitleForKey derives a human-readable title from a payload field key by
// replacing separators with spaces.
func TitleForKey(key string) string {
	title := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return strings.Join(strings.Fields(title), " ")
}
