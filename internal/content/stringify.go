package content

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// unwrapKeys are generic wrapper keys producers use around their actual
// content. When a mapping carries exactly one of them, stringification
// recurses straight into that key's value.
var unwrapKeys = []string{"content", "text", "response", "description"}

// labelPreference and textPreference pick the most relevant fields when a
// sequence element is a mapping.
var (
	labelPreference = []string{"title", "name", "misconception"}
	textPreference  = []string{"content", "description", "correction", "example"}
)

// Stringify converts any value into a display string. It is total: for any
// input it returns a string and never panics, regardless of nesting or
// shape. Used whenever a value must be shown as plain/markdown text but its
// shape is unknown or mixed.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case []interface{}:
		return stringifySequence(val)
	case map[string]interface{}:
		return stringifyMapping(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func stringifySequence(seq []interface{}) string {
	parts := make([]string, 0, len(seq))
	for i, el := range seq {
		switch item := el.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(item)))
		case map[string]interface{}:
			label := firstString(item, labelPreference...)
			text := firstString(item, textPreference...)
			switch {
			case label != "" && text != "":
				parts = append(parts, fmt.Sprintf("**%s**: %s", label, text))
			case label != "":
				parts = append(parts, fmt.Sprintf("**%s**: %s", label, stringifyMappingWithout(item, labelPreference)))
			case text != "":
				parts = append(parts, text)
			default:
				parts = append(parts, stringifyMapping(item))
			}
		default:
			parts = append(parts, Stringify(el))
		}
	}
	return strings.Join(parts, "\n\n")
}

func stringifyMapping(m map[string]interface{}) string {
	// Unwrap generic wrapper objects
	if key, ok := singleUnwrapKey(m); ok {
		return Stringify(m[key])
	}

	// Render every key as an emphasized label line. Keys are sorted so the
	// same mapping always renders identically.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		rendered := Stringify(m[k])
		if rendered == "" {
			continue
		}
		if strings.Contains(rendered, "\n") {
			parts = append(parts, fmt.Sprintf("**%s**:\n%s", k, rendered))
		} else {
			parts = append(parts, fmt.Sprintf("**%s**: %s", k, rendered))
		}
	}
	return strings.Join(parts, "\n\n")
}

// stringifyMappingWithout renders a mapping skipping the given keys; used
// when a label key has already been consumed.
func stringifyMappingWithout(m map[string]interface{}, skip []string) string {
	rest := make(map[string]interface{}, len(m))
	for k, v := range m {
		skipped := false
		for _, s := range skip {
			if k == s {
				skipped = true
				break
			}
		}
		if !skipped {
			rest[k] = v
		}
	}
	return stringifyMapping(rest)
}

// singleUnwrapKey reports the unwrap key to recurse into, when the mapping
// carries exactly one of the unwrap keys.
func singleUnwrapKey(m map[string]interface{}) (string, bool) {
	found := ""
	count := 0
	for _, k := range unwrapKeys {
		if _, ok := m[k]; ok {
			found = k
			count++
		}
	}
	if count == 1 {
		return found, true
	}
	return "", false
}
