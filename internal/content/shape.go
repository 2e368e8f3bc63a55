// Package content normalizes untyped, shape-varying AI-generated payloads
// into a stable set of renderable sections, and derives the slide-deck and
// narration projections from the same normalized output.
//
// Everything in this package is pure and side-effect-free: it runs once per
// render pass over an immutable payload and never raises past its own
// boundary. Values are the untyped trees produced by encoding/json (nil,
// bool, float64, string, []interface{}, map[string]interface{}).
package content

import "strings"

// Shape is the structural category of a value, independent of its semantic
// meaning.
type Shape int

const (
	// ShapeAbsent is nil or a missing value
	ShapeAbsent Shape = iota
	// ShapeScalar is a string, number, or boolean
	ShapeScalar
	// ShapeSequence is an ordered list of values
	ShapeSequence
	// ShapeMapping is a keyed object
	ShapeMapping
)

// ClassifyShape returns the structural branch to take when normalizing a
// value.
func ClassifyShape(v interface{}) Shape {
	switch v.(type) {
	case nil:
		return ShapeAbsent
	case []interface{}:
		return ShapeSequence
	case map[string]interface{}:
		return ShapeMapping
	default:
		return ShapeScalar
	}
}

// IsTruthy reports whether a value carries renderable content. Empty
// strings, empty sequences, and empty mappings count as absent ("empty
// means absent" policy), as do zero numbers and false booleans.
func IsTruthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}

// CoerceSequence returns v as a sequence, wrapping a scalar or mapping in a
// one-element sequence. Absent values yield an empty sequence.
func CoerceSequence(v interface{}) []interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return val
	default:
		return []interface{}{v}
	}
}

// HasGroupedQuestions reports whether a sequence should be treated as
// question groups: it is when any element is a mapping containing a
// "questions" or "question_list" field.
func HasGroupedQuestions(seq []interface{}) bool {
	for _, el := range seq {
		if m, ok := el.(map[string]interface{}); ok {
			if _, has := m["questions"]; has {
				return true
			}
			if _, has := m["question_list"]; has {
				return true
			}
		}
	}
	return false
}

// IsLevelKeyedMapping reports whether a mapping uses arbitrary level names
// as keys (each key a group, not a field name): true when every value is
// itself a sequence or mapping.
func IsLevelKeyedMapping(m map[string]interface{}) bool {
	if len(m) == 0 {
		return false
	}
	for _, v := range m {
		switch v.(type) {
		case []interface{}, map[string]interface{}:
		default:
			return false
		}
	}
	return true
}

// stringValue returns v as a string when it is one, trimmed.
func stringValue(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// firstString returns the first non-empty string value among the given keys
// of a mapping.
func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := stringValue(m[k]); ok && s != "" {
			return s
		}
	}
	return ""
}
