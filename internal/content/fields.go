package content

import (
	"sort"
	"strings"

	"teachassist/internal/models"
)

func textSection(key, text string, mode models.ContentMode) models.Section {
	return models.Section{
		Key:      key,
		Kind:     models.SectionText,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
		Text:     text,
	}
}

func scalarSection(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := textSection(key, Stringify(v), mode)
	sec.Kind = models.SectionScalar
	return sec
}

// normalizeExamples reduces each item to a labeled example: strings go
// through the pattern extractor, mappings through a fixed key-preference
// lookup with a problem/explanation two-part special case.
func normalizeExamples(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := models.Section{
		Key:      key,
		Kind:     models.SectionExamples,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
	}
	for i, el := range CoerceSequence(v) {
		switch item := el.(type) {
		case string:
			if strings.TrimSpace(item) == "" {
				continue
			}
			sec.Items = append(sec.Items, ExtractLabel(item, RoleExample, i))
		case map[string]interface{}:
			label := firstString(item, "law", "title", "name")
			body := firstString(item, "example", "description", "content", "text")
			if label == "" && body == "" {
				if problem := firstString(item, "problem"); problem != "" {
					sec.Items = append(sec.Items, models.ExtractedLabel{
						Label: problem,
						Body:  firstString(item, "explanation", "solution"),
					})
					continue
				}
				body = Stringify(item)
			}
			if label == "" {
				sec.Items = append(sec.Items, ExtractLabel(body, RoleExample, i))
				continue
			}
			sec.Items = append(sec.Items, models.ExtractedLabel{Label: label, Body: body})
		default:
			sec.Items = append(sec.Items, models.ExtractedLabel{Label: "Example", Body: Stringify(el)})
		}
	}
	return sec
}

func normalizeMnemonics(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := normalizeExamples(key, v, mode)
	sec.Kind = models.SectionMnemonics
	return sec
}

// normalizeMisconceptions coerces the field to a sequence and reduces each
// element via the misconception/correction key preference. A mapping with
// none of the expected keys stringifies instead of vanishing.
func normalizeMisconceptions(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := models.Section{
		Key:      key,
		Kind:     models.SectionExamples,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
	}
	for i, el := range CoerceSequence(v) {
		switch item := el.(type) {
		case string:
			if strings.TrimSpace(item) == "" {
				continue
			}
			sec.Items = append(sec.Items, ExtractLabel(item, RoleExample, i))
		case map[string]interface{}:
			label := firstString(item, "misconception", "mistake")
			body := firstString(item, "correction", "fix")
			if label == "" && body == "" {
				sec.Items = append(sec.Items, models.ExtractedLabel{Label: "Example", Body: Stringify(item)})
				continue
			}
			if label == "" {
				label = "Correction"
			}
			sec.Items = append(sec.Items, models.ExtractedLabel{Label: label, Body: body})
		default:
			sec.Items = append(sec.Items, models.ExtractedLabel{Label: "Example", Body: Stringify(el)})
		}
	}
	return sec
}

// normalizeSolutionSteps builds the fixed 4-slot step records. A step
// without an explicit number gets its position; missing slots stay empty.
func normalizeSolutionSteps(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := models.Section{
		Key:      key,
		Kind:     models.SectionSteps,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
	}

	// A single free-text block splits into individual instructions first.
	if s, ok := v.(string); ok {
		for i, frag := range SplitInstructions(s) {
			sec.Steps = append(sec.Steps, models.SolutionStep{Number: i + 1, Action: frag})
		}
		return sec
	}

	for i, el := range CoerceSequence(v) {
		switch item := el.(type) {
		case map[string]interface{}:
			step := models.SolutionStep{
				Action:      firstString(item, "action", "step", "description"),
				Working:     firstString(item, "working", "work", "calculation"),
				Result:      firstString(item, "result", "answer"),
				Explanation: firstString(item, "explanation", "reason"),
			}
			if n, ok := item["step_number"].(float64); ok && n > 0 {
				step.Number = int(n)
			} else {
				// Positional fallback
				step.Number = i + 1
			}
			if step.Action == "" && step.Working == "" && step.Result == "" && step.Explanation == "" {
				step.Action = Stringify(item)
			}
			sec.Steps = append(sec.Steps, step)
		default:
			sec.Steps = append(sec.Steps, models.SolutionStep{Number: i + 1, Action: Stringify(el)})
		}
	}
	return sec
}

// normalizeQuickActivity turns a free-text activity into an ordered step
// sequence via the instruction splitter; list input keeps one step per
// item.
func normalizeQuickActivity(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := models.Section{
		Key:      key,
		Kind:     models.SectionSteps,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
	}
	switch val := v.(type) {
	case string:
		for i, frag := range SplitInstructions(val) {
			sec.Steps = append(sec.Steps, models.SolutionStep{Number: i + 1, Action: frag})
		}
	case []interface{}:
		for i, el := range val {
			action := ""
			if m, ok := el.(map[string]interface{}); ok {
				action = firstString(m, "step", "action", "description", "name")
			}
			if action == "" {
				action = Stringify(el)
			}
			if action == "" {
				continue
			}
			sec.Steps = append(sec.Steps, models.SolutionStep{Number: i + 1, Action: action})
		}
	default:
		return textSection(key, Stringify(v), mode)
	}
	if len(sec.Steps) == 0 {
		return textSection(key, Stringify(v), mode)
	}
	return sec
}

// normalizeActivities reduces each item with the name/duration/description/
// materials key preference; a materials sub-list becomes tags.
func normalizeActivities(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := models.Section{
		Key:      key,
		Kind:     models.SectionActivities,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
	}
	for i, el := range CoerceSequence(v) {
		switch item := el.(type) {
		case map[string]interface{}:
			activity := models.ActivityItem{
				Name:        firstString(item, "name", "title", "activity"),
				Description: firstString(item, "description", "details", "content"),
			}
			if d, ok := item["duration"]; ok {
				activity.Duration = Stringify(d)
			} else if d, ok := item["time"]; ok {
				activity.Duration = Stringify(d)
			}
			for _, mat := range CoerceSequence(item["materials"]) {
				if s := Stringify(mat); s != "" {
					activity.Materials = append(activity.Materials, s)
				}
			}
			if activity.Name == "" && activity.Description == "" {
				activity.Description = Stringify(item)
			}
			sec.Activities = append(sec.Activities, activity)
		case string:
			if strings.TrimSpace(item) == "" {
				continue
			}
			extracted := ExtractLabel(item, RoleExample, i)
			sec.Activities = append(sec.Activities, models.ActivityItem{
				Name:        extracted.Label,
				Description: extracted.Body,
			})
		default:
			sec.Activities = append(sec.Activities, models.ActivityItem{Description: Stringify(el)})
		}
	}
	return sec
}

// normalizeKeyed renders a grade-keyed (or otherwise keyed) mapping as a
// key-value block; any other shape falls back to text.
func normalizeKeyed(key string, v interface{}, mode models.ContentMode) models.Section {
	m, ok := v.(map[string]interface{})
	if !ok {
		return textSection(key, Stringify(v), mode)
	}
	sec := models.Section{
		Key:      key,
		Kind:     models.SectionKeyValue,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sec.Pairs = append(sec.Pairs, models.KeyValuePair{Key: TitleForKey(k), Value: Stringify(m[k])})
	}
	return sec
}

// miscSection wraps one unrecognized field into a trailing key-value
// section so no payload field is ever dropped.
func miscSection(key string, v interface{}) models.Section {
	sec := models.Section{
		Key:   key,
		Kind:  models.SectionKeyValue,
		Title: TitleForKey(key),
		Text:  Stringify(v),
	}
	if m, ok := v.(map[string]interface{}); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sec.Pairs = append(sec.Pairs, models.KeyValuePair{Key: k, Value: Stringify(m[k])})
		}
	}
	return sec
}
