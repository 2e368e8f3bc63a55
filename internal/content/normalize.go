package content

import (
	"sort"

	"teachassist/internal/models"
)

// Fields with a dedicated normalizer. Every other field renders as text,
// known fields with their canonical title.
var fieldNormalizers = map[string]func(key string, v interface{}, mode models.ContentMode) []models.Section{
	"specific_examples":     one(normalizeExamples),
	"generic_examples":      one(normalizeExamples),
	"similar_practice":      one(normalizeExamples),
	"mnemonics_hooks":       one(normalizeMnemonics),
	"common_misconceptions": one(normalizeMisconceptions),
	"common_mistakes":       one(normalizeMisconceptions),

	"check_for_understanding": normalizeCheckUnderstanding,
	"oral_questions":          one(normalizeOralQuestions),
	"exit_questions":          one(normalizeOralQuestions),

	"solution_steps": one(normalizeSolutionSteps),
	"quick_activity": one(normalizeQuickActivity),
	"activities":     one(normalizeActivities),

	"multi_grade_adaptations": one(normalizeKeyed),
	"low_tlm_alternatives":    one(normalizeKeyed),

	"final_answer":      one(scalarSection),
	"problem_statement": one(scalarSection),
	"duration_minutes":  one(scalarSection),
}

func one(f func(string, interface{}, models.ContentMode) models.Section) func(string, interface{}, models.ContentMode) []models.Section {
	return func(key string, v interface{}, mode models.ContentMode) []models.Section {
		return []models.Section{f(key, v, mode)}
	}
}

// NormalizeField turns one payload field into its renderable sections.
// Fields without a dedicated normalizer stringify into a text section, so
// any truthy field produces at least one section.
func NormalizeField(key string, v interface{}, mode models.ContentMode) []models.Section {
	if f, ok := fieldNormalizers[key]; ok {
		return f(key, v, mode)
	}
	return []models.Section{textSection(key, Stringify(v), mode)}
}

// BuildSections is the single render pass: it resolves the payload's mode,
// emits the mode's fields in their fixed order, then appends every
// remaining truthy field as a miscellaneous section in sorted key order.
// Denylisted bookkeeping fields never render.
func BuildSections(payload map[string]interface{}) (models.ContentMode, []models.Section) {
	mode := ResolveMode(payload)

	var sections []models.Section
	emitted := make(map[string]bool, len(payload))

	for _, key := range modeOrder[mode] {
		v, ok := payload[key]
		if !ok || !IsTruthy(v) {
			continue
		}
		emitted[key] = true
		sections = append(sections, NormalizeField(key, v, mode)...)
	}

	// Miscellaneous bucket: everything truthy the mode's table didn't claim.
	rest := make([]string, 0, len(payload))
	for key, v := range payload {
		if emitted[key] || fieldDenylist[key] || !IsTruthy(v) {
			continue
		}
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		sections = append(sections, miscSection(key, payload[key]))
	}

	// Generic payloads have no preferred field, so open the first section.
	if mode == models.ModeGeneric && len(sections) > 0 && !sections[0].Expanded {
		sections[0].Expanded = true
	}

	return mode, sections
}
