package content

import "teachassist/internal/models"

// Marker fields whose presence selects a mode. Precedence when several
// marker sets are present: math-solution > classroom-assist > lesson-plan >
// explanation > generic.
var (
	mathMarkers        = []string{"solution_steps", "final_answer"}
	assistMarkers      = []string{"understanding", "immediate_action", "quick_activity"}
	planMarkers        = []string{"learning_objectives", "activities", "exit_questions"}
	explanationMarkers = []string{
		"conceptual_briefing", "simple_explanation", "what_to_say",
		"specific_examples", "generic_examples", "visual_aid_idea",
		"check_for_understanding", "common_misconceptions", "oral_questions",
	}
)

// modeOrder fixes the section ordering per mode. The renderer iterates this
// list and emits a section only for fields present and truthy in the
// payload; ordering never depends on payload key order.
var modeOrder = map[models.ContentMode][]string{
	models.ModeExplanation: {
		"conceptual_briefing", "simple_explanation", "mnemonics_hooks",
		"what_to_say", "specific_examples", "generic_examples",
		"visual_aid_idea", "check_for_understanding",
		"common_misconceptions", "oral_questions",
	},
	models.ModeClassroomAssist: {
		"understanding", "immediate_action", "mnemonics_hooks",
		"quick_activity", "bridge_the_gap", "check_progress", "for_later",
	},
	models.ModeLessonPlan: {
		"learning_objectives", "duration_minutes", "activities",
		"multi_grade_adaptations", "low_tlm_alternatives", "exit_questions",
	},
	models.ModeMathSolution: {
		"problem_statement", "solution_steps", "final_answer",
		"verification", "concept_explanation", "common_mistakes",
		"similar_practice",
	},
	models.ModeGeneric: {
		"content",
	},
}

// expandedByDefault lists the fields each mode opens without a click.
var expandedByDefault = map[models.ContentMode]map[string]bool{
	models.ModeExplanation:     {"simple_explanation": true},
	models.ModeClassroomAssist: {"understanding": true, "immediate_action": true},
	models.ModeLessonPlan:      {"learning_objectives": true},
	models.ModeMathSolution:    {"solution_steps": true, "final_answer": true},
	models.ModeGeneric:         {"content": true},
}

// fieldTitles are the canonical display titles for known fields. Unknown
// fields derive their title from the key.
var fieldTitles = map[string]string{
	"conceptual_briefing":     "Conceptual Briefing",
	"simple_explanation":      "Simple Explanation",
	"mnemonics_hooks":         "Mnemonics & Hooks",
	"what_to_say":             "What to Say",
	"specific_examples":       "Specific Examples",
	"generic_examples":        "More Examples",
	"visual_aid_idea":         "Visual Aid Idea",
	"check_for_understanding": "Check for Understanding",
	"common_misconceptions":   "Common Misconceptions",
	"oral_questions":          "Oral Questions",
	"understanding":           "Understanding the Situation",
	"immediate_action":        "Immediate Action",
	"quick_activity":          "Quick Activity",
	"bridge_the_gap":          "Bridge the Gap",
	"check_progress":          "Check Progress",
	"for_later":               "For Later",
	"learning_objectives":     "Learning Objectives",
	"duration_minutes":        "Duration (minutes)",
	"activities":              "Activities",
	"multi_grade_adaptations": "Multi-grade Adaptations",
	"low_tlm_alternatives":    "Low-TLM Alternatives",
	"exit_questions":          "Exit Questions",
	"problem_statement":       "Problem",
	"solution_steps":          "Solution Steps",
	"final_answer":            "Final Answer",
	"verification":            "Verification",
	"concept_explanation":     "Concept Explanation",
	"common_mistakes":         "Common Mistakes",
	"similar_practice":        "Similar Practice",
	"content":                 "Response",
}

// fieldIcons carry rendering hints for the external renderer; the core
// never produces markup itself.
var fieldIcons = map[string]string{
	"conceptual_briefing":     "book",
	"simple_explanation":      "lightbulb",
	"mnemonics_hooks":         "anchor",
	"what_to_say":             "message",
	"specific_examples":       "list",
	"generic_examples":        "list",
	"visual_aid_idea":         "image",
	"check_for_understanding": "help",
	"common_misconceptions":   "alert",
	"oral_questions":          "mic",
	"understanding":           "eye",
	"immediate_action":        "zap",
	"quick_activity":          "play",
	"bridge_the_gap":          "link",
	"check_progress":          "check",
	"for_later":               "clock",
	"learning_objectives":     "target",
	"duration_minutes":        "clock",
	"activities":              "play",
	"multi_grade_adaptations": "layers",
	"low_tlm_alternatives":    "tool",
	"exit_questions":          "door",
	"problem_statement":       "file",
	"solution_steps":          "list-ordered",
	"final_answer":            "check-circle",
	"verification":            "shield",
	"concept_explanation":     "book",
	"common_mistakes":         "alert",
	"similar_practice":        "repeat",
	"content":                 "file-text",
}

// fieldDenylist holds internal bookkeeping fields that never render, not
// even in the miscellaneous bucket.
var fieldDenylist = map[string]bool{
	"raw_response": true,
	"problem_type": true,
}

// ResolveMode classifies the payload into a presentation mode by which
// marker fields are present and truthy.
func ResolveMode(payload map[string]interface{}) models.ContentMode {
	if anyMarker(payload, mathMarkers) {
		return models.ModeMathSolution
	}
	if anyMarker(payload, assistMarkers) {
		return models.ModeClassroomAssist
	}
	if anyMarker(payload, planMarkers) {
		return models.ModeLessonPlan
	}
	if anyMarker(payload, explanationMarkers) {
		return models.ModeExplanation
	}
	return models.ModeGeneric
}

func anyMarker(payload map[string]interface{}, markers []string) bool {
	for _, key := range markers {
		if v, ok := payload[key]; ok && IsTruthy(v) {
			return true
		}
	}
	return false
}

// titleFor returns the display title for a field key.
func titleFor(key string) string {
	if t, ok := fieldTitles[key]; ok {
		return t
	}
	return TitleForKey(key)
}

func iconFor(key string) string {
	return fieldIcons[key]
}

func isExpanded(mode models.ContentMode, key string) bool {
	return expandedByDefault[mode][key]
}
