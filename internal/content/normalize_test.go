package content

import (
	"testing"

	"teachassist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionKeys(sections []models.Section) []string {
	keys := make([]string, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestBuildSections_ExplanationOrdering(t *testing.T) {
	// Payload key order must not matter; the mode table fixes the order.
	payload := map[string]interface{}{
		"specific_examples":   []interface{}{"**Law**: body"},
		"conceptual_briefing": "The big picture.",
		"simple_explanation":  "The small picture.",
	}
	mode, sections := BuildSections(payload)
	assert.Equal(t, models.ModeExplanation, mode)
	assert.Equal(t, []string{"conceptual_briefing", "simple_explanation", "specific_examples"}, sectionKeys(sections))
	assert.True(t, sections[1].Expanded)
	assert.False(t, sections[0].Expanded)
}

func TestBuildSections_EmptyMeansAbsent(t *testing.T) {
	payload := map[string]interface{}{
		"simple_explanation":  "keep",
		"conceptual_briefing": "",
		"specific_examples":   []interface{}{},
		"oral_questions":      nil,
	}
	_, sections := BuildSections(payload)
	assert.Equal(t, []string{"simple_explanation"}, sectionKeys(sections))
}

func TestBuildSections_Denylist(t *testing.T) {
	payload := map[string]interface{}{
		"simple_explanation": "x",
		"raw_response":       "internal dump",
		"problem_type":       "algebra",
	}
	_, sections := BuildSections(payload)
	assert.Equal(t, []string{"simple_explanation"}, sectionKeys(sections))
}

func TestBuildSections_MiscellaneousBucket(t *testing.T) {
	// Scenario: unrecognized nested mapping still renders, stringified.
	payload := map[string]interface{}{
		"weird_field": map[string]interface{}{
			"a": float64(1),
			"b": []interface{}{float64(1), float64(2), float64(3)},
		},
	}
	mode, sections := BuildSections(payload)
	assert.Equal(t, models.ModeGeneric, mode)
	require.Len(t, sections, 1)

	sec := sections[0]
	assert.Equal(t, models.SectionKeyValue, sec.Kind)
	assert.Equal(t, "weird field", sec.Title)
	assert.Contains(t, sec.Text, "**a**: 1")
	assert.Contains(t, sec.Text, "3")
}

func TestBuildSections_GenericExpandsFirstSection(t *testing.T) {
	_, sections := BuildSections(map[string]interface{}{
		"alpha_note": "a",
		"beta_note":  "b",
	})
	require.Len(t, sections, 2)
	assert.True(t, sections[0].Expanded)
	assert.False(t, sections[1].Expanded)
}

func TestBuildSections_MiscBucketSortedAfterModeFields(t *testing.T) {
	payload := map[string]interface{}{
		"simple_explanation": "x",
		"zeta_extra":         "z",
		"alpha_extra":        "a",
	}
	_, sections := BuildSections(payload)
	assert.Equal(t, []string{"simple_explanation", "alpha_extra", "zeta_extra"}, sectionKeys(sections))
}

func TestBuildSections_NoDataLoss(t *testing.T) {
	// Every truthy non-denylisted field must surface as at least one section.
	payload := map[string]interface{}{
		"simple_explanation": "a",
		"unknown_one":        map[string]interface{}{"x": "y"},
		"unknown_two":        []interface{}{"p", "q"},
		"unknown_three":      float64(9),
	}
	_, sections := BuildSections(payload)
	seen := map[string]bool{}
	for _, s := range sections {
		seen[s.Key] = true
	}
	for key := range payload {
		assert.True(t, seen[key], "field %q was dropped", key)
	}
}

func TestNormalizeExamples(t *testing.T) {
	t.Run("string items go through the extractor", func(t *testing.T) {
		sec := normalizeExamples("specific_examples", []interface{}{
			"**Newton's First Law**: objects at rest stay at rest",
			"plain example with no label",
		}, models.ModeExplanation)
		require.Len(t, sec.Items, 2)
		assert.Equal(t, "Newton's First Law", sec.Items[0].Label)
		assert.Equal(t, "Example", sec.Items[1].Label)
		assert.Equal(t, models.SectionExamples, sec.Kind)
	})

	t.Run("mapping items use key preference", func(t *testing.T) {
		sec := normalizeExamples("specific_examples", []interface{}{
			map[string]interface{}{"law": "Ohm's Law", "example": "V = IR"},
			map[string]interface{}{"title": "Named", "description": "desc"},
		}, models.ModeExplanation)
		require.Len(t, sec.Items, 2)
		assert.Equal(t, models.ExtractedLabel{Label: "Ohm's Law", Body: "V = IR"}, sec.Items[0])
		assert.Equal(t, models.ExtractedLabel{Label: "Named", Body: "desc"}, sec.Items[1])
	})

	t.Run("problem explanation pair", func(t *testing.T) {
		sec := normalizeExamples("similar_practice", []interface{}{
			map[string]interface{}{"problem": "Solve 3x=9", "explanation": "Divide both sides by 3"},
		}, models.ModeMathSolution)
		require.Len(t, sec.Items, 1)
		assert.Equal(t, "Solve 3x=9", sec.Items[0].Label)
		assert.Equal(t, "Divide both sides by 3", sec.Items[0].Body)
	})

	t.Run("single mapping coerces to a one item list", func(t *testing.T) {
		sec := normalizeExamples("specific_examples",
			map[string]interface{}{"title": "Only", "description": "one"},
			models.ModeExplanation)
		require.Len(t, sec.Items, 1)
		assert.Equal(t, "Only", sec.Items[0].Label)
	})
}

func TestNormalizeMisconceptions(t *testing.T) {
	sec := normalizeMisconceptions("common_misconceptions", []interface{}{
		map[string]interface{}{"misconception": "Heavier falls faster", "correction": "Mass does not matter in vacuum"},
		map[string]interface{}{"mistake": "Forgetting to carry", "fix": "Line up the columns"},
		"Dividing by zero gives zero: it is undefined instead",
	}, models.ModeExplanation)
	require.Len(t, sec.Items, 3)
	assert.Equal(t, "Heavier falls faster", sec.Items[0].Label)
	assert.Equal(t, "Mass does not matter in vacuum", sec.Items[0].Body)
	assert.Equal(t, "Forgetting to carry", sec.Items[1].Label)
	assert.Equal(t, "Dividing by zero gives zero", sec.Items[2].Label)
}

func TestNormalizeSolutionSteps(t *testing.T) {
	t.Run("positional numbering fallback", func(t *testing.T) {
		// Scenario: one step without step_number gets number 1.
		sec := normalizeSolutionSteps("solution_steps", []interface{}{
			map[string]interface{}{"action": "Add", "working": "2+2", "result": "4"},
		}, models.ModeMathSolution)
		require.Len(t, sec.Steps, 1)
		assert.Equal(t, 1, sec.Steps[0].Number)
		assert.Equal(t, "Add", sec.Steps[0].Action)
		assert.Equal(t, "2+2", sec.Steps[0].Working)
		assert.Equal(t, "4", sec.Steps[0].Result)
	})

	t.Run("explicit step_number wins", func(t *testing.T) {
		sec := normalizeSolutionSteps("solution_steps", []interface{}{
			map[string]interface{}{"step_number": float64(3), "action": "Check"},
		}, models.ModeMathSolution)
		require.Len(t, sec.Steps, 1)
		assert.Equal(t, 3, sec.Steps[0].Number)
	})

	t.Run("free text splits into instructions", func(t *testing.T) {
		sec := normalizeSolutionSteps("solution_steps",
			"1. Isolate x. 2. Divide by the coefficient.", models.ModeMathSolution)
		require.Len(t, sec.Steps, 2)
		assert.Equal(t, "Isolate x.", sec.Steps[0].Action)
		assert.Equal(t, 2, sec.Steps[1].Number)
	})

	t.Run("mapping with unknown keys stringifies", func(t *testing.T) {
		sec := normalizeSolutionSteps("solution_steps", []interface{}{
			map[string]interface{}{"odd": "value"},
		}, models.ModeMathSolution)
		require.Len(t, sec.Steps, 1)
		assert.Contains(t, sec.Steps[0].Action, "value")
	})
}

func TestNormalizeQuickActivity(t *testing.T) {
	sec := normalizeQuickActivity("quick_activity",
		"1. Pair up students. 2. Hand out counters. 3. Race to twenty.",
		models.ModeClassroomAssist)
	require.Equal(t, models.SectionSteps, sec.Kind)
	require.Len(t, sec.Steps, 3)
	assert.Equal(t, "Pair up students.", sec.Steps[0].Action)
	assert.Equal(t, 3, sec.Steps[2].Number)
}

func TestNormalizeActivities(t *testing.T) {
	sec := normalizeActivities("activities", []interface{}{
		map[string]interface{}{
			"name":        "Group sort",
			"duration":    float64(10),
			"description": "Sort shapes by sides",
			"materials":   []interface{}{"cards", "timer"},
		},
		"Warm-up: count by fives",
	}, models.ModeLessonPlan)
	require.Len(t, sec.Activities, 2)
	assert.Equal(t, "Group sort", sec.Activities[0].Name)
	assert.Equal(t, "10", sec.Activities[0].Duration)
	assert.Equal(t, []string{"cards", "timer"}, sec.Activities[0].Materials)
	assert.Equal(t, "Warm-up", sec.Activities[1].Name)
	assert.Equal(t, "count by fives", sec.Activities[1].Description)
}

func TestNormalizeKeyed(t *testing.T) {
	sec := normalizeKeyed("multi_grade_adaptations", map[string]interface{}{
		"grade_3": "use counters",
		"grade_5": "use fractions",
	}, models.ModeLessonPlan)
	require.Len(t, sec.Pairs, 2)
	assert.Equal(t, models.KeyValuePair{Key: "grade 3", Value: "use counters"}, sec.Pairs[0])
	assert.Equal(t, models.KeyValuePair{Key: "grade 5", Value: "use fractions"}, sec.Pairs[1])
}

func TestScalarSection(t *testing.T) {
	sec := scalarSection("final_answer", float64(4), models.ModeMathSolution)
	assert.Equal(t, models.SectionScalar, sec.Kind)
	assert.Equal(t, "4", sec.Text)
	assert.Equal(t, "Final Answer", sec.Title)
	assert.True(t, sec.Expanded)
}

func TestBuildSections_Deterministic(t *testing.T) {
	payload := map[string]interface{}{
		"simple_explanation": "x",
		"b_extra":            "b",
		"a_extra":            "a",
		"c_extra":            map[string]interface{}{"z": "1", "y": "2"},
	}
	_, want := BuildSections(payload)
	for i := 0; i < 25; i++ {
		_, got := BuildSections(payload)
		assert.Equal(t, want, got)
	}
}
