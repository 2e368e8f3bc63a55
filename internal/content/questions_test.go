package content

import (
	"testing"

	"teachassist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The three arrival shapes of check_for_understanding converge to the same
// record shape.
func TestNormalizeCheckUnderstanding_ThreeShapes(t *testing.T) {
	t.Run("level keyed mapping", func(t *testing.T) {
		sections := normalizeCheckUnderstanding("check_for_understanding", map[string]interface{}{
			"Application":  []interface{}{"Apply it to a pendulum"},
			"Basic Recall": []interface{}{"What is inertia?"},
		}, models.ModeExplanation)
		require.Len(t, sections, 2)
		// Canonical difficulty order, not payload or alphabetical order.
		assert.Equal(t, "Basic Recall", sections[0].Level)
		assert.Equal(t, "Application", sections[1].Level)
		require.Len(t, sections[0].Questions, 1)
		assert.Equal(t, "What is inertia?", sections[0].Questions[0].Question)
		assert.Equal(t, "Basic Recall", sections[0].Questions[0].Level)
	})

	t.Run("sequence of groups", func(t *testing.T) {
		sections := normalizeCheckUnderstanding("check_for_understanding", []interface{}{
			map[string]interface{}{"level": "Basic", "questions": []interface{}{"q1", "q2"}},
			map[string]interface{}{"questions": []interface{}{"q3"}},
		}, models.ModeExplanation)
		require.Len(t, sections, 2)
		assert.Equal(t, "Basic", sections[0].Level)
		require.Len(t, sections[0].Questions, 2)
		// Group without a level gets the cycled name for its group position.
		assert.Equal(t, "Application", sections[1].Level)
	})

	t.Run("flat sequence of strings", func(t *testing.T) {
		sections := normalizeCheckUnderstanding("check_for_understanding", []interface{}{
			"first", "second", "third", "fourth",
		}, models.ModeExplanation)
		require.Len(t, sections, 1)
		qs := sections[0].Questions
		require.Len(t, qs, 4)
		assert.Equal(t, "Basic Recall", qs[0].Level)
		assert.Equal(t, "Application", qs[1].Level)
		assert.Equal(t, "Critical Thinking", qs[2].Level)
		assert.Equal(t, "Basic Recall", qs[3].Level)
	})
}

func TestFlatQuestionSection_MixedItems(t *testing.T) {
	// A mapping item keeps its own level (or the "Question" default) and does
	// not advance the cycle for string items.
	sec := flatQuestionSection("check_for_understanding", []interface{}{
		map[string]interface{}{"question": "mapped one"},
		"string one",
		map[string]interface{}{"question": "typed", "level": "Hard", "type": "oral"},
		"string two",
	}, models.ModeExplanation)
	require.Len(t, sec.Questions, 4)
	assert.Equal(t, models.QuestionRecord{Level: "Question", Question: "mapped one"}, sec.Questions[0])
	assert.Equal(t, "Basic Recall", sec.Questions[1].Level)
	assert.Equal(t, models.QuestionRecord{Level: "Hard", Type: "oral", Question: "typed"}, sec.Questions[2])
	assert.Equal(t, "Application", sec.Questions[3].Level)
}

func TestQuestionRecordFrom_Fallbacks(t *testing.T) {
	t.Run("question key preference", func(t *testing.T) {
		rec := questionRecordFrom(map[string]interface{}{"text": "via text"})
		assert.Equal(t, "via text", rec.Question)
		rec = questionRecordFrom(map[string]interface{}{"q": "via q"})
		assert.Equal(t, "via q", rec.Question)
	})

	t.Run("unknown mapping stringifies instead of vanishing", func(t *testing.T) {
		rec := questionRecordFrom(map[string]interface{}{"prompt": "odd shape"})
		assert.Contains(t, rec.Question, "odd shape")
	})

	t.Run("scalar", func(t *testing.T) {
		rec := questionRecordFrom(float64(7))
		assert.Equal(t, "7", rec.Question)
		assert.Equal(t, "Question", rec.Level)
	})
}

func TestNormalizeOralQuestions(t *testing.T) {
	sec := normalizeOralQuestions("oral_questions", []interface{}{
		"How do you know?",
		map[string]interface{}{"question": "Why?", "level": "Probe"},
	}, models.ModeExplanation)
	require.Len(t, sec.Questions, 2)
	// Oral questions never level cyclically.
	assert.Equal(t, "Question", sec.Questions[0].Level)
	assert.Equal(t, "Probe", sec.Questions[1].Level)
}

func TestNormalizeCheckUnderstanding_ScalarCoerces(t *testing.T) {
	sections := normalizeCheckUnderstanding("check_for_understanding",
		"What is the capital of France", models.ModeExplanation)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Questions, 1)
	assert.Equal(t, "What is the capital of France", sections[0].Questions[0].Question)
}

func TestLevelKeyOrder(t *testing.T) {
	keys := levelKeyOrder(map[string]interface{}{
		"Zany":              []interface{}{"q"},
		"critical thinking": []interface{}{"q"},
		"Application":       []interface{}{"q"},
		"Another":           []interface{}{"q"},
	})
	assert.Equal(t, []string{"Application", "critical thinking", "Another", "Zany"}, keys)
}
