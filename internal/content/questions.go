package content

import (
	"sort"
	"strings"

	"teachassist/internal/models"
)

// normalizeCheckUnderstanding handles the three shapes a
// check-for-understanding field arrives in:
//
//	(a) a mapping keyed by level name, each value a group of questions;
//	(b) a sequence of group mappings each carrying questions/question_list;
//	(c) a flat sequence of question strings or mappings.
//
// All three converge to the same {level, type?, question} record shape.
// Shapes (a) and (b) yield one section per level group; shape (c) yields a
// single section.
func normalizeCheckUnderstanding(key string, v interface{}, mode models.ContentMode) []models.Section {
	switch val := v.(type) {
	case map[string]interface{}:
		if IsLevelKeyedMapping(val) {
			return questionGroupsFromMapping(key, val, mode)
		}
		// A mapping that is not level-keyed still renders, via the
		// stringifier terminal branch.
		return []models.Section{textSection(key, Stringify(val), mode)}
	case []interface{}:
		if HasGroupedQuestions(val) {
			return questionGroupsFromSequence(key, val, mode)
		}
		return []models.Section{flatQuestionSection(key, val, mode)}
	default:
		// A single scalar where a sequence was expected is a sequence of one.
		return []models.Section{flatQuestionSection(key, CoerceSequence(v), mode)}
	}
}

// questionGroupsFromMapping turns level-name keys into groups. Known level
// names keep their canonical order; any others follow alphabetically so
// identical payloads always produce identical section order.
func questionGroupsFromMapping(key string, m map[string]interface{}, mode models.ContentMode) []models.Section {
	sections := make([]models.Section, 0, len(m))
	for _, level := range levelKeyOrder(m) {
		records := recordsFromGroup(m[level], level)
		if len(records) == 0 {
			continue
		}
		sec := questionSection(key, mode)
		sec.Level = level
		sec.Title = titleFor(key) + ": " + level
		sec.Questions = records
		sections = append(sections, sec)
	}
	if len(sections) == 0 {
		return []models.Section{textSection(key, Stringify(m), mode)}
	}
	return sections
}

func questionGroupsFromSequence(key string, seq []interface{}, mode models.ContentMode) []models.Section {
	var sections []models.Section
	var stray []interface{}
	groupIdx := 0
	for _, el := range seq {
		m, ok := el.(map[string]interface{})
		if !ok {
			stray = append(stray, el)
			continue
		}
		questions, has := m["questions"]
		if !has {
			questions, has = m["question_list"]
		}
		if !has {
			stray = append(stray, el)
			continue
		}
		level := firstString(m, "level", "difficulty")
		if level == "" {
			level = CycledLevel(groupIdx)
		}
		records := recordsFromGroup(questions, level)
		groupIdx++
		if len(records) == 0 {
			continue
		}
		sec := questionSection(key, mode)
		sec.Level = level
		sec.Title = titleFor(key) + ": " + level
		sec.Questions = records
		sections = append(sections, sec)
	}
	if len(stray) > 0 {
		sections = append(sections, flatQuestionSection(key, stray, mode))
	}
	if len(sections) == 0 {
		return []models.Section{textSection(key, Stringify(seq), mode)}
	}
	return sections
}

// flatQuestionSection levels plain strings cyclically by their position
// among the string items; mappings keep their own level or default to
// "Question".
func flatQuestionSection(key string, seq []interface{}, mode models.ContentMode) models.Section {
	sec := questionSection(key, mode)
	stringIdx := 0
	for _, el := range seq {
		switch item := el.(type) {
		case string:
			if strings.TrimSpace(item) == "" {
				continue
			}
			sec.Questions = append(sec.Questions, models.QuestionRecord{
				Level:    CycledLevel(stringIdx),
				Question: strings.TrimSpace(item),
			})
			stringIdx++
		default:
			sec.Questions = append(sec.Questions, questionRecordFrom(el))
		}
	}
	return sec
}

// questionRecordFrom reduces a single non-string item to a question record.
// The stringifier fallback guarantees the record is never silently empty.
func questionRecordFrom(v interface{}) models.QuestionRecord {
	if m, ok := v.(map[string]interface{}); ok {
		question := firstString(m, "question", "text", "q")
		if question == "" {
			question = Stringify(m)
		}
		level := firstString(m, "level", "difficulty")
		if level == "" {
			level = "Question"
		}
		return models.QuestionRecord{
			Level:    level,
			Type:     firstString(m, "type"),
			Question: question,
		}
	}
	return models.QuestionRecord{Level: "Question", Question: Stringify(v)}
}

// recordsFromGroup extracts question records from one level group's value,
// which may itself be a sequence, a questions-bearing mapping, or a scalar.
func recordsFromGroup(v interface{}, level string) []models.QuestionRecord {
	if m, ok := v.(map[string]interface{}); ok {
		if q, has := m["questions"]; has {
			v = q
		} else if q, has := m["question_list"]; has {
			v = q
		}
	}
	var records []models.QuestionRecord
	for _, el := range CoerceSequence(v) {
		rec := questionRecordFromWithLevel(el, level)
		if rec.Question != "" {
			records = append(records, rec)
		}
	}
	return records
}

func questionRecordFromWithLevel(v interface{}, level string) models.QuestionRecord {
	rec := questionRecordFrom(v)
	// The group's level wins over positional defaults, but an explicit
	// per-item level is kept.
	if m, ok := v.(map[string]interface{}); !ok || firstString(m, "level", "difficulty") == "" {
		rec.Level = level
	}
	if s, ok := v.(string); ok {
		rec = models.QuestionRecord{Level: level, Question: strings.TrimSpace(s)}
	}
	return rec
}

// normalizeOralQuestions coerces the field to a sequence and reduces each
// element via the question/text preference, without positional leveling.
func normalizeOralQuestions(key string, v interface{}, mode models.ContentMode) models.Section {
	sec := questionSection(key, mode)
	for _, el := range CoerceSequence(v) {
		switch item := el.(type) {
		case string:
			if strings.TrimSpace(item) == "" {
				continue
			}
			sec.Questions = append(sec.Questions, models.QuestionRecord{
				Level:    "Question",
				Question: strings.TrimSpace(item),
			})
		default:
			sec.Questions = append(sec.Questions, questionRecordFrom(el))
		}
	}
	return sec
}

func questionSection(key string, mode models.ContentMode) models.Section {
	return models.Section{
		Key:      key,
		Kind:     models.SectionLeveledQuestions,
		Title:    titleFor(key),
		Icon:     iconFor(key),
		Expanded: isExpanded(mode, key),
	}
}

// levelKeyOrder sorts level-name keys: the three canonical names first, in
// difficulty order, then everything else alphabetically.
func levelKeyOrder(m map[string]interface{}) []string {
	known := map[string]int{}
	for i, name := range LevelNames {
		known[strings.ToLower(name)] = i
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, iKnown := known[strings.ToLower(keys[i])]
		rj, jKnown := known[strings.ToLower(keys[j])]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
