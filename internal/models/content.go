// Package models defines the data structures shared between the content
// normalization core, the services, and the HTTP API.
package models

// ContentMode is the inferred overall presentation context for one AI
// payload. It governs which fields are expected and in which order their
// sections render.
type ContentMode string

const (
	// ModeExplanation is a tutoring-style concept explanation
	ModeExplanation ContentMode = "explanation"
	// ModeClassroomAssist is an in-the-moment classroom intervention
	ModeClassroomAssist ContentMode = "classroom-assist"
	// ModeLessonPlan is a structured lesson plan
	ModeLessonPlan ContentMode = "lesson-plan"
	// ModeMathSolution is a worked math solution
	ModeMathSolution ContentMode = "math-solution"
	// ModeGeneric is the fallback when no marker fields are present
	ModeGeneric ContentMode = "generic"
)

// SectionKind is the structural category of a normalized section.
type SectionKind string

const (
	// SectionText is a free-text block rendered as markdown
	SectionText SectionKind = "text"
	// SectionExamples is a list of labeled example items
	SectionExamples SectionKind = "list-of-examples"
	// SectionLeveledQuestions is a set of questions grouped by difficulty level
	SectionLeveledQuestions SectionKind = "leveled-questions"
	// SectionMnemonics is a list of memory hooks
	SectionMnemonics SectionKind = "mnemonic-list"
	// SectionSteps is an ordered step sequence
	SectionSteps SectionKind = "step-sequence"
	// SectionActivities is a list of classroom activities
	SectionActivities SectionKind = "activity-list"
	// SectionKeyValue is a generic key-value block (miscellaneous bucket)
	SectionKeyValue SectionKind = "key-value-block"
	// SectionScalar is a single highlighted value (e.g. a final answer)
	SectionScalar SectionKind = "scalar-highlight"
)

// ExtractedLabel is a (label, body) pair pulled out of one free-text string
// by the pattern extractor. Ephemeral; it only ever populates a Section.
type ExtractedLabel struct {
	Label string `json:"label"`
	Body  string `json:"body"`
}

// QuestionRecord is the converged internal shape for one
// check-for-understanding or oral question.
type QuestionRecord struct {
	Level    string `json:"level"`
	Type     string `json:"type,omitempty"`
	Question string `json:"question"`
}

// SolutionStep is one step of a worked math solution. Missing slots render
// as empty strings, never as an error.
type SolutionStep struct {
	Number      int    `json:"number"`
	Action      string `json:"action"`
	Working     string `json:"working"`
	Result      string `json:"result"`
	Explanation string `json:"explanation,omitempty"`
}

// ActivityItem is one classroom activity with optional materials tags.
type ActivityItem struct {
	Name        string   `json:"name"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
	Materials   []string `json:"materials,omitempty"`
}

// KeyValuePair is one entry of a key-value block section.
type KeyValuePair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Section is one normalized, renderable unit derived from one payload
// field. Sections are created fresh per normalization pass and carry no
// persisted identity; their order is fixed by the mode's ordering table.
type Section struct {
	Key      string      `json:"key"`
	Kind     SectionKind `json:"kind"`
	Title    string      `json:"title"`
	Icon     string      `json:"icon,omitempty"`
	Expanded bool        `json:"expanded"`

	// Exactly one of the payload fields below is populated, matching Kind.
	Text       string           `json:"text,omitempty"`
	Items      []ExtractedLabel `json:"items,omitempty"`
	Questions  []QuestionRecord `json:"questions,omitempty"`
	Level      string           `json:"level,omitempty"` // group level for leveled-question sections
	Steps      []SolutionStep   `json:"steps,omitempty"`
	Activities []ActivityItem   `json:"activities,omitempty"`
	Pairs      []KeyValuePair   `json:"pairs,omitempty"`
}

// Slide is one slide of the deck projection.
type Slide struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Notes    string `json:"notes,omitempty"`
}
