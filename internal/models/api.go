package models

// RenderRequest is the common request envelope for the content endpoints.
// Payload is the untyped AI-generated tree; RawText is the unstructured
// fallback shown when no payload is available at all.
type RenderRequest struct {
	Payload map[string]interface{} `json:"payload"`
	RawText string                 `json:"raw_text,omitempty"`
}

// SectionsResponse is the normalized section list for one payload.
type SectionsResponse struct {
	Mode     ContentMode `json:"mode"`
	Sections []Section   `json:"sections"`
}

// SlidesResponse is the slide deck projection for one payload.
type SlidesResponse struct {
	Mode   ContentMode `json:"mode"`
	Slides []Slide     `json:"slides"`
}

// NarrationResponse is the narration projection for one payload.
// Placeholder reports that the selected text looked like serialized
// structured data and was replaced with a generic spoken line.
type NarrationResponse struct {
	Text        string `json:"text"`
	Placeholder bool   `json:"placeholder"`
}

// AnswerRequest asks the AI provider to answer a single
// check-for-understanding question.
type AnswerRequest struct {
	Question string `json:"question" binding:"required,min=1,max=2000"`
	Topic    string `json:"topic,omitempty" binding:"max=200"`
	Grade    string `json:"grade,omitempty" binding:"max=40"`
	Language string `json:"language,omitempty" binding:"max=60"`
}

// AnswerResponse carries the provider's answer for one question.
type AnswerResponse struct {
	Answer string `json:"answer"`
}
