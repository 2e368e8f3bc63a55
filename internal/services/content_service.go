package services

import (
	"context"

	"teachassist/internal/content"
	"teachassist/internal/models"
	"teachassist/internal/observability"
	contextutils "teachassist/internal/utils"
)

// ContentServiceInterface exposes the normalization pipeline and its
// projections to the HTTP handlers and the admin CLI.
type ContentServiceInterface interface {
	Normalize(ctx context.Context, payload map[string]interface{}) (models.ContentMode, []models.Section, error)
	Slides(ctx context.Context, payload map[string]interface{}) (models.ContentMode, []models.Slide, error)
	Narration(ctx context.Context, payload map[string]interface{}) (string, bool, error)
}

// ContentService is a traced, logged wrapper around the pure content core.
// The core itself never fails; errors here only report missing payloads.
type ContentService struct {
	logger *observability.Logger
}

// NewContentService creates a ContentService.
func NewContentService(logger *observability.Logger) *ContentService {
	return &ContentService{logger: logger}
}

// Normalize runs one render pass over the payload.
func (s *ContentService) Normalize(ctx context.Context, payload map[string]interface{}) (result0 models.ContentMode, result1 []models.Section, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "normalize",
		observability.AttributePayloadKeys(len(payload)),
	)
	defer observability.FinishSpan(span, &err)

	if payload == nil {
		return "", nil, contextutils.WrapError(contextutils.ErrPayloadMissing, "payload is required")
	}

	mode, sections := content.BuildSections(payload)
	span.SetAttributes(
		observability.AttributeContentMode(mode),
		observability.AttributeSectionCount(len(sections)),
	)
	s.logger.Debug(ctx, "Normalized payload", map[string]interface{}{
		"mode":          string(mode),
		"section_count": len(sections),
		"payload_keys":  len(payload),
	})
	return mode, sections, nil
}

// Slides projects the payload into a slide deck.
func (s *ContentService) Slides(ctx context.Context, payload map[string]interface{}) (result0 models.ContentMode, result1 []models.Slide, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "slides",
		observability.AttributePayloadKeys(len(payload)),
	)
	defer observability.FinishSpan(span, &err)

	if payload == nil {
		return "", nil, contextutils.WrapError(contextutils.ErrPayloadMissing, "payload is required")
	}

	mode, slides := content.BuildSlideDeck(payload)
	span.SetAttributes(
		observability.AttributeContentMode(mode),
		observability.AttributeSlideCount(len(slides)),
	)
	s.logger.Debug(ctx, "Built slide deck", map[string]interface{}{
		"mode":        string(mode),
		"slide_count": len(slides),
	})
	return mode, slides, nil
}

// Narration selects the read-aloud text for the payload. The bool reports
// whether the structured-data placeholder was substituted.
func (s *ContentService) Narration(ctx context.Context, payload map[string]interface{}) (result0 string, result1 bool, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "narration",
		observability.AttributePayloadKeys(len(payload)),
	)
	defer observability.FinishSpan(span, &err)

	if payload == nil {
		return "", false, contextutils.WrapError(contextutils.ErrPayloadMissing, "payload is required")
	}

	text, placeholder := content.NarrationText(payload)
	s.logger.Debug(ctx, "Selected narration text", map[string]interface{}{
		"text_length": len(text),
		"placeholder": placeholder,
	})
	return text, placeholder, nil
}
