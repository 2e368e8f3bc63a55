package handlers

import (
	"net/http"
	"strings"

	"teachassist/internal/models"
	"teachassist/internal/observability"
	"teachassist/internal/services"
	contextutils "teachassist/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the normalization pipeline over HTTP.
type ContentHandler struct {
	contentService services.ContentServiceInterface
	logger         *observability.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentService services.ContentServiceInterface, logger *observability.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// bindRenderRequest decodes the common request envelope and applies the
// raw-text fallback: a missing payload with raw text present renders as a
// generic payload wrapping that text.
func (h *ContentHandler) bindRenderRequest(c *gin.Context) (map[string]interface{}, error) {
	var req models.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, contextutils.WrapError(contextutils.ErrInvalidFormat, "failed to parse request body")
	}

	if req.Payload != nil {
		return req.Payload, nil
	}
	if strings.TrimSpace(req.RawText) != "" {
		return map[string]interface{}{"content": req.RawText}, nil
	}
	return nil, contextutils.WrapError(contextutils.ErrPayloadMissing, "either payload or raw_text is required")
}

// Sections handles POST /v1/content/sections
func (h *ContentHandler) Sections(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "content_sections")
	defer span.End()

	payload, err := h.bindRenderRequest(c)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	mode, sections, err := h.contentService.Normalize(ctx, payload)
	if err != nil {
		h.logger.Error(ctx, "Failed to normalize payload", err, nil)
		HandleAppError(c, err)
		return
	}
	if sections == nil {
		sections = []models.Section{}
	}

	span.SetAttributes(
		observability.AttributeContentMode(mode),
		observability.AttributeSectionCount(len(sections)),
	)
	c.JSON(http.StatusOK, models.SectionsResponse{Mode: mode, Sections: sections})
}

// Slides handles POST /v1/content/slides
func (h *ContentHandler) Slides(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "content_slides")
	defer span.End()

	payload, err := h.bindRenderRequest(c)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	mode, slides, err := h.contentService.Slides(ctx, payload)
	if err != nil {
		h.logger.Error(ctx, "Failed to build slide deck", err, nil)
		HandleAppError(c, err)
		return
	}

	span.SetAttributes(
		observability.AttributeContentMode(mode),
		observability.AttributeSlideCount(len(slides)),
	)
	c.JSON(http.StatusOK, models.SlidesResponse{Mode: mode, Slides: slides})
}

// Narration handles POST /v1/content/narration
func (h *ContentHandler) Narration(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "content_narration")
	defer span.End()

	payload, err := h.bindRenderRequest(c)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	text, placeholder, err := h.contentService.Narration(ctx, payload)
	if err != nil {
		h.logger.Error(ctx, "Failed to select narration text", err, nil)
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NarrationResponse{Text: text, Placeholder: placeholder})
}
