package handlers

import (
	"net/http"

	"teachassist/internal/models"
	"teachassist/internal/observability"
	"teachassist/internal/services"
	contextutils "teachassist/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// AnswerFailedMessage is the exact user-facing string clients show on a
// card when the answer fetch fails. Clients match on behavior, not wording,
// but the string is part of the API surface and must not drift.
const AnswerFailedMessage = "Failed to load answer. Please try again."

// AnswerHandler serves the per-question answer fetch.
type AnswerHandler struct {
	answerService services.AnswerServiceInterface
	logger        *observability.Logger
}

// NewAnswerHandler creates a new answer handler.
func NewAnswerHandler(answerService services.AnswerServiceInterface, logger *observability.Logger) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
		logger:        logger,
	}
}

// Answer handles POST /v1/questions/answer. Each request is independent;
// a failing sibling question never affects this one, and a retry simply
// re-runs the same request.
func (h *AnswerHandler) Answer(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "question_answer")
	defer span.End()

	var req models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleAppError(c, contextutils.WrapError(contextutils.ErrInvalidInput, "invalid answer request"))
		return
	}

	span.SetAttributes(attribute.Int("question.length", len(req.Question)))

	answer, err := h.answerService.FetchAnswer(ctx, req.Question, req.Topic, req.Grade, req.Language)
	if err != nil {
		h.logger.Warn(ctx, "Answer fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		// The fixed message replaces provider detail; the card stays
		// interactive and a retry re-triggers the same request.
		appErr := contextutils.NewAppErrorWithCause(
			contextutils.ErrorCodeAIRequestFailed,
			contextutils.SeverityWarn,
			AnswerFailedMessage,
			"",
			err,
		)
		StandardizeAppError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, models.AnswerResponse{Answer: answer})
}
