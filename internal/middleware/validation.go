package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"teachassist/internal/observability"
	contextutils "teachassist/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
)

// Request body schemas per route. The payload itself is deliberately left
// unconstrained (any object or null); the whole point of the pipeline is to
// accept arbitrary producer output. Only the envelope is validated.
const renderRequestSchema = `{
	"type": "object",
	"properties": {
		"payload": {"type": ["object", "null"]},
		"raw_text": {"type": "string"}
	},
	"additionalProperties": false
}`

const answerRequestSchema = `{
	"type": "object",
	"properties": {
		"question": {"type": "string", "minLength": 1, "maxLength": 2000},
		"topic": {"type": "string"},
		"grade": {"type": "string"},
		"language": {"type": "string"}
	},
	"required": ["question"],
	"additionalProperties": false
}`

var requestSchemas = map[string]string{
	"/v1/content/sections":  renderRequestSchema,
	"/v1/content/slides":    renderRequestSchema,
	"/v1/content/narration": renderRequestSchema,
	"/v1/questions/answer":  answerRequestSchema,
}

var compiledSchemas map[string]*gojsonschema.Schema

func init() {
	compiledSchemas = make(map[string]*gojsonschema.Schema, len(requestSchemas))
	for path, raw := range requestSchemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			panic("invalid embedded request schema for " + path + ": " + err.Error())
		}
		compiledSchemas[path] = schema
	}
}

// RequestValidationMiddleware rejects malformed request envelopes with a
// structured 400 before they reach the handlers. Routes without a schema
// pass through untouched.
func RequestValidationMiddleware(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		schema, ok := compiledSchemas[c.Request.URL.Path]
		if !ok || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "request_validation")
		defer span.End()

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortValidation(c, "failed to read request body")
			return
		}
		// The handler needs the body again.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if len(bytes.TrimSpace(body)) == 0 {
			abortValidation(c, "request body is required")
			return
		}

		result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
		if err != nil {
			abortValidation(c, "request body is not valid JSON")
			return
		}
		if !result.Valid() {
			details := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				details = append(details, e.String())
			}
			logger.Warn(ctx, "Request validation failed", map[string]interface{}{
				"path":   c.Request.URL.Path,
				"errors": strings.Join(details, "; "),
			})
			abortValidation(c, strings.Join(details, "; "))
			return
		}

		c.Next()
	}
}

func abortValidation(c *gin.Context, details string) {
	appErr := contextutils.NewAppError(
		contextutils.ErrorCodeValidationFailed,
		contextutils.SeverityWarn,
		"Invalid request",
		details,
	)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": appErr.ToJSON()})
}
