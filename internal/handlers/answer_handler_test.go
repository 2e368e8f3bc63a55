package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"teachassist/internal/models"
	"teachassist/internal/services"
	contextutils "teachassist/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnswerService records calls and returns a canned answer or error.
type stubAnswerService struct {
	answer    string
	err       error
	questions []string
}

func (s *stubAnswerService) FetchAnswer(_ context.Context, question, _, _, _ string) (string, error) {
	s.questions = append(s.questions, question)
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubAnswerService) GetConcurrencyStats() services.ConcurrencyStats {
	return services.ConcurrencyStats{}
}

func TestAnswerHandler_Answer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubAnswerService{answer: "Because warm air is less dense."}
		router := testRouter(stub)

		w := postJSON(router, "/v1/questions/answer",
			`{"question": "Why does warm air rise?", "topic": "Convection", "grade": "6"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.AnswerResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Because warm air is less dense.", resp.Answer)
		require.Len(t, stub.questions, 1)
		assert.Equal(t, "Why does warm air rise?", stub.questions[0])
	})

	t.Run("provider failure maps to fixed message and 503", func(t *testing.T) {
		stub := &stubAnswerService{
			err: contextutils.WrapError(contextutils.ErrAIProviderUnavailable, "connection refused"),
		}
		router := testRouter(stub)

		w := postJSON(router, "/v1/questions/answer", `{"question": "why?"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), AnswerFailedMessage)
		// Provider detail never leaks into the user-facing body.
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("retry re-triggers the same request", func(t *testing.T) {
		stub := &stubAnswerService{err: contextutils.ErrAIRequestFailed}
		router := testRouter(stub)

		postJSON(router, "/v1/questions/answer", `{"question": "why?"}`)
		postJSON(router, "/v1/questions/answer", `{"question": "why?"}`)
		assert.Len(t, stub.questions, 2)
	})

	t.Run("missing question is 400", func(t *testing.T) {
		router := testRouter(&stubAnswerService{})

		w := postJSON(router, "/v1/questions/answer", `{"topic": "algebra"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
