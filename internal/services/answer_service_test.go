package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"teachassist/internal/config"
	"teachassist/internal/observability"
	contextutils "teachassist/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(providerURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			MaxAIConcurrent: 2,
		},
		Providers: []config.ProviderConfig{
			{
				Name: "Test Provider",
				Code: "test",
				URL:  providerURL,
				Models: []config.AIModel{
					{Name: "Test Model", Code: "test-model", MaxTokens: 512},
				},
			},
		},
		Answer: config.AnswerConfig{
			Provider:        "test",
			Model:           "test-model",
			DefaultLanguage: "English",
		},
		IsTest: true,
	}
}

func testLogger() *observability.Logger {
	return observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
}

func openAIStub(t *testing.T, handler func(body OpenAIRequest) (int, interface{})) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body OpenAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		status, resp := handler(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func chatResponse(content string) interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
}

func TestAnswerService_FetchAnswer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPrompt string
		server := openAIStub(t, func(body OpenAIRequest) (int, interface{}) {
			require.Len(t, body.Messages, 1)
			gotPrompt = body.Messages[0].Content
			assert.Equal(t, "test-model", body.Model)
			assert.Equal(t, 512, body.MaxTokens)
			return http.StatusOK, chatResponse("Because warm air rises.")
		})
		defer server.Close()

		service := NewAnswerService(testConfig(server.URL), testLogger())
		answer, err := service.FetchAnswer(context.Background(), "Why does warm air rise?", "Convection", "Grade 6", "")
		require.NoError(t, err)
		assert.Equal(t, "Because warm air rises.", answer)

		assert.Contains(t, gotPrompt, "Why does warm air rise?")
		assert.Contains(t, gotPrompt, "Topic: Convection")
		assert.Contains(t, gotPrompt, "Grade level: Grade 6")
		assert.Contains(t, gotPrompt, "Answer in English")
	})

	t.Run("explicit language overrides default", func(t *testing.T) {
		var gotPrompt string
		server := openAIStub(t, func(body OpenAIRequest) (int, interface{}) {
			gotPrompt = body.Messages[0].Content
			return http.StatusOK, chatResponse("ok")
		})
		defer server.Close()

		service := NewAnswerService(testConfig(server.URL), testLogger())
		_, err := service.FetchAnswer(context.Background(), "q", "", "", "Hindi")
		require.NoError(t, err)
		assert.Contains(t, gotPrompt, "Answer in Hindi")
	})

	t.Run("code fence is stripped", func(t *testing.T) {
		server := openAIStub(t, func(body OpenAIRequest) (int, interface{}) {
			return http.StatusOK, chatResponse("```text\nThe answer is 4.\n```")
		})
		defer server.Close()

		service := NewAnswerService(testConfig(server.URL), testLogger())
		answer, err := service.FetchAnswer(context.Background(), "What is 2+2?", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "The answer is 4.", answer)
	})

	t.Run("empty question", func(t *testing.T) {
		service := NewAnswerService(testConfig("http://unused"), testLogger())
		_, err := service.FetchAnswer(context.Background(), "   ", "", "", "")
		require.Error(t, err)
		assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(err))
	})

	t.Run("provider non-200", func(t *testing.T) {
		server := openAIStub(t, func(body OpenAIRequest) (int, interface{}) {
			return http.StatusInternalServerError, map[string]interface{}{"error": "boom"}
		})
		defer server.Close()

		service := NewAnswerService(testConfig(server.URL), testLogger())
		_, err := service.FetchAnswer(context.Background(), "q", "", "", "")
		require.Error(t, err)
		assert.Equal(t, contextutils.ErrorCodeAIRequestFailed, contextutils.GetErrorCode(err))
	})

	t.Run("api error envelope", func(t *testing.T) {
		server := openAIStub(t, func(body OpenAIRequest) (int, interface{}) {
			return http.StatusOK, map[string]interface{}{
				"error": map[string]interface{}{"message": "quota exceeded", "type": "rate_limit"},
			}
		})
		defer server.Close()

		service := NewAnswerService(testConfig(server.URL), testLogger())
		_, err := service.FetchAnswer(context.Background(), "q", "", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := openAIStub(t, func(body OpenAIRequest) (int, interface{}) {
			return http.StatusOK, map[string]interface{}{"choices": []interface{}{}}
		})
		defer server.Close()

		service := NewAnswerService(testConfig(server.URL), testLogger())
		_, err := service.FetchAnswer(context.Background(), "q", "", "", "")
		require.Error(t, err)
		assert.Equal(t, contextutils.ErrorCodeAIResponseInvalid, contextutils.GetErrorCode(err))
	})

	t.Run("unreachable provider", func(t *testing.T) {
		service := NewAnswerService(testConfig("http://127.0.0.1:1"), testLogger())
		_, err := service.FetchAnswer(context.Background(), "q", "", "", "")
		require.Error(t, err)
		assert.Equal(t, contextutils.ErrorCodeAIProviderUnavailable, contextutils.GetErrorCode(err))
	})

	t.Run("no provider configured", func(t *testing.T) {
		cfg := testConfig("http://unused")
		cfg.Answer.Provider = "missing"
		service := NewAnswerService(cfg, testLogger())
		_, err := service.FetchAnswer(context.Background(), "q", "", "", "")
		require.Error(t, err)
		assert.Equal(t, contextutils.ErrorCodeAIConfigInvalid, contextutils.GetErrorCode(err))
	})
}

func TestAnswerService_ConcurrencyControl(t *testing.T) {
	service := NewAnswerService(testConfig("http://unused"), testLogger())

	t.Run("stats start empty", func(t *testing.T) {
		stats := service.GetConcurrencyStats()
		assert.Equal(t, 2, stats.MaxConcurrent)
		assert.Equal(t, 0, stats.ActiveRequests)
		assert.Equal(t, int64(0), stats.TotalRequests)
	})

	t.Run("global semaphore limits", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, service.acquireGlobalSlot(ctx))
		require.NoError(t, service.acquireGlobalSlot(ctx))

		err := service.acquireGlobalSlot(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at capacity")

		service.releaseGlobalSlot(ctx)
		require.NoError(t, service.acquireGlobalSlot(ctx))

		service.releaseGlobalSlot(ctx)
		service.releaseGlobalSlot(ctx)
		assert.Equal(t, 0, service.GetConcurrencyStats().ActiveRequests)
	})
}

func TestCleanAnswerText(t *testing.T) {
	assert.Equal(t, "plain", cleanAnswerText("plain"))
	assert.Equal(t, "fenced", cleanAnswerText("```\nfenced\n```"))
	assert.Equal(t, "fenced", cleanAnswerText("```text\nfenced\n```"))
	assert.Equal(t, "spaced", cleanAnswerText("  spaced  "))
}
