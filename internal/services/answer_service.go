// Package services wires the pure content core and the outbound AI answer
// fetch behind traced, logged service types consumed by the HTTP handlers
// and the admin CLI.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"teachassist/internal/config"
	"teachassist/internal/observability"
	contextutils "teachassist/internal/utils"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnswerServiceInterface fetches the answer to one question. Each call is
// independent; answering one question never blocks answering its siblings
// beyond the global concurrency cap.
type AnswerServiceInterface interface {
	FetchAnswer(ctx context.Context, question, topic, grade, language string) (string, error)
	GetConcurrencyStats() ConcurrencyStats
}

// ConcurrencyStats reports outbound AI request concurrency.
type ConcurrencyStats struct {
	ActiveRequests int   `json:"active_requests"`
	MaxConcurrent  int   `json:"max_concurrent"`
	TotalRequests  int64 `json:"total_requests"`
}

// Message is a single chat message in an OpenAI-compatible request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIRequest is the outbound chat-completions request body.
type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// OpenAIResponse is the chat-completions response body.
type OpenAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// AnswerService answers individual check-for-understanding questions via an
// OpenAI-compatible API.
type AnswerService struct {
	httpClient *http.Client
	cfg        *config.Config
	logger     *observability.Logger

	// Concurrency control
	globalSemaphore chan struct{}
	maxConcurrent   int

	totalRequests  int64
	activeRequests int
	statsMu        sync.RWMutex
}

// NewAnswerService creates an AnswerService with a traced HTTP client and a
// global semaphore sized by config.
func NewAnswerService(cfg *config.Config, logger *observability.Logger) *AnswerService {
	maxConcurrent := cfg.Server.MaxAIConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = config.DefaultMaxAIConcurrent
	}
	timeout := cfg.Server.AIRequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultAIRequestTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
		),
	}

	return &AnswerService{
		httpClient:      httpClient,
		cfg:             cfg,
		logger:          logger,
		globalSemaphore: make(chan struct{}, maxConcurrent),
		maxConcurrent:   maxConcurrent,
	}
}

// FetchAnswer asks the configured provider to answer one question.
func (s *AnswerService) FetchAnswer(ctx context.Context, question, topic, grade, language string) (result0 string, err error) {
	ctx, span := observability.TraceAIFunction(ctx, "fetch_answer",
		attribute.String("ai.provider", s.cfg.Answer.Provider),
		attribute.String("ai.model", s.cfg.Answer.Model),
		attribute.Int("question.length", len(question)),
	)
	defer observability.FinishSpan(span, &err)

	if strings.TrimSpace(question) == "" {
		return "", contextutils.WrapError(contextutils.ErrInvalidInput, "question cannot be empty")
	}

	if err := s.acquireGlobalSlot(ctx); err != nil {
		return "", err
	}
	defer s.releaseGlobalSlot(ctx)
	s.incrementTotalRequests()

	prompt := s.buildAnswerPrompt(question, topic, grade, language)
	answer, err := s.callOpenAI(ctx, prompt)
	if err != nil {
		return "", err
	}
	return cleanAnswerText(answer), nil
}

// buildAnswerPrompt composes the outbound prompt. The answer is meant to be
// read by a teacher mid-lesson, so it asks for short plain text.
func (s *AnswerService) buildAnswerPrompt(question, topic, grade, language string) string {
	var b strings.Builder
	b.WriteString("You are helping a school teacher during a live lesson. ")
	b.WriteString("Answer the following question briefly and clearly, in plain text without markdown formatting.\n\n")
	if topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", topic)
	}
	if grade != "" {
		fmt.Fprintf(&b, "Grade level: %s\n", grade)
	}
	lang := language
	if lang == "" {
		lang = s.cfg.Answer.DefaultLanguage
	}
	if lang != "" {
		fmt.Fprintf(&b, "Answer in %s.\n", lang)
	}
	fmt.Fprintf(&b, "\nQuestion: %s", question)
	return b.String()
}

func (s *AnswerService) callOpenAI(ctx context.Context, prompt string) (result0 string, err error) {
	_, span := observability.TraceAIFunction(ctx, "call_openai",
		attribute.String("ai.provider", s.cfg.Answer.Provider),
		attribute.String("ai.model", s.cfg.Answer.Model),
		attribute.Int("prompt.length", len(prompt)),
	)
	defer observability.FinishSpan(span, &err)

	provider := s.cfg.GetProvider(s.cfg.Answer.Provider)
	if provider == nil || provider.URL == "" {
		span.SetAttributes(attribute.String("call.result", "no_url_configured"))
		return "", contextutils.WrapErrorf(contextutils.ErrAIConfigInvalid, "no base URL configured for provider '%s'", s.cfg.Answer.Provider)
	}
	if s.cfg.Answer.Model == "" {
		span.SetAttributes(attribute.String("call.result", "empty_model"))
		return "", contextutils.WrapError(contextutils.ErrAIConfigInvalid, "model is required")
	}

	url := provider.URL + "/chat/completions"
	reqBody := OpenAIRequest{
		Model:       s.cfg.Answer.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   s.cfg.GetMaxTokens(s.cfg.Answer.Provider, s.cfg.Answer.Model),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "marshal_failed"))
		return "", contextutils.WrapErrorf(err, "failed to marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "request_creation_failed"))
		return "", contextutils.WrapErrorf(err, "failed to create HTTP request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "teachassist/1.0")
	if apiKey := s.providerAPIKey(provider); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	startTime := time.Now()
	resp, err := s.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		s.logger.Error(ctx, "Answer HTTP request failed", err, map[string]interface{}{
			"url":      url,
			"duration": duration.String(),
		})
		span.SetAttributes(attribute.String("call.result", "http_request_failed"), attribute.String("duration", duration.String()))
		return "", contextutils.WrapErrorf(contextutils.ErrAIProviderUnavailable, "HTTP request failed after %v: %w", duration, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn(ctx, "Failed to close response body", map[string]interface{}{
				"error": cerr.Error(),
			})
		}
	}()

	s.logger.Info(ctx, "Answer HTTP request completed", map[string]interface{}{
		"duration":    duration.String(),
		"status_code": resp.StatusCode,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "body_read_failed"))
		return "", contextutils.WrapErrorf(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		span.SetAttributes(attribute.String("call.result", "http_error"), attribute.Int("status_code", resp.StatusCode))
		return "", contextutils.WrapErrorf(contextutils.ErrAIRequestFailed, "API request failed with status %d to %s: %s", resp.StatusCode, url, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		span.SetAttributes(attribute.String("call.result", "json_unmarshal_failed"))
		return "", contextutils.WrapErrorf(contextutils.ErrAIResponseInvalid, "failed to parse AI response as JSON: %w", err)
	}
	if openAIResp.Error != nil {
		span.SetAttributes(attribute.String("call.result", "api_error"), attribute.String("error_type", openAIResp.Error.Type))
		return "", contextutils.WrapErrorf(contextutils.ErrAIRequestFailed, "API error: %s", openAIResp.Error.Message)
	}
	if len(openAIResp.Choices) == 0 {
		span.SetAttributes(attribute.String("call.result", "no_choices"))
		return "", contextutils.WrapError(contextutils.ErrAIResponseInvalid, "no response choices returned")
	}
	content := openAIResp.Choices[0].Message.Content
	if content == "" {
		span.SetAttributes(attribute.String("call.result", "empty_content"))
		return "", contextutils.WrapError(contextutils.ErrAIResponseInvalid, "provider returned empty content")
	}

	span.SetAttributes(attribute.String("call.result", "success"), attribute.Int("content_length", len(content)))
	return content, nil
}

// providerAPIKey resolves the provider's API key from its configured
// environment variable, if any.
func (s *AnswerService) providerAPIKey(provider *config.ProviderConfig) string {
	if provider.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(provider.APIKeyEnv)
}

// cleanAnswerText strips a wrapping code fence some models add around plain
// text answers.
func cleanAnswerText(answer string) string {
	answer = strings.TrimSpace(answer)
	if strings.HasPrefix(answer, "```") {
		answer = strings.TrimPrefix(answer, "```")
		if idx := strings.Index(answer, "\n"); idx >= 0 {
			answer = answer[idx+1:]
		}
		answer = strings.TrimSuffix(strings.TrimSpace(answer), "```")
		answer = strings.TrimSpace(answer)
	}
	return answer
}

func (s *AnswerService) acquireGlobalSlot(ctx context.Context) error {
	select {
	case s.globalSemaphore <- struct{}{}:
		s.statsMu.Lock()
		s.activeRequests++
		s.statsMu.Unlock()
		return nil
	case <-ctx.Done():
		return contextutils.WrapErrorf(contextutils.ErrTimeout, "request cancelled while waiting for AI slot: %w", ctx.Err())
	default:
		return contextutils.WrapErrorf(contextutils.ErrServiceUnavailable, "answer service at capacity (%d concurrent requests), please try again", s.maxConcurrent)
	}
}

func (s *AnswerService) releaseGlobalSlot(ctx context.Context) {
	select {
	case <-s.globalSemaphore:
		s.statsMu.Lock()
		if s.activeRequests > 0 {
			s.activeRequests--
		}
		s.statsMu.Unlock()
	default:
		s.logger.Warn(ctx, "Attempted to release AI slot but none were acquired", nil)
	}
}

func (s *AnswerService) incrementTotalRequests() {
	s.statsMu.Lock()
	s.totalRequests++
	s.statsMu.Unlock()
}

// GetConcurrencyStats returns current outbound request concurrency.
func (s *AnswerService) GetConcurrencyStats() ConcurrencyStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return ConcurrencyStats{
		ActiveRequests: s.activeRequests,
		MaxConcurrent:  s.maxConcurrent,
		TotalRequests:  s.totalRequests,
	}
}
