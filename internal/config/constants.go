package config

import "time"

// Server defaults
const (
	// DefaultPort is the HTTP listen port when none is configured
	DefaultPort = "8080"
	// DefaultMaxAIConcurrent caps concurrent outbound AI requests
	DefaultMaxAIConcurrent = 10
	// DefaultAIRequestTimeout bounds a single answer-fetch call
	DefaultAIRequestTimeout = 60 * time.Second
	// DefaultMaxTokens is used when a model has no configured limit
	DefaultMaxTokens = 2000
	// DefaultAnswerLanguage is used when the client omits a language
	DefaultAnswerLanguage = "English"
)

// DefaultCSP is the Content-Security-Policy header applied by the secure middleware
const DefaultCSP = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'"

// ShutdownTimeout bounds graceful shutdown of the HTTP server and exporters
const ShutdownTimeout = 30 * time.Second
