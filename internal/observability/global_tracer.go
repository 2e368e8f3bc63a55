package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer("teachassist")
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		// Fallback to default tracer if not initialized
		globalTracer = otel.Tracer("teachassist")
	}
	return globalTracer
}

// TraceFunction starts a new span with a descriptive name for the given service and function.
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetGlobalTracer()
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceContentFunction starts a new span for a content normalization function.
func TraceContentFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "content", functionName, attributes...)
}

// TraceAIFunction starts a new span for an AI service function.
func TraceAIFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "ai", functionName, attributes...)
}

// TraceHandlerFunction starts a new span for a handler function.
func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

// AttributeContentMode returns a tracing attribute for a resolved content mode.
func AttributeContentMode(mode interface{}) attribute.KeyValue {
	return attribute.String("content.mode", fmt.Sprintf("%v", mode))
}

// AttributeFieldKey returns a tracing attribute for a payload field key.
func AttributeFieldKey(key string) attribute.KeyValue {
	return attribute.String("content.field", key)
}

// AttributeSectionCount returns a tracing attribute for the number of sections produced.
func AttributeSectionCount(n int) attribute.KeyValue {
	return attribute.Int("content.section_count", n)
}

// AttributeSlideCount returns a tracing attribute for the number of slides produced.
func AttributeSlideCount(n int) attribute.KeyValue {
	return attribute.Int("content.slide_count", n)
}

// AttributePayloadKeys returns a tracing attribute for the number of top-level payload keys.
func AttributePayloadKeys(n int) attribute.KeyValue {
	return attribute.Int("content.payload_keys", n)
}
