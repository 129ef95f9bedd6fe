// Package tracing hands out OpenTelemetry tracers. Without an installed
// TracerProvider the global no-op provider is used, so spans cost nothing.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationPrefix = "credkit/"

// Tracer returns the tracer for a module, e.g. Tracer("roster").
func Tracer(module string) trace.Tracer {
	return otel.Tracer(instrumentationPrefix + module)
}
