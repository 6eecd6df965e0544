// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wires cfgdom's analyses into OpenTelemetry tracing.
//
// When the process has not registered an SDK tracer provider (the CLI's
// default — no --trace flag), otel.Tracer returns the global no-op
// implementation, so every span created here costs essentially nothing.
// Passing --trace installs a stdout span exporter (see cmd/domgraph).
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns the package-scoped tracer for a given analysis subsystem,
// e.g. Tracer("graph.dominators").
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// LoggerWithTrace annotates logger with the active span's trace and span
// IDs, if ctx carries a recording span. Mirrors the teacher's
// telemetry.LoggerWithTrace, trimmed to what cfgdom's analyses need.
func LoggerWithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return logger
	}
	sc := span.SpanContext()
	return logger.With(
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	)
}
