// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestNewProvider_Disabled(t *testing.T) {
	cfg := Config{
		Enabled:      false,
		ServiceName:  "roadyaml-test",
		ExporterType: "grpc",
	}

	provider, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if provider.tp != nil {
		t.Error("expected noop provider (tp == nil)")
	}

	tracer := otel.Tracer("test")
	_, span := tracer.Start(context.Background(), "noop-check")
	if span.IsRecording() {
		t.Error("expected noop tracer span to be non-recording")
	}
	span.End()
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	cfg := Config{
		Enabled:      true,
		ServiceName:  "roadyaml-test",
		ExporterType: "udp",
	}

	_, err := NewProvider(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for invalid exporter type")
	}

	expectedMsg := "unsupported exporter type: udp (supported: grpc, http)"
	if err.Error() != expectedMsg {
		t.Errorf("expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestNewProvider_RespectsRemoteParentDecision(t *testing.T) {
	cfg := Config{
		Enabled:      true,
		ServiceName:  "roadyaml-test",
		ExporterType: "grpc",
		Endpoint:     "localhost:4317",
		SamplingRate: 0.0001,
	}

	provider, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	tracer := provider.tp.Tracer("parent-check")

	// Randomness bytes at the top of the range, so a bare ratio sampler at
	// this rate would drop the trace. The sampled remote parent must win.
	highID := trace.TraceID{}
	for i := 8; i < 16; i++ {
		highID[i] = 0xff
	}
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    highID,
		SpanID:     trace.SpanID{0x01},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	ctx := trace.ContextWithRemoteSpanContext(context.Background(), parent)
	_, span := tracer.Start(ctx, "child-of-sampled")
	if !span.SpanContext().IsSampled() {
		t.Error("expected child of sampled remote parent to be sampled")
	}
	span.End()

	// The inverse: randomness bytes of zero would always pass the ratio
	// sampler, but the unsampled remote parent must still win.
	lowID := trace.TraceID{0x01}
	parent = trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: lowID,
		SpanID:  trace.SpanID{0x02},
		Remote:  true,
	})
	ctx = trace.ContextWithRemoteSpanContext(context.Background(), parent)
	_, span = tracer.Start(ctx, "child-of-unsampled")
	if span.SpanContext().IsSampled() {
		t.Error("expected child of unsampled remote parent to be dropped")
	}
	span.End()
}

func TestProvider_Shutdown(t *testing.T) {
	provider := &Provider{tp: nil}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no error on noop shutdown, got: %v", err)
	}

	// Canceled contexts must not break the noop path either.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("expected no error on noop shutdown with canceled context, got: %v", err)
	}
}

func TestTracer(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Enabled: false}); err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	tracer := Tracer("roadyaml-test")
	if tracer == nil {
		t.Fatal("expected non-nil tracer")
	}

	ctx, span := tracer.Start(context.Background(), "test-span")
	if span == nil {
		t.Fatal("expected non-nil span")
	}
	span.End()

	if trace.SpanFromContext(ctx) == nil {
		t.Error("expected span in context")
	}
}
