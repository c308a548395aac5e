package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/shellmaster/sm/internal/llmclient"
)

// setupTestTracer installs an in-memory span exporter as the global
// TracerProvider for the duration of the test, mirroring the teacher's
// observability_test.go helper (services/trace/agent/providers).
func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestRunEmitsOneSpanPerNodePlusRoot(t *testing.T) {
	exporter := setupTestTracer(t)

	p := &Pipeline{LLM: &llmclient.StubClient{}}
	p.Run(context.Background(), "pwd")

	spans := exporter.GetSpans()
	names := make(map[string]bool, len(spans))
	for _, s := range spans {
		names[s.Name] = true
	}

	require.True(t, names["pipeline.run"], "missing root span: %v", names)
	for _, want := range []string{"pipeline.refine", "pipeline.retrieve", "pipeline.generate"} {
		assert.True(t, names[want], "missing span %q: %v", want, names)
	}
	// Trivial complexity skips scout entirely.
	assert.False(t, names["pipeline.scout"], "scout should not run on the trivial fast path")
}

func TestRunNestsNodeSpansUnderRequest(t *testing.T) {
	exporter := setupTestTracer(t)

	p := &Pipeline{LLM: &llmclient.StubClient{}}
	p.Run(context.Background(), "pwd")

	spans := exporter.GetSpans()
	var root tracetest.SpanStub
	found := false
	for _, s := range spans {
		if s.Name == "pipeline.run" {
			root, found = s, true
		}
	}
	require.True(t, found, "root span not found")

	for _, s := range spans {
		if s.Name == "pipeline.run" {
			continue
		}
		assert.Equal(t, root.SpanContext.TraceID(), s.SpanContext.TraceID(), "span %q not in the same trace as the root", s.Name)
	}
}
