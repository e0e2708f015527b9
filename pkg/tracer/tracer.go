package tracer

import (
	"context"
	"sync"

	"github.com/WilsonSunBritten/serverless-tools/pkg/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	defaultTracer trace.Tracer
	initOnce      sync.Once
	errInit       error

	noopTracer = noop.NewTracerProvider().Tracer("noop")
)

// InitTracer sets up the process tracer for serviceName. Later calls return
// the outcome of the first one.
func InitTracer(serviceName string, cfg otel.Config) error {
	initOnce.Do(func() {
		cfg.ServiceName = serviceName
		defaultTracer, errInit = otel.InitTracer(cfg)
	})

	return errInit
}

// Start opens a span on the process tracer, or a noop span before InitTracer.
func Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if defaultTracer == nil {
		return noopTracer.Start(ctx, spanName, opts...)
	}
	return defaultTracer.Start(ctx, spanName, opts...)
}
