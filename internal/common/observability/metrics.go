// internal/common/observability/metrics.go
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the meter and tracer used by the submission pipeline.
type Observability struct {
	meterProvider    *metric.MeterProvider
	meter            otelmetric.Meter
	submissions      otelmetric.Int64Counter
	submissionTiming otelmetric.Float64Histogram
	tracing          *Tracing
}

// New registers an OpenTelemetry meter provider backed by the Prometheus
// exporter. A nil tracing falls back to the global tracer.
func New(serviceName string, tracing *Tracing) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	submissions, err := meter.Int64Counter(
		"submissions.processed",
		otelmetric.WithDescription("Number of submissions processed"),
	)
	if err != nil {
		return nil, err
	}

	timing, err := meter.Float64Histogram(
		"submissions.duration",
		otelmetric.WithDescription("Submission processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meterProvider:    provider,
		meter:            meter,
		submissions:      submissions,
		submissionTiming: timing,
		tracing:          tracing,
	}, nil
}

// NewNoop returns an instance whose instruments are no-ops.
func NewNoop() *Observability {
	return &Observability{}
}

// StartSpan starts a span named name as a child of ctx.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer("application-intake")
	if o != nil && o.tracing != nil {
		tracer = o.tracing.Tracer()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordSubmission(ctx context.Context, applicationType, outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("application_type", applicationType),
		attribute.String("outcome", outcome),
	)
	if o.submissions != nil {
		o.submissions.Add(ctx, 1, attrs)
	}
	if o.submissionTiming != nil {
		o.submissionTiming.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown(ctx context.Context) {
	if o == nil {
		return
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracing != nil {
		_ = o.tracing.Shutdown(ctx)
	}
}
