package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Metrics bundles the instruments recorded by the generation pipeline.
// A nil *Metrics is valid and records nothing, which keeps tests quiet.
type Metrics struct {
	generations        metric.Int64Counter
	generationDuration metric.Float64Histogram
	modelFallbacks     metric.Int64Counter
}

// Setup initializes an OpenTelemetry meter provider backed by the
// Prometheus exporter and returns the application metrics.
func Setup(serviceName string) (*Metrics, *sdkmetric.MeterProvider, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	metrics := &Metrics{}
	metrics.generations, err = meter.Int64Counter(
		"ai_generations_total",
		metric.WithDescription("Number of AI generation requests by provider and outcome"),
	)
	if err != nil {
		return nil, nil, err
	}
	metrics.generationDuration, err = meter.Float64Histogram(
		"ai_generation_duration_seconds",
		metric.WithDescription("Latency of AI generation requests"),
	)
	if err != nil {
		return nil, nil, err
	}
	metrics.modelFallbacks, err = meter.Int64Counter(
		"ai_model_fallbacks_total",
		metric.WithDescription("Model identifiers that did not match any routing rule and fell back to the default provider"),
	)
	if err != nil {
		return nil, nil, err
	}

	return metrics, provider, nil
}

// RecordGeneration records one generation attempt.
func (m *Metrics) RecordGeneration(ctx context.Context, provider, outcome string, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	m.generations.Add(ctx, 1, attrs)
	m.generationDuration.Record(ctx, seconds, attrs)
}

// RecordModelFallback records a model identifier that was routed to the
// default provider because no classification rule matched.
func (m *Metrics) RecordModelFallback(ctx context.Context, model string) {
	if m == nil {
		return
	}
	m.modelFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("model", model)))
}

// MetricsHandler exposes the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
