package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded by the conversation
type Metrics struct {
	requests       metric.Int64Counter
	chartsCreated  metric.Int64Counter
	renderDuration metric.Float64Histogram
	cacheHits      metric.Int64Counter
}

// NewMetrics creates the vizchat instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requests, err := meter.Int64Counter(
		"vizchat.requests",
		metric.WithDescription("Messages handled, by whether they asked for a chart"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create requests counter: %w", err)
	}

	charts, err := meter.Int64Counter(
		"vizchat.charts.created",
		metric.WithDescription("Charts created, by type and data source"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create charts counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"vizchat.render.duration",
		metric.WithDescription("Chart render duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create render histogram: %w", err)
	}

	hits, err := meter.Int64Counter(
		"vizchat.cache.hits",
		metric.WithDescription("Charts served from the render cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache counter: %w", err)
	}

	return &Metrics{
		requests:       requests,
		chartsCreated:  charts,
		renderDuration: duration,
		cacheHits:      hits,
	}, nil
}

// Request counts one handled message
func (m *Metrics) Request(ctx context.Context, visualization bool) {
	m.requests.Add(ctx, 1, metric.WithAttributes(attribute.Bool("visualization", visualization)))
}

// ChartCreated counts one chart
func (m *Metrics) ChartCreated(ctx context.Context, chartType, source string) {
	m.chartsCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("chart_type", chartType),
		attribute.String("source", source),
	))
}

// RenderDuration records a render time in milliseconds
func (m *Metrics) RenderDuration(ctx context.Context, chartType string, ms float64) {
	m.renderDuration.Record(ctx, ms, metric.WithAttributes(attribute.String("chart_type", chartType)))
}

// CacheHit counts one render served from cache
func (m *Metrics) CacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}
