package resilience

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"

// RequestMetrics holds metrics for external provider calls.
type RequestMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// NewRequestMetrics creates metrics for monitoring external provider calls.
func NewRequestMetrics() (*RequestMetrics, error) {
	meter := otel.Meter(meterName)

	requestDuration, err := meter.Float64Histogram(
		"provider.request.duration",
		metric.WithDescription("Duration of provider requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"provider.request.total",
		metric.WithDescription("Total number of provider requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &RequestMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// Record records one provider request outcome.
func (m *RequestMetrics) Record(provider string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("provider.name", provider),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	// Use background context so a cancelled request context cannot drop the record.
	ctx := context.Background()
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
