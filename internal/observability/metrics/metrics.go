package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Options configures the meter provider.
type Options struct {
	ServiceName      string
	Environment      string
	Version          string
	ExporterEndpoint string
	ExporterProtocol string
}

// NewProvider builds an OTLP-backed meter provider and registers it globally.
func NewProvider(ctx context.Context, opts Options) (*sdkmetric.MeterProvider, func(context.Context) error, error) {
	exporter, err := newExporter(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("create metric exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion(opts.Version),
			semconv.DeploymentEnvironment(opts.Environment),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create metric resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(10*time.Second),
		)),
	)

	otel.SetMeterProvider(provider)

	return provider, provider.Shutdown, nil
}

func newExporter(ctx context.Context, opts Options) (sdkmetric.Exporter, error) {
	switch opts.ExporterProtocol {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(opts.ExporterEndpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(opts.ExporterEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	}
}

// Metrics exposes the service's domain counters. All Record helpers are
// nil-safe so callers can hold a nil *Metrics in tests.
type Metrics struct {
	creditEntries   metric.Int64Counter
	productions     metric.Int64Counter
	invoices        metric.Int64Counter
	capViolations   metric.Int64Counter
	loginAttempts   metric.Int64Counter
	rateLimitedReqs metric.Int64Counter
}

func New() (*Metrics, error) {
	meter := otel.Meter("backoffice")

	creditEntries, err := meter.Int64Counter("backoffice_credit_entries_total",
		metric.WithDescription("Credit ledger entries appended, by operation and direction"))
	if err != nil {
		return nil, err
	}

	productions, err := meter.Int64Counter("backoffice_productions_total",
		metric.WithDescription("Production records processed, by operation"))
	if err != nil {
		return nil, err
	}

	invoices, err := meter.Int64Counter("backoffice_invoices_total",
		metric.WithDescription("Invoice records processed, by operation"))
	if err != nil {
		return nil, err
	}

	capViolations, err := meter.Int64Counter("backoffice_distribution_cap_violations_total",
		metric.WithDescription("Distribution batches rejected for exceeding the percentage cap"))
	if err != nil {
		return nil, err
	}

	loginAttempts, err := meter.Int64Counter("backoffice_login_attempts_total",
		metric.WithDescription("Login attempts, by principal kind and outcome"))
	if err != nil {
		return nil, err
	}

	rateLimitedReqs, err := meter.Int64Counter("backoffice_rate_limited_requests_total",
		metric.WithDescription("Requests rejected by the rate limiter"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		creditEntries:   creditEntries,
		productions:     productions,
		invoices:        invoices,
		capViolations:   capViolations,
		loginAttempts:   loginAttempts,
		rateLimitedReqs: rateLimitedReqs,
	}, nil
}

func (m *Metrics) RecordCreditEntry(ctx context.Context, operation, direction string) {
	if m == nil || m.creditEntries == nil {
		return
	}
	m.creditEntries.Add(ctx, 1, metric.WithAttributes(FilterAttributes(
		attribute.String("operation", operation),
		attribute.String("direction", direction),
	)...))
}

func (m *Metrics) RecordProduction(ctx context.Context, operation string) {
	if m == nil || m.productions == nil {
		return
	}
	m.productions.Add(ctx, 1, metric.WithAttributes(FilterAttributes(
		attribute.String("operation", operation),
	)...))
}

func (m *Metrics) RecordInvoice(ctx context.Context, operation string) {
	if m == nil || m.invoices == nil {
		return
	}
	m.invoices.Add(ctx, 1, metric.WithAttributes(FilterAttributes(
		attribute.String("operation", operation),
	)...))
}

func (m *Metrics) RecordCapViolation(ctx context.Context) {
	if m == nil || m.capViolations == nil {
		return
	}
	m.capViolations.Add(ctx, 1)
}

func (m *Metrics) RecordLoginAttempt(ctx context.Context, kind, outcome string) {
	if m == nil || m.loginAttempts == nil {
		return
	}
	m.loginAttempts.Add(ctx, 1, metric.WithAttributes(FilterAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	)...))
}

func (m *Metrics) RecordRateLimited(ctx context.Context, route string) {
	if m == nil || m.rateLimitedReqs == nil {
		return
	}
	m.rateLimitedReqs.Add(ctx, 1, metric.WithAttributes(FilterAttributes(
		attribute.String("route", route),
	)...))
}

// allowedLabelKeys bounds metric cardinality: only these keys survive
// FilterAttributes.
var allowedLabelKeys = map[string]struct{}{
	"operation": {},
	"direction": {},
	"kind":      {},
	"outcome":   {},
	"route":     {},
}

// FilterAttributes drops attributes whose key is not on the allowlist.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[string(attr.Key)]; ok {
			filtered = append(filtered, attr)
		}
	}
	return filtered
}
