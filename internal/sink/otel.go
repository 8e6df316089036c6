package sink

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	constants "dockops/config"
	"dockops/internal/metrics"
)

// OTelConfig configures the OTLP metric push pipeline
type OTelConfig struct {
	Endpoint  string
	AuthToken string
	Hostname  string
	Interval  time.Duration
}

// OTelSink caches the latest emitted samples and exposes them to the
// OTel SDK through observable gauges; the periodic reader pushes them
// over OTLP/HTTP on its own interval.
type OTelSink struct {
	mu            sync.RWMutex
	latest        map[string]map[string]float64 // metric name -> source -> value
	meterProvider *sdkmetric.MeterProvider
}

// aggregate samples carry no source; use a stable attribute value
const fleetSource = "fleet"

// StartOTel initializes the OTLP exporter and returns the sink
func StartOTel(cfg OTelConfig) (*OTelSink, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTLP config incomplete: endpoint required")
	}

	ctx := context.Background()

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		otlpmetrichttp.WithURLPath(constants.OTLP_PATH),
		// Retry configuration for resilience
		otlpmetrichttp.WithRetry(otlpmetrichttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     30 * time.Second,
			MaxElapsedTime:  2 * time.Minute,
		}),
		otlpmetrichttp.WithTimeout(30 * time.Second),
	}
	if cfg.AuthToken != "" {
		opts = append(opts, otlpmetrichttp.WithHeaders(map[string]string{
			"Authorization": "Bearer " + cfg.AuthToken,
		}))
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	hostname := cfg.Hostname
	if hostname == "" {
		hostname, _ = os.Hostname()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("dockops"),
		semconv.ServiceVersion("1.0.0"),
		semconv.HostName(hostname),
	)

	interval := cfg.Interval
	if interval == 0 {
		interval = 30 * time.Second
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter,
				sdkmetric.WithInterval(interval),
			),
		),
	)
	otel.SetMeterProvider(meterProvider)

	s := &OTelSink{
		latest:        make(map[string]map[string]float64),
		meterProvider: meterProvider,
	}

	meter := meterProvider.Meter("dockops",
		metric.WithInstrumentationVersion("1.0.0"),
	)
	if err := s.registerGauges(meter); err != nil {
		meterProvider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return s, nil
}

// Emit implements metrics.Sink: caches the samples for the next
// observable-gauge read
func (s *OTelSink) Emit(samples []metrics.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sample := range samples {
		source := sample.Source
		if source == "" {
			source = fleetSource
		}
		bySource := s.latest[sample.Name]
		if bySource == nil {
			bySource = make(map[string]float64)
			s.latest[sample.Name] = bySource
		}
		bySource[source] = sample.Value
	}
}

// Shutdown flushes pending metrics and stops the exporter
func (s *OTelSink) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.meterProvider.Shutdown(ctx)
}

// ForceFlush forces immediate export of all pending metrics
func (s *OTelSink) ForceFlush() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.meterProvider.ForceFlush(ctx)
}

// registerGauges creates one observable gauge per metric name; each
// read reports the cached value for every known source
func (s *OTelSink) registerGauges(meter metric.Meter) error {
	for _, name := range metrics.MetricNames {
		metricName := name
		_, err := meter.Float64ObservableGauge(
			"dockops.container."+strings.ToLower(metricName),
			metric.WithDescription("Docker container metric "+metricName),
			metric.WithFloat64Callback(func(ctx context.Context, o metric.Float64Observer) error {
				s.mu.RLock()
				defer s.mu.RUnlock()
				for source, value := range s.latest[metricName] {
					o.Observe(value, metric.WithAttributes(attribute.String("source", source)))
				}
				return nil
			}),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
