package sink

import (
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"dockops/internal/metrics"
)

func TestOTelSink_EmitCachesLatest(t *testing.T) {
	s := &OTelSink{latest: make(map[string]map[string]float64)}

	s.Emit([]metrics.Sample{
		{Name: metrics.MetricTotalCPUUsage, Value: 0.4, Source: "dockops.web"},
		{Name: metrics.MetricTotalCPUUsage, Value: 0.8},
	})

	if got := s.latest[metrics.MetricTotalCPUUsage]["dockops.web"]; got != 0.4 {
		t.Errorf("per-container value = %v, want 0.4", got)
	}
	if got := s.latest[metrics.MetricTotalCPUUsage][fleetSource]; got != 0.8 {
		t.Errorf("fleet value = %v, want 0.8", got)
	}

	// later rounds overwrite
	s.Emit([]metrics.Sample{
		{Name: metrics.MetricTotalCPUUsage, Value: 0.5, Source: "dockops.web"},
	})
	if got := s.latest[metrics.MetricTotalCPUUsage]["dockops.web"]; got != 0.5 {
		t.Errorf("value not overwritten: %v, want 0.5", got)
	}
}

func TestOTelSink_FlushAndShutdown(t *testing.T) {
	s := &OTelSink{
		latest:        make(map[string]map[string]float64),
		meterProvider: sdkmetric.NewMeterProvider(),
	}

	s.Emit([]metrics.Sample{
		{Name: metrics.MetricTotalCPUUsage, Value: 0.4},
	})

	if err := s.ForceFlush(); err != nil {
		t.Errorf("ForceFlush() error = %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
