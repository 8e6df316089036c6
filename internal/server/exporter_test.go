package server

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/expfmt"

	"dockops/internal/metrics"
)

func scrapeFamilies(t *testing.T, e *Exporter) map[string]float64 {
	t.Helper()

	server := httptest.NewServer(e.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		t.Fatalf("exporter output does not parse: %v", err)
	}

	values := make(map[string]float64)
	for name, family := range families {
		for _, m := range family.GetMetric() {
			key := name
			for _, label := range m.GetLabel() {
				key += "{" + label.GetName() + "=" + label.GetValue() + "}"
			}
			values[key] = m.GetGauge().GetValue()
		}
	}
	return values
}

func TestExporter_ContainerAndFleetGauges(t *testing.T) {
	e := NewExporter()

	e.Emit([]metrics.Sample{
		{Name: metrics.MetricTotalCPUUsage, Value: 0.4, Source: "dockops.web"},
		{Name: metrics.MetricMemoryUsageBytes, Value: 100, Source: "dockops.web"},
	})
	e.Emit([]metrics.Sample{
		{Name: metrics.MetricTotalCPUUsage, Value: 0.4},
		{Name: metrics.MetricMemoryUsageBytes, Value: 100},
	})

	values := scrapeFamilies(t, e)

	if got := values["dockops_container_total_cpu_usage{source=dockops.web}"]; got != 0.4 {
		t.Errorf("container cpu gauge = %v, want 0.4", got)
	}
	if got := values["dockops_fleet_total_cpu_usage"]; got != 0.4 {
		t.Errorf("fleet cpu gauge = %v, want 0.4", got)
	}
	if got := values["dockops_fleet_memory_usage_bytes"]; got != 100 {
		t.Errorf("fleet memory gauge = %v, want 100", got)
	}
}

func TestExporter_DropsVanishedContainers(t *testing.T) {
	e := NewExporter()

	// round 1: web and db
	e.Emit([]metrics.Sample{
		{Name: metrics.MetricTotalCPUUsage, Value: 0.4, Source: "dockops.web"},
		{Name: metrics.MetricTotalCPUUsage, Value: 0.2, Source: "dockops.db"},
	})
	e.Emit([]metrics.Sample{{Name: metrics.MetricTotalCPUUsage, Value: 0.6}})

	// round 2: only web
	e.Emit([]metrics.Sample{
		{Name: metrics.MetricTotalCPUUsage, Value: 0.5, Source: "dockops.web"},
	})
	e.Emit([]metrics.Sample{{Name: metrics.MetricTotalCPUUsage, Value: 0.5}})

	values := scrapeFamilies(t, e)

	if _, ok := values["dockops_container_total_cpu_usage{source=dockops.db}"]; ok {
		t.Error("series for vanished container db still exported")
	}
	if got := values["dockops_container_total_cpu_usage{source=dockops.web}"]; got != 0.5 {
		t.Errorf("web gauge = %v, want 0.5", got)
	}
}

func TestExporter_Healthz(t *testing.T) {
	e := NewExporter()
	server := httptest.NewServer(e.Handler())
	defer server.Close()

	// the scrape handler itself must respond 200
	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
