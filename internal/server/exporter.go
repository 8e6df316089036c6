// Package server exposes collected metrics for Prometheus scraping,
// alongside a health endpoint for the daemon.
package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dockops/internal/metrics"
)

// Exporter translates emitted samples into Prometheus gauges.
// Per-container samples become dockops_container_* series labelled by
// source; fleet aggregates become plain dockops_fleet_* gauges.
type Exporter struct {
	registry   *prometheus.Registry
	containers map[string]*prometheus.GaugeVec
	fleet      map[string]prometheus.Gauge

	mu       sync.Mutex
	seen     map[string]struct{} // sources seen in the current round
	lastSeen map[string]struct{} // sources seen in the previous round
}

// NewExporter creates an exporter with all gauge families registered
func NewExporter() *Exporter {
	e := &Exporter{
		registry:   prometheus.NewRegistry(),
		containers: make(map[string]*prometheus.GaugeVec),
		fleet:      make(map[string]prometheus.Gauge),
		seen:       make(map[string]struct{}),
		lastSeen:   make(map[string]struct{}),
	}

	for _, name := range metrics.MetricNames {
		gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dockops_container_" + strings.ToLower(name),
			Help: "Per-container " + name,
		}, []string{"source"})
		e.registry.MustRegister(gv)
		e.containers[name] = gv
	}

	for _, name := range metrics.AggregateNames {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dockops_fleet_" + strings.ToLower(name),
			Help: "Fleet aggregate " + name,
		})
		e.registry.MustRegister(g)
		e.fleet[name] = g
	}

	return e
}

// Emit implements metrics.Sink. An untagged batch marks the end of a
// round: series for containers that disappeared are dropped so stale
// values don't linger on the scrape endpoint.
func (e *Exporter) Emit(samples []metrics.Sample) {
	e.mu.Lock()
	defer e.mu.Unlock()

	aggregateBatch := len(samples) > 0 && samples[0].Source == ""

	for _, sample := range samples {
		if sample.Source == "" {
			if g, ok := e.fleet[sample.Name]; ok {
				g.Set(sample.Value)
			}
			continue
		}
		if gv, ok := e.containers[sample.Name]; ok {
			gv.WithLabelValues(sample.Source).Set(sample.Value)
		}
		e.seen[sample.Source] = struct{}{}
	}

	if aggregateBatch {
		for source := range e.lastSeen {
			if _, stillThere := e.seen[source]; !stillThere {
				for _, gv := range e.containers {
					gv.DeleteLabelValues(source)
				}
			}
		}
		e.lastSeen = e.seen
		e.seen = make(map[string]struct{})
	}
}

// Handler returns the Prometheus scrape handler
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ListenAndServe serves /metrics and /healthz on addr. Blocks.
func (e *Exporter) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return http.ListenAndServe(addr, mux)
}
