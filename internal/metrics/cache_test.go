package metrics

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRoundCache_RoundTrip(t *testing.T) {
	roundCacheFile = filepath.Join(t.TempDir(), "round_cache.json")

	summary := RoundSummary{
		ID: 7,
		Containers: []ContainerMetrics{
			{Name: "web", CPUPercent: 0.4, MemoryUsage: 100},
		},
		Totals:    map[string]float64{MetricTotalCPUUsage: 0.4},
		Completed: time.Now(),
	}

	if err := SaveRoundToCache(summary); err != nil {
		t.Fatalf("SaveRoundToCache: %v", err)
	}

	loaded, ok := LoadRoundFromCache()
	if !ok {
		t.Fatal("expected fresh cache to load")
	}
	if loaded.ID != 7 {
		t.Errorf("expected round id 7, got %d", loaded.ID)
	}
	if len(loaded.Containers) != 1 || loaded.Containers[0].Name != "web" {
		t.Errorf("containers did not round-trip: %+v", loaded.Containers)
	}
	if loaded.Totals[MetricTotalCPUUsage] != 0.4 {
		t.Errorf("totals did not round-trip: %v", loaded.Totals)
	}
}

func TestRoundCache_Missing(t *testing.T) {
	roundCacheFile = filepath.Join(t.TempDir(), "nope.json")

	if _, ok := LoadRoundFromCache(); ok {
		t.Error("expected cache miss for missing file")
	}
}

func TestRoundCache_Clear(t *testing.T) {
	roundCacheFile = filepath.Join(t.TempDir(), "round_cache.json")

	if err := SaveRoundToCache(RoundSummary{ID: 1}); err != nil {
		t.Fatalf("SaveRoundToCache: %v", err)
	}
	if err := ClearRoundCache(); err != nil {
		t.Fatalf("ClearRoundCache: %v", err)
	}
	if _, ok := LoadRoundFromCache(); ok {
		t.Error("expected cache miss after clear")
	}
	// clearing twice is fine
	if err := ClearRoundCache(); err != nil {
		t.Errorf("second ClearRoundCache: %v", err)
	}
}
