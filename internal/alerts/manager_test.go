package alerts

import (
	"testing"
	"time"

	"dockops/internal/metrics"
)

func TestEvaluate_Thresholds(t *testing.T) {
	summary := metrics.RoundSummary{
		Containers: []metrics.ContainerMetrics{
			{Name: "quiet", CPUPercent: 0.10, MemoryPercent: 0.20, MemoryLimit: 1000},
			{Name: "hot", CPUPercent: 0.95, MemoryPercent: 0.20, MemoryLimit: 1000},
			{Name: "full", CPUPercent: 0.10, MemoryPercent: 0.95, MemoryLimit: 1000},
			{Name: "unlimited", CPUPercent: 0.10, MemoryPercent: 0, MemoryLimit: 0},
		},
	}

	violations := Evaluate(summary, Thresholds{CPUPercent: 85, MemoryPercent: 90})

	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %+v", len(violations), violations)
	}

	byContainer := map[string]Alert{}
	for _, v := range violations {
		byContainer[v.Container] = v
	}
	if alert, ok := byContainer["hot"]; !ok || alert.Type != AlertTypeCPU {
		t.Errorf("expected cpu alert for hot, got %+v", byContainer)
	}
	if alert, ok := byContainer["full"]; !ok || alert.Type != AlertTypeMemory {
		t.Errorf("expected memory alert for full, got %+v", byContainer)
	}
}

func TestEvaluate_ZeroThresholdsDisabled(t *testing.T) {
	summary := metrics.RoundSummary{
		Containers: []metrics.ContainerMetrics{
			{Name: "hot", CPUPercent: 5.0, MemoryPercent: 0.99, MemoryLimit: 1000},
		},
	}

	if violations := Evaluate(summary, Thresholds{}); len(violations) != 0 {
		t.Errorf("zero thresholds should disable alerting, got %+v", violations)
	}
}

func TestManager_Deduplication(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)

	alert := Alert{Type: AlertTypeCPU, Container: "web", Value: 95, Threshold: 85}

	first := m.Process(alert)
	if !first.ShouldNotify || first.Reason != "new" {
		t.Fatalf("first alert: %+v, want new notification", first)
	}

	second := m.Process(alert)
	if second.ShouldNotify || second.Reason != "duplicate" {
		t.Fatalf("second alert: %+v, want suppressed duplicate", second)
	}
	if second.Alert.Count != 2 {
		t.Errorf("expected count=2, got %d", second.Alert.Count)
	}
}

func TestManager_DifferentContainersNotDeduplicated(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)

	first := m.Process(Alert{Type: AlertTypeCPU, Container: "web"})
	second := m.Process(Alert{Type: AlertTypeCPU, Container: "db"})

	if !first.ShouldNotify || !second.ShouldNotify {
		t.Error("alerts for different containers must both notify")
	}
	if m.ActiveCount() != 2 {
		t.Errorf("expected 2 active alerts, got %d", m.ActiveCount())
	}
}

func TestManager_Renotify(t *testing.T) {
	m := NewManager(10*time.Millisecond, time.Minute)

	alert := Alert{Type: AlertTypeMemory, Container: "web"}
	m.Process(alert)

	time.Sleep(20 * time.Millisecond)

	decision := m.Process(alert)
	if !decision.ShouldNotify || decision.Reason != "renotify" {
		t.Errorf("expected renotify after interval, got %+v", decision)
	}
}

func TestManager_ClearResolved(t *testing.T) {
	m := NewManager(time.Hour, 10*time.Millisecond)

	m.Process(Alert{Type: AlertTypeCPU, Container: "web"})
	time.Sleep(20 * time.Millisecond)

	resolved := m.ClearResolved()
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved alert, got %d", len(resolved))
	}
	if m.ActiveCount() != 0 {
		t.Errorf("expected no active alerts after resolution, got %d", m.ActiveCount())
	}
}
