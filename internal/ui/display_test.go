package ui

import (
	"strings"
	"testing"

	"dockops/internal/metrics"
)

func TestCreatePerfectTable(t *testing.T) {
	out := CreatePerfectTable(map[string]string{
		"Round":      "42",
		"Containers": "3",
	})

	if !strings.Contains(out, "Round") || !strings.Contains(out, "42") {
		t.Errorf("table missing entries:\n%s", out)
	}

	// rows are sorted by key
	if strings.Index(out, "Containers") > strings.Index(out, "Round") {
		t.Errorf("rows not sorted by key:\n%s", out)
	}

	// keys pad to the longest key so values align
	if !strings.Contains(out, "Round     ") {
		t.Errorf("short key not padded:\n%s", out)
	}
}

func TestCreatePerfectTable_TruncatesLongValues(t *testing.T) {
	out := CreatePerfectTable(map[string]string{
		"Endpoint": strings.Repeat("x", 60),
	})

	if !strings.Contains(out, "...") {
		t.Errorf("long value not truncated:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat("x", 40)) {
		t.Errorf("value kept beyond the column limit:\n%s", out)
	}
}

func TestCreateContainerTable(t *testing.T) {
	out := CreateContainerTable([]metrics.ContainerMetrics{
		{Name: "web", CPUPercent: 0.4, MemoryUsage: 1024, MemoryPercent: 0.25},
	})

	if !strings.Contains(out, "web") {
		t.Errorf("container row missing:\n%s", out)
	}
	if !strings.Contains(out, "0.40") {
		t.Errorf("cpu value missing:\n%s", out)
	}
	if !strings.Contains(out, "1.0 KB") {
		t.Errorf("memory not formatted:\n%s", out)
	}
}

func TestCreateContainerTable_Empty(t *testing.T) {
	out := CreateContainerTable(nil)
	if !strings.Contains(out, "No containers") {
		t.Errorf("empty table message missing:\n%s", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
