package report

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dockops/internal/encoding"
	"dockops/internal/metrics"
)

func TestSendRound(t *testing.T) {
	var received payload
	var contentType, auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := encoding.UnmarshalCBOR(body, &received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		ack, _ := encoding.MarshalCBOR(ackResponse{Status: "stored"})
		w.Header().Set("Content-Type", "application/cbor")
		w.WriteHeader(http.StatusAccepted)
		w.Write(ack)
	}))
	defer server.Close()

	sender := NewSender(server.URL, "secret")
	sender.SendRound(metrics.RoundSummary{
		ID:        42,
		Totals:    map[string]float64{metrics.MetricTotalCPUUsage: 0.8},
		Completed: time.Now(),
		Containers: []metrics.ContainerMetrics{
			{Name: "web", CPUPercent: 0.4},
			{Name: "db", CPUPercent: 0.4},
		},
	})

	if contentType != "application/cbor" {
		t.Errorf("Content-Type = %q, want application/cbor", contentType)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q, want bearer token", auth)
	}
	if received.RoundID != 42 {
		t.Errorf("round id = %d, want 42", received.RoundID)
	}
	if len(received.Containers) != 2 {
		t.Errorf("containers = %d, want 2", len(received.Containers))
	}
	if received.Totals[metrics.MetricTotalCPUUsage] != 0.8 {
		t.Errorf("totals did not round-trip: %v", received.Totals)
	}
}

func TestSendRound_NoURLIsNoop(t *testing.T) {
	sender := NewSender("", "")
	// must not panic or perform I/O
	sender.SendRound(metrics.RoundSummary{ID: 1})
}
