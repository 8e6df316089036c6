// Package report ships completed round summaries to an HTTP endpoint
// as CBOR payloads, for backends that ingest whole rounds instead of
// individual samples.
package report

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"dockops/internal/encoding"
	"dockops/internal/logger"
	"dockops/internal/metrics"
)

// Sender posts round reports to the configured backend
type Sender struct {
	url      string
	token    string
	hostname string
	client   *http.Client
}

// payload is the wire format of one round report
type payload struct {
	Hostname   string                     `cbor:"hostname"`
	RoundID    uint64                     `cbor:"round_id"`
	Completed  time.Time                  `cbor:"completed"`
	Totals     map[string]float64         `cbor:"totals"`
	Containers []metrics.ContainerMetrics `cbor:"containers"`
}

// ackResponse is the backend's CBOR acknowledgement body
type ackResponse struct {
	Status string `cbor:"status"`
}

// NewSender creates a sender for the given endpoint
func NewSender(url, token string) *Sender {
	hostname, _ := os.Hostname()
	return &Sender{
		url:      url,
		token:    token,
		hostname: hostname,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendRound posts one completed round. Failures are logged, never fatal.
func (s *Sender) SendRound(summary metrics.RoundSummary) {
	if s.url == "" {
		return
	}

	data := payload{
		Hostname:   s.hostname,
		RoundID:    summary.ID,
		Completed:  summary.Completed,
		Totals:     summary.Totals,
		Containers: summary.Containers,
	}

	headers := map[string]string{}
	if s.token != "" {
		headers["Authorization"] = "Bearer " + s.token
	}

	resp, err := encoding.SendCBORRequest(s.client, s.url, data, headers)
	if err != nil {
		logger.Warning("round report failed: %v", err)
		return
	}

	if resp.StatusCode >= 300 {
		resp.Body.Close()
		logger.Warning("round report rejected: %s", resp.Status)
		return
	}

	var ack ackResponse
	if err := encoding.ReadCBORResponse(resp, &ack); err == nil && ack.Status != "" {
		logger.Debug("round %d acknowledged by %s: %s", summary.ID, s.url, ack.Status)
	} else {
		logger.Debug("round %d reported to %s", summary.ID, s.url)
	}
}

// String describes the sender destination
func (s *Sender) String() string {
	return fmt.Sprintf("report sender -> %s", s.url)
}
