// Package sink provides the downstream emitters for collected metric
// samples: the log sink, the OTLP push pipeline and the CBOR round
// reporter all satisfy metrics.Sink.
package sink

import (
	"dockops/internal/logger"
	"dockops/internal/metrics"
)

// LogSink writes every emitted sample to the application log.
// Useful for local mode and debugging.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink creates a sink writing to the given logger
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// Emit implements metrics.Sink
func (s *LogSink) Emit(samples []metrics.Sample) {
	for _, sample := range samples {
		if sample.Source == "" {
			s.log.Info("metric %s=%v (aggregate)", sample.Name, sample.Value)
			continue
		}
		s.log.Info("metric %s=%v source=%s", sample.Name, sample.Value, sample.Source)
	}
}
