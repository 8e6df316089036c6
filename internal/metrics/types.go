package metrics

import "time"

// Metric names emitted for every container and, summed, for the fleet
const (
	MetricBlockIOReadBytes   = "BLOCK_IO_READ_BYTES"
	MetricBlockIOWriteBytes  = "BLOCK_IO_WRITE_BYTES"
	MetricTotalCPUUsage      = "TOTAL_CPU_USAGE"
	MetricMemoryUsageBytes   = "MEMORY_USAGE_BYTES"
	MetricMemoryLimitBytes   = "MEMORY_LIMIT_BYTES"
	MetricMemoryUsagePercent = "MEMORY_USAGE_PERCENT"
	MetricNetworkRxBytes     = "NETWORK_RX_BYTES"
	MetricNetworkTxBytes     = "NETWORK_TX_BYTES"
	MetricNetworkRxPackets   = "NETWORK_RX_PACKETS"
	MetricNetworkTxPackets   = "NETWORK_TX_PACKETS"
	MetricNetworkRxErrors    = "NETWORK_RX_ERRORS"
	MetricNetworkTxErrors    = "NETWORK_TX_ERRORS"
)

// MetricNames lists every per-container metric, in emission order
var MetricNames = []string{
	MetricBlockIOReadBytes,
	MetricBlockIOWriteBytes,
	MetricTotalCPUUsage,
	MetricMemoryUsageBytes,
	MetricMemoryLimitBytes,
	MetricMemoryUsagePercent,
	MetricNetworkRxBytes,
	MetricNetworkTxBytes,
	MetricNetworkRxPackets,
	MetricNetworkTxPackets,
	MetricNetworkRxErrors,
	MetricNetworkTxErrors,
}

// AggregateNames lists the metrics summed across containers and
// emitted once per completed round, in emission order
var AggregateNames = []string{
	MetricTotalCPUUsage,
	MetricMemoryUsageBytes,
	MetricNetworkRxBytes,
	MetricNetworkTxBytes,
	MetricNetworkRxPackets,
	MetricNetworkTxPackets,
	MetricNetworkRxErrors,
	MetricNetworkTxErrors,
}

// Sample is a single emitted metric value. Source is
// "<base>.<container>" for per-container samples and empty for
// fleet aggregates.
type Sample struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Source string  `json:"source,omitempty"`
}

// ContainerMetrics holds the derived values for one container's
// stats response
type ContainerMetrics struct {
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryUsage   float64 `json:"memory_usage"`
	MemoryLimit   float64 `json:"memory_limit"`
	MemoryPercent float64 `json:"memory_percent"`
	BlockRead     float64 `json:"block_read"`
	BlockWrite    float64 `json:"block_write"`
	NetworkRx     float64 `json:"network_rx"`
	NetworkTx     float64 `json:"network_tx"`
	RxPackets     float64 `json:"rx_packets"`
	TxPackets     float64 `json:"tx_packets"`
	RxErrors      float64 `json:"rx_errors"`
	TxErrors      float64 `json:"tx_errors"`
}

// Samples returns the fixed, ordered set of per-container samples,
// tagged with source "<base>.<name>"
func (m ContainerMetrics) Samples(base string) []Sample {
	source := base + "." + m.Name
	return []Sample{
		{Name: MetricBlockIOReadBytes, Value: m.BlockRead, Source: source},
		{Name: MetricBlockIOWriteBytes, Value: m.BlockWrite, Source: source},
		{Name: MetricTotalCPUUsage, Value: m.CPUPercent, Source: source},
		{Name: MetricMemoryUsageBytes, Value: m.MemoryUsage, Source: source},
		{Name: MetricMemoryLimitBytes, Value: m.MemoryLimit, Source: source},
		{Name: MetricMemoryUsagePercent, Value: m.MemoryPercent, Source: source},
		{Name: MetricNetworkRxBytes, Value: m.NetworkRx, Source: source},
		{Name: MetricNetworkTxBytes, Value: m.NetworkTx, Source: source},
		{Name: MetricNetworkRxPackets, Value: m.RxPackets, Source: source},
		{Name: MetricNetworkTxPackets, Value: m.TxPackets, Source: source},
		{Name: MetricNetworkRxErrors, Value: m.RxErrors, Source: source},
		{Name: MetricNetworkTxErrors, Value: m.TxErrors, Source: source},
	}
}

// RoundSummary is the outcome of one completed polling round
type RoundSummary struct {
	ID         uint64             `json:"id"`
	Containers []ContainerMetrics `json:"containers"`
	Totals     map[string]float64 `json:"totals"`
	Completed  time.Time          `json:"completed"`
}

// Sink receives metric samples emitted by the collector
type Sink interface {
	Emit(samples []Sample)
}

// Events receives informational, warning and error events from the
// collector. *logger.Logger satisfies it.
type Events interface {
	Info(message string, args ...interface{})
	Warning(message string, args ...interface{})
	Error(message string, args ...interface{})
}
