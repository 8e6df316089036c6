package metrics

import (
	"math"
	"strings"

	"github.com/docker/docker/api/types"
)

// Derive turns one container's raw stats payload into the fixed set
// of derived metric values
func Derive(name string, stats *types.StatsJSON) ContainerMetrics {
	reads, writes := blockIO(stats.BlkioStats.IoServiceBytesRecursive)

	memUsage := float64(stats.MemoryStats.Usage)
	memLimit := float64(stats.MemoryStats.Limit)
	memPercent := 0.0
	if memLimit > 0 {
		memPercent = round(memUsage/memLimit, 4)
	}

	var rxBytes, txBytes, rxPackets, txPackets, rxErrors, txErrors float64
	for _, network := range stats.Networks {
		rxBytes += float64(network.RxBytes)
		txBytes += float64(network.TxBytes)
		rxPackets += float64(network.RxPackets)
		txPackets += float64(network.TxPackets)
		rxErrors += float64(network.RxErrors)
		txErrors += float64(network.TxErrors)
	}

	return ContainerMetrics{
		Name:          name,
		CPUPercent:    calculateCPUPercent(stats),
		MemoryUsage:   memUsage,
		MemoryLimit:   memLimit,
		MemoryPercent: memPercent,
		BlockRead:     reads,
		BlockWrite:    writes,
		NetworkRx:     round(rxBytes, 2),
		NetworkTx:     round(txBytes, 2),
		RxPackets:     round(rxPackets, 2),
		TxPackets:     round(txPackets, 2),
		RxErrors:      rxErrors,
		TxErrors:      txErrors,
	}
}

// calculateCPUPercent derives CPU utilization from the delta between
// the previous and current accounting snapshots. The result is a
// ratio scaled by the core count, not clamped: a container saturating
// four cores reports 4.0.
func calculateCPUPercent(stats *types.StatsJSON) float64 {
	cpuDelta := float64(stats.CPUStats.CPUUsage.TotalUsage) - float64(stats.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(stats.CPUStats.SystemUsage) - float64(stats.PreCPUStats.SystemUsage)

	if systemDelta <= 0 || cpuDelta <= 0 {
		return 0
	}

	return (cpuDelta / systemDelta) * float64(len(stats.CPUStats.CPUUsage.PercpuUsage))
}

// blockIO sums read and write byte counters from the raw block I/O
// entries. Operation kind matching is case-insensitive; unrecognized
// kinds (sync, async, total, ...) are ignored.
func blockIO(entries []types.BlkioStatEntry) (reads, writes float64) {
	for _, entry := range entries {
		switch strings.ToLower(entry.Op) {
		case "read":
			reads += float64(entry.Value)
		case "write":
			writes += float64(entry.Value)
		}
	}
	return reads, writes
}

func round(value float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(value*shift) / shift
}
