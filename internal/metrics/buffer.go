package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

// HistoryBuffer stores fleet aggregate history for status reporting.
// One point per completed round, per tracked metric.
type HistoryBuffer struct {
	cpu     *timeseries
	memory  *timeseries
	rx      *timeseries
	tx      *timeseries
	maxSize int
	mutex   sync.RWMutex
}

// timeseries stores metric points in a ring buffer for O(1) insert
type timeseries struct {
	points []HistoryPoint
	max    int // maximum points to store
	head   int // index of oldest element
	count  int // current number of elements
}

// HistoryPoint represents a single aggregate measurement
type HistoryPoint struct {
	Timestamp time.Time
	Value     float64
}

// HistoryStatistics holds statistical analysis over a window
type HistoryStatistics struct {
	Current float64
	Min     float64
	Max     float64
	Avg     float64
	P50     float64
	P95     float64
	P99     float64
	StdDev  float64
}

// NewHistoryBuffer creates a buffer keeping the last maxSize rounds
func NewHistoryBuffer(maxSize int) *HistoryBuffer {
	return &HistoryBuffer{
		cpu:     newTimeseries(maxSize),
		memory:  newTimeseries(maxSize),
		rx:      newTimeseries(maxSize),
		tx:      newTimeseries(maxSize),
		maxSize: maxSize,
	}
}

func newTimeseries(max int) *timeseries {
	return &timeseries{
		points: make([]HistoryPoint, max),
		max:    max,
	}
}

// AddRound records one completed round's fleet aggregates
func (hb *HistoryBuffer) AddRound(summary RoundSummary) {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()

	ts := summary.Completed
	hb.cpu.addPoint(HistoryPoint{Timestamp: ts, Value: summary.Totals[MetricTotalCPUUsage]})
	hb.memory.addPoint(HistoryPoint{Timestamp: ts, Value: summary.Totals[MetricMemoryUsageBytes]})
	hb.rx.addPoint(HistoryPoint{Timestamp: ts, Value: summary.Totals[MetricNetworkRxBytes]})
	hb.tx.addPoint(HistoryPoint{Timestamp: ts, Value: summary.Totals[MetricNetworkTxBytes]})
}

func (ts *timeseries) addPoint(point HistoryPoint) {
	insertIdx := (ts.head + ts.count) % ts.max
	ts.points[insertIdx] = point

	if ts.count < ts.max {
		ts.count++
	} else {
		// buffer is full, overwrite oldest
		ts.head = (ts.head + 1) % ts.max
	}
}

// CPUStatistics calculates fleet CPU statistics within a time window
func (hb *HistoryBuffer) CPUStatistics(windowMinutes int) HistoryStatistics {
	hb.mutex.RLock()
	defer hb.mutex.RUnlock()
	return hb.cpu.getStatistics(windowMinutes)
}

// MemoryStatistics calculates fleet memory statistics within a time window
func (hb *HistoryBuffer) MemoryStatistics(windowMinutes int) HistoryStatistics {
	hb.mutex.RLock()
	defer hb.mutex.RUnlock()
	return hb.memory.getStatistics(windowMinutes)
}

// NetworkStatistics calculates fleet rx/tx statistics within a time window
func (hb *HistoryBuffer) NetworkStatistics(windowMinutes int) (rx, tx HistoryStatistics) {
	hb.mutex.RLock()
	defer hb.mutex.RUnlock()
	return hb.rx.getStatistics(windowMinutes), hb.tx.getStatistics(windowMinutes)
}

// CPUHistory returns fleet CPU history points in order, oldest first
func (hb *HistoryBuffer) CPUHistory() []HistoryPoint {
	hb.mutex.RLock()
	defer hb.mutex.RUnlock()
	return hb.cpu.orderedPoints()
}

func (ts *timeseries) getStatistics(windowMinutes int) HistoryStatistics {
	if ts.count == 0 {
		return HistoryStatistics{}
	}

	cutoff := time.Now().Add(-time.Duration(windowMinutes) * time.Minute)
	values := make([]float64, 0, ts.count)
	for i := 0; i < ts.count; i++ {
		idx := (ts.head + i) % ts.max
		p := ts.points[idx]
		if p.Timestamp.After(cutoff) {
			values = append(values, p.Value)
		}
	}

	newestIdx := (ts.head + ts.count - 1) % ts.max
	current := ts.points[newestIdx].Value

	if len(values) == 0 {
		return HistoryStatistics{Current: current}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return HistoryStatistics{
		Current: current,
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Avg:     average(values),
		P50:     percentile(sorted, 50),
		P95:     percentile(sorted, 95),
		P99:     percentile(sorted, 99),
		StdDev:  stdDev(values),
	}
}

func (ts *timeseries) orderedPoints() []HistoryPoint {
	result := make([]HistoryPoint, ts.count)
	for i := 0; i < ts.count; i++ {
		idx := (ts.head + i) % ts.max
		result[i] = ts.points[idx]
	}
	return result
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func percentile(sortedValues []float64, p int) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	index := int(float64(len(sortedValues)-1) * float64(p) / 100.0)
	if index >= len(sortedValues) {
		index = len(sortedValues) - 1
	}
	return sortedValues[index]
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	avg := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - avg
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
