package metrics

import "time"

// Round is the stateful reducer for one polling cycle. It owns the
// pending set and the running totals; both are only ever touched from
// the collector's reduce loop, so no locking happens here.
//
// Lifecycle: names are registered before their stats request is
// dispatched, removed exactly once when the response is processed
// (or discarded), and the aggregate totals are flushed at the instant
// the pending set becomes empty.
type Round struct {
	id         uint64
	pending    map[string]struct{}
	totals     map[string]float64
	containers []ContainerMetrics
	dispatched int
	started    time.Time
}

func newRound(id uint64) *Round {
	return &Round{
		id:      id,
		pending: make(map[string]struct{}),
		totals:  make(map[string]float64),
		started: time.Now(),
	}
}

// Register adds a container name to the pending set ahead of its
// stats request. Returns false if the name is already pending, which
// means a duplicate container name in the same round; the caller must
// not dispatch a second request.
func (r *Round) Register(name string) bool {
	if _, exists := r.pending[name]; exists {
		return false
	}
	r.pending[name] = struct{}{}
	r.dispatched++
	return true
}

// Observe records one container's derived metrics: adds them into the
// running totals and removes the name from the pending set. Returns
// ok=false for a stray or duplicate response, which leaves all state
// untouched. done reports whether this observation completed the round.
func (r *Round) Observe(m ContainerMetrics) (done, ok bool) {
	if _, exists := r.pending[m.Name]; !exists {
		return false, false
	}
	delete(r.pending, m.Name)

	r.containers = append(r.containers, m)
	r.totals[MetricTotalCPUUsage] += m.CPUPercent
	r.totals[MetricMemoryUsageBytes] += m.MemoryUsage
	r.totals[MetricNetworkRxBytes] += m.NetworkRx
	r.totals[MetricNetworkTxBytes] += m.NetworkTx
	r.totals[MetricNetworkRxPackets] += m.RxPackets
	r.totals[MetricNetworkTxPackets] += m.TxPackets
	r.totals[MetricNetworkRxErrors] += m.RxErrors
	r.totals[MetricNetworkTxErrors] += m.TxErrors

	return r.Completed(), true
}

// Discard removes a failed container from the pending set with zero
// contribution to the totals. Same stray/duplicate guard as Observe.
func (r *Round) Discard(name string) (done, ok bool) {
	if _, exists := r.pending[name]; !exists {
		return false, false
	}
	delete(r.pending, name)
	return r.Completed(), true
}

// Completed reports whether every dispatched request has been
// accounted for. A round that dispatched nothing never completes.
func (r *Round) Completed() bool {
	return r.dispatched > 0 && len(r.pending) == 0
}

// PendingCount returns the number of containers still awaiting a response
func (r *Round) PendingCount() int {
	return len(r.pending)
}

// Aggregates returns the fleet-wide samples for a completed round,
// in fixed order and with no source tag
func (r *Round) Aggregates() []Sample {
	samples := make([]Sample, 0, len(AggregateNames))
	for _, name := range AggregateNames {
		samples = append(samples, Sample{Name: name, Value: r.totals[name]})
	}
	return samples
}

// Summary captures the completed round for caches, alerting and status
func (r *Round) Summary() RoundSummary {
	totals := make(map[string]float64, len(r.totals))
	for name, value := range r.totals {
		totals[name] = value
	}
	return RoundSummary{
		ID:         r.id,
		Containers: r.containers,
		Totals:     totals,
		Completed:  time.Now(),
	}
}
