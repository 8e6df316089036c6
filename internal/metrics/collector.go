package metrics

import (
	"context"
	"sync"

	"github.com/docker/docker/api/types"

	"dockops/internal/docker"
)

// Engine is the subset of the Docker client the collector needs.
// Satisfied by *docker.Client and by fakes in tests.
type Engine interface {
	ListRunning(ctx context.Context) ([]docker.Container, error)
	ContainerStats(ctx context.Context, name string) (*types.StatsJSON, error)
}

// CollectorConfig holds the per-round collection policy
type CollectorConfig struct {
	// Source is the base source label; per-container samples are
	// tagged "<Source>.<container name>"
	Source string

	// Allowlist restricts polling to the named containers when set
	Allowlist []string

	// HoldOnError keeps a failed container in the pending set, so a
	// round with any failure never emits aggregates. The default
	// (false) drops the container with zero contribution instead.
	HoldOnError bool
}

// Collector runs polling rounds: discovery, stats fan-out, metric
// derivation and round aggregation
type Collector struct {
	engine Engine
	cfg    CollectorConfig
	sinks  []Sink
	events Events

	mu      sync.Mutex
	round   *Round
	nextID  uint64
	last    *RoundSummary
	onRound []func(RoundSummary)
}

// NewCollector creates a collector emitting to the given sinks
func NewCollector(engine Engine, cfg CollectorConfig, events Events, sinks ...Sink) *Collector {
	return &Collector{
		engine: engine,
		cfg:    cfg,
		sinks:  sinks,
		events: events,
	}
}

// OnRound registers a callback invoked with the summary of every
// completed round, on the polling goroutine
func (c *Collector) OnRound(fn func(RoundSummary)) {
	c.onRound = append(c.onRound, fn)
}

// LastRound returns the most recently completed round summary
func (c *Collector) LastRound() (RoundSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return RoundSummary{}, false
	}
	return *c.last, true
}

// Poll runs one complete round: discover running containers, fan out
// one stats request per container, reduce the responses into the
// round's totals and emit the aggregates once every dispatched
// request has been accounted for.
func (c *Collector) Poll(ctx context.Context) error {
	round := c.beginRound()

	containers, err := c.engine.ListRunning(ctx)
	if err != nil {
		c.events.Error("container discovery failed: %v", err)
		c.clearRound(round)
		return err
	}

	containers = docker.Filter(containers, c.cfg.Allowlist)
	if len(containers) == 0 {
		c.events.Info("no containers running")
		c.clearRound(round)
		return nil
	}

	type statsResult struct {
		name  string
		stats *types.StatsJSON
		err   error
	}
	results := make(chan statsResult, len(containers))
	var wg sync.WaitGroup

	for _, cont := range containers {
		// registration happens before the request is issued, so an
		// immediate response cannot race ahead of the pending set
		if !round.Register(cont.Name) {
			c.events.Warning("duplicate container name %q in round %d, skipping second dispatch", cont.Name, round.id)
			continue
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			stats, err := c.engine.ContainerStats(ctx, name)
			results <- statsResult{name: name, stats: stats, err: err}
		}(cont.Name)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// single-threaded reduction: pending set and totals are only
	// mutated here, in response arrival order
	for res := range results {
		if res.err != nil {
			c.events.Error("stats for container %s: %v", res.name, res.err)
			if c.cfg.HoldOnError {
				// reproduce the upstream stall policy: the name stays
				// pending and this round never emits aggregates
				continue
			}
			if done, ok := round.Discard(res.name); ok && done {
				c.finishRound(round)
			}
			continue
		}

		derived := Derive(res.name, res.stats)
		c.emit(derived.Samples(c.cfg.Source))

		done, ok := round.Observe(derived)
		if !ok {
			c.events.Warning("stray stats response for %s in round %d, ignoring", res.name, round.id)
			continue
		}
		if done {
			c.finishRound(round)
		}
	}

	if !round.Completed() && round.PendingCount() > 0 {
		c.events.Warning("round %d stalled with %d container(s) still pending", round.id, round.PendingCount())
	}
	return nil
}

// beginRound starts a fresh round. A previous round still pending
// (stalled under the hold policy) is abandoned without emission, so
// two rounds' data can never merge.
func (c *Collector) beginRound() *Round {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.round != nil && !c.round.Completed() {
		c.events.Warning("abandoning round %d with %d container(s) still pending", c.round.id, c.round.PendingCount())
	}

	c.nextID++
	round := newRound(c.nextID)
	c.round = round
	return round
}

// finishRound flushes a completed round: emits the aggregate samples
// exactly once, records the summary and resets for the next round
func (c *Collector) finishRound(round *Round) {
	c.emit(round.Aggregates())

	summary := round.Summary()
	c.mu.Lock()
	c.last = &summary
	c.round = nil
	c.mu.Unlock()

	c.events.Info("round %d complete: %d container(s) aggregated", round.id, len(summary.Containers))
	for _, fn := range c.onRound {
		fn(summary)
	}
}

func (c *Collector) clearRound(round *Round) {
	c.mu.Lock()
	if c.round == round {
		c.round = nil
	}
	c.mu.Unlock()
}

func (c *Collector) emit(samples []Sample) {
	for _, sink := range c.sinks {
		sink.Emit(samples)
	}
}
