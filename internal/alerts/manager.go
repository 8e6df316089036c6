package alerts

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"dockops/internal/metrics"
)

// AlertType represents the resource an alert fires on
type AlertType string

const (
	AlertTypeCPU    AlertType = "cpu"
	AlertTypeMemory AlertType = "memory"
)

// Alert represents a threshold violation on one container
type Alert struct {
	Type      AlertType `json:"type"`
	Container string    `json:"container"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// ActiveAlert represents an active (firing) alert
type ActiveAlert struct {
	Fingerprint string
	Alert       Alert
	FirstSeen   time.Time
	LastSeen    time.Time
	Count       int
}

// Manager handles alert deduplication and tracking
type Manager struct {
	active            map[string]*ActiveAlert
	mutex             sync.RWMutex
	renotifyInterval  time.Duration // how often to re-surface still-active alerts
	resolutionTimeout time.Duration // how long after last sighting an alert resolves
	maxAlerts         int           // cap on active alerts
}

// Decision indicates whether an alert should be surfaced and why
type Decision struct {
	ShouldNotify bool
	Reason       string // "new", "renotify", "duplicate"
	Alert        *ActiveAlert
}

// NewManager creates a new alert manager
func NewManager(renotifyInterval, resolutionTimeout time.Duration) *Manager {
	return &Manager{
		active:            make(map[string]*ActiveAlert),
		renotifyInterval:  renotifyInterval,
		resolutionTimeout: resolutionTimeout,
		maxAlerts:         100,
	}
}

// Thresholds holds the per-container alert limits
type Thresholds struct {
	// CPUPercent is compared against the derived CPU ratio * 100
	CPUPercent float64
	// MemoryPercent is compared against usage/limit * 100
	MemoryPercent float64
}

// Evaluate checks every container in a completed round against the
// thresholds and returns the violations
func Evaluate(summary metrics.RoundSummary, thresholds Thresholds) []Alert {
	var violations []Alert
	now := time.Now()

	for _, m := range summary.Containers {
		cpuPct := m.CPUPercent * 100
		if thresholds.CPUPercent > 0 && cpuPct >= thresholds.CPUPercent {
			violations = append(violations, Alert{
				Type:      AlertTypeCPU,
				Container: m.Name,
				Message:   fmt.Sprintf("container %s CPU at %.1f%% (threshold %.1f%%)", m.Name, cpuPct, thresholds.CPUPercent),
				Value:     cpuPct,
				Threshold: thresholds.CPUPercent,
				Timestamp: now,
			})
		}

		memPct := m.MemoryPercent * 100
		if thresholds.MemoryPercent > 0 && m.MemoryLimit > 0 && memPct >= thresholds.MemoryPercent {
			violations = append(violations, Alert{
				Type:      AlertTypeMemory,
				Container: m.Name,
				Message:   fmt.Sprintf("container %s memory at %.1f%% of limit (threshold %.1f%%)", m.Name, memPct, thresholds.MemoryPercent),
				Value:     memPct,
				Threshold: thresholds.MemoryPercent,
				Timestamp: now,
			})
		}
	}

	return violations
}

// Process records an incoming alert and decides whether to surface it
func (am *Manager) Process(alert Alert) Decision {
	fingerprint := am.fingerprint(alert.Type, alert.Container)

	am.mutex.Lock()
	defer am.mutex.Unlock()

	existing, exists := am.active[fingerprint]

	if !exists {
		if len(am.active) >= am.maxAlerts {
			am.evictOldest()
		}

		activeAlert := &ActiveAlert{
			Fingerprint: fingerprint,
			Alert:       alert,
			FirstSeen:   time.Now(),
			LastSeen:    time.Now(),
			Count:       1,
		}
		am.active[fingerprint] = activeAlert

		return Decision{ShouldNotify: true, Reason: "new", Alert: activeAlert}
	}

	existing.LastSeen = time.Now()
	existing.Count++
	existing.Alert = alert // keep latest values

	if time.Since(existing.FirstSeen) >= am.renotifyInterval {
		existing.FirstSeen = time.Now() // reset renotify timer
		return Decision{ShouldNotify: true, Reason: "renotify", Alert: existing}
	}

	return Decision{ShouldNotify: false, Reason: "duplicate", Alert: existing}
}

// ClearResolved removes alerts that haven't fired in a while.
// Returns the resolved alerts so callers can log the recovery.
func (am *Manager) ClearResolved() []*ActiveAlert {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	var resolved []*ActiveAlert
	for fingerprint, alert := range am.active {
		if time.Since(alert.LastSeen) > am.resolutionTimeout {
			delete(am.active, fingerprint)
			resolved = append(resolved, alert)
		}
	}
	return resolved
}

// ActiveAlerts returns all currently firing alerts
func (am *Manager) ActiveAlerts() []*ActiveAlert {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	alerts := make([]*ActiveAlert, 0, len(am.active))
	for _, alert := range am.active {
		alerts = append(alerts, alert)
	}
	return alerts
}

// ActiveCount returns the number of firing alerts
func (am *Manager) ActiveCount() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.active)
}

// evictOldest drops the longest-standing alert. Caller holds the lock.
func (am *Manager) evictOldest() {
	oldestFingerprint := ""
	oldestTime := time.Now()
	for fp, a := range am.active {
		if a.FirstSeen.Before(oldestTime) {
			oldestTime = a.FirstSeen
			oldestFingerprint = fp
		}
	}
	if oldestFingerprint != "" {
		delete(am.active, oldestFingerprint)
	}
}

// fingerprint identifies an alert by resource type and container
func (am *Manager) fingerprint(alertType AlertType, container string) string {
	data := fmt.Sprintf("%s:%s", alertType, container)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:8])
}
