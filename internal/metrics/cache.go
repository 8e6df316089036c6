package metrics

import (
	"encoding/json"
	"os"
	"time"

	constants "dockops/config"
)

// Variable (not constant) to allow override in tests
var roundCacheFile = constants.ROUND_CACHE

const cacheMaxAge = 2 * time.Minute

// cachedRound wraps a round summary with its write time
type cachedRound struct {
	Round     RoundSummary `json:"round"`
	Timestamp time.Time    `json:"timestamp"`
}

// SaveRoundToCache persists the last completed round so the status
// command can show it without talking to the daemon
func SaveRoundToCache(summary RoundSummary) error {
	cached := cachedRound{
		Round:     summary,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	// Write to temp file first, then rename (atomic operation)
	tmpFile := roundCacheFile + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, roundCacheFile)
}

// LoadRoundFromCache loads the last cached round.
// Returns false if the cache is missing, unreadable or stale.
func LoadRoundFromCache() (RoundSummary, bool) {
	data, err := os.ReadFile(roundCacheFile)
	if err != nil {
		return RoundSummary{}, false
	}

	var cached cachedRound
	if err := json.Unmarshal(data, &cached); err != nil {
		return RoundSummary{}, false
	}

	if time.Since(cached.Timestamp) > cacheMaxAge {
		return RoundSummary{}, false
	}

	return cached.Round, true
}

// ClearRoundCache removes the cache file
func ClearRoundCache() error {
	if _, err := os.Stat(roundCacheFile); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(roundCacheFile)
}
