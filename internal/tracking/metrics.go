package tracking

import (
	"sync"
	"time"
)

// PollMetrics tracks polling loop activity.
type PollMetrics struct {
	FetchesStarted      int64         `json:"fetchesStarted"`
	FetchesSucceeded    int64         `json:"fetchesSucceeded"`
	FetchesFailed       int64         `json:"fetchesFailed"`
	FetchesDiscarded    int64         `json:"fetchesDiscarded"`
	RefreshesCoalesced  int64         `json:"refreshesCoalesced"`
	LastFetchDuration   time.Duration `json:"lastFetchDuration"`
	AverageFetchLatency time.Duration `json:"averageFetchLatency"`
}

// MetricsTracker provides a goroutine-safe wrapper around PollMetrics.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics PollMetrics
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

// Update applies a mutation under the lock.
func (t *MetricsTracker) Update(fn func(*PollMetrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metrics)
}

// Snapshot returns a copy of the current metrics.
func (t *MetricsTracker) Snapshot() PollMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}

func (m *PollMetrics) recordLatency(d time.Duration) {
	m.LastFetchDuration = d
	if m.AverageFetchLatency == 0 {
		m.AverageFetchLatency = d
	} else {
		m.AverageFetchLatency = (m.AverageFetchLatency + d) / 2
	}
}
