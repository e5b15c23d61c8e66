package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"yacht-tracker/internal/domain/device"
	"yacht-tracker/internal/logger"
	"yacht-tracker/internal/observability/metrics"

	"go.uber.org/zap"
)

var (
	ErrRefreshInFlight = errors.New("a telemetry fetch is already in flight")
	ErrFetchDiscarded  = errors.New("telemetry fetch discarded after a mode change")
)

// Status describes the polling loop and the freshness of its snapshot.
type Status struct {
	Running       bool          `json:"running"`
	Fetching      bool          `json:"fetching"`
	Stale         bool          `json:"stale"`
	LastError     string        `json:"lastError,omitempty"`
	LastAttemptAt time.Time     `json:"lastAttemptAt"`
	LastSuccessAt time.Time     `json:"lastSuccessAt"`
	SourceTime    time.Time     `json:"sourceTime"`
	DeviceCount   int           `json:"deviceCount"`
	Interval      time.Duration `json:"interval"`
	Metrics       PollMetrics   `json:"metrics"`
}

// Poller keeps the latest classified snapshot fresh. At most one fetch runs
// at a time; ticks and triggers that arrive meanwhile are dropped. A fetch
// that completes after Stop (or a later Start) is discarded.
type Poller struct {
	source   device.Source
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	snapshot atomic.Pointer[device.Snapshot]
	inFlight atomic.Bool
	trigger  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	running     bool
	epoch       uint64
	stopLoop    context.CancelFunc
	loopDone    chan struct{}
	stale       bool
	lastErr     string
	lastAttempt time.Time
	lastSuccess time.Time

	fetches sync.WaitGroup
	metrics *MetricsTracker
}

func NewPoller(source device.Source, interval, timeout time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())

	return &Poller{
		source:   source,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
		trigger:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		metrics:  NewMetricsTracker(),
	}
}

// Start resumes polling with an immediate fetch. It reports false when the
// loop was already running or the poller is closed.
func (p *Poller) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running || p.ctx.Err() != nil {
		return false
	}

	p.running = true
	p.epoch++
	loopCtx, stop := context.WithCancel(p.ctx)
	done := make(chan struct{})
	p.stopLoop = stop
	p.loopDone = done

	go p.run(loopCtx, p.epoch, done)

	logger.Info("Live tracking started",
		zap.Duration("interval", p.interval),
		zap.String("event", "tracking_started"),
	)
	return true
}

// Stop suspends polling. A fetch already in flight finishes but its result
// is dropped. It reports false when the loop was not running.
func (p *Poller) Stop() bool {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return false
	}
	p.running = false
	p.epoch++
	stop, done := p.stopLoop, p.loopDone
	p.mu.Unlock()

	stop()
	<-done

	logger.Info("Live tracking suspended", zap.String("event", "tracking_suspended"))
	return true
}

// Close stops the loop, cancels any in-flight fetch and waits for it.
func (p *Poller) Close() {
	p.Stop()
	p.cancel()
	p.fetches.Wait()
}

// Trigger asks the running loop for an immediate fetch. It never blocks and
// does nothing while suspended.
func (p *Poller) Trigger() {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()

	if !running {
		return
	}

	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Refresh fetches synchronously on the caller's goroutine. It returns
// ErrRefreshInFlight without fetching when another fetch is running.
func (p *Poller) Refresh(ctx context.Context) error {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.coalesced()
		return ErrRefreshInFlight
	}

	p.fetches.Add(1)
	defer p.fetches.Done()

	p.mu.Lock()
	epoch := p.epoch
	p.mu.Unlock()

	err := p.fetch(ctx, epoch)
	p.inFlight.Store(false)
	p.retryDiscarded(err)
	return err
}

// Snapshot returns the latest snapshot, or nil before the first successful
// fetch.
func (p *Poller) Snapshot() *device.Snapshot {
	return p.snapshot.Load()
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) Status() Status {
	p.mu.Lock()
	st := Status{
		Running:       p.running,
		Stale:         p.stale,
		LastError:     p.lastErr,
		LastAttemptAt: p.lastAttempt,
		LastSuccessAt: p.lastSuccess,
		Interval:      p.interval,
	}
	p.mu.Unlock()

	st.Fetching = p.inFlight.Load()
	st.Metrics = p.metrics.Snapshot()
	if snap := p.snapshot.Load(); snap != nil {
		st.DeviceCount = len(snap.Devices)
		st.SourceTime = snap.SourceTime
	}
	return st
}

func (p *Poller) run(ctx context.Context, epoch uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.dispatch(epoch)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.dispatch(epoch)
		case <-p.trigger:
			p.dispatch(epoch)
		}
	}
}

// dispatch starts a background fetch unless one is running. The fetch uses
// the poller's base context so suspending does not cancel it.
func (p *Poller) dispatch(epoch uint64) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.coalesced()
		return
	}

	p.fetches.Add(1)
	go func() {
		defer p.fetches.Done()
		err := p.fetch(p.ctx, epoch)
		p.inFlight.Store(false)
		p.retryDiscarded(err)
	}()
}

// retryDiscarded re-arms the loop after a fetch from an earlier session was
// dropped. A resume that arrived during that fetch was coalesced into it, so
// without this the first fresh snapshot would wait a full interval.
func (p *Poller) retryDiscarded(err error) {
	if errors.Is(err, ErrFetchDiscarded) {
		p.Trigger()
	}
}

func (p *Poller) coalesced() {
	p.metrics.Update(func(m *PollMetrics) {
		m.RefreshesCoalesced++
	})
	metrics.IncPollCoalesced()
}

func (p *Poller) fetch(ctx context.Context, epoch uint64) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.metrics.Update(func(m *PollMetrics) {
		m.FetchesStarted++
	})

	started := p.now()
	raw, err := p.source.FetchSnapshot(ctx)
	elapsed := p.now().Sub(started)

	var snap *device.Snapshot
	if err == nil && raw == nil {
		err = fmt.Errorf("%w: empty response", device.ErrFetchFailed)
	}
	if err == nil {
		snap = &device.Snapshot{
			Devices:    ClassifyAll(raw.Devices),
			SourceTime: ParseTimestamp(raw.LastUpdate),
			FetchedAt:  p.now(),
		}
	}

	p.mu.Lock()
	if p.epoch != epoch {
		p.mu.Unlock()
		p.metrics.Update(func(m *PollMetrics) {
			m.FetchesDiscarded++
		})
		metrics.ObservePoll(metrics.ResultDiscarded, elapsed)
		logger.Debug("Discarding telemetry fetch from previous tracking session",
			zap.String("event", "snapshot_discarded"),
		)
		return ErrFetchDiscarded
	}

	p.lastAttempt = started
	if err != nil {
		p.stale = true
		p.lastErr = err.Error()
		p.mu.Unlock()

		kept := 0
		if prev := p.snapshot.Load(); prev != nil {
			kept = len(prev.Devices)
		}
		p.metrics.Update(func(m *PollMetrics) {
			m.FetchesFailed++
			m.recordLatency(elapsed)
		})
		metrics.ObservePoll(metrics.ResultError, elapsed)
		metrics.SetSnapshot(kept, true)
		logger.Warn("Telemetry fetch failed, keeping previous snapshot",
			zap.Error(err),
			zap.Int("kept_devices", kept),
			zap.String("event", "snapshot_fetch_failed"),
		)
		return err
	}

	p.snapshot.Store(snap)
	p.stale = false
	p.lastErr = ""
	p.lastSuccess = snap.FetchedAt
	p.mu.Unlock()

	p.metrics.Update(func(m *PollMetrics) {
		m.FetchesSucceeded++
		m.recordLatency(elapsed)
	})
	metrics.ObservePoll(metrics.ResultSuccess, elapsed)
	metrics.SetSnapshot(len(snap.Devices), false)
	logger.Debug("Snapshot refreshed",
		zap.Int("devices", len(snap.Devices)),
		zap.Duration("latency", elapsed),
		zap.String("event", "snapshot_refreshed"),
	)
	return nil
}
