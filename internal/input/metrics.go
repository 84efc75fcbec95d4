package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const maxLatencySamples = 1000

// Metrics tracks keystroke processing.
type Metrics struct {
	keystrokesTotal  atomic.Uint64
	actionsTotal     atomic.Uint64
	insertionsTotal  atomic.Uint64
	sequenceTimeouts atomic.Uint64
	hookConsumptions atomic.Uint64

	mu               sync.Mutex
	keyLatencies     []time.Duration
	actionLatencies  []time.Duration
	keyLatencyIdx    int
	actionLatencyIdx int

	peakKeyLatency atomic.Int64
	startTime      time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		keyLatencies:    make([]time.Duration, maxLatencySamples),
		actionLatencies: make([]time.Duration, maxLatencySamples),
		startTime:       time.Now(),
	}
}

// RecordKeystroke records a keystroke with its processing time.
func (m *Metrics) RecordKeystroke(latency time.Duration) {
	m.keystrokesTotal.Add(1)

	ns := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if ns <= current || m.peakKeyLatency.CompareAndSwap(current, ns) {
			break
		}
	}

	m.mu.Lock()
	m.keyLatencies[m.keyLatencyIdx] = latency
	m.keyLatencyIdx = (m.keyLatencyIdx + 1) % maxLatencySamples
	m.mu.Unlock()
}

// RecordAction records an action dispatch with its processing time.
func (m *Metrics) RecordAction(latency time.Duration) {
	m.actionsTotal.Add(1)

	m.mu.Lock()
	m.actionLatencies[m.actionLatencyIdx] = latency
	m.actionLatencyIdx = (m.actionLatencyIdx + 1) % maxLatencySamples
	m.mu.Unlock()
}

// RecordInsertion records a keystroke handled as text.
func (m *Metrics) RecordInsertion() {
	m.insertionsTotal.Add(1)
}

// RecordSequenceTimeout records a discarded pending sequence.
func (m *Metrics) RecordSequenceTimeout() {
	m.sequenceTimeouts.Add(1)
}

// RecordHookConsumption records a keystroke claimed by a hook.
func (m *Metrics) RecordHookConsumption() {
	m.hookConsumptions.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeystrokesTotal  uint64
	ActionsTotal     uint64
	InsertionsTotal  uint64
	SequenceTimeouts uint64
	HookConsumptions uint64

	AvgKeyLatency  time.Duration
	P99KeyLatency  time.Duration
	PeakKeyLatency time.Duration

	AvgActionLatency time.Duration
	P99ActionLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	keyLatencies := slices.Clone(m.keyLatencies)
	actionLatencies := slices.Clone(m.actionLatencies)
	m.mu.Unlock()

	snap := MetricsSnapshot{
		KeystrokesTotal:  m.keystrokesTotal.Load(),
		ActionsTotal:     m.actionsTotal.Load(),
		InsertionsTotal:  m.insertionsTotal.Load(),
		SequenceTimeouts: m.sequenceTimeouts.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		PeakKeyLatency:   time.Duration(m.peakKeyLatency.Load()),
		Uptime:           time.Since(m.startTime),
	}
	snap.AvgKeyLatency, snap.P99KeyLatency = latencyStats(keyLatencies)
	snap.AvgActionLatency, snap.P99ActionLatency = latencyStats(actionLatencies)
	return snap
}

// latencyStats computes the average and p99 of the recorded samples.
func latencyStats(latencies []time.Duration) (avg, p99 time.Duration) {
	valid := slices.DeleteFunc(latencies, func(l time.Duration) bool { return l <= 0 })
	if len(valid) == 0 {
		return 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	idx := min(int(float64(len(valid))*0.99), len(valid)-1)
	return avg, valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keystrokesTotal.Store(0)
	m.actionsTotal.Store(0)
	m.insertionsTotal.Store(0)
	m.sequenceTimeouts.Store(0)
	m.hookConsumptions.Store(0)
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	m.keyLatencies = make([]time.Duration, maxLatencySamples)
	m.actionLatencies = make([]time.Duration, maxLatencySamples)
	m.keyLatencyIdx = 0
	m.actionLatencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// Timer helps measure operation duration.
type Timer struct {
	start time.Time
	stop  func(time.Duration)
}

// StartKeystrokeTimer starts a timer for a keystroke.
func (m *Metrics) StartKeystrokeTimer() *Timer {
	return &Timer{start: time.Now(), stop: m.RecordKeystroke}
}

// StartActionTimer starts a timer for an action dispatch.
func (m *Metrics) StartActionTimer() *Timer {
	return &Timer{start: time.Now(), stop: m.RecordAction}
}

// Stop records the elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.stop(elapsed)
	return elapsed
}
