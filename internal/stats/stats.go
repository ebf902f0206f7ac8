package stats

import (
	"sync/atomic"
)

// Live aggregates in-flight batch progress. Counters are atomics and the
// histogram is lock-protected, so workers write while the console reads.
type Live struct {
	requests uint64
	success  uint64
	fail     uint64

	Latency *LatencyHistogram
}

func NewLive() *Live {
	return &Live{Latency: NewLatencyHistogram()}
}

// Observe records one completed request. Only successful latencies enter
// the histogram, matching the final report's exclude-failures policy.
func (l *Live) Observe(success bool, latencyMs float64) {
	atomic.AddUint64(&l.requests, 1)
	if success {
		atomic.AddUint64(&l.success, 1)
		l.Latency.RecordMs(latencyMs)
	} else {
		atomic.AddUint64(&l.fail, 1)
	}
}

// Counts returns the running totals.
func (l *Live) Counts() (requests, success, fail uint64) {
	return atomic.LoadUint64(&l.requests),
		atomic.LoadUint64(&l.success),
		atomic.LoadUint64(&l.fail)
}

// ErrorRate returns the failure percentage so far.
func (l *Live) ErrorRate() float64 {
	reqs := atomic.LoadUint64(&l.requests)
	if reqs == 0 {
		return 0
	}
	return float64(atomic.LoadUint64(&l.fail)) / float64(reqs) * 100
}

func (l *Live) P50Ms() float64 { return l.Latency.QuantileMs(50) }

func (l *Live) P95Ms() float64 { return l.Latency.QuantileMs(95) }
