package stats

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// LatencyHistogram is a mutex-guarded HDR histogram of per-request latency
// in microseconds. Workers record concurrently while the console reads
// quantiles mid-batch. It feeds the live progress view only; the final
// report computes its percentile exactly from the raw sample.
type LatencyHistogram struct {
	mu   sync.Mutex
	hist *hdrhistogram.Histogram
}

func NewLatencyHistogram() *LatencyHistogram {
	// 1us to 10min, 3 significant figures
	h := hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3)
	return &LatencyHistogram{hist: h}
}

// RecordMs records one latency sample given in milliseconds.
func (h *LatencyHistogram) RecordMs(ms float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.RecordValue(int64(ms * 1000))
}

// QuantileMs returns the latency at quantile q (0-100) in milliseconds.
func (h *LatencyHistogram) QuantileMs(q float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return float64(h.hist.ValueAtQuantile(q)) / 1000.0
}

func (h *LatencyHistogram) MaxMs() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return float64(h.hist.Max()) / 1000.0
}

func (h *LatencyHistogram) Count() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.TotalCount()
}
