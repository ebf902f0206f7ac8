package analysis

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/logging"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/runner"
)

// MinPerformanceSamples is the smallest success count the performance
// verdict is meaningful for; the sample standard deviation needs at least
// two points.
const MinPerformanceSamples = 2

// Report is a read-only snapshot of one batch's reliability and latency
// numbers. Latency statistics cover successful outcomes only: a failed
// request's elapsed time is not comparable to a completed one's.
type Report struct {
	RunID           string
	Target          string
	Concurrency     int
	TotalRequests   int
	FailureCount    int
	SuccessCount    int
	AvgLatencyMs    float64
	StdDevLatencyMs float64 // sample standard deviation; 0 below 2 samples
	P95LatencyMs    float64
	ThresholdMs     float64
}

// Analyze computes a Report from the batch. Pure function: the same batch
// and threshold always yield the identical report.
func Analyze(batch runner.Batch, thresholdMs float64) Report {
	rep := Report{
		RunID:         batch.ID,
		Target:        batch.Target,
		Concurrency:   batch.Concurrency,
		TotalRequests: len(batch.Outcomes),
		ThresholdMs:   thresholdMs,
	}

	latencies := make([]float64, 0, len(batch.Outcomes))
	for _, out := range batch.Outcomes {
		if out.Failed() {
			rep.FailureCount++
			continue
		}
		latencies = append(latencies, out.LatencyMs)
	}
	rep.SuccessCount = len(latencies)

	if rep.SuccessCount == 0 {
		return rep
	}

	rep.AvgLatencyMs = stat.Mean(latencies, nil)
	if rep.SuccessCount >= MinPerformanceSamples {
		rep.StdDevLatencyMs = stat.StdDev(latencies, nil)
	}

	slices.Sort(latencies)
	rep.P95LatencyMs = latencies[p95Index(len(latencies))]

	return rep
}

// p95Index is the nearest-rank P95 position: floor(n*0.95) clamped to the
// last valid index. For n=20 and n=5 this lands on the maximum sample.
// Equal latencies are interchangeable, so positional selection is stable
// under ties.
func p95Index(n int) int {
	i := int(math.Floor(float64(n) * 0.95))
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// ErrorRate returns the failure percentage over the whole batch.
func (r Report) ErrorRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.FailureCount) / float64(r.TotalRequests) * 100
}

// Log emits the full statistics report. Called before any verdict is
// evaluated so the numbers are on record even when a check fails.
func (r Report) Log(sink *logging.Sink) {
	sink.Info("latency statistics report",
		"run_id", r.RunID,
		"target", r.Target,
		"concurrency", r.Concurrency,
		"requests", r.TotalRequests,
		"failures", r.FailureCount,
		"avg_latency_ms", fmt.Sprintf("%.2f", r.AvgLatencyMs),
		"stddev_latency_ms", fmt.Sprintf("%.2f", r.StdDevLatencyMs),
		"p95_latency_ms", fmt.Sprintf("%.2f", r.P95LatencyMs),
		"threshold_ms", fmt.Sprintf("%.0f", r.ThresholdMs),
	)
}

// CheckReliability passes only on a zero error rate. Any HTTP or transport
// failure is a defect; there is no tolerance band.
func CheckReliability(r Report) error {
	if r.FailureCount == 0 {
		return nil
	}
	return fmt.Errorf("reliability check failed: %d of %d requests failed (%.2f%%)",
		r.FailureCount, r.TotalRequests, r.ErrorRate())
}

// CheckPerformance verdicts the mean latency against the threshold, strict
// inequality. With fewer than MinPerformanceSamples successful samples
// there is not enough data to assess stability, so the check is skipped
// rather than failed.
func CheckPerformance(r Report) (skipped bool, err error) {
	if r.SuccessCount < MinPerformanceSamples {
		return true, nil
	}
	if r.AvgLatencyMs < r.ThresholdMs {
		return false, nil
	}
	return false, fmt.Errorf("performance check failed: average latency %.2f ms exceeds threshold %.0f ms",
		r.AvgLatencyMs, r.ThresholdMs)
}
