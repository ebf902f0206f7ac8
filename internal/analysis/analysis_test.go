package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/probe"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/runner"
)

func success(ms float64) probe.Outcome {
	return probe.Outcome{Status: probe.Success, Code: 200, LatencyMs: ms}
}

func httpFailure(ms float64) probe.Outcome {
	return probe.Outcome{Status: probe.HTTPFailure, Code: 500, LatencyMs: ms}
}

func batchOf(outcomes ...probe.Outcome) runner.Batch {
	return runner.Batch{
		ID:          "test-run",
		Target:      "http://example.test/ok",
		Concurrency: 20,
		Outcomes:    outcomes,
	}
}

func successBatch(latencies ...float64) runner.Batch {
	outs := make([]probe.Outcome, 0, len(latencies))
	for _, ms := range latencies {
		outs = append(outs, success(ms))
	}
	return batchOf(outs...)
}

func TestAnalyzeExcludesFailuresFromLatencyStats(t *testing.T) {
	// 10 outcomes, 3 failures with huge elapsed times that must not leak
	// into the statistics
	outs := []probe.Outcome{
		success(10), success(20), success(30), success(40),
		success(50), success(60), success(70),
		httpFailure(99999), httpFailure(99999),
		{Status: probe.TransportFailure, Kind: probe.KindTimeout, LatencyMs: 99999},
	}

	rep := Analyze(batchOf(outs...), 2000)

	assert.Equal(t, 10, rep.TotalRequests)
	assert.Equal(t, 3, rep.FailureCount)
	assert.Equal(t, 7, rep.SuccessCount)
	assert.InDelta(t, 40.0, rep.AvgLatencyMs, 1e-9)
	// sample stddev of {10..70 step 10}: sqrt(2800/6)
	assert.InDelta(t, 21.602469, rep.StdDevLatencyMs, 1e-4)
	// floor(7*0.95)=6, the maximum sample
	assert.InDelta(t, 70.0, rep.P95LatencyMs, 1e-9)
	assert.InDelta(t, 30.0, rep.ErrorRate(), 1e-9)
}

func TestP95NearestRankSelection(t *testing.T) {
	cases := []struct {
		name string
		n    int
		want float64
	}{
		{"twenty samples selects max", 20, 20},
		{"five samples selects max", 5, 5},
		{"single sample", 1, 1},
		{"hundred samples selects index 95", 100, 96},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lats := make([]float64, tc.n)
			for i := range lats {
				lats[i] = float64(i + 1)
			}
			rep := Analyze(successBatch(lats...), 2000)
			assert.InDelta(t, tc.want, rep.P95LatencyMs, 1e-9)
		})
	}
}

func TestP95TiesDoNotAlterResult(t *testing.T) {
	rep := Analyze(successBatch(5, 5, 5, 5, 5), 2000)
	assert.InDelta(t, 5.0, rep.P95LatencyMs, 1e-9)
}

func TestStdDevUsesSampleDivisor(t *testing.T) {
	// {2,4,4,4,5,5,7,9}: mean 5, sample stddev sqrt(32/7)
	rep := Analyze(successBatch(2, 4, 4, 4, 5, 5, 7, 9), 2000)

	assert.InDelta(t, 5.0, rep.AvgLatencyMs, 1e-9)
	assert.InDelta(t, 2.138090, rep.StdDevLatencyMs, 1e-4)
}

func TestReliabilityPassesOnCleanBatch(t *testing.T) {
	rep := Analyze(successBatch(10, 12, 14), 2000)
	assert.NoError(t, CheckReliability(rep))
}

func TestReliabilityFailsWithExactCount(t *testing.T) {
	outs := make([]probe.Outcome, 50)
	for i := range outs {
		outs[i] = httpFailure(5)
	}

	rep := Analyze(batchOf(outs...), 2000)
	err := CheckReliability(rep)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "50 of 50")
	assert.Contains(t, err.Error(), "100.00%")
}

func TestReliabilitySingleFailureIsEnough(t *testing.T) {
	rep := Analyze(batchOf(success(10), success(12), httpFailure(9)), 2000)
	assert.Error(t, CheckReliability(rep))
}

func TestPerformanceSkippedBelowTwoSuccesses(t *testing.T) {
	// all failures: no data at all
	rep := Analyze(batchOf(httpFailure(5), httpFailure(5)), 2000)
	skipped, err := CheckPerformance(rep)
	assert.True(t, skipped)
	assert.NoError(t, err)

	// one success: a standard deviation is undefined
	rep = Analyze(batchOf(success(10), httpFailure(5)), 2000)
	skipped, err = CheckPerformance(rep)
	assert.True(t, skipped)
	assert.NoError(t, err)
	assert.Zero(t, rep.StdDevLatencyMs)
}

func TestPerformanceStrictInequality(t *testing.T) {
	// mean exactly at the threshold fails
	rep := Analyze(successBatch(2000, 2000), 2000)
	skipped, err := CheckPerformance(rep)
	assert.False(t, skipped)
	assert.Error(t, err)

	// just under passes
	rep = Analyze(successBatch(1999, 1999), 2000)
	skipped, err = CheckPerformance(rep)
	assert.False(t, skipped)
	assert.NoError(t, err)
}

func TestPerformanceFailureMessageStatesMetrics(t *testing.T) {
	rep := Analyze(successBatch(2500, 2500), 2000)

	_, err := CheckPerformance(rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2500.00 ms")
	assert.Contains(t, err.Error(), "2000 ms")
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	batch := batchOf(
		success(30), success(10), httpFailure(1), success(20),
		success(50), success(40), httpFailure(2),
	)

	first := Analyze(batch, 2000)
	second := Analyze(batch, 2000)

	assert.Equal(t, first, second)
	// the input sample is left untouched
	assert.InDelta(t, 30.0, batch.Outcomes[0].LatencyMs, 1e-9)
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	rep := Analyze(batchOf(), 2000)

	assert.Zero(t, rep.TotalRequests)
	assert.Zero(t, rep.FailureCount)
	assert.Zero(t, rep.SuccessCount)
	assert.Zero(t, rep.ErrorRate())

	skipped, err := CheckPerformance(rep)
	assert.True(t, skipped)
	assert.NoError(t, err)
}

func TestReportCarriesBatchIdentity(t *testing.T) {
	rep := Analyze(successBatch(10, 20), 1500)

	assert.Equal(t, "test-run", rep.RunID)
	assert.Equal(t, "http://example.test/ok", rep.Target)
	assert.Equal(t, 20, rep.Concurrency)
	assert.Equal(t, "1500", fmt.Sprintf("%.0f", rep.ThresholdMs))
}
