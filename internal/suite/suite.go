package suite

import (
	"context"
	"sync"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/analysis"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/logging"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/runner"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/stats"
)

// Suite runs the batch at most once and serves both verdicts from the same
// report, like a test fixture with shared setup. Reliability is meant to be
// evaluated before Performance. A configuration error surfaces from both
// checks without dispatching a single request.
type Suite struct {
	cfg    runner.Config
	log    *logging.Sink
	runner *runner.Runner

	once   sync.Once
	report analysis.Report
	runErr error
}

func New(cfg runner.Config, log *logging.Sink) *Suite {
	cfg.Normalize()
	s := &Suite{cfg: cfg, log: log}
	if err := cfg.Validate(); err != nil {
		s.runErr = err
		return s
	}
	s.runner = runner.NewRunner(cfg, log)
	return s
}

// Live exposes the in-flight counters for progress rendering.
func (s *Suite) Live() *stats.Live {
	if s.runner == nil {
		return stats.NewLive()
	}
	return s.runner.Live
}

func (s *Suite) ensure() {
	s.once.Do(func() {
		if s.runErr != nil {
			return
		}
		batch := s.runner.RunBatch(context.Background())
		s.report = analysis.Analyze(batch, s.cfg.ThresholdMs)
		s.report.Log(s.log)
		if path := s.log.Path(); path != "" {
			s.log.Info("full report appended", "path", path)
		}
	})
}

// Report returns the shared report, running the batch on first use.
func (s *Suite) Report() (analysis.Report, error) {
	s.ensure()
	return s.report, s.runErr
}

// Reliability is check I: zero error rate over the batch.
func (s *Suite) Reliability() error {
	s.ensure()
	if s.runErr != nil {
		return s.runErr
	}
	return analysis.CheckReliability(s.report)
}

// Performance is check II: mean latency under the threshold. skipped is
// true when too few successful samples exist to judge.
func (s *Suite) Performance() (skipped bool, err error) {
	s.ensure()
	if s.runErr != nil {
		return false, s.runErr
	}
	return analysis.CheckPerformance(s.report)
}
