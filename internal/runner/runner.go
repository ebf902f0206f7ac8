package runner

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/logging"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/probe"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/stats"
)

// Runner fans a fixed batch of requests out over a bounded worker pool and
// joins on the full result set. No retries, no early cancellation: the
// statistics downstream need the complete sample, not a truncated one.
type Runner struct {
	Cfg  Config
	Exec *probe.Executor
	Live *stats.Live
	log  *logging.Sink
}

func NewRunner(cfg Config, log *logging.Sink) *Runner {
	cfg.Normalize()
	return &Runner{
		Cfg:  cfg,
		Exec: probe.NewExecutor(cfg.TimeoutMs, cfg.AcceptMin, cfg.AcceptMax, log),
		Live: stats.NewLive(),
		log:  log,
	}
}

// RunBatch dispatches Cfg.Requests GETs against the target and blocks until
// every outcome has been collected. Workers pull from a jobs channel and
// push over a results channel, so no collection structure is shared.
func (r *Runner) RunBatch(ctx context.Context) Batch {
	batch := Batch{
		ID:          uuid.New().String(),
		Target:      r.Cfg.TargetURL,
		Concurrency: r.Cfg.Concurrency,
	}

	r.log.Info("starting concurrent reliability batch",
		"run_id", batch.ID,
		"target", r.Cfg.TargetURL,
		"requests", r.Cfg.Requests,
		"concurrency", r.Cfg.Concurrency,
	)

	jobs := make(chan struct{})
	results := make(chan probe.Outcome, r.Cfg.Requests)

	var wg sync.WaitGroup
	for i := 0; i < r.Cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				out := r.Exec.Execute(ctx, r.Cfg.TargetURL)
				r.Live.Observe(!out.Failed(), out.LatencyMs)
				results <- out
			}
		}()
	}

	go func() {
		for i := 0; i < r.Cfg.Requests; i++ {
			jobs <- struct{}{}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Full barrier: collection finishes only when every dispatched request
	// has reported.
	batch.Outcomes = make([]probe.Outcome, 0, r.Cfg.Requests)
	for out := range results {
		batch.Outcomes = append(batch.Outcomes, out)
	}

	r.log.Info("batch complete",
		"run_id", batch.ID,
		"collected", len(batch.Outcomes),
		"failures", batch.Failures(),
	)

	return batch
}
