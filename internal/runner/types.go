package runner

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/probe"
)

const (
	DefaultRequests    = 50
	DefaultConcurrency = 50
	DefaultTimeoutMs   = 5000
	DefaultThresholdMs = 2000

	defaultAcceptMin = 200
	defaultAcceptMax = 299
)

// Config is the full knob set for one probe run. Read-only once the batch
// starts. Concurrency may exceed or undercut Requests; a smaller pool just
// throttles parallelism and queues the remainder.
type Config struct {
	TargetURL   string
	Requests    int     // total GETs to dispatch
	Concurrency int     // worker pool size
	TimeoutMs   int     // hard per-request deadline
	ThresholdMs float64 // performance verdict bound on mean latency
	AcceptMin   int     // lowest acceptable HTTP status, inclusive
	AcceptMax   int     // highest acceptable HTTP status, inclusive
	LogFile     string  // append-only report file; empty means the default
}

// Normalize fills an unset acceptable-status range with the 2xx default.
func (c *Config) Normalize() {
	if c.AcceptMin == 0 && c.AcceptMax == 0 {
		c.AcceptMin = defaultAcceptMin
		c.AcceptMax = defaultAcceptMax
	}
}

// Validate fails fast on configuration errors, before any request is issued.
func (c Config) Validate() error {
	if c.TargetURL == "" {
		return errors.New("target URL is required")
	}
	u, err := url.Parse(c.TargetURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid target URL %q", c.TargetURL)
	}
	if c.Requests < 1 {
		return fmt.Errorf("requests must be >= 1, got %d", c.Requests)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout must be > 0 ms, got %d", c.TimeoutMs)
	}
	if c.ThresholdMs <= 0 {
		return fmt.Errorf("latency threshold must be > 0 ms, got %.0f", c.ThresholdMs)
	}
	if c.AcceptMin > c.AcceptMax {
		return fmt.Errorf("acceptable status range %d-%d is inverted", c.AcceptMin, c.AcceptMax)
	}
	return nil
}

// Batch is the collected result of one run: exactly Requests outcomes, in
// completion order. The order carries no meaning.
type Batch struct {
	ID          string
	Target      string
	Concurrency int
	Outcomes    []probe.Outcome
}

// Failures counts outcomes that count against reliability.
func (b Batch) Failures() int {
	n := 0
	for _, out := range b.Outcomes {
		if out.Failed() {
			n++
		}
	}
	return n
}
