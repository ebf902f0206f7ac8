package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/analysis"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/logging"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/runner"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/suite"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// Start runs the probe headless and returns the process exit code. The
// batch runs once; both verdicts consume the same report.
func Start(cfg runner.Config, sink *logging.Sink) int {
	printHeader(cfg)

	s := suite.New(cfg, sink)

	done := make(chan struct{})
	go func() {
		s.Report()
		close(done)
	}()

	// Monitor loop: progress line until the barrier releases
	live := s.Live()
	start := time.Now()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

wait:
	for {
		select {
		case <-done:
			break wait
		case <-ticker.C:
			sent, ok, errs := live.Counts()
			pct := 0.0
			if cfg.Requests > 0 {
				pct = float64(sent) / float64(cfg.Requests)
			}
			fmt.Printf("\r%s %3.0f%% | %d/%d | OK: %d | Err: %d | P50: %.1fms | P95: %.1fms",
				progressBar(pct, 20), pct*100, sent, cfg.Requests,
				ok, errs, live.P50Ms(), live.P95Ms())
		}
	}

	rep, err := s.Report()
	if err != nil {
		fmt.Printf("%s %v\n", failStyle.Render("ABORT"), err)
		return 1
	}

	fmt.Printf("\r%s 100%% | %d/%d | done in %s%s\n",
		progressBar(1.0, 20), rep.TotalRequests, cfg.Requests,
		time.Since(start).Round(time.Millisecond), strings.Repeat(" ", 30))

	printSummary(rep)
	return runChecks(s, rep)
}

func printHeader(cfg runner.Config) {
	fmt.Printf("\n🚀 STARTING RELIABILITY PROBE\n")
	fmt.Printf("======================================================================\n")
	fmt.Printf("Target URL  : %s\n", cfg.TargetURL)
	fmt.Printf("Requests    : %d\n", cfg.Requests)
	fmt.Printf("Concurrency : %d\n", cfg.Concurrency)
	fmt.Printf("Timeout     : %dms\n", cfg.TimeoutMs)
	fmt.Printf("Threshold   : %.0fms (avg latency)\n", cfg.ThresholdMs)
	fmt.Printf("======================================================================\n\n")
}

func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("-", width-filled) + "]"
}

func printSummary(rep analysis.Report) {
	fmt.Printf("\n📊 PROBE RESULTS\n")
	fmt.Printf("======================================================================\n")
	fmt.Printf("Run ID        : %s\n", rep.RunID)
	fmt.Printf("Requests Sent : %d\n", rep.TotalRequests)
	fmt.Printf("Success       : %d\n", rep.SuccessCount)
	fmt.Printf("Failures      : %d\n", rep.FailureCount)
	fmt.Printf("\n⏱️  LATENCY (ms) [Success Only]\n")
	fmt.Printf("   Avg       : %.2f\n", rep.AvgLatencyMs)
	fmt.Printf("   StdDev    : %.2f\n", rep.StdDevLatencyMs)
	fmt.Printf("   P95       : %.2f\n", rep.P95LatencyMs)
	fmt.Printf("   Threshold : %.0f\n", rep.ThresholdMs)
	fmt.Printf("======================================================================\n")
}

// runChecks evaluates reliability first, then performance, on the shared
// report. Either failure flips the exit code.
func runChecks(s *suite.Suite, rep analysis.Report) int {
	code := 0

	if err := s.Reliability(); err != nil {
		fmt.Printf("%s %v\n", failStyle.Render("FAIL"), err)
		code = 1
	} else {
		fmt.Printf("%s reliability: error rate 0.00%%\n", passStyle.Render("PASS"))
	}

	skipped, err := s.Performance()
	switch {
	case skipped:
		fmt.Printf("%s performance: fewer than %d successful samples, not enough data\n",
			skipStyle.Render("SKIP"), analysis.MinPerformanceSamples)
	case err != nil:
		fmt.Printf("%s %v\n", failStyle.Render("FAIL"), err)
		code = 1
	default:
		fmt.Printf("%s performance: average latency %.2f ms under threshold %.0f ms\n",
			passStyle.Render("PASS"), rep.AvgLatencyMs, rep.ThresholdMs)
	}

	return code
}
