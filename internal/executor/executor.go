// Package executor runs the planner's surviving probe commands as bounded
// subprocesses: each probe is re-verified against the safety gate, run
// under a per-command wall-clock timeout, and captured as UTF-8 text with
// stdout and stderr kept separate (spec §4.5).
//
// The worker pool is bounded with golang.org/x/sync/errgroup, the same
// concurrency-limiting primitive the pack's repos reach for instead of a
// hand-rolled semaphore; result order is preserved by writing into a
// pre-sized slice at each probe's original index.
package executor

import (
	"bytes"
	"context"
	"os/exec"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/shellmaster/sm/internal/safety"
	"github.com/shellmaster/sm/internal/state"
)

// ProbeTimeout is the hard wall-clock budget for a single probe. It is a
// var, not a const, so tests can shrink it rather than waiting out the
// real budget.
var ProbeTimeout = 10 * time.Second

// OverallBudget is the soft cap on total probe-phase wall-clock time;
// probes that have not started by the time it elapses are abandoned
// with rc=124 rather than spawned.
const OverallBudget = 60 * time.Second

// MaxConcurrency bounds how many probes may run at once.
const MaxConcurrency = 4

// Shell is the POSIX-compatible shell every probe runs under.
var Shell = "/bin/bash"

// Execute runs every probe in probes, up to MaxConcurrency at a time,
// respecting ProbeTimeout per probe and OverallBudget overall, and returns
// the results in the same order as probes. Each probe is
// re-verified against the safety gate immediately before it would be
// spawned (spec §4.5: "re-verify with Safety Gate; on failure emit a
// rejection result").
func Execute(ctx context.Context, probes []state.ProbeCommand) []state.ProbeResult {
	results := make([]state.ProbeResult, len(probes))

	budgetCtx, cancel := context.WithTimeout(ctx, OverallBudget)
	defer cancel()

	g, gctx := errgroup.WithContext(budgetCtx)
	g.SetLimit(MaxConcurrency)

	for i, probe := range probes {
		i, probe := i, probe
		g.Go(func() error {
			select {
			case <-budgetCtx.Done():
				results[i] = state.ProbeResult{Cmd: probe, RC: 124, Stderr: "TIMEOUT", Reason: "overall probe budget exceeded"}
				return nil
			default:
			}
			results[i] = runOne(gctx, probe)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// runOne re-checks the safety gate and then, if it passes, spawns the
// probe under Shell with a ProbeTimeout deadline.
func runOne(ctx context.Context, probe state.ProbeCommand) state.ProbeResult {
	decision := safety.Check(string(probe))
	if !decision.Safe {
		return state.ProbeResult{Cmd: probe, RC: 126, Reason: decision.Reason}
	}

	runCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, Shell, "-lc", string(probe))
	cmd.Stdin = nil
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	switch runCtx.Err() {
	case context.DeadlineExceeded:
		return state.ProbeResult{Cmd: probe, RC: 124, Stderr: "TIMEOUT"}
	case context.Canceled:
		// spec §5: an interrupt during probe execution terminates the
		// in-flight child and the entry is reported as rc=130.
		return state.ProbeResult{Cmd: probe, RC: 130, Stderr: "INTERRUPTED"}
	}

	rc := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			rc = exitErr.ExitCode()
		} else {
			rc = 1
		}
	}

	return state.ProbeResult{
		Cmd:    probe,
		Stdout: toUTF8(stdout.Bytes()),
		Stderr: toUTF8(stderr.Bytes()),
		RC:     rc,
	}
}

// toUTF8 lossily decodes b as UTF-8, replacing invalid byte sequences
// with the Unicode replacement character rather than erroring (spec
// §4.5: "capture stdout and stderr as UTF-8, lossy on invalid bytes").
func toUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return string([]rune(string(b)))
}

// FailureFraction returns the fraction of results with a non-zero return
// code, used to decide whether to prefix the fact string with a
// [WARNING] marker (spec §4.5).
func FailureFraction(results []state.ProbeResult) float64 {
	if len(results) == 0 {
		return 0
	}
	failed := 0
	for _, r := range results {
		if r.RC != 0 {
			failed++
		}
	}
	return float64(failed) / float64(len(results))
}
