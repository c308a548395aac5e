package executor

import (
	"context"
	"testing"
	"time"

	"github.com/shellmaster/sm/internal/state"
)

func TestExecuteCapturesStdout(t *testing.T) {
	results := Execute(context.Background(), []state.ProbeCommand{"echo hello"})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].RC != 0 {
		t.Fatalf("RC = %d, want 0 (stderr: %q)", results[0].RC, results[0].Stderr)
	}
	if got := results[0].Stdout; got != "hello\n" {
		t.Fatalf("Stdout = %q, want %q", got, "hello\n")
	}
}

func TestExecuteRejectsUnsafeProbe(t *testing.T) {
	results := Execute(context.Background(), []state.ProbeCommand{"rm -rf /tmp/x"})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].RC != 126 {
		t.Fatalf("RC = %d, want 126 (safety rejection)", results[0].RC)
	}
	if results[0].Reason == "" {
		t.Fatal("Reason is empty, want a denial reason mentioning rm")
	}
}

func TestExecutePreservesOrder(t *testing.T) {
	probes := []state.ProbeCommand{"echo one", "echo two", "echo three"}
	results := Execute(context.Background(), probes)
	want := []string{"one\n", "two\n", "three\n"}
	for i, w := range want {
		if results[i].Stdout != w {
			t.Errorf("results[%d].Stdout = %q, want %q", i, results[i].Stdout, w)
		}
	}
}

func TestExecuteTimesOutSlowProbe(t *testing.T) {
	orig := ProbeTimeout
	ProbeTimeout = 50 * time.Millisecond
	defer func() { ProbeTimeout = orig }()

	results := Execute(context.Background(), []state.ProbeCommand{"sleep 2 && echo done"})
	if results[0].RC != 124 {
		t.Fatalf("RC = %d, want 124 (timeout)", results[0].RC)
	}
}

func TestFailureFraction(t *testing.T) {
	results := []state.ProbeResult{{RC: 0}, {RC: 1}, {RC: 0}, {RC: 2}}
	if got := FailureFraction(results); got != 0.5 {
		t.Fatalf("FailureFraction = %v, want 0.5", got)
	}
	if got := FailureFraction(nil); got != 0 {
		t.Fatalf("FailureFraction(nil) = %v, want 0", got)
	}
}
