package complexity

import (
	"testing"

	"github.com/shellmaster/sm/internal/state"
)

func TestMatchTrivial(t *testing.T) {
	cases := map[string]string{
		"pwd":      "pwd",
		" PWD ":    "pwd",
		"whoami":   "whoami",
		"磁盘使用情况":   "df -h",
		"主机名":      "hostname",
		"not a hit": "",
	}
	for query, want := range cases {
		cmd, ok := MatchTrivial(query)
		if want == "" {
			if ok {
				t.Errorf("MatchTrivial(%q) matched unexpectedly: %q", query, cmd)
			}
			continue
		}
		if !ok || cmd != want {
			t.Errorf("MatchTrivial(%q) = (%q, %v), want (%q, true)", query, cmd, ok, want)
		}
	}
}

func TestClassifyTrivial(t *testing.T) {
	got := Classify("pwd", state.Intent{})
	if got != state.Trivial {
		t.Errorf("Classify(pwd) = %s, want TRIVIAL", got)
	}
}

func TestClassifyDiagnosticAlwaysComplex(t *testing.T) {
	intent := state.Intent{Domains: []string{"file"}}
	got := Classify("why is this failing", intent)
	if got != state.Complex {
		t.Errorf("Classify(diagnostic) = %s, want COMPLEX", got)
	}
}

func TestClassifyDomainCount(t *testing.T) {
	two := state.Intent{Domains: []string{"file", "network"}}
	if got := Classify("something", two); got != state.Moderate {
		t.Errorf("Classify(2 domains) = %s, want MODERATE", got)
	}

	three := state.Intent{Domains: []string{"file", "network", "process"}}
	if got := Classify("something", three); got != state.Complex {
		t.Errorf("Classify(3 domains) = %s, want COMPLEX", got)
	}
}

func TestClassifyTargetingEntityIsSimple(t *testing.T) {
	path := "/etc/hosts"
	intent := state.Intent{Domains: []string{"file"}, Entities: state.Entities{Path: &path}}
	if got := Classify("inspect this", intent); got != state.Simple {
		t.Errorf("Classify(targeted) = %s, want SIMPLE", got)
	}
}

func TestClassifyDefaultIsModerate(t *testing.T) {
	intent := state.Intent{Domains: []string{"file"}}
	if got := Classify("list stuff", intent); got != state.Moderate {
		t.Errorf("Classify(untargeted) = %s, want MODERATE", got)
	}
}
