package planner

import (
	"strings"
	"testing"

	"github.com/shellmaster/sm/internal/safety"
	"github.com/shellmaster/sm/internal/state"
)

func strp(s string) *string { return &s }

func TestPlanTrivialIsEmpty(t *testing.T) {
	cmds := Plan([]string{"file", "network"}, state.Entities{}, "pwd", state.Trivial)
	if len(cmds) != 0 {
		t.Fatalf("Plan(Trivial) = %v, want empty", cmds)
	}
}

func TestPlanUnknownDomainSkipped(t *testing.T) {
	cmds := Plan([]string{"file", "rm"}, state.Entities{}, "list files", state.Simple)
	for _, c := range cmds {
		if strings.Contains(string(c), "rm ") || string(c) == "rm" {
			t.Fatalf("unknown domain %q leaked a probe: %v", "rm", cmds)
		}
	}
}

func TestPlanDedupesAcrossDomains(t *testing.T) {
	e := state.Entities{Service: strp("nginx")}
	cmds := Plan([]string{"service", "service"}, e, "", state.Moderate)
	seen := make(map[state.ProbeCommand]int)
	for _, c := range cmds {
		seen[c]++
	}
	for c, n := range seen {
		if n > 1 {
			t.Fatalf("probe %q appeared %d times, want deduped", c, n)
		}
	}
}

func TestPlanRespectsPerDomainCap(t *testing.T) {
	e := state.Entities{Path: strp("/tmp")}
	cmds := Plan([]string{"file"}, e, "", state.Simple)
	perDomain, _ := state.Simple.ProbeCap()
	if len(cmds) > perDomain {
		t.Fatalf("got %d probes, want at most %d (Simple per-domain cap)", len(cmds), perDomain)
	}
}

func TestPlanRespectsGlobalCap(t *testing.T) {
	e := state.Entities{
		Path:    strp("/tmp"),
		Service: strp("nginx"),
		Port:    strp("8080"),
	}
	cmds := Plan([]string{"file", "service", "network", "system", "software", "storage"}, e, "", state.Moderate)
	_, global := state.Moderate.ProbeCap()
	if len(cmds) > global {
		t.Fatalf("got %d probes, want at most %d (Moderate global cap)", len(cmds), global)
	}
}

func TestPlanComplexHasNoPerDomainCap(t *testing.T) {
	e := state.Entities{Service: strp("nginx")}
	cmds := Plan([]string{"service"}, e, "", state.Complex)
	// generateService yields 4 probes when a service is named; Complex's
	// perDomain is -1 (uncapped), so all 4 should survive the per-domain
	// slice (subject only to the global cap, which is well above 4).
	if len(cmds) != 4 {
		t.Fatalf("got %d probes, want 4 (uncapped per-domain for Complex)", len(cmds))
	}
}

func TestGenerateNetworkWithPort(t *testing.T) {
	e := state.Entities{Port: strp("8080")}
	cmds := generateNetwork(e, "")
	found := false
	for _, c := range cmds {
		if strings.Contains(string(c), "sport = :8080") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a port-scoped ss probe, got %v", cmds)
	}
}

func TestGenerateFileFallsBackToPwd(t *testing.T) {
	cmds := generateFile(state.Entities{}, "")
	if len(cmds) != 2 || cmds[0] != "pwd" {
		t.Fatalf("generateFile() = %v, want [pwd, ls -la]", cmds)
	}
}

// TestGeneratedProbesPassSafetyGate locks in spec §8's planner→gate
// invariant: "for every probe p returned by the Planner, safety_gate(p)
// == safe". Entities are populated for every domain's optional fields so
// each generator's full branch set runs, not just its no-entity fallback.
func TestGeneratedProbesPassSafetyGate(t *testing.T) {
	e := state.Entities{
		Target:    strp("nginx"),
		Path:      strp("/tmp"),
		Port:      strp("8080"),
		Service:   strp("nginx"),
		Package:   strp("curl"),
		Container: strp("web"),
		User:      strp("alice"),
		IP:        strp("10.0.0.1"),
		PID:       strp("1234"),
		Filename:  strp("app.log"),
		Domain:    strp("example.com"),
		Tool:      strp("curl"),
	}

	for domain, gen := range generators {
		cmds := gen(e, "")
		for _, c := range cmds {
			decision := safety.Check(string(c))
			if !decision.Safe {
				t.Errorf("domain %q generated unsafe probe %q: %s", domain, c, decision.Reason)
			}
		}
	}
}
