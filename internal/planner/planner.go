package planner

import "github.com/shellmaster/sm/internal/state"

// generator produces an ordered, domain-specific list of probe commands
// from the request's validated entities and the raw query text. The
// generators in this package build their probes from the entities alone;
// none of them reads the query text.
type generator func(e state.Entities, query string) []state.ProbeCommand

var generators = map[string]generator{
	"file":      generateFile,
	"process":   generateProcess,
	"network":   generateNetwork,
	"service":   generateService,
	"system":    generateSystem,
	"software":  generateSoftware,
	"storage":   generateStorage,
	"container": generateContainer,
	"user":      generateUser,
	"log":       generateLog,
}

// Plan synthesizes the deduplicated, capped recon probe list for domains
// given the request's entities, raw query, and complexity (spec §4.3).
// TRIVIAL complexity always yields an empty plan.
func Plan(domains []string, entities state.Entities, query string, c state.Complexity) []state.ProbeCommand {
	perDomain, global := c.ProbeCap()
	if c == state.Trivial {
		return nil
	}

	seen := make(map[state.ProbeCommand]struct{})
	var all []state.ProbeCommand

	for _, domain := range domains {
		gen, ok := generators[domain]
		if !ok {
			continue
		}
		cmds := gen(entities, query)
		if perDomain >= 0 && len(cmds) > perDomain {
			cmds = cmds[:perDomain]
		}
		for _, cmd := range cmds {
			if _, dup := seen[cmd]; dup {
				continue
			}
			seen[cmd] = struct{}{}
			all = append(all, cmd)
		}
	}

	if global >= 0 && len(all) > global {
		all = all[:global]
	}
	return all
}
