package planner

import "github.com/shellmaster/sm/internal/state"

// generateSystem implements the system domain: a fixed set of read-only
// system identity probes (spec §4.3). Entities do not parameterize this
// domain.
func generateSystem(_ state.Entities, _ string) []state.ProbeCommand {
	return []state.ProbeCommand{
		"uname -a",
		"hostname",
		"cat /etc/os-release",
		"uptime",
		"whoami",
		"date",
	}
}
