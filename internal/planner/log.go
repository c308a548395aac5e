package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateLog implements the log domain: a service-scoped journal slice
// when a service is named, or a global error/failure slice otherwise
// (spec §4.3).
func generateLog(e state.Entities, _ string) []state.ProbeCommand {
	raw, ok := e.Get("service")
	if !ok {
		raw, ok = e.Get("target")
	}
	if ok {
		if v, ok := ValidName(raw); ok {
			return []state.ProbeCommand{
				state.ProbeCommand(fmt.Sprintf("journalctl -u %s --no-pager -n 50", ShellQuote(v))),
				state.ProbeCommand(fmt.Sprintf("journalctl -u %s --no-pager -p err -n 30", ShellQuote(v))),
			}
		}
	}

	return []state.ProbeCommand{
		"journalctl -p err --no-pager -n 50",
		"journalctl --no-pager -n 100 | grep -i fail",
	}
}
