package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateService implements the service domain: with a service name,
// query systemd status/active/enabled state plus recent journal lines;
// otherwise list running and failed units (spec §4.3).
func generateService(e state.Entities, _ string) []state.ProbeCommand {
	raw, ok := e.Get("service")
	if !ok {
		raw, ok = e.Get("target")
	}
	if ok {
		if v, ok := ValidName(raw); ok {
			q := ShellQuote(v)
			return []state.ProbeCommand{
				state.ProbeCommand(fmt.Sprintf("systemctl status %s --no-pager -l", q)),
				state.ProbeCommand(fmt.Sprintf("systemctl is-active %s", q)),
				state.ProbeCommand(fmt.Sprintf("systemctl is-enabled %s", q)),
				state.ProbeCommand(fmt.Sprintf("journalctl -u %s --no-pager -n 30", q)),
			}
		}
	}

	return []state.ProbeCommand{
		"systemctl list-units --type=service --state=running --no-pager",
		"systemctl list-units --type=service --state=failed --no-pager",
	}
}
