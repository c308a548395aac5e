package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateNetwork implements the network domain: always show interface
// addresses, add port/IP/domain-specific probes, and always show
// resolver configuration (spec §4.3).
func generateNetwork(e state.Entities, _ string) []state.ProbeCommand {
	cmds := []state.ProbeCommand{"ip -br addr"}

	matched := false

	if raw, ok := e.Get("port"); ok {
		if v, ok := ValidPort(raw); ok {
			matched = true
			cmds = append(cmds, state.ProbeCommand(
				fmt.Sprintf("ss -tlnp 'sport = :%s'", v)))
		}
	}

	if raw, ok := e.Get("ip"); ok {
		if v, ok := ValidIP(raw); ok {
			matched = true
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("ping -c 3 %s", ShellQuote(v))))
		}
	}

	if raw, ok := e.Get("domain"); ok {
		if v, ok := ValidName(raw); ok {
			matched = true
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("dig +short %s", ShellQuote(v))),
				state.ProbeCommand(fmt.Sprintf("ping -c 3 %s", ShellQuote(v))),
			)
		}
	}

	if !matched {
		cmds = append(cmds, "ss -tlnH | head -20")
	}

	cmds = append(cmds, "cat /etc/resolv.conf")
	return cmds
}
