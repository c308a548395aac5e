package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateProcess implements the process domain: branch on an explicit
// PID, a named target process, or a port whose owner is wanted; always
// append top-memory/top-CPU fallbacks and system load probes (spec §4.3).
func generateProcess(e state.Entities, _ string) []state.ProbeCommand {
	var cmds []state.ProbeCommand

	if raw, ok := e.Get("pid"); ok {
		if v, ok := ValidName(raw); ok {
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("ps -p %s -o pid,ppid,cmd,%%cpu,%%mem", ShellQuote(v))),
				state.ProbeCommand(fmt.Sprintf("ls -la /proc/%s/fd", ShellQuote(v))),
			)
		}
	}

	if raw, ok := e.Get("target"); ok {
		if v, ok := ValidName(raw); ok {
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("pgrep -af %s", ShellQuote(v))),
				state.ProbeCommand(fmt.Sprintf("ps aux | grep -i %s", ShellQuote(v))),
			)
		}
	}

	if raw, ok := e.Get("port"); ok {
		if v, ok := ValidPort(raw); ok {
			cmds = append(cmds, state.ProbeCommand(
				fmt.Sprintf("ss -tlnp 'sport = :%s'", v)))
		}
	}

	if len(cmds) == 0 {
		cmds = append(cmds,
			"ps aux --sort=-%mem | head -10",
			"ps aux --sort=-%cpu | head -10",
		)
	}

	cmds = append(cmds, "free -h", "uptime")
	return cmds
}
