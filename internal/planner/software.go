package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateSoftware implements the software domain: detect available
// package managers, and when a package name is given, query it across
// dpkg, apt-cache, pip3, snap, and which (spec §4.3).
func generateSoftware(e state.Entities, _ string) []state.ProbeCommand {
	cmds := []state.ProbeCommand{
		"which apt dpkg yum dnf pip3 snap",
	}

	raw, ok := e.Get("package")
	if !ok {
		raw, ok = e.Get("tool")
	}
	if ok {
		if v, ok := ValidName(raw); ok {
			q := ShellQuote(v)
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("dpkg -l %s", q)),
				state.ProbeCommand(fmt.Sprintf("apt-cache policy %s", q)),
				state.ProbeCommand(fmt.Sprintf("pip3 show %s", q)),
				state.ProbeCommand(fmt.Sprintf("snap list %s", q)),
				state.ProbeCommand(fmt.Sprintf("which %s", q)),
			)
		}
	}

	return cmds
}
