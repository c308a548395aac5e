package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateUser implements the user domain: current identity, a target
// user's account info, path ACLs when a path is present, plus session
// history (spec §4.3).
func generateUser(e state.Entities, _ string) []state.ProbeCommand {
	cmds := []state.ProbeCommand{"id", "whoami"}

	if raw, ok := e.Get("user"); ok {
		if v, ok := ValidName(raw); ok {
			q := ShellQuote(v)
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("id %s", q)),
				state.ProbeCommand(fmt.Sprintf("getent passwd %s", q)),
				state.ProbeCommand(fmt.Sprintf("groups %s", q)),
			)
		}
	}

	if raw, ok := e.Get("path"); ok {
		if v, ok := ValidPath(raw); ok {
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("ls -la %s", ShellQuote(v))))
		}
	}

	cmds = append(cmds, "w", "last -5")
	return cmds
}
