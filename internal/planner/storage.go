package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateStorage implements the storage domain: block devices, disk
// usage, and mount table, narrowed by a path or target when present
// (spec §4.3).
func generateStorage(e state.Entities, _ string) []state.ProbeCommand {
	cmds := []state.ProbeCommand{"lsblk", "df -h", "findmnt"}

	if raw, ok := e.Get("path"); ok {
		if v, ok := ValidPath(raw); ok {
			q := ShellQuote(v)
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("df -h %s", q)),
				state.ProbeCommand(fmt.Sprintf("du -sh %s", q)),
				state.ProbeCommand(fmt.Sprintf("ls -la %s", q)),
			)
			return cmds
		}
	}

	if raw, ok := e.Get("target"); ok {
		if v, ok := ValidName(raw); ok {
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("findmnt | grep -i %s", ShellQuote(v))))
			return cmds
		}
	}

	cmds = append(cmds, "lsblk -o NAME,SIZE,TYPE,MOUNTPOINT | grep -v loop")
	return cmds
}
