package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// generateContainer implements the container domain: detect docker or
// podman availability, then either filter to a named container or list
// all running containers (spec §4.3).
func generateContainer(e state.Entities, _ string) []state.ProbeCommand {
	cmds := []state.ProbeCommand{
		"which docker podman docker-compose",
	}

	if raw, ok := e.Get("container"); ok {
		if v, ok := ValidName(raw); ok {
			q := ShellQuote(v)
			cmds = append(cmds,
				state.ProbeCommand(fmt.Sprintf("docker ps -a --filter name=%s", q)),
				state.ProbeCommand(fmt.Sprintf("docker inspect %s", q)),
				state.ProbeCommand(fmt.Sprintf("docker logs --tail 30 %s", q)),
			)
			return cmds
		}
	}

	cmds = append(cmds, "docker ps", "podman ps")
	return cmds
}
