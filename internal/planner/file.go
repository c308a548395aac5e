package planner

import (
	"fmt"

	"github.com/shellmaster/sm/internal/state"
)

// FileParams is the validated input to generateFile.
type FileParams struct {
	Path     string
	HasPath  bool
	Filename string
	HasName  bool
}

func newFileParams(e state.Entities) FileParams {
	var p FileParams
	if raw, ok := e.Get("path"); ok {
		if v, ok := ValidPath(raw); ok {
			p.Path, p.HasPath = v, true
		}
	}
	if raw, ok := e.Get("filename"); ok {
		if v, ok := ValidName(raw); ok {
			p.Filename, p.HasName = v, true
		}
	}
	return p
}

// generateFile implements the file domain: inspect a given path, search
// for a given filename under common roots, or otherwise list the cwd
// (spec §4.3).
func generateFile(e state.Entities, _ string) []state.ProbeCommand {
	p := newFileParams(e)

	if p.HasPath {
		q := ShellQuote(p.Path)
		return []state.ProbeCommand{
			state.ProbeCommand(fmt.Sprintf("ls -la %s", q)),
			state.ProbeCommand(fmt.Sprintf("file %s", q)),
			state.ProbeCommand(fmt.Sprintf("stat %s", q)),
		}
	}

	if p.HasName {
		q := ShellQuote(p.Filename)
		return []state.ProbeCommand{
			state.ProbeCommand(fmt.Sprintf("find . -maxdepth 4 -iname %s", q)),
			state.ProbeCommand(fmt.Sprintf("find /home -maxdepth 4 -iname %s", q)),
			state.ProbeCommand(fmt.Sprintf("locate -i %s", q)),
		}
	}

	return []state.ProbeCommand{"pwd", "ls -la"}
}
