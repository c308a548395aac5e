// Package trivia is the pipeline's fast-path facade: it asks whether a
// query matches one of the canned trivial patterns and, if so, hands
// back the command to run directly, skipping scouting and the LLM calls;
// the pipeline's retrieve node still runs on this path (spec §5, refine
// node "on trivial fast-path").
//
// The pattern table itself lives in internal/complexity, since complexity
// classification already has to recognize the same trivial shapes to
// assign state.Trivial; trivia only adds the lookup-to-command step on
// top so the orchestrator has a single named entry point for it.
package trivia

import (
	"github.com/shellmaster/sm/internal/complexity"
	"github.com/shellmaster/sm/internal/state"
)

// Lookup returns the canned command for query if it matches a trivial
// pattern, and whether a match was found.
func Lookup(query string) (state.ProbeCommand, bool) {
	cmd, ok := complexity.MatchTrivial(query)
	if !ok {
		return "", false
	}
	return state.ProbeCommand(cmd), true
}
