package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/shellmaster/sm/internal/llmclient"
	"github.com/shellmaster/sm/internal/state"
)

// wireIntent mirrors the JSON shape the intent prompt demands (spec §3,
// §6). Entity fields are plain *string so a JSON `null` or an absent key
// both decode to a nil pointer, matching state.Entities' own optional
// fields.
type wireIntent struct {
	Domains    []string     `json:"domains"`
	Action     string       `json:"action"`
	Entities   wireEntities `json:"entities"`
	Complexity int          `json:"complexity"`
}

type wireEntities struct {
	Target    *string `json:"target"`
	Path      *string `json:"path"`
	Filename  *string `json:"filename"`
	Port      *string `json:"port"`
	IP        *string `json:"ip"`
	Domain    *string `json:"domain"`
	Service   *string `json:"service"`
	Container *string `json:"container"`
	User      *string `json:"user"`
	PID       *string `json:"pid"`
	Package   *string `json:"package"`
	Tool      *string `json:"tool"`
}

// parseIntentJSON repairs and strictly parses text as an Intent. On any
// failure it returns a non-empty error message rather than a partial
// Intent, signalling the caller to fall back to defaults (spec §6).
func parseIntentJSON(text string) (state.Intent, string) {
	repaired := llmclient.Repair(text)

	var wire wireIntent
	if err := json.Unmarshal([]byte(repaired), &wire); err != nil {
		return state.Intent{}, fmt.Sprintf("json parse failed: %v", err)
	}

	complexity := state.Complexity(wire.Complexity)
	if complexity < state.Trivial || complexity > state.Complex {
		complexity = state.Moderate
	}

	return state.Intent{
		Domains:    wire.Domains,
		Action:     wire.Action,
		Complexity: complexity,
		Entities: state.Entities{
			Target:    wire.Entities.Target,
			Path:      wire.Entities.Path,
			Filename:  wire.Entities.Filename,
			Port:      wire.Entities.Port,
			IP:        wire.Entities.IP,
			Domain:    wire.Entities.Domain,
			Service:   wire.Entities.Service,
			Container: wire.Entities.Container,
			User:      wire.Entities.User,
			PID:       wire.Entities.PID,
			Package:   wire.Entities.Package,
			Tool:      wire.Entities.Tool,
		},
	}, ""
}
