package llmclient

import "testing"

func TestRepairIdempotent(t *testing.T) {
	inputs := []string{
		`{"domains": ["file"], "action": "list", "entities": {}, "complexity": 1}`,
		"```json\n{'domains': ['file'], 'action': 'list', 'entities': {}, 'complexity': 1,}\n```",
		`prose before {"a": 1, "b": [1,2,3,],}  trailing prose`,
		`{'it''s': 'fine'}`,
		"not json at all",
		"",
	}
	for _, in := range inputs {
		once := Repair(in)
		twice := Repair(once)
		if once != twice {
			t.Errorf("Repair not idempotent for %q:\n  once:  %q\n  twice: %q", in, once, twice)
		}
	}
}

func TestRepairStripsFencedCode(t *testing.T) {
	got := Repair("```json\n{\"a\": 1}\n```")
	want := `{"a": 1}`
	if got != want {
		t.Errorf("Repair() = %q, want %q", got, want)
	}
}

func TestRepairExtractsFirstJSONSpan(t *testing.T) {
	got := Repair(`Here you go: {"a": 1} thanks`)
	want := `{"a": 1}`
	if got != want {
		t.Errorf("Repair() = %q, want %q", got, want)
	}
}

func TestRepairDropsTrailingCommas(t *testing.T) {
	got := Repair(`{"a": 1, "b": [1, 2,],}`)
	want := `{"a": 1, "b": [1, 2]}`
	if got != want {
		t.Errorf("Repair() = %q, want %q", got, want)
	}
}

func TestRepairSingleToDoubleQuotes(t *testing.T) {
	got := Repair(`{'a': 'b'}`)
	want := `{"a": "b"}`
	if got != want {
		t.Errorf("Repair() = %q, want %q", got, want)
	}
}
