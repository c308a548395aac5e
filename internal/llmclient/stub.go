package llmclient

import "context"

// StubClient is a deterministic Client used by orchestrator tests: it
// returns a canned response per template name without making any network
// call, mirroring how the teacher's tests substitute a fake LLMClient
// rather than hitting a live model.
type StubClient struct {
	// Responses maps a PromptTemplate.Name to the text Invoke should
	// return for it. A missing entry returns Err (or an empty string).
	Responses map[string]string
	// Err, if set, is returned by every call regardless of template.
	Err error

	// Calls records every (template name, rendered prompt) pair passed
	// to Invoke, in order, for assertions in tests.
	Calls []StubCall
}

// StubCall records one Invoke call.
type StubCall struct {
	Template string
	Prompt   string
}

func (s *StubClient) Invoke(_ context.Context, tmpl PromptTemplate, params map[string]string) (string, string, error) {
	prompt, err := tmpl.Render(params)
	if err != nil {
		return "", "", err
	}
	s.Calls = append(s.Calls, StubCall{Template: tmpl.Name, Prompt: prompt})

	if s.Err != nil {
		return "", prompt, s.Err
	}
	return s.Responses[tmpl.Name], prompt, nil
}
