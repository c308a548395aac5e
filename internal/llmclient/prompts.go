package llmclient

import (
	"strings"
	"text/template"
)

// PromptTemplate is a named, externalized prompt body with placeholders
// filled via text/template (spec §6: "represent them as parameterized
// records to enable deterministic testing").
type PromptTemplate struct {
	Name string
	Body string
}

// Render fills the template with params. Missing keys render as the
// empty string rather than erroring, since both templates below only
// ever reference keys the pipeline always supplies.
func (t PromptTemplate) Render(params map[string]string) (string, error) {
	tmpl, err := template.New(t.Name).Option("missingkey=zero").Parse(t.Body)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, params); err != nil {
		return "", err
	}
	return b.String(), nil
}

// IntentPrompt demands strict JSON matching the Intent schema (spec §3,
// §6). Filled with {{.Query}}.
var IntentPrompt = PromptTemplate{
	Name: "intent",
	Body: `You are a shell assistant's intent classifier. Given a user's
natural-language request, output STRICT JSON, and nothing else, with this
exact shape:

{"domains": ["file"|"process"|"network"|"service"|"system"|"software"|"storage"|"container"|"user"|"log", ...],
 "action": "<short verb phrase>",
 "entities": {"target": null, "path": null, "filename": null, "port": null,
              "ip": null, "domain": null, "service": null, "container": null,
              "user": null, "pid": null, "package": null, "tool": null},
 "complexity": 1}

Rules:
- domains: 1 to 3 entries, most relevant first.
- entities: fill only fields you are confident about; leave the rest null.
- complexity: 1=trivial, 2=simple, 3=moderate, 4=complex.
- Output ONLY the JSON object. No prose, no code fences.

User request: {{.Query}}
`,
}

// GeneratePrompt demands a single bash command with no explanation and
// no fenced code (spec §6). Filled with {{.Query}}, {{.Facts}}, and
// {{.Examples}}.
var GeneratePrompt = PromptTemplate{
	Name: "generate",
	Body: `You are a shell assistant. Using the user's request, the facts
gathered by reconnaissance commands, and similar past examples, produce
the single bash command that best satisfies the request.

User request: {{.Query}}

{{.Facts}}

Similar past examples:
{{.Examples}}

Output ONLY the bash command. No explanation, no markdown code fences,
no leading "$".
`,
}
