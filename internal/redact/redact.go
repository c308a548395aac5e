// Package redact scrubs secret-shaped substrings from text before it is
// logged. The pattern table is adapted from the teacher's
// services/llm/redaction.go: an ordered list of compiled regexes paired
// with a labeled replacement, most-specific pattern first.
package redact

import "regexp"

type pattern struct {
	re          *regexp.Regexp
	replacement string
}

// patterns is ordered: more specific formats must precede more general
// ones sharing a prefix (e.g. "sk-ant-" before bare "sk-").
var patterns = []pattern{
	{regexp.MustCompile(`sk-ant-api03-[A-Za-z0-9_-]{20,}`), "[REDACTED:anthropic_key]"},
	{regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`), "[REDACTED:openai_key]"},
	{regexp.MustCompile(`Bearer\s+[A-Za-z0-9._-]{10,}`), "[REDACTED:bearer_token]"},
	{regexp.MustCompile(`api[_-]?key["'=:\s]+[A-Za-z0-9._-]{10,}`), "api_key=[REDACTED]"},
	{regexp.MustCompile(`password=[^\s&]{3,}`), "password=[REDACTED]"},
	{regexp.MustCompile(`(postgres|mysql|mongodb)://[^\s]+@`), "${1}://[REDACTED]@"},
}

// String scrubs all known secret shapes from s, returning the redacted
// copy. Strings with no matches are returned unchanged.
func String(s string) string {
	for _, p := range patterns {
		s = p.re.ReplaceAllString(s, p.replacement)
	}
	return s
}
