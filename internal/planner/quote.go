package planner

import "strings"

// ShellQuote POSIX-shell-quotes s so it is safe to interpolate into a
// probe string. Quoting is applied even after entity validation narrows
// the character set — validation and quoting are redundant by design
// (spec §9): validation is a narrowing filter, quoting is the actual
// guarantee.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' {
			b.WriteString(`'\''`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
