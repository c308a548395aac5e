package llmclient

import "regexp"

var (
	fencedCodeRE  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	jsonSpanRE    = regexp.MustCompile(`(?s)\{.*\}`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Repair applies the intent-JSON salvage pipeline from spec §6: strip
// fenced-code markers, extract the first {...} span, normalize single to
// double quotes, and drop trailing commas before a closing brace or
// bracket. It is idempotent: Repair(Repair(s)) == Repair(s) for all s.
func Repair(s string) string {
	if m := fencedCodeRE.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	if m := jsonSpanRE.FindString(s); m != "" {
		s = m
	}
	s = singleToDoubleQuotes(s)
	s = trailingComma.ReplaceAllString(s, "$1")
	return s
}

// singleToDoubleQuotes swaps single-quoted JSON string delimiters for
// double quotes outside of any already-double-quoted string, so a model
// that emits {'a': 'b'} is salvaged without mangling content like "it's".
func singleToDoubleQuotes(s string) string {
	var b []byte
	inDouble := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			if i == 0 || s[i-1] != '\\' {
				inDouble = !inDouble
			}
			b = append(b, c)
		case '\'':
			if inDouble {
				b = append(b, c)
			} else {
				b = append(b, '"')
			}
		default:
			b = append(b, c)
		}
	}
	return string(b)
}
