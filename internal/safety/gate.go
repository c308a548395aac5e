// Package safety implements the command safety gate: a three-tier
// classifier that decides whether a candidate shell fragment is safe to
// run as a read-only reconnaissance probe (spec §4.2). It is the single
// most critical component in the pipeline — every probe the planner
// produces, and every probe the executor is about to run, passes through
// Check.
package safety

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors let callers classify a rejection with errors.Is instead
// of string-matching the reason text, mirroring the teacher's
// sentinelForBlocker pattern in services/trace/agent/providers/egress.
var (
	ErrDangerousPattern = errors.New("safety: dangerous shell pattern")
	ErrDeniedCommand    = errors.New("safety: denied command")
	ErrRestrictedRule   = errors.New("safety: restricted command rule violated")
	ErrComboOnlyFirst   = errors.New("safety: combinator command cannot start a pipeline")
	ErrNotAllowlisted   = errors.New("safety: command is not on the read-only allowlist")
)

// Decision is the outcome of checking a single shell fragment.
type Decision struct {
	Safe   bool
	Reason string
	Err    error
}

var (
	hexEscapeRE     = regexp.MustCompile(`\\x[0-9A-Fa-f]{2}`)
	unicodeEscapeRE = regexp.MustCompile(`\\u[0-9A-Fa-f]{4}`)
	andAndRE        = regexp.MustCompile(`&&`)
	splitJoinerRE   = regexp.MustCompile(`&&|\|`)
	assignmentRE    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=[^;&|<>` + "`" + `]*$`)
)

// Check classifies fragment, a single shell fragment intended to be run
// via `bash -lc "<fragment>"`. It returns Safe=true only if every tier
// passes.
func Check(fragment string) Decision {
	if d := checkTier1(fragment); !d.Safe {
		return d
	}

	subs := splitJoinerRE.Split(fragment, -1)
	for i, sub := range subs {
		trimmed := strings.TrimSpace(sub)
		if trimmed == "" {
			return Decision{Safe: false, Reason: "empty sub-fragment", Err: ErrDangerousPattern}
		}

		// Leading sudo and NAME=value tokens followed by a command are
		// stripped so the tiers below judge the command itself ("X=1 rm f"
		// and "sudo X=1 rm f" are rm).
		for {
			trimmed = stripSudo(trimmed)
			fields := strings.Fields(trimmed)
			if len(fields) < 2 || !assignmentRE.MatchString(fields[0]) {
				break
			}
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, fields[0]))
		}

		if d := checkTier2(trimmed); !d.Safe {
			return d
		}

		if d := checkTier3(trimmed, i == 0); !d.Safe {
			return d
		}
	}

	return Decision{Safe: true}
}

// checkTier1 rejects fragments containing any dangerous shell
// metacharacter pattern: command/process substitution, file/input
// redirection, logical OR, statement separators, unattached background,
// embedded newlines, or hex/unicode escapes.
func checkTier1(fragment string) Decision {
	if strings.Contains(fragment, "`") {
		return deny(ErrDangerousPattern, "command substitution via backtick")
	}
	if strings.Contains(fragment, "$(") {
		return deny(ErrDangerousPattern, "command substitution via $(...)")
	}
	if strings.Contains(fragment, "<(") {
		return deny(ErrDangerousPattern, "process substitution via <(...)")
	}
	if strings.Contains(fragment, ">(") {
		return deny(ErrDangerousPattern, "process substitution via >(...)")
	}
	if strings.Contains(fragment, "\n") || strings.Contains(fragment, "\r") {
		return deny(ErrDangerousPattern, "embedded newline or carriage return")
	}
	if hexEscapeRE.MatchString(fragment) {
		return deny(ErrDangerousPattern, "hex escape sequence")
	}
	if unicodeEscapeRE.MatchString(fragment) {
		return deny(ErrDangerousPattern, "unicode escape sequence")
	}
	if strings.Contains(fragment, "||") {
		return deny(ErrDangerousPattern, "logical OR (||)")
	}
	if strings.Contains(fragment, ";") {
		return deny(ErrDangerousPattern, "statement separator (;)")
	}

	if d := checkRedirection(fragment); !d.Safe {
		return d
	}
	if d := checkUnattachedBackground(fragment); !d.Safe {
		return d
	}
	return Decision{Safe: true}
}

// checkRedirection rejects any '>' not immediately followed by '|' or
// '&' (this also catches '>>'), and any '<' not immediately followed by
// '<' (process substitution '<(' was already rejected above).
func checkRedirection(fragment string) Decision {
	runes := []rune(fragment)
	for i, r := range runes {
		switch r {
		case '>':
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			if next != '|' && next != '&' {
				return deny(ErrDangerousPattern, "output redirection to a file")
			}
		case '<':
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			if next != '<' {
				return deny(ErrDangerousPattern, "input redirection from a file")
			}
		}
	}
	return Decision{Safe: true}
}

// checkUnattachedBackground rejects a lone '&' that is not part of '&&'.
func checkUnattachedBackground(fragment string) Decision {
	masked := andAndRE.ReplaceAllString(fragment, "  ")
	if strings.Contains(masked, "&") {
		return deny(ErrDangerousPattern, "unattached background operator (&)")
	}
	return Decision{Safe: true}
}

// checkTier2 rejects a sub-fragment whose base command (after stripping
// a leading sudo and any path prefix) is on the deny list, or whose
// normalized text starts with a denied multi-word prefix.
func checkTier2(sub string) Decision {
	normalized := stripSudo(sub)
	base := baseToken(normalized)

	if _, denied := deniedBases[base]; denied {
		return deny(ErrDeniedCommand, fmt.Sprintf("denied base command %q", base))
	}
	for _, prefix := range deniedPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return deny(ErrDeniedCommand, fmt.Sprintf("denied command prefix %q", prefix))
		}
	}
	return Decision{Safe: true}
}

// checkTier3 requires sub to be a pure assignment, an unconditionally
// allowed command, or a restricted command that passes its own rule.
// isFirst gates the combo-only-commands-cannot-start-a-pipeline rule.
func checkTier3(sub string, isFirst bool) Decision {
	if assignmentRE.MatchString(sub) {
		return Decision{Safe: true}
	}

	normalized := stripSudo(sub)
	base := baseToken(normalized)

	if _, comboOnly := comboOnlyBases[base]; comboOnly {
		if isFirst {
			return deny(ErrComboOnlyFirst, fmt.Sprintf("%q cannot start a pipeline", base))
		}
		return Decision{Safe: true}
	}

	if _, allowed := allowedBases[base]; allowed {
		return Decision{Safe: true}
	}
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return Decision{Safe: true}
		}
	}

	if rule, restricted := restrictedBases[base]; restricted {
		args := strings.TrimSpace(strings.TrimPrefix(normalized, base))
		if ok, reason := rule(args); ok {
			return Decision{Safe: true}
		} else {
			return deny(ErrRestrictedRule, reason)
		}
	}

	return deny(ErrNotAllowlisted, fmt.Sprintf("%q is not a read-only command", base))
}

// stripSudo removes every leading "sudo " token (and the flags that
// follow each one) so the safety gate's checks apply to the effective command
// regardless of the sudo prefix (spec §5: the gate forbids mutating
// operations regardless of sudo).
func stripSudo(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "sudo ") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "sudo "))
		for strings.HasPrefix(s, "-") {
			fields := strings.Fields(s)
			if len(fields) == 0 {
				break
			}
			s = strings.TrimSpace(strings.TrimPrefix(s, fields[0]))
		}
	}
	return s
}

// baseToken returns the first whitespace-delimited token of s with any
// directory prefix stripped, e.g. "/usr/bin/rm" -> "rm".
func baseToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	tok := fields[0]
	if idx := strings.LastIndexByte(tok, '/'); idx >= 0 {
		tok = tok[idx+1:]
	}
	return tok
}

func deny(err error, reason string) Decision {
	return Decision{Safe: false, Reason: reason, Err: fmt.Errorf("%w: %s", err, reason)}
}
