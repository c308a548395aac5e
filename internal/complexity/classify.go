// Package complexity maps a query and its parsed intent to one of the
// four ordered complexity levels that bound the reconnaissance planner's
// probe budget (spec §4.4).
package complexity

import (
	"regexp"
	"strings"

	"github.com/shellmaster/sm/internal/state"
)

// trivialPatterns are canonical short queries that short-circuit to a
// canned command with no reconnaissance and no LLM call.
var trivialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^pwd$`),
	regexp.MustCompile(`^whoami$`),
	regexp.MustCompile(`^date$`),
	regexp.MustCompile(`^uptime$`),
	regexp.MustCompile(`^hostname$`),
	regexp.MustCompile(`^uname(\s+-a)?$`),
	regexp.MustCompile(`^id$`),
	regexp.MustCompile(`^df(\s+-h)?$`),
	regexp.MustCompile(`^free(\s+-h)?$`),
	regexp.MustCompile(`^当前目录$`),
	regexp.MustCompile(`^我是谁$`),
	regexp.MustCompile(`^现在几点$`),
	regexp.MustCompile(`^系统运行时间$`),
	regexp.MustCompile(`^主机名$`),
	regexp.MustCompile(`^磁盘使用情况$`),
	regexp.MustCompile(`^内存使用情况$`),
}

// trivialCommands maps a matched trivial query pattern to its canned
// command, keyed by the same index as trivialPatterns.
var trivialCommands = []string{
	"pwd", "whoami", "date", "uptime", "hostname", "uname -a", "id",
	"df -h", "free -h",
	"pwd", "whoami", "date", "uptime", "hostname", "df -h", "free -h",
}

// diagnosticKeywords signal a troubleshooting query, which always
// escalates to COMPLEX regardless of domain count or entities.
var diagnosticKeywords = []string{
	"为什么", "排查", "诊断", "失败", "无法", "不工作", "出错", "崩溃",
	"why", "troubleshoot", "diagnose", "failing", "failed", "not working",
	"can't connect", "cannot connect", "connecting",
}

// targetingEntityKeys are the entity kinds whose presence signals a
// narrowly-scoped (SIMPLE) query rather than an open-ended one.
var targetingEntityKeys = []string{"target", "path", "filename", "port", "service", "container"}

// MatchTrivial reports whether query (case-insensitive, trimmed) matches
// one of the canonical trivial patterns, returning its canned command.
func MatchTrivial(query string) (cmd string, ok bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for i, re := range trivialPatterns {
		if re.MatchString(q) {
			return trivialCommands[i], true
		}
	}
	return "", false
}

// Classify returns the heuristic complexity for query given its parsed
// intent. The caller is responsible for taking state.Max of this value
// and the LLM-declared complexity (spec §3 invariant).
func Classify(query string, intent state.Intent) state.Complexity {
	if _, ok := MatchTrivial(query); ok {
		return state.Trivial
	}

	lower := strings.ToLower(query)
	for _, kw := range diagnosticKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return state.Complex
		}
	}

	switch len(intent.Domains) {
	case 0, 1:
		// fall through to entity check below
	case 2:
		return state.Moderate
	default:
		return state.Complex
	}

	for _, key := range targetingEntityKeys {
		if _, ok := intent.Entities.Get(key); ok {
			return state.Simple
		}
	}
	return state.Moderate
}
