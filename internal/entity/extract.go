// Package entity implements the deterministic, regex-based entity
// extractor: a pure function from a free-form query to a set of advisory
// entity values (paths, ports, IPs, domains, tool names, PIDs, filenames,
// containers). Extracted values are fallbacks — the orchestrator only
// uses them to fill gaps the LLM's own entity extraction left empty
// (spec §4.1).
//
// The extractor applies a fixed sequence of compiled patterns to the
// query, one per entity kind; the port, IP, and container matches are
// checked by a small validation step before they are kept.
package entity

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/shellmaster/sm/internal/state"
)

var (
	filenameRE  = regexp.MustCompile(`(?:^|[\s"'` + "`" + `])([A-Za-z0-9_.-]+\.[A-Za-z0-9]{1,10})(?:$|[\s"'` + "`" + `,;])`)
	portWordRE  = regexp.MustCompile(`(?i)(?:端口|port)\D{0,3}(\d{2,5})`)
	pathRE      = regexp.MustCompile(`(/[A-Za-z0-9._/-]+)`)
	ipRE        = regexp.MustCompile(`\b(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})\b`)
	domainRE    = regexp.MustCompile(`\b([a-zA-Z0-9][a-zA-Z0-9-]{0,62}\.[a-zA-Z]{2,})\b`)
	containerRE = regexp.MustCompile(`(?i)(?:容器|container|docker|podman)\s*([A-Za-z0-9_-]+)?`)
	pidRE       = regexp.MustCompile(`(?i)(?:进程|pid|process)\D{0,3}(\d{2,7})`)
	toolVerbRE  = regexp.MustCompile(`(?i)(?:use|run|启动|使用)\s+([A-Za-z][A-Za-z0-9_-]{1,30})`)
)

// knownTools is the closed set of well-known CLI tool names the `tool`
// pattern is allowed to recognize, either via a leading verb or as a bare
// substring of the query.
var knownTools = buildSet(
	"git", "docker", "podman", "kubectl", "helm", "npm", "yarn", "pnpm",
	"pip", "pip3", "python", "python3", "node", "go", "cargo", "rustc",
	"make", "cmake", "gcc", "clang", "java", "mvn", "gradle", "curl",
	"wget", "ssh", "scp", "rsync", "tar", "zip", "unzip", "vim", "nano",
	"emacs", "tmux", "screen", "systemctl", "journalctl", "dpkg", "apt",
	"apt-get", "yum", "dnf", "snap", "brew", "ps", "top", "htop", "netstat",
	"ss", "ping", "dig", "nslookup", "traceroute", "df", "du", "lsblk",
	"mount", "nginx", "apache2", "mysql", "psql", "redis-cli", "mongo",
)

func buildSet(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

// Extract walks query once with an ordered set of extraction rules and
// returns the advisory entities found. It never returns an error: a
// pattern that fails to match simply leaves that entity absent.
func Extract(query string) state.Entities {
	var e state.Entities

	if m := filenameRE.FindStringSubmatch(query); m != nil {
		v := m[1]
		e.Filename = &v
	}

	if m := portWordRE.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n < 65536 {
			e.Port = &m[1]
		}
	}

	if m := pathRE.FindStringSubmatch(query); m != nil {
		v := m[1]
		e.Path = &v
	}

	if m := ipRE.FindStringSubmatch(query); m != nil {
		v := m[1]
		if strfmt.IsIPv4(v) {
			e.IP = &v
		}
	}

	if m := domainRE.FindStringSubmatch(query); m != nil {
		v := m[1]
		e.Domain = &v
	}

	if m := containerRE.FindStringSubmatch(query); m != nil {
		if len(m) > 1 && m[1] != "" && isAlnumDashUnderscore(m[1]) {
			v := m[1]
			e.Container = &v
		}
	}

	if m := pidRE.FindStringSubmatch(query); m != nil {
		v := m[1]
		e.PID = &v
	}

	if tool, ok := extractTool(query); ok {
		e.Tool = &tool
	}

	e.CrossPromote()
	return e
}

// extractTool first looks for a verb followed by a known tool name, then
// falls back to scanning for any known tool name as a bare substring.
func extractTool(query string) (string, bool) {
	if m := toolVerbRE.FindStringSubmatch(query); m != nil {
		if _, known := knownTools[strings.ToLower(m[1])]; known {
			return strings.ToLower(m[1]), true
		}
	}
	lower := strings.ToLower(query)
	for tool := range knownTools {
		if containsWord(lower, tool) {
			return tool, true
		}
	}
	return "", false
}

func containsWord(haystack, word string) bool {
	idx := strings.Index(haystack, word)
	if idx < 0 {
		return false
	}
	before := idx == 0 || !isWordChar(rune(haystack[idx-1]))
	after := idx+len(word) >= len(haystack) || !isWordChar(rune(haystack[idx+len(word)]))
	return before && after
}

func isWordChar(r rune) bool {
	return r == '_' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isAlnumDashUnderscore(s string) bool {
	for _, r := range s {
		if !isWordChar(r) {
			return false
		}
	}
	return true
}
