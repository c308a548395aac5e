// Package facts distills heterogeneous probe output into a normalized
// block of key-value lines plus a bounded raw-output excerpt, the input
// the final LLM prompt is built from (spec §4.6). Like the entity
// extractor and the safety gate's list tables, it is built as an ordered
// dispatch table: each entry recognizes a command shape and knows how to
// summarize that shape's output.
package facts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shellmaster/sm/internal/state"
)

const (
	maxRawProbes   = 15
	maxStdoutBytes = 1000
	maxStderrBytes = 500
)

// matcher recognizes a probe's command shape; handler renders its facts
// lines given the result.
type entry struct {
	matcher func(cmd string) bool
	handler func(r state.ProbeResult) []string
}

var dispatch = []entry{
	{cmdHasPrefix("ls "), handleLS},
	{cmdHasPrefix("find "), handleFind},
	{func(c string) bool { return cmdHasPrefix("ps ")(c) || cmdHasPrefix("pgrep")(c) }, handlePS},
	{cmdContains("ss -tlnp"), handleSSPort},
	{cmdHasPrefix("systemctl status"), handleSystemctlStatus},
	{cmdHasPrefix("journalctl"), handleJournal},
	{cmdHasPrefix("docker ps"), handleDockerPS},
	{cmdHasPrefix("dpkg -l"), handleDpkg},
	{func(c string) bool { return cmdHasPrefix("which ")(c) || cmdHasPrefix("command -v")(c) }, handleWhich},
	{cmdHasPrefix("uname"), handleEcho("SYSTEM_INFO")},
	{cmdHasPrefix("df"), handleEcho("DISK_USAGE")},
	{cmdHasPrefix("lsblk"), handleEcho("BLOCK_DEVICES")},
}

func cmdHasPrefix(prefix string) func(string) bool {
	return func(c string) bool { return strings.HasPrefix(strings.TrimSpace(c), prefix) }
}

func cmdContains(sub string) func(string) bool {
	return func(c string) bool { return strings.Contains(c, sub) }
}

// Extract walks results once, in planner order, applying the dispatch
// table to build the [EXTRACTED FACTS] section, then appends a bounded
// [RAW SCOUT OUTPUT] section. When the probe failure rate exceeds 70%,
// the whole string is prefixed with a [WARNING] marker (spec §4.5/§4.6).
func Extract(results []state.ProbeResult, failureFraction float64) string {
	var factLines []string
	for _, r := range results {
		for _, e := range dispatch {
			if e.matcher(string(r.Cmd)) {
				factLines = append(factLines, e.handler(r)...)
				break
			}
		}
	}

	var b strings.Builder
	if failureFraction > 0.7 {
		b.WriteString("[WARNING] Most scout commands failed.\n")
	}

	b.WriteString("[EXTRACTED FACTS]\n")
	if len(factLines) == 0 {
		b.WriteString("(none)\n")
	} else {
		for _, line := range factLines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\n[RAW SCOUT OUTPUT]\n")
	for i, r := range results {
		if i >= maxRawProbes {
			break
		}
		b.WriteString("$ ")
		b.WriteString(string(r.Cmd))
		b.WriteByte('\n')
		if r.RC != 0 && strings.TrimSpace(r.Stdout) == "" {
			b.WriteString("[ERROR] ")
			b.WriteString(truncate(r.Stderr, maxStderrBytes))
		} else {
			b.WriteString(truncate(r.Stdout, maxStdoutBytes))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// --- handlers -------------------------------------------------------------

func handleLS(r state.ProbeResult) []string {
	if r.RC != 0 {
		return []string{"FILE_NOT_FOUND"}
	}
	lines := []string{"FILE_EXISTS"}
	for _, row := range strings.Split(r.Stdout, "\n") {
		fields := strings.Fields(row)
		if len(fields) < 9 || strings.HasPrefix(row, "total") {
			continue
		}
		name := strings.Join(fields[8:], " ")
		if name == "." || name == ".." {
			continue
		}
		perm := fields[0]
		owner := fields[2]
		size := fields[4]
		lines = append(lines, fmt.Sprintf("FILE_INFO: %s (perm=%s, size=%s, owner=%s)", name, perm, size, owner))
	}
	return lines
}

func handleFind(r state.ProbeResult) []string {
	var paths []string
	for _, line := range strings.Split(r.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "__pycache__") {
			continue
		}
		paths = append(paths, line)
		if len(paths) == 10 {
			break
		}
	}
	if len(paths) == 0 {
		return []string{"FIND_NO_MATCHES"}
	}
	lines := []string{fmt.Sprintf("FIND_MATCHES: %d", len(paths))}
	for _, p := range paths {
		lines = append(lines, "FIND_MATCH: "+p)
	}
	return lines
}

func handlePS(r state.ProbeResult) []string {
	var matches []string
	for _, line := range strings.Split(r.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		matches = append(matches, line)
	}
	lines := []string{fmt.Sprintf("PROCESS_MATCHES: %d", len(matches))}
	for i, m := range matches {
		if i >= 5 {
			break
		}
		lines = append(lines, "PROCESS: "+m)
	}
	return lines
}

var ssPortRE = regexp.MustCompile(`sport = :(\d+)`)
var ssProcRE = regexp.MustCompile(`users:\(\("([^"]+)",pid=(\d+)`)

func handleSSPort(r state.ProbeResult) []string {
	m := ssPortRE.FindStringSubmatch(string(r.Cmd))
	if m == nil {
		return nil
	}
	port := m[1]
	listening := strings.Contains(r.Stdout, fmt.Sprintf(":%s", port)) && r.RC == 0 && strings.TrimSpace(r.Stdout) != ""
	if !listening {
		return []string{fmt.Sprintf("PORT_%s_LISTENING: no", port)}
	}
	lines := []string{fmt.Sprintf("PORT_%s_LISTENING: yes", port)}
	if pm := ssProcRE.FindStringSubmatch(r.Stdout); pm != nil {
		lines = append(lines, fmt.Sprintf("PORT_%s_PROCESS: %s (PID=%s)", port, pm[1], pm[2]))
	}
	return lines
}

var activeStateRE = regexp.MustCompile(`Active:\s+(\w+)\s+\(([^)]+)\)`)

func handleSystemctlStatus(r state.ProbeResult) []string {
	if m := activeStateRE.FindStringSubmatch(r.Stdout); m != nil {
		return []string{fmt.Sprintf("SERVICE_STATUS: %s (%s)", m[1], m[2])}
	}
	if strings.Contains(r.Stdout, "could not be found") || r.RC == 4 {
		return []string{"SERVICE_STATUS: not_found"}
	}
	return []string{"SERVICE_STATUS: unknown"}
}

func handleJournal(r state.ProbeResult) []string {
	var lastMatch string
	count := 0
	for _, line := range strings.Split(r.Stdout, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") || strings.Contains(lower, "fail") {
			count++
			lastMatch = line
		}
	}
	lines := []string{fmt.Sprintf("JOURNAL_ERROR_COUNT: %d", count)}
	if lastMatch != "" {
		lines = append(lines, "JOURNAL_LAST_ERROR: "+strings.TrimSpace(lastMatch))
	}
	return lines
}

func handleDockerPS(r state.ProbeResult) []string {
	rows := strings.Split(strings.TrimRight(r.Stdout, "\n"), "\n")
	if len(rows) == 0 || strings.TrimSpace(r.Stdout) == "" {
		return []string{"CONTAINER_COUNT: 0"}
	}
	// first row is the header
	body := rows[1:]
	lines := []string{fmt.Sprintf("CONTAINER_COUNT: %d", len(body))}
	for i, row := range body {
		if i >= 5 {
			break
		}
		lines = append(lines, "CONTAINER: "+row)
	}
	return lines
}

func handleDpkg(r state.ProbeResult) []string {
	if r.RC == 0 && strings.Contains(r.Stdout, "ii") {
		return []string{"PACKAGE_INSTALLED"}
	}
	return []string{"PACKAGE_NOT_INSTALLED"}
}

func handleWhich(r state.ProbeResult) []string {
	out := strings.TrimSpace(r.Stdout)
	if r.RC == 0 && out != "" {
		return []string{"TOOL_FOUND: " + out}
	}
	return []string{"TOOL_NOT_FOUND"}
}

func handleEcho(tag string) func(state.ProbeResult) []string {
	return func(r state.ProbeResult) []string {
		out := strings.TrimSpace(r.Stdout)
		if out == "" {
			return nil
		}
		return []string{fmt.Sprintf("%s: %s", tag, truncate(out, 200))}
	}
}
