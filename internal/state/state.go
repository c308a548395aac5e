// Package state defines the data model shared by every stage of the
// ShellMaster pipeline: the parsed intent, the probe commands and their
// results, the distilled facts, and the append-only pipeline state record
// that the orchestrator threads through refine, retrieve, scout, and
// generate.
package state

import (
	"fmt"
	"strconv"
	"time"
)

// Complexity is an ordered task-complexity label. Higher values demand a
// larger reconnaissance budget.
type Complexity int

const (
	Trivial Complexity = iota + 1
	Simple
	Moderate
	Complex
)

// String implements fmt.Stringer.
func (c Complexity) String() string {
	switch c {
	case Trivial:
		return "TRIVIAL"
	case Simple:
		return "SIMPLE"
	case Moderate:
		return "MODERATE"
	case Complex:
		return "COMPLEX"
	default:
		return fmt.Sprintf("Complexity(%d)", int(c))
	}
}

// Max returns the larger of two complexity levels. The pipeline is never
// less cautious than the heuristic classifier demands (spec §3 invariant).
func Max(a, b Complexity) Complexity {
	if a > b {
		return a
	}
	return b
}

// ProbeCap returns the per-domain slice length and the global cap for a
// complexity level, per spec §4.3's table.
func (c Complexity) ProbeCap() (perDomain, global int) {
	switch c {
	case Trivial:
		return 0, 0
	case Simple:
		return 3, 5
	case Moderate:
		return 5, 10
	case Complex:
		return -1, 20 // -1 perDomain means "full" (no per-domain slicing)
	default:
		return 3, 5
	}
}

// SupportedDomains is the closed set of recon domain tags.
var SupportedDomains = map[string]struct{}{
	"file": {}, "process": {}, "network": {}, "service": {}, "system": {},
	"software": {}, "storage": {}, "container": {}, "user": {}, "log": {},
}

// Entities holds optional, validated entity values extracted either by the
// LLM or by the regex fallback extractor. A nil pointer means "absent",
// distinguishing it from an empty string.
type Entities struct {
	Target    *string
	Path      *string
	Port      *string
	Service   *string
	Package   *string
	Container *string
	User      *string
	IP        *string
	PID       *string
	Filename  *string
	Domain    *string
	Tool      *string
}

// Merge copies every field set in other but unset in e (fallback values
// never overwrite LLM-provided values, per spec §4.1).
func (e *Entities) Merge(other Entities) {
	if e.Target == nil {
		e.Target = other.Target
	}
	if e.Path == nil {
		e.Path = other.Path
	}
	if e.Port == nil {
		e.Port = other.Port
	}
	if e.Service == nil {
		e.Service = other.Service
	}
	if e.Package == nil {
		e.Package = other.Package
	}
	if e.Container == nil {
		e.Container = other.Container
	}
	if e.User == nil {
		e.User = other.User
	}
	if e.IP == nil {
		e.IP = other.IP
	}
	if e.PID == nil {
		e.PID = other.PID
	}
	if e.Filename == nil {
		e.Filename = other.Filename
	}
	if e.Domain == nil {
		e.Domain = other.Domain
	}
	if e.Tool == nil {
		e.Tool = other.Tool
	}
}

// CrossPromote applies spec §3's cross-promotion rules: a bare "target"
// entity is copied into path or port when it looks like one and that slot
// is still empty.
func (e *Entities) CrossPromote() {
	if e.Target == nil {
		return
	}
	t := *e.Target
	if e.Path == nil && len(t) > 0 && t[0] == '/' {
		e.Path = &t
	}
	if e.Port == nil && isAllDigits(t) {
		e.Port = &t
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Get returns the named entity's value and whether it is present. Valid
// keys match the struct fields lower-cased (target, path, port, service,
// package, container, user, ip, pid, filename, domain, tool).
func (e Entities) Get(key string) (string, bool) {
	var p *string
	switch key {
	case "target":
		p = e.Target
	case "path":
		p = e.Path
	case "port":
		p = e.Port
	case "service":
		p = e.Service
	case "package":
		p = e.Package
	case "container":
		p = e.Container
	case "user":
		p = e.User
	case "ip":
		p = e.IP
	case "pid":
		p = e.PID
	case "filename":
		p = e.Filename
	case "domain":
		p = e.Domain
	case "tool":
		p = e.Tool
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Intent is the structured result of query understanding: the domains to
// scout, the entities extracted, and the complexity estimate.
type Intent struct {
	Domains    []string
	Action     string
	Entities   Entities
	Complexity Complexity

	// ParseError and LLMError carry the _parse_error/_llm_error diagnostic
	// annotations from spec §3; both are advisory and never fatal.
	ParseError string
	LLMError   string
}

// NormalizeDomains drops unrecognized tags and falls back to ["file"] when
// the resulting list is empty, per spec §3.
func NormalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if _, ok := SupportedDomains[d]; ok {
			out = append(out, d)
		}
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return []string{"file"}
	}
	return out
}

// ProbeCommand is a read-only shell fragment intended to run under
// `bash -lc`. Every ProbeCommand reaching the executor has passed the
// safety gate (spec §3 invariant).
type ProbeCommand string

// ProbeResult is the outcome of running (or rejecting) a single probe.
type ProbeResult struct {
	Cmd    ProbeCommand
	Stdout string
	Stderr string
	RC     int
	Reason string
}

// Rejected reports whether the probe was blocked by the safety gate
// (rc=126) rather than actually executed.
func (r ProbeResult) Rejected() bool { return r.RC == 126 }

// TimedOut reports whether the probe exceeded its wall-clock budget
// (rc=124).
func (r ProbeResult) TimedOut() bool { return r.RC == 124 }

// LogEntry is one append-only trace line recorded by the orchestrator,
// one per node invocation.
type LogEntry struct {
	Node      string
	Message   string
	Timestamp time.Time
}

// State is the pipeline-local record threaded through refine, retrieve,
// scout, and generate. It is mutated only by merging partial updates via
// Apply; Logs grows monotonically and earlier entries are never rewritten.
type State struct {
	Query      string
	Intent     Intent
	Complexity Complexity
	Context    string
	ScoutInfo  string
	Examples   string
	Command    string
	Error      string
	Logs       []LogEntry
}

// Patch is a partial update returned by a pipeline node. Zero-valued
// fields are left untouched by Apply, except Logs which always appends.
type Patch struct {
	Intent     *Intent
	Complexity *Complexity
	Context    *string
	ScoutInfo  *string
	Examples   *string
	Command    *string
	Error      *string
	Log        *LogEntry
}

// Apply merges a node's partial update into the state, preserving the
// monotonic-log invariant.
func (s *State) Apply(p Patch) {
	if p.Intent != nil {
		s.Intent = *p.Intent
	}
	if p.Complexity != nil {
		s.Complexity = *p.Complexity
	}
	if p.Context != nil {
		s.Context = *p.Context
	}
	if p.ScoutInfo != nil {
		s.ScoutInfo = *p.ScoutInfo
	}
	if p.Examples != nil {
		s.Examples = *p.Examples
	}
	if p.Command != nil {
		s.Command = *p.Command
	}
	if p.Error != nil {
		s.Error = *p.Error
	}
	if p.Log != nil {
		s.Logs = append(s.Logs, *p.Log)
	}
}

// NewLog builds a LogEntry for node, stamped with the current time.
func NewLog(node, message string) LogEntry {
	return LogEntry{Node: node, Message: message, Timestamp: time.Now()}
}

// FormatPort is a small helper used by callers that build probe strings
// from an int port rather than the string form stored on Entities.
func FormatPort(port int) string {
	return strconv.Itoa(port)
}
