// Package planner synthesizes the bounded set of read-only reconnaissance
// probes for a query, dispatching to one generator per recon domain
// (spec §4.3). Each generator re-validates the entities it uses with the
// helpers below and produces a fixed ordered list of probe commands; the
// file generator gathers its validated inputs into a FileParams struct,
// the others validate each entity inline.
package planner

import (
	"regexp"
	"strconv"

	"github.com/go-openapi/strfmt"
)

var (
	portRE    = regexp.MustCompile(`^\d{1,5}$`)
	nameRE    = regexp.MustCompile(`^[A-Za-z0-9._:@+-]{1,128}$`)
	pathCharsRE = regexp.MustCompile(`^[A-Za-z0-9._/~@+-]+$`)
)

// ValidPort re-validates a candidate port string per spec §4.3: it must
// match ^\d{1,5}$ and lie in (0, 65536).
func ValidPort(s string) (string, bool) {
	if !portRE.MatchString(s) {
		return "", false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n >= 65536 {
		return "", false
	}
	return s, true
}

// ValidName re-validates a service/package/tool/container/user name.
func ValidName(s string) (string, bool) {
	if s == "" || !nameRE.MatchString(s) {
		return "", false
	}
	return s, true
}

// ValidPath re-validates a filesystem path candidate.
func ValidPath(s string) (string, bool) {
	if s == "" || !pathCharsRE.MatchString(s) {
		return "", false
	}
	return s, true
}

// ValidIP re-validates an IPv4 address candidate using go-openapi/strfmt's
// format validator rather than a hand-rolled regex.
func ValidIP(s string) (string, bool) {
	if !strfmt.IsIPv4(s) {
		return "", false
	}
	return s, true
}
