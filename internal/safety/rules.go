package safety

import (
	"strconv"
	"strings"
)

// ruleFunc checks a restricted base command's argument string (everything
// after the base token) and returns whether it is safe, plus a rejection
// reason when it is not.
type ruleFunc func(args string) (ok bool, reason string)

func ruleSed(args string) (bool, string) {
	if hasFlag(args, "-i", "--in-place") {
		return false, "sed: in-place edit (-i/--in-place) is not allowed"
	}
	return true, ""
}

func ruleAwk(args string) (bool, string) {
	for _, bad := range []string{"system(", "print >", "getline <"} {
		if strings.Contains(args, bad) {
			return false, "awk: " + bad + " is not allowed"
		}
	}
	return true, ""
}

func rulePerl(args string) (bool, string) {
	hasI := hasFlag(args, "-i")
	hasE := hasFlag(args, "-e")
	if hasI && (strings.Contains(args, "unlink") || strings.Contains(args, "system")) {
		return false, "perl: -i combined with unlink/system is not allowed"
	}
	if hasE && (strings.Contains(args, "unlink") || strings.Contains(args, "system")) {
		return false, "perl: -e combined with unlink/system is not allowed"
	}
	return true, ""
}

func ruleCurl(args string) (bool, string) {
	if hasFlag(args, "-o", "--output", "-T", "--upload-file") {
		return false, "curl: output/upload flags are not allowed"
	}
	for _, m := range []string{"POST", "PUT", "DELETE"} {
		if hasFlagValue(args, "-X", m) || hasFlagValue(args, "--request", m) {
			return false, "curl: mutating HTTP method " + m + " is not allowed"
		}
	}
	return true, ""
}

func ruleWget(args string) (bool, string) {
	if hasFlag(args, "--post-data", "--post-file", "--method") {
		return false, "wget: mutating flags are not allowed"
	}
	return true, ""
}

func ruleTee(args string) (bool, string) {
	fields := strings.Fields(args)
	for _, f := range fields {
		if strings.HasPrefix(f, "-") {
			continue
		}
		switch f {
		case "/dev/null", "/dev/stdout", "/dev/stderr", "-":
			return true, ""
		default:
			return false, "tee: target " + f + " is not allowed"
		}
	}
	return true, ""
}

func ruleSleep(args string) (bool, string) {
	fields := strings.Fields(args)
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		if n > 10 {
			return false, "sleep: duration exceeds 10s"
		}
	}
	return true, ""
}

func hasFlag(args string, flags ...string) bool {
	fields := strings.Fields(args)
	for _, f := range fields {
		for _, flag := range flags {
			if f == flag || strings.HasPrefix(f, flag+"=") {
				return true
			}
		}
	}
	return false
}

func hasFlagValue(args, flag, value string) bool {
	fields := strings.Fields(args)
	for i, f := range fields {
		if f == flag && i+1 < len(fields) && strings.EqualFold(fields[i+1], value) {
			return true
		}
		if strings.EqualFold(f, flag+"="+value) {
			return true
		}
		if strings.HasPrefix(f, flag) && strings.EqualFold(strings.TrimPrefix(f, flag), value) {
			return true
		}
	}
	return false
}
