package safety

import (
	"errors"
	"strings"
	"testing"
)

// TestSpecScenarios exercises every literal safety-gate scenario from
// spec §8 "Safety-gate laws".
func TestSpecScenarios(t *testing.T) {
	cases := []struct {
		fragment string
		wantSafe bool
		wantErr  error
		reasonHas string
	}{
		{"ls -la /tmp", true, nil, ""},
		{"rm -rf /", false, ErrDeniedCommand, "rm"},
		{"cat /etc/hosts | grep 127", true, nil, ""},
		{"echo $(whoami)", false, ErrDangerousPattern, ""},
		{"sleep 60", false, ErrRestrictedRule, ""},
		{"sed -i s/a/b/ f", false, ErrRestrictedRule, ""},
		{"xargs ls", false, ErrComboOnlyFirst, ""},
		{"find . -name '*.go' | xargs ls", true, nil, ""},
	}

	for _, tc := range cases {
		d := Check(tc.fragment)
		if d.Safe != tc.wantSafe {
			t.Errorf("Check(%q).Safe = %v, want %v (reason: %s)", tc.fragment, d.Safe, tc.wantSafe, d.Reason)
			continue
		}
		if !tc.wantSafe {
			if tc.wantErr != nil && !errors.Is(d.Err, tc.wantErr) {
				t.Errorf("Check(%q).Err = %v, want wrapping %v", tc.fragment, d.Err, tc.wantErr)
			}
			if tc.reasonHas != "" && !strings.Contains(d.Reason, tc.reasonHas) {
				t.Errorf("Check(%q).Reason = %q, want to contain %q", tc.fragment, d.Reason, tc.reasonHas)
			}
		}
	}
}

// TestTier1PatternsAlwaysUnsafe covers every Tier-1 dangerous pattern.
func TestTier1PatternsAlwaysUnsafe(t *testing.T) {
	fragments := []string{
		"echo `whoami`",
		"echo $(id)",
		"cat <(ls)",
		"tee >(cat)",
		"ls\nrm -rf /",
		"echo \\x41",
		"echo \\u0041",
		"false || rm -rf /",
		"ls; rm -rf /",
		"ls > /tmp/out",
		"ls >> /tmp/out",
		"cat < /etc/shadow",
		"ls &",
	}
	for _, f := range fragments {
		if d := Check(f); d.Safe {
			t.Errorf("Check(%q) = safe, want unsafe", f)
		}
	}
}

// TestDeniedBasesAlwaysUnsafe covers spec's "every fragment whose base
// ... is in the deny list" law, including the sudo-strip and path-strip
// normalization.
func TestDeniedBasesAlwaysUnsafe(t *testing.T) {
	fragments := []string{
		"rm file.txt",
		"sudo rm file.txt",
		"/bin/rm file.txt",
		"sudo -n shutdown -h now",
		"mkfs.ext4 /dev/sda1",
		"useradd bob",
		"iptables -F",
		"kill -9 1",
	}
	for _, f := range fragments {
		if d := Check(f); d.Safe {
			t.Errorf("Check(%q) = safe, want unsafe", f)
		}
	}
}

func TestDeniedPrefixes(t *testing.T) {
	fragments := []string{
		"systemctl start nginx",
		"apt install nginx",
		"docker run -it ubuntu",
		"ip route add default via 10.0.0.1",
	}
	for _, f := range fragments {
		if d := Check(f); d.Safe {
			t.Errorf("Check(%q) = safe, want unsafe", f)
		}
	}
}

func TestRestrictedRules(t *testing.T) {
	cases := []struct {
		fragment string
		wantSafe bool
	}{
		{"sed 's/a/b/' f", true},
		{"sed -i 's/a/b/' f", false},
		{"curl https://example.com", true},
		{"curl -o out.bin https://example.com", false},
		{"curl -X POST https://example.com", false},
		{"wget https://example.com", true},
		{"wget --post-data=x https://example.com", false},
		{"tee /dev/null", true},
		{"tee /etc/passwd", false},
		{"sleep 5", true},
		{"sleep 11", false},
	}
	for _, tc := range cases {
		if d := Check(tc.fragment); d.Safe != tc.wantSafe {
			t.Errorf("Check(%q).Safe = %v, want %v (reason: %s)", tc.fragment, d.Safe, tc.wantSafe, d.Reason)
		}
	}
}

func TestComboOnlyNotFirstIsSafe(t *testing.T) {
	if d := Check("ps aux | xargs -n1 echo"); !d.Safe {
		t.Errorf("xargs as non-first stage should be safe, got reason: %s", d.Reason)
	}
	if d := Check("xargs echo hi"); d.Safe {
		t.Errorf("xargs as first stage should be unsafe")
	}
}

func TestAssignmentPrefixIsSafe(t *testing.T) {
	if d := Check("LC_ALL=C ls"); !d.Safe {
		t.Errorf("assignment sub-fragment should be safe on its own, reason: %s", d.Reason)
	}
}
