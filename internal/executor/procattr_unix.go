//go:build !windows

package executor

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places cmd's child in its own process group so a
// timeout or interrupt can terminate the whole subtree it may have
// spawned, not just the immediate shell (spec §5).
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
