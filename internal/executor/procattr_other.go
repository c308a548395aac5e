//go:build windows

package executor

import "os/exec"

// setProcessGroup is a no-op on Windows; process-tree termination on
// timeout relies on exec.CommandContext's default behavior.
func setProcessGroup(cmd *exec.Cmd) {}
