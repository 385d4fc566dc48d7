//go:build !windows

// Package process terminates browser processes left behind by the PDF renderer.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid so Chrome's
// helper processes die with the launcher. Errors are ignored; the launcher's
// own Kill runs afterwards.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
