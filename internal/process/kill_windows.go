//go:build windows

// Package process terminates browser processes left behind by the PDF renderer.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup runs taskkill /F /T so Chrome's helper processes die with
// the launcher. Errors are ignored; the launcher's own Kill runs afterwards.
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
