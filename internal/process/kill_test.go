package process

import "testing"

// PID 0 and real PIDs would target live processes; only an unused PID is safe.
func TestKillProcessGroup_UnknownPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
