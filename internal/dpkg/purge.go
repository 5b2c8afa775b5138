package dpkg

import (
	"fmt"
	"os"
	"os/exec"
)

// Purge removes the named packages via a single apt-get purge invocation.
// In simulate mode apt-get runs with -s and reports what it would do
// without touching the system; otherwise -y is passed so the removal runs
// unattended. apt-get's output is streamed to the caller's stdout/stderr
// so its removal report stays visible.
//
// Callers must not invoke Purge with an empty name list; deciding that
// there is nothing to do is the caller's job.
func Purge(names []string, simulate bool) error {
	if len(names) == 0 {
		return fmt.Errorf("purge invoked with no packages")
	}

	args := purgeArgs(names, simulate)
	cmd := exec.Command("apt-get", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("apt-get purge failed: %w", err)
	}
	return nil
}

// purgeArgs builds the apt-get argument list for a purge invocation.
func purgeArgs(names []string, simulate bool) []string {
	args := make([]string, 0, len(names)+2)
	if simulate {
		args = append(args, "-s")
	} else {
		args = append(args, "-y")
	}
	args = append(args, "purge")
	args = append(args, names...)
	return args
}
