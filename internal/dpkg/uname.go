package dpkg

import (
	"fmt"
	"os/exec"
	"strings"
)

// RunningKernelRelease returns the release string of the booted kernel as
// reported by uname -r, e.g. "5.15.0-122-generic".
func RunningKernelRelease() (string, error) {
	cmd := exec.Command("uname", "-r")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("uname -r failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("uname -r failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
