// Package dpkg wraps the external Debian package tooling that kernelprune
// shells out to: dpkg for the installed-package listing, apt-get for the
// actual purge, and uname for the running kernel release.
package dpkg

import (
	"fmt"
	"os/exec"
)

// ListSelections returns the raw output of dpkg --get-selections: one
// "<package> <status>" pair per line. Parsing and filtering is left to the
// kernel package so the listing format stays in one place.
func ListSelections() ([]byte, error) {
	cmd := exec.Command("dpkg", "--get-selections")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("dpkg --get-selections failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("dpkg --get-selections failed: %w", err)
	}
	return output, nil
}
