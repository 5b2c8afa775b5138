package app

import (
	"bytes"
	"fmt"
	"os"

	"github.com/blackwell-systems/kernelprune/internal/config"
	"github.com/blackwell-systems/kernelprune/internal/dpkg"
	"github.com/blackwell-systems/kernelprune/internal/kernel"
	"github.com/blackwell-systems/kernelprune/internal/output"
)

// loadConfig reads the user config, falling back to defaults when the
// config directory cannot be resolved.
func loadConfig() (*config.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return &config.Config{Keep: config.DefaultKeep}, nil
	}
	return config.Load(dir)
}

// readInventory lists the installed packages via dpkg and groups the
// kernel packages. Warnings about malformed listing lines go to stderr.
func readInventory() (kernel.Inventory, error) {
	spinner := output.NewSpinner("Reading package inventory")
	spinner.Start()
	listing, err := dpkg.ListSelections()
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}

	inv, warnings, err := kernel.ParseListing(bytes.NewReader(listing))
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse package listing: %w", err)
	}

	return inv, nil
}

// runningIdentity returns the identity of the booted kernel. Best effort:
// a failed uname or unparsable release yields the zero identity and a
// warning, never an error — purging should still work in a chroot.
func runningIdentity() kernel.Identity {
	release, err := dpkg.RunningKernelRelease()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot determine running kernel: %v\n", err)
		return kernel.Identity{}
	}

	id, ok := kernel.ParseRelease(release)
	if !ok {
		fmt.Fprintf(os.Stderr, "warning: cannot parse running kernel release %q\n", release)
		return kernel.Identity{}
	}
	return id
}
