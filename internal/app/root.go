package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath    string
	debugMode bool

	// RootCmd is the root command for kernelprune
	RootCmd = &cobra.Command{
		Use:   "kernelprune",
		Short: "Purge old Debian kernel packages, keeping the last N revisions per series",
		Long: `kernelprune inventories the installed kernel packages on a Debian-family
system, groups them by kernel series and revision, and purges all but the
most recent N revisions of each series via apt-get.

The running kernel and any configured holds are never purged. Completed
purges are recorded in a local history database.

Quick Start:
  1. kernelprune list               # see what is installed
  2. kernelprune purge --dry-run    # preview the removal
  3. kernelprune purge              # purge for real (needs root)

Features:
  • Series/revision grouping with numeric revision ordering
  • Running-kernel protection
  • Hold list via ~/.config/kernelprune/config.yaml
  • Purge history with per-run package lists
  • Optional /boot watcher recording kernel installs and removals

Examples:
  # Keep only the newest revision of each series
  kernelprune purge --keep 1

  # Preview without touching the system
  kernelprune purge --dry-run

  # Show past purges
  kernelprune history`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("kernelprune: Debian kernel package cleanup")
			fmt.Println()
			fmt.Println("Run 'kernelprune list' to inspect installed kernels.")
			fmt.Println("Run 'kernelprune purge --dry-run' to preview a cleanup.")
			fmt.Println("Run 'kernelprune --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.kernelprune/kernelprune.db)")
	RootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "print retained packages per series before computing removals")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kernelprune.db"), nil
}

// dataDir returns ~/.kernelprune, creating it if needed.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".kernelprune")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create kernelprune directory: %w", err)
	}
	return dir, nil
}

// getDefaultPIDFile returns the default PID file path for the watch daemon.
func getDefaultPIDFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path for the watch daemon.
func getDefaultLogFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}
