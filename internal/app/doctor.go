package app

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/kernelprune/internal/dpkg"
	"github.com/blackwell-systems/kernelprune/internal/kernel"
	"github.com/blackwell-systems/kernelprune/internal/store"
	"github.com/blackwell-systems/kernelprune/internal/watcher"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common issues and check system health",
	Long: `Runs diagnostic checks on your kernelprune installation.

Checks:
  • dpkg, apt-get and uname are available
  • The running kernel can be identified
  • The history database is accessible
  • The watch daemon status
  • Summarizes the kernel inventory`,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("Running kernelprune diagnostics...")
	fmt.Println()

	issues := 0

	// Check 1: required external tools
	for _, tool := range []string{"dpkg", "apt-get", "uname"} {
		if _, err := exec.LookPath(tool); err != nil {
			fmt.Printf("✗ %s not found on PATH\n", tool)
			issues++
		} else {
			fmt.Printf("✓ %s available\n", tool)
		}
	}

	// Check 2: running kernel
	if release, err := dpkg.RunningKernelRelease(); err != nil {
		fmt.Println("✗ Cannot determine running kernel:", err)
		issues++
	} else if id, ok := kernel.ParseRelease(release); ok {
		fmt.Printf("✓ Running kernel: %s (series %s, revision %s)\n", release, id.Series, id.Revision)
	} else {
		fmt.Printf("⚠ Running kernel release %q does not parse; it cannot be auto-protected\n", release)
	}

	// Check 3: history database
	resolvedDBPath, err := getDBPath()
	if err != nil {
		fmt.Println("✗ Database path error:", err)
		issues++
	} else if _, err := os.Stat(resolvedDBPath); os.IsNotExist(err) {
		fmt.Println("⚠ No history database yet at:", resolvedDBPath)
		fmt.Println("  It is created on the first recorded purge or watch run.")
	} else {
		st, err := store.New(resolvedDBPath)
		if err != nil {
			fmt.Println("✗ Database not accessible:", err)
			issues++
		} else {
			if count, err := st.GetBootEventCount(); err == nil {
				fmt.Printf("✓ Database accessible (%d boot events recorded)\n", count)
			} else {
				fmt.Println("✓ Database accessible")
			}
			st.Close()
		}
	}

	// Check 4: watch daemon
	if pidFile, err := getDefaultPIDFile(); err == nil {
		if running, _ := watcher.IsDaemonRunning(pidFile); running {
			fmt.Println("✓ Watch daemon is running")
		} else {
			fmt.Println("⚠ Watch daemon is not running (optional; start with 'kernelprune watch --daemon')")
		}
	}

	// Check 5: inventory summary
	if inv, err := readInventory(); err != nil {
		fmt.Println("✗ Cannot read kernel inventory:", err)
		issues++
	} else {
		fmt.Printf("✓ Kernel inventory: %d packages across %d series\n", inv.PackageCount(), len(inv))
	}

	fmt.Println()
	if issues > 0 {
		return fmt.Errorf("%d issue(s) found", issues)
	}
	fmt.Println("No issues found.")
	return nil
}
