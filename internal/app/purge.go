package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/kernelprune/internal/config"
	"github.com/blackwell-systems/kernelprune/internal/dpkg"
	"github.com/blackwell-systems/kernelprune/internal/kernel"
	"github.com/blackwell-systems/kernelprune/internal/output"
	"github.com/blackwell-systems/kernelprune/internal/store"
)

var (
	purgeFlagKeep   int
	purgeFlagDryRun bool
	purgeFlagYes    bool

	purgeCmd = &cobra.Command{
		Use:   "purge",
		Short: "Purge old kernel revisions via apt-get",
		Long: `Purge all but the most recent N revisions of each installed kernel series.

The removal is a single apt-get purge invocation covering every selected
package. The running kernel and any holds from the config file are always
excluded, whatever the retention policy says.

--keep comes from the config file (default 3) unless given on the command
line; it must be a positive integer.

Examples:
  # Preview what would be purged
  kernelprune purge --dry-run

  # Keep the two newest revisions per series
  kernelprune purge --keep 2

  # Purge without the confirmation prompt
  kernelprune purge --yes`,
		RunE: runPurge,
	}
)

func init() {
	purgeCmd.Flags().IntVar(&purgeFlagKeep, "keep", 0, "revisions to keep per series (default from config, 3)")
	purgeCmd.Flags().BoolVar(&purgeFlagDryRun, "dry-run", false, "simulate the purge without removing anything")
	purgeCmd.Flags().BoolVar(&purgeFlagYes, "yes", false, "skip the confirmation prompt")

	RootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Resolve and validate keep before any inventory processing.
	keep := cfg.Keep
	if cmd.Flags().Changed("keep") {
		keep = purgeFlagKeep
	}
	if keep <= 0 {
		return fmt.Errorf("--keep must be a positive integer, got %d", keep)
	}

	inv, err := readInventory()
	if err != nil {
		return err
	}
	if len(inv) == 0 {
		fmt.Println("No kernel packages found.")
		return nil
	}

	plan, err := kernel.Select(inv, keep)
	if err != nil {
		return err
	}

	if debugMode {
		printRetained(inv, plan)
	}

	running := runningIdentity()
	removals, excluded := filterProtected(plan.Remove, running, cfg.HoldSet())

	for _, r := range excluded {
		fmt.Fprintf(os.Stderr, "⚠  keeping %s (%s is protected)\n", r.Name, r.Identity)
	}

	if len(removals) == 0 {
		fmt.Println("Nothing to remove.")
		return nil
	}

	names := make([]string, len(removals))
	for i, r := range removals {
		names[i] = r.Name
	}

	fmt.Printf("\nPackages to purge (keeping last %d revisions per series):\n\n", keep)
	fmt.Print(output.RenderRemovalList(removals))
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Packages: %d\n", len(names))

	if purgeFlagDryRun {
		fmt.Println("\nDry-run mode: simulating removal via apt-get -s.")
		fmt.Println()
		return dpkg.Purge(names, true)
	}

	if !purgeFlagYes {
		if !confirmPurge(len(names)) {
			fmt.Println("Purge cancelled.")
			return nil
		}
	}

	started := time.Now()
	fmt.Printf("\nPurging %d packages...\n", len(names))
	if err := dpkg.Purge(names, false); err != nil {
		return err
	}

	fmt.Printf("\n✓ Purged %d packages\n", len(names))
	recordRun(started, keep, removals)

	return nil
}

// printRetained prints the retained packages of each series, for --debug.
func printRetained(inv kernel.Inventory, plan *kernel.Plan) {
	for _, series := range inv.Series() {
		fmt.Printf("series %s: keeping revisions %s\n", series, strings.Join(plan.Kept[series], ", "))
		for _, rev := range plan.Kept[series] {
			for _, name := range inv[series][rev] {
				fmt.Printf("  %s\n", name)
			}
		}
	}
}

// filterProtected splits the removal list into purgable and protected
// entries. A removal is protected when its identity matches the running
// kernel, or when its name, series or series-revision is held.
func filterProtected(removals []kernel.Removal, running kernel.Identity, holds map[string]struct{}) (kept, excluded []kernel.Removal) {
	for _, r := range removals {
		if isProtected(r, running, holds) {
			excluded = append(excluded, r)
			continue
		}
		kept = append(kept, r)
	}
	return kept, excluded
}

func isProtected(r kernel.Removal, running kernel.Identity, holds map[string]struct{}) bool {
	if running != (kernel.Identity{}) && r.Identity == running {
		return true
	}
	if _, ok := holds[r.Name]; ok {
		return true
	}
	if _, ok := holds[r.Identity.Series]; ok {
		return true
	}
	if _, ok := holds[r.Identity.String()]; ok {
		return true
	}
	return false
}

// recordRun writes the completed purge to the history database. Failures
// here are warnings only: the purge itself already succeeded.
func recordRun(started time.Time, keep int, removals []kernel.Removal) {
	path, err := getDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: purge not recorded: %v\n", err)
		return
	}
	st, err := store.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: purge not recorded: %v\n", err)
		return
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: purge not recorded: %v\n", err)
		return
	}

	runID, err := st.InsertPurgeRun(&store.PurgeRun{
		StartedAt:    started,
		Mode:         "real",
		Keep:         keep,
		PackageCount: len(removals),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: purge not recorded: %v\n", err)
		return
	}

	for _, r := range removals {
		pkg := &store.PurgeRunPackage{
			RunID:    runID,
			Name:     r.Name,
			Series:   r.Identity.Series,
			Revision: r.Identity.Revision,
		}
		if err := st.InsertPurgeRunPackage(pkg); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record %s: %v\n", r.Name, err)
		}
	}

	fmt.Printf("Recorded as run %d (see 'kernelprune history')\n", runID)
}

// confirmPurge prompts the user to confirm removal, accepting "y" or "yes".
func confirmPurge(count int) bool {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Purge %d packages? [y/N]: ", count)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// keepConfigured reports the effective keep default for display purposes.
func keepConfigured(cfg *config.Config) int {
	if cfg.Keep > 0 {
		return cfg.Keep
	}
	return config.DefaultKeep
}
