package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/kernelprune/internal/kernel"
	"github.com/blackwell-systems/kernelprune/internal/output"
)

var (
	listFlagKeep int

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List installed kernel packages grouped by series and revision",
		Long: `List the installed kernel packages grouped by series and revision.

Each revision is marked as kept or as a purge candidate under the active
retention policy, and the running kernel is highlighted.

Examples:
  # Show the inventory under the configured keep
  kernelprune list

  # Show what keep=1 would retain
  kernelprune list --keep 1`,
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().IntVar(&listFlagKeep, "keep", 0, "revisions to keep per series (default from config, 3)")

	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keep := keepConfigured(cfg)
	if cmd.Flags().Changed("keep") {
		keep = listFlagKeep
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

	running := runningIdentity()

	fmt.Printf("Installed kernel packages (keep=%d):\n\n", keep)
	fmt.Print(output.RenderInventoryTable(inv, plan.Kept, running))
	fmt.Printf("\n%d packages across %d series\n", inv.PackageCount(), len(inv))

	return nil
}
