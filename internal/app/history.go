package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/kernelprune/internal/output"
	"github.com/blackwell-systems/kernelprune/internal/store"
)

var (
	historyFlagEvents bool

	historyCmd = &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past purge runs",
		Long: `Show the recorded purge history.

Without arguments, lists all recorded purge runs newest first. With a run
ID, lists the packages removed in that run. --events shows the kernel
install/remove events recorded by the watch daemon instead.

Examples:
  # List purge runs
  kernelprune history

  # Show the packages of run 3
  kernelprune history 3

  # Show recorded /boot events
  kernelprune history --events`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().BoolVar(&historyFlagEvents, "events", false, "show recorded /boot events instead of purge runs")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if historyFlagEvents {
		events, err := st.ListBootEvents(time.Time{})
		if err != nil {
			if errors.Is(err, store.ErrNotInitialized) {
				fmt.Println("No boot events recorded.")
				return nil
			}
			return err
		}
		fmt.Print(output.RenderBootEventTable(events))
		return nil
	}

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q", args[0])
		}

		run, err := st.GetPurgeRun(runID)
		if err != nil {
			return err
		}
		pkgs, err := st.GetPurgeRunPackages(runID)
		if err != nil {
			return err
		}

		fmt.Printf("Run %d: %s, mode %s, keep %d\n\n",
			run.ID, run.StartedAt.Format(time.RFC3339), run.Mode, run.Keep)
		fmt.Print(output.RenderRunPackages(pkgs))
		return nil
	}

	runs, err := st.ListPurgeRuns()
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			fmt.Println("No purge runs recorded.")
			return nil
		}
		return err
	}
	fmt.Print(output.RenderRunTable(runs))
	return nil
}
