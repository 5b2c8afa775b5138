package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/kernelprune/internal/output"
	"github.com/blackwell-systems/kernelprune/internal/store"
	"github.com/blackwell-systems/kernelprune/internal/watcher"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool
	watchStatus      bool
	watchBootDir     string

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Monitor /boot for kernel installs and removals",
		Long: `Watch /boot for kernel images, initrds and related artifacts appearing or
disappearing, and record each event in the kernelprune database.

The event log shows up in 'kernelprune history --events' and gives doctor a
record of kernel activity that happened outside of kernelprune.

Watch modes:
  • Foreground (default): run in the current terminal, Ctrl+C to stop
  • Daemon: run as a background process with a PID file
  • Stop: stop a running daemon

On startup the current contents of /boot are backfilled into the event log.`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  kernelprune watch

  # Run as background daemon
  kernelprune watch --daemon

  # Stop running daemon
  kernelprune watch --stop

  # Check whether the daemon is running
  kernelprune watch --status`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.kernelprune/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.kernelprune/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")
	watchCmd.Flags().BoolVar(&watchStatus, "status", false, "report whether the daemon is running")
	watchCmd.Flags().StringVar(&watchBootDir, "boot-dir", watcher.DefaultBootDir, "boot directory to watch")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	pidFile := watchPIDFile
	if pidFile == "" {
		var err error
		pidFile, err = getDefaultPIDFile()
		if err != nil {
			return err
		}
	}
	logFile := watchLogFile
	if logFile == "" {
		var err error
		logFile, err = getDefaultLogFile()
		if err != nil {
			return err
		}
	}

	if watchStop {
		if err := watcher.StopDaemon(pidFile); err != nil {
			return err
		}
		fmt.Println("Daemon stopped.")
		return nil
	}

	if watchStatus {
		running, err := watcher.IsDaemonRunning(pidFile)
		if err != nil {
			return err
		}
		if running {
			fmt.Println("Daemon is running.")
		} else {
			fmt.Println("Daemon is not running.")
		}
		return nil
	}

	if watchDaemon {
		if err := watcher.StartDaemon(pidFile, logFile); err != nil {
			return err
		}
		fmt.Printf("Daemon started (PID file: %s, log: %s)\n", pidFile, logFile)
		return nil
	}

	// Foreground (or daemon child): open the store, backfill, then watch.
	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	w, err := watcher.New(st, watchBootDir)
	if err != nil {
		return err
	}

	total, err := w.EntryCount()
	if err != nil {
		return fmt.Errorf("failed to read boot directory: %w", err)
	}
	progress := output.NewProgress(total, "Backfilling /boot contents")
	recorded, err := w.Backfill(progress.Increment)
	progress.Finish()
	if err != nil {
		return err
	}
	fmt.Printf("Backfilled %d kernel artifacts.\n", recorded)

	fmt.Printf("Watching %s for kernel changes...\n", watchBootDir)

	childPIDFile := ""
	if watchDaemonChild {
		childPIDFile = pidFile
	}
	return w.RunDaemon(childPIDFile)
}
