package store

import "time"

// PurgeRun records one completed (non-simulated) purge invocation.
type PurgeRun struct {
	ID           int64
	StartedAt    time.Time
	Mode         string // "real" or "simulate"
	Keep         int
	PackageCount int
}

// PurgeRunPackage is a single package removed during a purge run.
type PurgeRunPackage struct {
	RunID    int64
	Name     string
	Series   string
	Revision string
}

// BootEvent records a kernel artifact appearing in or disappearing from
// /boot, as seen by the watch daemon.
type BootEvent struct {
	ID            int64
	Op            string // "create" or "remove"
	Path          string
	KernelRelease string // e.g. "5.15.0-122-generic", empty if not derivable
	Timestamp     time.Time
}
