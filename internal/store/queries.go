package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Purge run operations

// InsertPurgeRun records a purge run and returns its ID.
func (s *Store) InsertPurgeRun(run *PurgeRun) (int64, error) {
	query := `
		INSERT INTO purge_runs (started_at, mode, keep, package_count)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		run.StartedAt.Format(time.RFC3339),
		run.Mode,
		run.Keep,
		run.PackageCount,
	)
	if err != nil {
		return 0, mapSchemaErr(fmt.Errorf("failed to insert purge run: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get purge run ID: %w", err)
	}
	return id, nil
}

// InsertPurgeRunPackage records one removed package under a purge run.
func (s *Store) InsertPurgeRunPackage(pkg *PurgeRunPackage) error {
	query := `
		INSERT INTO purge_run_packages (run_id, name, series, revision)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, pkg.RunID, pkg.Name, pkg.Series, pkg.Revision)
	if err != nil {
		return mapSchemaErr(fmt.Errorf("failed to insert purge run package %s: %w", pkg.Name, err))
	}
	return nil
}

// ListPurgeRuns returns all purge runs, newest first.
func (s *Store) ListPurgeRuns() ([]*PurgeRun, error) {
	query := `
		SELECT id, started_at, mode, keep, package_count
		FROM purge_runs
		ORDER BY id DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, mapSchemaErr(fmt.Errorf("failed to list purge runs: %w", err))
	}
	defer rows.Close()

	var runs []*PurgeRun
	for rows.Next() {
		var run PurgeRun
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.Mode, &run.Keep, &run.PackageCount); err != nil {
			return nil, fmt.Errorf("failed to scan purge run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			run.StartedAt = t
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purge runs: %w", err)
	}

	return runs, nil
}

// GetPurgeRun retrieves a single purge run by ID.
func (s *Store) GetPurgeRun(id int64) (*PurgeRun, error) {
	query := `
		SELECT id, started_at, mode, keep, package_count
		FROM purge_runs
		WHERE id = ?
	`

	var run PurgeRun
	var startedAt string
	err := s.db.QueryRow(query, id).Scan(&run.ID, &startedAt, &run.Mode, &run.Keep, &run.PackageCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("purge run %d not found", id)
	}
	if err != nil {
		return nil, mapSchemaErr(fmt.Errorf("failed to get purge run %d: %w", id, err))
	}
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		run.StartedAt = t
	}

	return &run, nil
}

// GetPurgeRunPackages returns the packages removed in a purge run, in
// insertion order.
func (s *Store) GetPurgeRunPackages(runID int64) ([]*PurgeRunPackage, error) {
	query := `
		SELECT run_id, name, series, revision
		FROM purge_run_packages
		WHERE run_id = ?
		ORDER BY rowid
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, mapSchemaErr(fmt.Errorf("failed to get packages for run %d: %w", runID, err))
	}
	defer rows.Close()

	var pkgs []*PurgeRunPackage
	for rows.Next() {
		var pkg PurgeRunPackage
		if err := rows.Scan(&pkg.RunID, &pkg.Name, &pkg.Series, &pkg.Revision); err != nil {
			return nil, fmt.Errorf("failed to scan purge run package: %w", err)
		}
		pkgs = append(pkgs, &pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purge run packages: %w", err)
	}

	return pkgs, nil
}

// Boot event operations

// InsertBootEvent records a /boot filesystem event.
func (s *Store) InsertBootEvent(event *BootEvent) error {
	query := `
		INSERT INTO boot_events (op, path, kernel_release, timestamp)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		event.Op,
		event.Path,
		event.KernelRelease,
		event.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return mapSchemaErr(fmt.Errorf("failed to insert boot event: %w", err))
	}
	return nil
}

// ListBootEvents returns boot events recorded at or after since, newest
// first.
func (s *Store) ListBootEvents(since time.Time) ([]*BootEvent, error) {
	query := `
		SELECT id, op, path, kernel_release, timestamp
		FROM boot_events
		WHERE timestamp >= ?
		ORDER BY id DESC
	`

	rows, err := s.db.Query(query, since.Format(time.RFC3339))
	if err != nil {
		return nil, mapSchemaErr(fmt.Errorf("failed to list boot events: %w", err))
	}
	defer rows.Close()

	var events []*BootEvent
	for rows.Next() {
		var ev BootEvent
		var ts string
		if err := rows.Scan(&ev.ID, &ev.Op, &ev.Path, &ev.KernelRelease, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan boot event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			ev.Timestamp = t
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate boot events: %w", err)
	}

	return events, nil
}

// GetBootEventCount returns the total number of recorded boot events.
func (s *Store) GetBootEventCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM boot_events").Scan(&count)
	if err != nil {
		return 0, mapSchemaErr(fmt.Errorf("failed to count boot events: %w", err))
	}
	return count, nil
}
