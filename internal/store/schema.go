package store

const schema = `
CREATE TABLE IF NOT EXISTS purge_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    mode TEXT NOT NULL,
    keep INTEGER NOT NULL,
    package_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS purge_run_packages (
    run_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    series TEXT NOT NULL,
    revision TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES purge_runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS boot_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    op TEXT NOT NULL,
    path TEXT NOT NULL,
    kernel_release TEXT,
    timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_purge_run_packages ON purge_run_packages(run_id);
CREATE INDEX IF NOT EXISTS idx_boot_events_timestamp ON boot_events(timestamp);
CREATE INDEX IF NOT EXISTS idx_boot_events_release ON boot_events(kernel_release);
`
