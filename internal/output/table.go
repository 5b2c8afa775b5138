// Package output provides terminal output utilities for kernelprune:
// table rendering for the kernel inventory, retention plans and purge
// history, plus progress indicators for long-running operations. Tables
// use ASCII characters and ANSI color codes gated on TTY detection.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/kernelprune/internal/kernel"
	"github.com/blackwell-systems/kernelprune/internal/store"
)

// ANSI color codes for retention status display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderInventoryTable renders the kernel inventory with one row per
// (series, revision). kept maps each series to its retained revisions under
// the active keep policy; running is the identity of the booted kernel
// (zero value if unknown).
func RenderInventoryTable(inv kernel.Inventory, kept map[string][]string, running kernel.Identity) string {
	if len(inv) == 0 {
		return "No kernel packages found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-12s %-10s %-10s %s\n",
		"Series", "Revision", "Packages", "Status"))
	sb.WriteString(strings.Repeat("─", 52))
	sb.WriteString("\n")

	for _, series := range inv.Series() {
		keptSet := make(map[string]struct{}, len(kept[series]))
		for _, r := range kept[series] {
			keptSet[r] = struct{}{}
		}

		for _, rev := range inv.Revisions(series) {
			id := kernel.Identity{Series: series, Revision: rev}
			status, color := revisionStatus(id, keptSet, running)

			sb.WriteString(fmt.Sprintf("%-12s %-10s %-10d %s\n",
				truncate(series, 12),
				rev,
				len(inv[series][rev]),
				colorize(color, status)))
		}
	}

	return sb.String()
}

// revisionStatus maps a revision to its display status and color.
func revisionStatus(id kernel.Identity, keptSet map[string]struct{}, running kernel.Identity) (string, string) {
	if id == running {
		return "● running", colorYellow
	}
	if _, ok := keptSet[id.Revision]; ok {
		return "✓ kept", colorGreen
	}
	return "✗ purge candidate", colorRed
}

// RenderRemovalList renders the packages selected for removal, grouped
// under their series-revision heading.
func RenderRemovalList(removals []kernel.Removal) string {
	if len(removals) == 0 {
		return "Nothing to remove.\n"
	}

	var sb strings.Builder
	var current kernel.Identity

	for _, r := range removals {
		if r.Identity != current {
			current = r.Identity
			sb.WriteString(colorize(colorGray, current.String()))
			sb.WriteString("\n")
		}
		sb.WriteString("  " + r.Name + "\n")
	}

	return sb.String()
}

// RenderRunTable renders a table of past purge runs.
func RenderRunTable(runs []*store.PurgeRun) string {
	if len(runs) == 0 {
		return "No purge runs recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-17s %-10s %-6s %s\n",
		"ID", "Started", "Mode", "Keep", "Packages"))
	sb.WriteString(strings.Repeat("─", 52))
	sb.WriteString("\n")

	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%-5d %-17s %-10s %-6d %d\n",
			run.ID,
			formatRelativeTime(run.StartedAt),
			run.Mode,
			run.Keep,
			run.PackageCount))
	}

	return sb.String()
}

// RenderRunPackages renders the packages removed in a single purge run.
func RenderRunPackages(pkgs []*store.PurgeRunPackage) string {
	if len(pkgs) == 0 {
		return "No packages recorded for this run.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-40s %-12s %s\n",
		"Package", "Series", "Revision"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for _, pkg := range pkgs {
		sb.WriteString(fmt.Sprintf("%-40s %-12s %s\n",
			truncate(pkg.Name, 40),
			pkg.Series,
			pkg.Revision))
	}

	return sb.String()
}

// RenderBootEventTable renders recorded /boot events, newest first.
func RenderBootEventTable(events []*store.BootEvent) string {
	if len(events) == 0 {
		return "No boot events recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-8s %-22s %-17s %s\n",
		"Op", "Kernel", "When", "Path"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, ev := range events {
		release := ev.KernelRelease
		if release == "" {
			release = "—"
		}
		sb.WriteString(fmt.Sprintf("%-8s %-22s %-17s %s\n",
			ev.Op,
			truncate(release, 22),
			formatRelativeTime(ev.Timestamp),
			ev.Path))
	}

	return sb.String()
}

// formatRelativeTime converts a timestamp to relative time (e.g. "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
