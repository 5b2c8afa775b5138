package kernel

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StatusInstall is the dpkg selection state of packages we consider.
// Anything else (deinstall, purge, hold) is excluded from the inventory.
const StatusInstall = "install"

// ParseListing reads a package selection listing (one "<name> <status>"
// pair per line, as printed by dpkg --get-selections) and groups the
// installed kernel packages by series and revision.
//
// Blank lines are skipped. Non-empty lines that do not split into exactly
// two fields are skipped with a warning collected into the returned slice.
// Lines whose status is not "install", and package names that are not
// kernel packages, are silently excluded. A kernel-family name without a
// separable revision aborts with an error.
func ParseListing(r io.Reader) (Inventory, []string, error) {
	inv := make(Inventory)
	var warnings []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			warnings = append(warnings, fmt.Sprintf("line %d: malformed entry %q, skipped", lineNo, line))
			continue
		}

		name, status := fields[0], fields[1]
		if status != StatusInstall {
			continue
		}

		id, ok, err := ParseName(name)
		if err != nil {
			return nil, warnings, err
		}
		if !ok {
			continue
		}

		inv.add(id, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("failed to read package listing: %w", err)
	}

	return inv, warnings, nil
}
