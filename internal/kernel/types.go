// Package kernel implements the retention logic for Debian kernel packages:
// parsing kernel package names into (series, revision) identities, grouping
// an installed-package listing by series and revision, and selecting which
// packages to purge under a "keep last N revisions per series" policy.
package kernel

import (
	"sort"
	"strconv"
)

// Identity is the kernel version identity extracted from a package name.
// Series is the dotted upstream version shared by multiple builds (e.g.
// "3.13.0"); Revision is the numeric build number within that series
// (e.g. "57"). Revisions compare numerically, never lexicographically.
type Identity struct {
	Series   string
	Revision string
}

// String returns the canonical "series-revision" form, e.g. "3.13.0-57".
func (id Identity) String() string {
	return id.Series + "-" + id.Revision
}

// Inventory groups installed kernel package names by series, then by
// revision. Within a (series, revision) bucket, names keep the order they
// were read from the package listing. Built fresh on every invocation;
// nothing is carried between runs.
type Inventory map[string]map[string][]string

// add appends a package name to its (series, revision) bucket.
func (inv Inventory) add(id Identity, name string) {
	revs, ok := inv[id.Series]
	if !ok {
		revs = make(map[string][]string)
		inv[id.Series] = revs
	}
	revs[id.Revision] = append(revs[id.Revision], name)
}

// Series returns the series names in sorted order.
func (inv Inventory) Series() []string {
	series := make([]string, 0, len(inv))
	for s := range inv {
		series = append(series, s)
	}
	sort.Strings(series)
	return series
}

// Revisions returns the revisions of a series sorted ascending by numeric
// value, so "9" sorts before "10". Unknown series yields nil.
func (inv Inventory) Revisions(series string) []string {
	revs := inv[series]
	if revs == nil {
		return nil
	}
	sorted := make([]string, 0, len(revs))
	for r := range revs {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, _ := strconv.Atoi(sorted[i])
		b, _ := strconv.Atoi(sorted[j])
		return a < b
	})
	return sorted
}

// PackageCount returns the total number of package names in the inventory.
func (inv Inventory) PackageCount() int {
	n := 0
	for _, revs := range inv {
		for _, names := range revs {
			n += len(names)
		}
	}
	return n
}
