package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoRevision is returned when a package name matches the kernel package
// family but its version carries no separable trailing revision. The Debian
// kernel naming convention always produces one, so hitting this means the
// convention changed under us; callers treat it as fatal rather than
// guessing at an identity.
var ErrNoRevision = errors.New("kernel package version has no trailing revision")

// namePattern matches the Debian kernel package family:
//
//	linux(-<flavor>)?-<kind>-<version>(-<suffix>)?
//
// where <kind> is one of the fixed package kinds, <version> is a dot/dash
// separated numeric string and <suffix> is a non-numeric variant or
// architecture qualifier (e.g. "generic", "lowlatency", "gnu").
// Examples: linux-image-3.13.0-57-generic, linux-headers-4.1.13-gnu,
// linux-signed-image-4.4.0-21-generic, linux-tools-3.13.0-57.
var namePattern = regexp.MustCompile(
	`^linux(?:-([a-z][a-z0-9]*))?-(headers|image-extra|image|modules-extra|modules|tools)-([0-9]+(?:[.-][0-9]+)*)(?:-([a-z][a-z0-9-]*))?$`)

// ParseName extracts the kernel identity from a package name.
//
// ok is false when the name is not a kernel package at all (wrong family,
// meta-package without a numeric version, unrelated package). err is
// non-nil only when the name does match the family pattern but its version
// portion has no separable trailing revision (see ErrNoRevision); in that
// case ok is also false.
func ParseName(name string) (id Identity, ok bool, err error) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Identity{}, false, nil
	}

	series, revision, found := splitVersion(m[3])
	if !found {
		return Identity{}, false, fmt.Errorf("package %q: %w", name, ErrNoRevision)
	}

	return Identity{Series: series, Revision: revision}, true, nil
}

// ParseRelease extracts the kernel identity from a kernel release string as
// reported by uname -r, e.g. "5.15.0-122-generic". Returns ok=false when
// the release does not start with a splittable numeric version.
func ParseRelease(release string) (Identity, bool) {
	// Strip the flavor tail: keep the leading dot/dash numeric run.
	version := releaseVersionPattern.FindString(release)
	if version == "" {
		return Identity{}, false
	}

	series, revision, found := splitVersion(version)
	if !found {
		return Identity{}, false
	}
	return Identity{Series: series, Revision: revision}, true
}

var releaseVersionPattern = regexp.MustCompile(`^[0-9]+(?:[.-][0-9]+)*`)

// splitVersion splits a dot/dash-separated numeric version at its last
// separator: the trailing component is the revision, the rest the series.
// "3.13.0-57" → ("3.13.0", "57"); "4.1.13" → ("4.1", "13"). found is false
// when the version has no separator to split at.
func splitVersion(version string) (series, revision string, found bool) {
	idx := strings.LastIndexAny(version, ".-")
	if idx < 0 {
		return "", "", false
	}
	return version[:idx], version[idx+1:], true
}
