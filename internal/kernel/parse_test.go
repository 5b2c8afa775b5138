package kernel

import (
	"errors"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantID  Identity
		wantOK  bool
		wantErr error
	}{
		{
			name:   "image with flavor suffix",
			pkg:    "linux-image-3.13.0-57-generic",
			wantID: Identity{Series: "3.13.0", Revision: "57"},
			wantOK: true,
		},
		{
			name:   "headers with dotted revision",
			pkg:    "linux-headers-4.1.13-gnu",
			wantID: Identity{Series: "4.1", Revision: "13"},
			wantOK: true,
		},
		{
			name:   "headers without suffix",
			pkg:    "linux-headers-3.13.0-57",
			wantID: Identity{Series: "3.13.0", Revision: "57"},
			wantOK: true,
		},
		{
			name:   "image-extra",
			pkg:    "linux-image-extra-3.13.0-57-generic",
			wantID: Identity{Series: "3.13.0", Revision: "57"},
			wantOK: true,
		},
		{
			name:   "tools",
			pkg:    "linux-tools-3.13.0-57",
			wantID: Identity{Series: "3.13.0", Revision: "57"},
			wantOK: true,
		},
		{
			name:   "flavor qualifier before kind",
			pkg:    "linux-signed-image-4.4.0-21-generic",
			wantID: Identity{Series: "4.4.0", Revision: "21"},
			wantOK: true,
		},
		{
			name:   "modules",
			pkg:    "linux-modules-5.15.0-122-generic",
			wantID: Identity{Series: "5.15.0", Revision: "122"},
			wantOK: true,
		},
		{
			name:   "modules-extra",
			pkg:    "linux-modules-extra-5.15.0-122-generic",
			wantID: Identity{Series: "5.15.0", Revision: "122"},
			wantOK: true,
		},
		{
			name:   "multi-word suffix",
			pkg:    "linux-image-3.2.0-126-generic-pae",
			wantID: Identity{Series: "3.2.0", Revision: "126"},
			wantOK: true,
		},
		{
			name:   "non-kernel package",
			pkg:    "some-other-pkg",
			wantOK: false,
		},
		{
			name:   "kernel meta-package has no version",
			pkg:    "linux-image-amd64",
			wantOK: false,
		},
		{
			name:   "generic meta-package",
			pkg:    "linux-image-generic",
			wantOK: false,
		},
		{
			name:   "unrecognized kind",
			pkg:    "linux-firmware-3.13.0-57",
			wantOK: false,
		},
		{
			name:   "libc package is not a kernel package",
			pkg:    "linux-libc-dev",
			wantOK: false,
		},
		{
			name:    "family match without separable revision",
			pkg:     "linux-image-4-generic",
			wantOK:  false,
			wantErr: ErrNoRevision,
		},
		{
			name:    "headers with bare version",
			pkg:     "linux-headers-4",
			wantOK:  false,
			wantErr: ErrNoRevision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok, err := ParseName(tt.pkg)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseName(%q) error = %v, want %v", tt.pkg, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseName(%q) unexpected error: %v", tt.pkg, err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ParseName(%q) ok = %v, want %v", tt.pkg, ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("ParseName(%q) = %+v, want %+v", tt.pkg, id, tt.wantID)
			}
		})
	}
}

// TestParseName_VersionReconstructs verifies that for matching names the
// extracted series and revision reconstruct the version portion of the name
// when rejoined with the separator that split them.
func TestParseName_VersionReconstructs(t *testing.T) {
	tests := []struct {
		pkg     string
		version string
		sep     string
	}{
		{"linux-image-3.13.0-57-generic", "3.13.0-57", "-"},
		{"linux-headers-4.1.13-gnu", "4.1.13", "."},
		{"linux-tools-5.4.0-189", "5.4.0-189", "-"},
	}

	for _, tt := range tests {
		id, ok, err := ParseName(tt.pkg)
		if err != nil || !ok {
			t.Fatalf("ParseName(%q) = ok:%v err:%v", tt.pkg, ok, err)
		}
		if got := id.Series + tt.sep + id.Revision; got != tt.version {
			t.Errorf("ParseName(%q): series+sep+revision = %q, want %q", tt.pkg, got, tt.version)
		}
	}
}

func TestParseRelease(t *testing.T) {
	tests := []struct {
		release string
		wantID  Identity
		wantOK  bool
	}{
		{"5.15.0-122-generic", Identity{Series: "5.15.0", Revision: "122"}, true},
		{"3.13.0-57-generic", Identity{Series: "3.13.0", Revision: "57"}, true},
		{"4.1.13-gnu", Identity{Series: "4.1", Revision: "13"}, true},
		{"4.1.13", Identity{Series: "4.1", Revision: "13"}, true},
		{"generic", Identity{}, false},
		{"", Identity{}, false},
	}

	for _, tt := range tests {
		id, ok := ParseRelease(tt.release)
		if ok != tt.wantOK {
			t.Errorf("ParseRelease(%q) ok = %v, want %v", tt.release, ok, tt.wantOK)
			continue
		}
		if ok && id != tt.wantID {
			t.Errorf("ParseRelease(%q) = %+v, want %+v", tt.release, id, tt.wantID)
		}
	}
}

func TestIdentityString(t *testing.T) {
	id := Identity{Series: "3.13.0", Revision: "57"}
	if got := id.String(); got != "3.13.0-57" {
		t.Errorf("Identity.String() = %q, want %q", got, "3.13.0-57")
	}
}
