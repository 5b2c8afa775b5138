package kernel

import (
	"reflect"
	"strings"
	"testing"
)

func mustInventory(t *testing.T, lines ...string) Inventory {
	t.Helper()
	inv, _, err := ParseListing(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ParseListing() error: %v", err)
	}
	return inv
}

func TestSelect_KeepOne(t *testing.T) {
	inv := mustInventory(t,
		"linux-image-3.13.0-40-generic install",
		"linux-image-3.13.0-55-generic install",
		"linux-image-3.13.0-62-generic install",
	)

	plan, err := Select(inv, 1)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	wantRemove := []string{
		"linux-image-3.13.0-40-generic",
		"linux-image-3.13.0-55-generic",
	}
	if got := plan.RemovalNames(); !reflect.DeepEqual(got, wantRemove) {
		t.Errorf("RemovalNames() = %v, want %v", got, wantRemove)
	}

	wantKept := []string{"62"}
	if got := plan.Kept["3.13.0"]; !reflect.DeepEqual(got, wantKept) {
		t.Errorf("Kept[3.13.0] = %v, want %v", got, wantKept)
	}
}

func TestSelect_KeepExceedsRevisions(t *testing.T) {
	inv := mustInventory(t,
		"linux-image-4.4.0-21-generic install",
		"linux-image-4.4.0-24-generic install",
	)

	plan, err := Select(inv, 3)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	if len(plan.Remove) != 0 {
		t.Errorf("Remove = %v, want empty (2 revisions, keep 3)", plan.Remove)
	}
	if got := plan.Kept["4.4.0"]; !reflect.DeepEqual(got, []string{"21", "24"}) {
		t.Errorf("Kept[4.4.0] = %v, want [21 24]", got)
	}
}

func TestSelect_SeriesAreIndependent(t *testing.T) {
	inv := mustInventory(t,
		"linux-image-3.13.0-55-generic install",
		"linux-image-3.13.0-62-generic install",
		"linux-image-4.4.0-21-generic install",
		"linux-headers-3.13.0-55 install",
	)

	plan, err := Select(inv, 1)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	// Series 4.4.0 has a single revision so nothing is removed from it;
	// series 3.13.0 loses everything under revision 55.
	wantRemove := []string{
		"linux-image-3.13.0-55-generic",
		"linux-headers-3.13.0-55",
	}
	if got := plan.RemovalNames(); !reflect.DeepEqual(got, wantRemove) {
		t.Errorf("RemovalNames() = %v, want %v", got, wantRemove)
	}
}

func TestSelect_NumericRevisionOrder(t *testing.T) {
	inv := mustInventory(t,
		"linux-image-4.4.0-9-generic install",
		"linux-image-4.4.0-10-generic install",
	)

	plan, err := Select(inv, 1)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	// Revision 10 is newer than 9 numerically; lexicographic ordering
	// would wrongly remove 10.
	wantRemove := []string{"linux-image-4.4.0-9-generic"}
	if got := plan.RemovalNames(); !reflect.DeepEqual(got, wantRemove) {
		t.Errorf("RemovalNames() = %v, want %v", got, wantRemove)
	}
}

func TestSelect_Idempotent(t *testing.T) {
	inv := mustInventory(t,
		"linux-image-3.13.0-40-generic install",
		"linux-image-3.13.0-55-generic install",
		"linux-image-3.13.0-62-generic install",
		"linux-headers-3.13.0-40 install",
	)

	first, err := Select(inv, 2)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	second, err := Select(inv, 2)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Select() is not idempotent: first %+v, second %+v", first, second)
	}
}

func TestSelect_RejectsNonPositiveKeep(t *testing.T) {
	inv := mustInventory(t, "linux-image-3.13.0-55-generic install")

	for _, keep := range []int{0, -1} {
		if _, err := Select(inv, keep); err == nil {
			t.Errorf("Select(keep=%d) should fail", keep)
		}
	}
}

func TestSelect_RemovalCarriesIdentity(t *testing.T) {
	inv := mustInventory(t,
		"linux-image-3.13.0-40-generic install",
		"linux-image-3.13.0-62-generic install",
	)

	plan, err := Select(inv, 1)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if len(plan.Remove) != 1 {
		t.Fatalf("Remove = %v, want one entry", plan.Remove)
	}

	want := Identity{Series: "3.13.0", Revision: "40"}
	if plan.Remove[0].Identity != want {
		t.Errorf("Removal identity = %+v, want %+v", plan.Remove[0].Identity, want)
	}
}
