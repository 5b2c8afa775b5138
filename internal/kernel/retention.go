package kernel

import "fmt"

// Removal is a single package selected for purging, with the identity it
// was selected under.
type Removal struct {
	Name     string
	Identity Identity
}

// Plan is the outcome of a retention selection: the packages to purge and,
// per series, the revisions that are retained.
type Plan struct {
	Remove []Removal
	Kept   map[string][]string // series → retained revisions, ascending
}

// Select computes the retention plan for an inventory: for each series the
// highest `keep` revisions (numerically) are retained and every package of
// an earlier revision goes on the removal list.
//
// keep must be positive; the surrounding CLI validates user input before we
// get here, so a non-positive value is a caller bug and rejected outright.
// Series are visited in sorted order and revisions ascending, so the same
// inventory and keep always produce the same removal list.
func Select(inv Inventory, keep int) (*Plan, error) {
	if keep <= 0 {
		return nil, fmt.Errorf("keep must be a positive integer, got %d", keep)
	}

	plan := &Plan{
		Kept: make(map[string][]string),
	}

	for _, series := range inv.Series() {
		revisions := inv.Revisions(series)

		cut := len(revisions) - keep
		if cut < 0 {
			cut = 0
		}

		plan.Kept[series] = revisions[cut:]

		for _, rev := range revisions[:cut] {
			for _, name := range inv[series][rev] {
				plan.Remove = append(plan.Remove, Removal{
					Name:     name,
					Identity: Identity{Series: series, Revision: rev},
				})
			}
		}
	}

	return plan, nil
}

// RemovalNames returns just the package names of the removal list, in plan
// order.
func (p *Plan) RemovalNames() []string {
	names := make([]string, len(p.Remove))
	for i, r := range p.Remove {
		names[i] = r.Name
	}
	return names
}
