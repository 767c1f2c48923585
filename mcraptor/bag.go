package mcraptor

import "github.com/transitraptor/raptor/config"

// Bag is a Pareto-antichain of labels associated with one (round, stop)
// pair (spec §4.4). Bags are expected to stay small (a handful of labels),
// so merges use the naive O(n^2) sweep spec §4.4 explicitly allows.
type Bag []Label

// Merge computes the Pareto front of append(a, b...), per spec §4.4's
// pareto_merge. keepEqual controls whether labels identical on every active
// criterion but with different origins are both retained (off by default
// per spec §9's open-question resolution; rangequery turns it on). Returns
// the merged bag and whether it differs from a.
func Merge(a Bag, b Bag, criteria config.McCriteria, keepEqual bool) (Bag, bool) {
	if len(b) == 0 {
		return a, false
	}

	union := make(Bag, 0, len(a)+len(b))
	union = append(union, a...)
	union = append(union, b...)

	front := make(Bag, 0, len(union))
	for i, cand := range union {
		dominated := false
		for j, other := range union {
			if i == j {
				continue
			}
			if Dominates(other, cand, criteria) {
				dominated = true
				break
			}
			if !keepEqual && Equal(other, cand, criteria) && j < i {
				// An earlier, identical-on-criteria label already claims
				// this point in the front; drop the later duplicate.
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, cand)
		}
	}

	if bagsEqual(a, front, criteria, keepEqual) {
		return a, false
	}
	return front, true
}

func bagsEqual(a, b Bag, criteria config.McCriteria, keepEqual bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, la := range a {
		found := false
		for j, lb := range b {
			if used[j] {
				continue
			}
			if Equal(la, lb, criteria) && la.Kind == lb.Kind && la.FromStop == lb.FromStop && la.VehicleTrip == lb.VehicleTrip {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	_ = keepEqual
	return true
}
