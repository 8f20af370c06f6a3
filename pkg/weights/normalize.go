// Package weights implements armature weight normalization: rewriting
// each vertex's bone-group weights so they sum to 1.0 while holding the
// active group's weight fixed wherever possible.
package weights

import (
	"errors"

	"github.com/assumptionsoup/Normalize-Armature-Weights/pkg/mesh"
)

// Normalization errors.
var (
	ErrNoArmatureGroups    = errors.New("weights: armature group set is empty")
	ErrActiveGroupNotInSet = errors.New("weights: active group is not in the armature group set")
)

// Report summarizes one normalization pass.
type Report struct {
	// Vertices is the number of vertices examined.
	Vertices int
	// Rewritten is the number of vertices whose weights were changed.
	Rewritten int
	// Balanced is the number of vertices whose weights already summed
	// to exactly 1.0 and were skipped.
	Balanced int
	// Unnormalized is the number of vertices left untouched because no
	// redistribution rule applied (for example a lone active entry at
	// zero weight). Their sums still violate the 1.0 invariant.
	Unnormalized int
}

// Normalize rewrites each vertex's weights among the armature's groups
// so they sum to 1.0, biased toward the active group:
//
//   - A vertex with no entry for the active group is rescaled
//     proportionally among the groups it does have.
//   - An active weight at or above 1.0 wins outright: it is forced to
//     exactly 1.0 and every other armature weight is zeroed.
//   - An active weight below 1.0 is held fixed; the remaining room is
//     split among the other groups, proportionally when they carry
//     weight, evenly when they are all zero.
//
// Individual weights are clamped to [0,1] before redistribution.
// Entries for groups outside armatureGroups are never read or written.
// Validation failures abort before any vertex is mutated.
func Normalize(m *mesh.Mesh, armatureGroups []int, activeGroup int) (Report, error) {
	var rep Report
	if len(armatureGroups) == 0 {
		return rep, ErrNoArmatureGroups
	}
	activeInSet := false
	for _, g := range armatureGroups {
		if g == activeGroup {
			activeInSet = true
			break
		}
	}
	if !activeInSet {
		return rep, ErrActiveGroupNotInSet
	}

	collected := make([]int, 0, len(armatureGroups))
	for i := range m.Vertices {
		v := &m.Vertices[i]
		rep.Vertices++

		// Gather this vertex's armature entries, clamping each weight
		// into [0,1] in place. Sums accumulate in float64 so the skip
		// test below is not at the mercy of float32 addition order.
		collected = collected[:0]
		var sum, sumOther, active float64
		hasActive := false
		for _, g := range armatureGroups {
			w, ok := v.Weight(g)
			if !ok {
				continue
			}
			if c := clamp(w); c != w {
				v.SetWeight(g, c)
				w = c
			}
			collected = append(collected, g)
			sum += float64(w)
			if g == activeGroup {
				hasActive = true
				active = float64(w)
			} else {
				sumOther += float64(w)
			}
		}
		if len(collected) == 0 {
			continue
		}
		if sum == 1.0 {
			// Rare: floating-point accumulation almost always leaves
			// the sum slightly off 1.0.
			rep.Balanced++
			continue
		}

		switch {
		case !hasActive && sumOther > 0:
			// Not a member of the active group: plain proportional
			// renormalization among the groups present.
			for _, g := range collected {
				w, _ := v.Weight(g)
				v.SetWeight(g, float32(float64(w)/sumOther))
			}
			rep.Rewritten++
		case hasActive && active >= 1.0:
			// Active group dominates. Zero the rest and pin the active
			// weight to exactly 1.0 to correct any overshoot.
			for _, g := range collected {
				if g != activeGroup {
					v.SetWeight(g, 0)
				}
			}
			v.SetWeight(activeGroup, 1.0)
			rep.Rewritten++
		case hasActive && sumOther > 0:
			// Hold the active weight; scale the others into the room
			// it leaves.
			bias := 1.0 - active
			for _, g := range collected {
				if g == activeGroup {
					continue
				}
				w, _ := v.Weight(g)
				v.SetWeight(g, float32(bias*float64(w)/sumOther))
			}
			rep.Rewritten++
		case hasActive && sum > 0 && len(collected) > 1:
			// Active below 1.0 and every other group at zero: no
			// proportional basis, so split the room evenly.
			share := (1.0 - active) / float64(len(collected)-1)
			for _, g := range collected {
				if g != activeGroup {
					v.SetWeight(g, float32(share))
				}
			}
			rep.Rewritten++
		default:
			// No rule applies (e.g. a lone zero-weight active entry).
			// Left as-is; callers can report the count.
			rep.Unnormalized++
		}
	}
	return rep, nil
}

func clamp(w float32) float32 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
