package weights

import (
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/assumptionsoup/Normalize-Armature-Weights/pkg/mesh"
)

// DefaultTolerance is the absolute tolerance applied to the per-vertex
// sum invariant when auditing a mesh.
const DefaultTolerance = 1e-6

// Audit returns the indices of vertices whose weights among the given
// groups do not sum to 1.0 within tol. Vertices with no entries for any
// of the groups are ignored; they carry no armature influence at all.
func Audit(m *mesh.Mesh, armatureGroups []int, tol float64) []int {
	var bad []int
	for i := range m.Vertices {
		v := &m.Vertices[i]
		var sum float64
		entries := 0
		for _, g := range armatureGroups {
			if w, ok := v.Weight(g); ok {
				sum += float64(w)
				entries++
			}
		}
		if entries == 0 {
			continue
		}
		if !scalar.EqualWithinAbs(sum, 1.0, tol) {
			bad = append(bad, i)
		}
	}
	return bad
}
