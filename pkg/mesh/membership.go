package mesh

// EnsureMembership guarantees that every vertex carries an explicit
// weight entry for each of the given groups, inserting zero-weight
// entries where missing. Vertices that already have an entry for a
// group, at any weight, keep it untouched. An empty group list is a
// no-op.
//
// Normalization requires this guarantee: a vertex absent from a bone
// group would otherwise be invisible to redistribution.
func EnsureMembership(m *Mesh, groups []int) {
	for _, group := range groups {
		for i := range m.Vertices {
			m.Vertices[i].AddGroup(group, 0)
		}
	}
}
