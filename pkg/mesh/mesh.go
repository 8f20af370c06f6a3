// Package mesh provides the mesh-side data model for vertex group weights:
// a vertex array, a named group table, and the membership guarantee used
// before weight normalization.
package mesh

// Vertex is a single mesh vertex. It owns a sparse mapping from group
// index to deform weight. Weights are intended to lie in [0,1] but
// upstream tooling does not guarantee that.
type Vertex struct {
	Groups map[int]float32
}

// HasGroup reports whether the vertex carries an explicit weight entry
// for the given group, at any weight including zero.
func (v *Vertex) HasGroup(group int) bool {
	_, ok := v.Groups[group]
	return ok
}

// Weight returns the vertex's weight for the given group and whether an
// entry exists.
func (v *Vertex) Weight(group int) (float32, bool) {
	w, ok := v.Groups[group]
	return w, ok
}

// SetWeight overwrites the vertex's weight for the given group, creating
// the entry if it does not exist.
func (v *Vertex) SetWeight(group int, weight float32) {
	if v.Groups == nil {
		v.Groups = make(map[int]float32)
	}
	v.Groups[group] = weight
}

// AddGroup inserts a weight entry for the given group if the vertex does
// not already have one. Existing entries are left untouched.
func (v *Vertex) AddGroup(group int, weight float32) {
	if v.HasGroup(group) {
		return
	}
	v.SetWeight(group, weight)
}

// Mesh holds the vertex array and the group table of one mesh object.
type Mesh struct {
	Vertices []Vertex
	Groups   *GroupTable

	// Revision counts completed mutations of weight data. Hosts that
	// cache deform results watch it to know when to refresh.
	Revision int
}

// New creates a mesh with the given group table and vertex count. All
// vertices start with no group entries.
func New(groups *GroupTable, vertexCount int) *Mesh {
	return &Mesh{
		Vertices: make([]Vertex, vertexCount),
		Groups:   groups,
	}
}

// Update marks the mesh's weight data as changed so the host refreshes
// anything derived from it.
func (m *Mesh) Update() {
	m.Revision++
}
