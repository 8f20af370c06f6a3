package mesh

// GroupTable is the mesh's table of vertex groups. Each group has a
// stable integer index and a name unique within the table. One group is
// the active group; the host mutates it during unrelated edits, so
// callers that depend on it must capture it up front.
type GroupTable struct {
	names []string
	index map[string]int

	// Active is the index of the currently active group, or -1 when the
	// table is empty.
	Active int
}

// NewGroupTable creates a group table containing the given names in
// order. The first group, if any, starts active.
func NewGroupTable(names ...string) *GroupTable {
	t := &GroupTable{
		index:  make(map[string]int, len(names)),
		Active: -1,
	}
	for _, name := range names {
		t.Add(name)
	}
	if len(t.names) > 0 {
		t.Active = 0
	}
	return t
}

// Add appends a group and returns its index. Adding a name that already
// exists returns the existing index.
func (t *GroupTable) Add(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = i
	return i
}

// Index returns the index of the named group.
func (t *GroupTable) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Name returns the name of the group at the given index.
func (t *GroupTable) Name(i int) (string, bool) {
	if i < 0 || i >= len(t.names) {
		return "", false
	}
	return t.names[i], true
}

// Names returns the group names in index order.
func (t *GroupTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of groups in the table.
func (t *GroupTable) Len() int {
	return len(t.names)
}

// ActiveName returns the name of the active group.
func (t *GroupTable) ActiveName() (string, bool) {
	return t.Name(t.Active)
}
