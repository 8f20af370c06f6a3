// Package scene models the host-application side of weight editing: the
// object an operator runs against, its interaction mode, its modifier
// stack, and the edit session that snapshots and restores host state
// around membership mutation.
package scene

// Mode is an object interaction mode. The set is closed; transitions go
// through EditVariant rather than string manipulation so a saved mode
// always restores to exactly what it was.
type Mode int

const (
	// ObjectMode is the default viewing mode.
	ObjectMode Mode = iota
	// EditMode allows mesh data mutation, including group membership.
	EditMode
	// WeightPaintMode is the weight-editing viewing mode.
	WeightPaintMode
	// PoseMode is the armature posing mode.
	PoseMode
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ObjectMode:
		return "Object"
	case EditMode:
		return "Edit"
	case WeightPaintMode:
		return "Weight Paint"
	case PoseMode:
		return "Pose"
	default:
		return "Unknown"
	}
}

// EditVariant returns the mutation-capable counterpart of m: the mode an
// edit session switches into to change membership data. EditMode is its
// own variant.
func (m Mode) EditVariant() Mode {
	return EditMode
}

// CanEditMembership reports whether group membership may be mutated
// while in this mode.
func (m Mode) CanEditMembership() bool {
	return m == EditMode
}
