package scene

import "errors"

// ErrNoMesh is returned when an edit session is opened on an object
// without mesh data.
var ErrNoMesh = errors.New("scene: object has no mesh data")

// EditSession switches an object into its edit-capable mode for
// membership mutation and restores the prior host state on Close: the
// interaction mode, the group-weight assignment default, and the active
// group index all come back exactly as they were, even when the session
// ends early on a failure path.
type EditSession struct {
	obj        *Object
	prevMode   Mode
	prevWeight float32
	prevActive int
	closed     bool
}

// BeginEdit snapshots the object's interaction state and enters the
// edit-capable mode variant with the group assignment weight forced to
// zero, ready for zero-weight membership inserts.
func BeginEdit(obj *Object) (*EditSession, error) {
	if obj.Mesh == nil {
		return nil, ErrNoMesh
	}
	s := &EditSession{
		obj:        obj,
		prevMode:   obj.Mode,
		prevWeight: obj.Tools.GroupWeightDefault,
		prevActive: obj.Mesh.Groups.Active,
	}
	obj.Mode = obj.Mode.EditVariant()
	obj.Tools.GroupWeightDefault = 0
	return s, nil
}

// Close restores the interaction mode, assignment weight default, and
// active group index captured at BeginEdit. Safe to call more than
// once; only the first call restores.
func (s *EditSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.obj.Mode = s.prevMode
	s.obj.Tools.GroupWeightDefault = s.prevWeight
	s.obj.Mesh.Groups.Active = s.prevActive
	s.obj.Mesh.Update()
}
