package scene

import "github.com/assumptionsoup/Normalize-Armature-Weights/pkg/mesh"

// ObjectType identifies what kind of data an object carries.
type ObjectType int

const (
	MeshObject ObjectType = iota
	ArmatureObject
	EmptyObject
)

// ModifierKind identifies a modifier's behavior.
type ModifierKind int

const (
	ModifierArmature ModifierKind = iota
	ModifierMirror
	ModifierSubdivision
)

// Skeleton is a set of named bones referenced by an armature modifier.
type Skeleton struct {
	Name  string
	Bones []string
}

// HasBone reports whether the skeleton contains a bone with the given
// name.
func (s *Skeleton) HasBone(name string) bool {
	for _, b := range s.Bones {
		if b == name {
			return true
		}
	}
	return false
}

// Modifier is one entry in an object's modifier stack. Only armature
// modifiers that deform through vertex groups and reference a skeleton
// contribute bones to weight normalization.
type Modifier struct {
	Name string
	Kind ModifierKind

	// DeformsGroups is whether the armature modifier reads vertex group
	// weights. Meaningful only for ModifierArmature.
	DeformsGroups bool
	// Skeleton is the referenced armature, nil when unassigned.
	Skeleton *Skeleton
}

// ToolSettings holds editing defaults the host shares across operators.
type ToolSettings struct {
	// GroupWeightDefault is the weight applied when assigning vertices
	// to a group.
	GroupWeightDefault float32
}

// Object is a scene object: the mesh it owns, its interaction mode, and
// its modifier stack.
type Object struct {
	Name      string
	Type      ObjectType
	Mode      Mode
	Mesh      *mesh.Mesh
	Modifiers []Modifier
	Tools     ToolSettings
}

// ArmatureBones returns the bone names of the first qualifying armature
// modifier (deforms through groups, skeleton assigned) and the number
// of qualifying modifiers found. Bones is nil when none qualify.
func (o *Object) ArmatureBones() (bones []string, qualifying int) {
	for i := range o.Modifiers {
		mod := &o.Modifiers[i]
		if mod.Kind != ModifierArmature || !mod.DeformsGroups || mod.Skeleton == nil {
			continue
		}
		if qualifying == 0 {
			bones = mod.Skeleton.Bones
		}
		qualifying++
	}
	return bones, qualifying
}
