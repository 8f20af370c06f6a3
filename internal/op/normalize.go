// Package op implements the normalize-armature-weights operator: the
// user-facing command that validates the object, guarantees group
// membership, and runs weight normalization over the mesh.
package op

import (
	"errors"

	"go.uber.org/zap"

	"github.com/assumptionsoup/Normalize-Armature-Weights/internal/logger"
	"github.com/assumptionsoup/Normalize-Armature-Weights/internal/scene"
	"github.com/assumptionsoup/Normalize-Armature-Weights/pkg/mesh"
	"github.com/assumptionsoup/Normalize-Armature-Weights/pkg/weights"
)

// Operator errors. Both are detected before any weight is mutated.
var (
	ErrNoArmatureFound          = errors.New("op: no armature found on object")
	ErrActiveGroupNotOnArmature = errors.New("op: active vertex group not found on armature")
)

// Result reports a completed invocation.
type Result struct {
	// MultipleArmatures is set when more than one qualifying armature
	// modifier was found. Processing used the first one; results may
	// be unexpected.
	MultipleArmatures bool
	// Report is the normalizer's per-vertex summary.
	Report weights.Report
}

// Poll reports whether the operator may be invoked: there is an object,
// it is a mesh in weight paint mode, and it has at least one vertex
// group.
func Poll(obj *scene.Object) bool {
	return obj != nil &&
		obj.Type == scene.MeshObject &&
		obj.Mode == scene.WeightPaintMode &&
		obj.Mesh != nil &&
		obj.Mesh.Groups.Len() > 0
}

// NormalizeArmatureWeights runs the operator against obj. The active
// group index is captured once up front and restored afterwards; mode
// transitions during membership assignment are known to move it.
//
// Fails with ErrNoArmatureFound or ErrActiveGroupNotOnArmature before
// touching any weight. With multiple qualifying armature modifiers the
// first one's bones are used and the result carries a warning flag.
func NormalizeArmatureWeights(obj *scene.Object) (Result, error) {
	active := obj.Mesh.Groups.Active
	defer func() { obj.Mesh.Groups.Active = active }()

	bones, qualifying := obj.ArmatureBones()
	if qualifying == 0 {
		logger.Error("no armature found on object", zap.String("object", obj.Name))
		return Result{}, ErrNoArmatureFound
	}

	boneSet := make(map[string]bool, len(bones))
	for _, b := range bones {
		boneSet[b] = true
	}

	activeName, ok := obj.Mesh.Groups.ActiveName()
	if !ok || !boneSet[activeName] {
		logger.Error("active vertex group not found on armature",
			zap.String("object", obj.Name), zap.String("group", activeName))
		return Result{}, ErrActiveGroupNotOnArmature
	}

	multiple := qualifying > 1
	if multiple {
		logger.Warn("multiple armatures found on object, results may be unexpected",
			zap.String("object", obj.Name), zap.Int("armatures", qualifying))
	}

	// Group indices whose name matches an armature bone, in table order.
	var boneGroups []int
	for i, name := range obj.Mesh.Groups.Names() {
		if boneSet[name] {
			boneGroups = append(boneGroups, i)
		}
	}

	sess, err := scene.BeginEdit(obj)
	if err != nil {
		return Result{}, err
	}
	mesh.EnsureMembership(obj.Mesh, boneGroups)
	sess.Close()

	rep, err := weights.Normalize(obj.Mesh, boneGroups, active)
	if err != nil {
		return Result{}, err
	}
	obj.Mesh.Update()

	if rep.Unnormalized > 0 {
		logger.Warn("some vertices could not be normalized",
			zap.String("object", obj.Name), zap.Int("vertices", rep.Unnormalized))
	}
	logger.Info("normalized armature weights",
		zap.String("object", obj.Name),
		zap.Int("vertices", rep.Vertices),
		zap.Int("rewritten", rep.Rewritten))
	return Result{MultipleArmatures: multiple, Report: rep}, nil
}
