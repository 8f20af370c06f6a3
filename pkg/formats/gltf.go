// Package formats adapts skinned-mesh file formats to the group-weight
// data model. glTF 2.0 / GLB support maps JOINTS_0/WEIGHTS_0 vertex
// attributes to sparse group weights and back.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/assumptionsoup/Normalize-Armature-Weights/pkg/mesh"
)

// glTF adapter errors.
var (
	ErrNoSkinnedMesh  = errors.New("gltf: no node with both mesh and skin found")
	ErrMissingWeights = errors.New("gltf: skinned mesh has no JOINTS_0/WEIGHTS_0 primitive")
	ErrTooManyGroups  = errors.New("gltf: group index does not fit in a uint16 joint")
)

// SkinBinding describes one skin attached to the loaded mesh's nodes.
type SkinBinding struct {
	Name  string
	Bones []string
}

// SkinnedModel couples a glTF document with a group-weight view of its
// first skinned mesh. Weight edits happen on Mesh; Sync packs them back
// into the document.
type SkinnedModel struct {
	Doc  *gltf.Document
	Mesh *mesh.Mesh
	// Skins lists every skin bound to the mesh's nodes, in node order.
	// Group indices refer to the first one's joints.
	Skins []SkinBinding

	prims []primRange
}

// primRange maps a contiguous run of Mesh.Vertices back to the
// primitive it was read from.
type primRange struct {
	prim  *gltf.Primitive
	start int
	count int
}

// LoadSkinned reads a .gltf/.glb/.vrm file and extracts its first
// skinned mesh.
func LoadSkinned(path string) (*SkinnedModel, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return FromDocument(doc)
}

// FromDocument extracts the first skinned mesh from an in-memory
// document. The returned model keeps a reference to doc; Sync and Save
// mutate it.
func FromDocument(doc *gltf.Document) (*SkinnedModel, error) {
	meshIndex := -1
	var skins []SkinBinding
	seenSkins := make(map[int]bool)
	for _, node := range doc.Nodes {
		if node.Mesh == nil || node.Skin == nil {
			continue
		}
		if meshIndex == -1 {
			meshIndex = int(*node.Mesh)
		}
		if int(*node.Mesh) != meshIndex || seenSkins[int(*node.Skin)] {
			continue
		}
		seenSkins[int(*node.Skin)] = true
		skins = append(skins, skinBinding(doc, int(*node.Skin)))
	}
	if meshIndex == -1 {
		return nil, ErrNoSkinnedMesh
	}

	groups := mesh.NewGroupTable()
	for _, bone := range skins[0].Bones {
		groups.Add(bone)
	}

	// Read every primitive that carries skinning attributes. Each one
	// has its own vertex run; they concatenate into one vertex array.
	type primData struct {
		prim    *gltf.Primitive
		joints  [][4]uint16
		weights [][4]float32
	}
	var prims []primData
	total := 0
	for _, prim := range doc.Meshes[meshIndex].Primitives {
		ji, ok := prim.Attributes[gltf.JOINTS_0]
		if !ok {
			continue
		}
		wi, ok := prim.Attributes[gltf.WEIGHTS_0]
		if !ok {
			continue
		}
		joints, err := modeler.ReadJoints(doc, doc.Accessors[ji], nil)
		if err != nil {
			return nil, fmt.Errorf("reading JOINTS_0: %w", err)
		}
		weights, err := modeler.ReadWeights(doc, doc.Accessors[wi], nil)
		if err != nil {
			return nil, fmt.Errorf("reading WEIGHTS_0: %w", err)
		}
		if len(weights) < len(joints) {
			joints = joints[:len(weights)]
		}
		prims = append(prims, primData{prim: prim, joints: joints, weights: weights})
		total += len(joints)
	}
	if len(prims) == 0 {
		return nil, ErrMissingWeights
	}

	m := mesh.New(groups, total)
	model := &SkinnedModel{Doc: doc, Mesh: m, Skins: skins}
	offset := 0
	for _, pd := range prims {
		for i := range pd.joints {
			v := &m.Vertices[offset+i]
			for slot := 0; slot < 4; slot++ {
				w := pd.weights[i][slot]
				if w == 0 {
					// Unused slots are zero-padded; a genuine
					// zero-weight membership is indistinguishable
					// here, so it is dropped.
					continue
				}
				group := int(pd.joints[i][slot])
				if prev, ok := v.Weight(group); ok {
					w += prev
				}
				v.SetWeight(group, w)
			}
		}
		model.prims = append(model.prims, primRange{prim: pd.prim, start: offset, count: len(pd.joints)})
		offset += len(pd.joints)
	}
	return model, nil
}

// skinBinding resolves a skin's joint node names. Unnamed joints get a
// stable placeholder so the group table stays aligned with joint order.
func skinBinding(doc *gltf.Document, skinIndex int) SkinBinding {
	skin := doc.Skins[skinIndex]
	b := SkinBinding{Name: skin.Name}
	seen := make(map[string]bool, len(skin.Joints))
	for ji, nodeIndex := range skin.Joints {
		name := doc.Nodes[nodeIndex].Name
		if name == "" || seen[name] {
			name = fmt.Sprintf("joint_%d", ji)
		}
		seen[name] = true
		b.Bones = append(b.Bones, name)
	}
	return b
}

// Sync packs the mesh's group weights back into the document as fresh
// JOINTS_0/WEIGHTS_0 accessors. glTF holds at most four influences per
// vertex; when a vertex carries more entries the four largest are kept
// and rescaled to preserve their sum.
func (s *SkinnedModel) Sync() error {
	type entry struct {
		group  int
		weight float32
	}
	for _, pr := range s.prims {
		joints := make([][4]uint16, pr.count)
		weights := make([][4]float32, pr.count)
		for i := 0; i < pr.count; i++ {
			v := &s.Mesh.Vertices[pr.start+i]
			entries := make([]entry, 0, len(v.Groups))
			for g, w := range v.Groups {
				if w == 0 {
					continue
				}
				if g < 0 || g > 0xFFFF {
					return ErrTooManyGroups
				}
				entries = append(entries, entry{group: g, weight: w})
			}
			sort.Slice(entries, func(a, b int) bool {
				if entries[a].weight != entries[b].weight {
					return entries[a].weight > entries[b].weight
				}
				return entries[a].group < entries[b].group
			})

			var kept, dropped float32
			for n, e := range entries {
				if n < 4 {
					kept += e.weight
				} else {
					dropped += e.weight
				}
			}
			scale := float32(1.0)
			if dropped > 0 && kept > 0 {
				scale = (kept + dropped) / kept
			}
			for n := 0; n < len(entries) && n < 4; n++ {
				joints[i][n] = uint16(entries[n].group)
				weights[i][n] = entries[n].weight * scale
			}
		}
		jacc := modeler.WriteJoints(s.Doc, joints)
		wacc := modeler.WriteWeights(s.Doc, weights)
		pr.prim.Attributes[gltf.JOINTS_0] = uint32(jacc)
		pr.prim.Attributes[gltf.WEIGHTS_0] = uint32(wacc)
	}
	return nil
}

// Save syncs weight data into the document and writes it to path.
// .glb and .vrm extensions save as binary glTF, anything else as JSON.
func (s *SkinnedModel) Save(path string) error {
	if err := s.Sync(); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".vrm":
		return gltf.SaveBinary(s.Doc, path)
	default:
		return gltf.Save(s.Doc, path)
	}
}
