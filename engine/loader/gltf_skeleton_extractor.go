package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/skeleton"
	"github.com/Carmen-Shannon/oxy-anim/engine/skin"
	"github.com/qmuntal/gltf"
)

var gltfIdentityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// gltfSkeleton is the result of skeleton extraction.
type gltfSkeleton struct {
	skeleton *skeleton.Skeleton

	// skin is nil when the document has no skins and every node became a joint.
	skin *skin.Skin

	// jointNames maps glTF node index to joint name for the nodes in the joint set.
	jointNames map[int]string
}

// gltfExtractSkeleton builds a skeleton from the joint list of the skin at skinIndex.
//
// Joint indices follow the order of the skin's joint list, so they line up with the JOINTS_0
// vertex attribute and the inverse bind matrix accessor. Parent links come from the node
// children lists, restricted to the joint set; a joint whose parent node is not a joint becomes a root.
// A document without skins yields an unskinned skeleton over every node, which is what rigid
// node animations target.
//
// Parameters:
//   - doc: the decoded document
//   - skinIndex: the skin whose joint set defines the skeleton
//
// Returns:
//   - *gltfSkeleton: the skeleton, its skin and the node to joint name map
//   - error: error if an index is out of range or the hierarchy is not a forest
func gltfExtractSkeleton(doc *gltf.Document, skinIndex int) (*gltfSkeleton, error) {
	var (
		nodes    []int
		skinName string
		ibmIndex *int
	)

	if len(doc.Skins) == 0 {
		nodes = make([]int, len(doc.Nodes))
		for i := range nodes {
			nodes[i] = i
		}
	} else {
		if skinIndex < 0 || skinIndex >= len(doc.Skins) {
			return nil, fmt.Errorf("skin %d of %d: %w", skinIndex, len(doc.Skins), ErrInvalidIndex)
		}
		s := doc.Skins[skinIndex]
		nodes = s.Joints
		ibmIndex = s.InverseBindMatrices
		skinName = s.Name
		if skinName == "" {
			skinName = fmt.Sprintf("skin_%d", skinIndex)
		}
	}

	joints := make([]*skeleton.Joint, len(nodes))
	nodeToJoint := make(map[int]int, len(nodes))
	jointNames := make(map[int]string, len(nodes))

	for i, nodeIdx := range nodes {
		if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
			return nil, fmt.Errorf("joint %d: node %d: %w", i, nodeIdx, ErrInvalidIndex)
		}
		if _, dup := nodeToJoint[nodeIdx]; dup {
			return nil, fmt.Errorf("joint %d: node %d listed twice: %w", i, nodeIdx, ErrInvalidHierarchy)
		}

		node := doc.Nodes[nodeIdx]
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("joint_%d", i)
		}

		joints[i] = skeleton.NewJoint(name, i, gltfNodeTransform(node))
		nodeToJoint[nodeIdx] = i
		jointNames[nodeIdx] = name
	}

	// Link every joint before adding any, so roots are known when AddJoint runs.
	for i, nodeIdx := range nodes {
		for _, childNode := range doc.Nodes[nodeIdx].Children {
			c, ok := nodeToJoint[childNode]
			if !ok {
				continue
			}
			if _, hasParent := joints[c].Parent(); hasParent {
				return nil, fmt.Errorf("joint %q has more than one parent: %w", joints[c].Name(), ErrInvalidHierarchy)
			}
			joints[i].AddChild(joints[c])
		}
	}

	skel := skeleton.NewSkeleton()
	for _, j := range joints {
		if err := skel.AddJoint(j); err != nil {
			return nil, err
		}
	}

	out := &gltfSkeleton{skeleton: skel, jointNames: jointNames}
	if len(doc.Skins) == 0 {
		return out, nil
	}

	inverseBind, err := gltfReadInverseBind(doc, ibmIndex, len(nodes))
	if err != nil {
		return nil, fmt.Errorf("skin %q: failed to read inverse bind matrices: %w", skinName, err)
	}

	indices := make([]int, len(nodes))
	for i := range indices {
		indices[i] = i
	}
	out.skin, err = skin.NewSkin(skinName, skel, indices, inverseBind)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// gltfReadInverseBind reads the inverse bind matrices, defaulting to identity when the skin has none.
func gltfReadInverseBind(doc *gltf.Document, index *int, count int) ([][16]float32, error) {
	if index == nil {
		out := make([][16]float32, count)
		for i := range out {
			out[i] = common.Identity4()
		}
		return out, nil
	}

	mats, err := gltfReadMat4s(doc, *index)
	if err != nil {
		return nil, err
	}
	if len(mats) < count {
		return nil, fmt.Errorf("%d matrices for %d joints: %w", len(mats), count, ErrAccessorCount)
	}
	return mats[:count], nil
}

// gltfNodeTransform returns a node's local TRS. A non-identity matrix takes precedence over
// the TRS fields and is decomposed; zero rotation and scale fields are treated as unset.
func gltfNodeTransform(node *gltf.Node) common.Transform {
	if node.Matrix != gltfIdentityMatrix && node.Matrix != ([16]float64{}) {
		var m [16]float32
		for i, v := range node.Matrix {
			m[i] = float32(v)
		}
		return common.DecomposeMatrix(m)
	}

	t := common.IdentityTransform()
	for i, v := range node.Translation {
		t.Translation[i] = float32(v)
	}
	if node.Rotation != ([4]float64{}) {
		var q [4]float32
		for i, v := range node.Rotation {
			q[i] = float32(v)
		}
		t.Rotation = common.QuatNormalize(q)
	}
	if node.Scale != ([3]float64{}) {
		for i, v := range node.Scale {
			t.Scale[i] = float32(v)
		}
	}
	return t
}
