package skin

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/skeleton"
)

// Common errors returned by NewSkin
var (
	errInverseBindCount = errors.New("inverse bind matrix count does not match joint count")
	errJointOutOfRange  = errors.New("skin joint index out of range")
)

// Skin binds a set of skeleton joints and their inverse bind matrices to a mesh.
// Each tick it combines the joints' world transforms with the inverse bind matrices to
// produce the per-joint matrices consumed by GPU vertex skinning.
type Skin struct {
	name          string
	skeleton      *skeleton.Skeleton
	joints        []int
	inverseBind   [][16]float32
	jointMatrices [][16]float32

	// flat is reused by JointMatricesArray.
	flat []float32
}

// NewSkin creates a skin over joints of skel.
//
// Parameters:
//   - name: the skin identifier
//   - skel: the skeleton owning the joints; the skin does not own it
//   - joints: skeleton joint indices in skin order
//   - inverseBind: one inverse bind matrix per joint, in the same order
//
// Returns:
//   - *Skin: the new skin with identity joint matrices
//   - error: if the slices differ in length or a joint index is out of range
func NewSkin(name string, skel *skeleton.Skeleton, joints []int, inverseBind [][16]float32) (*Skin, error) {
	if len(joints) != len(inverseBind) {
		return nil, fmt.Errorf("skin %q: %d joints, %d matrices: %w", name, len(joints), len(inverseBind), errInverseBindCount)
	}
	for i, idx := range joints {
		if _, ok := skel.Joint(idx); !ok {
			return nil, fmt.Errorf("skin %q: joint %d references %d: %w", name, i, idx, errJointOutOfRange)
		}
	}

	s := &Skin{
		name:          name,
		skeleton:      skel,
		joints:        append([]int(nil), joints...),
		inverseBind:   append([][16]float32(nil), inverseBind...),
		jointMatrices: make([][16]float32, len(joints)),
		flat:          make([]float32, 0, len(joints)*16),
	}
	for i := range s.jointMatrices {
		s.jointMatrices[i] = common.Identity4()
	}
	return s, nil
}

// Name returns the skin identifier.
func (s *Skin) Name() string {
	return s.name
}

// JointCount returns the number of joints bound to the skin.
func (s *Skin) JointCount() int {
	return len(s.joints)
}

// Joints returns the bound skeleton joint indices in skin order.
func (s *Skin) Joints() []int {
	return s.joints
}

// InverseBindMatrices returns the inverse bind matrices in skin order.
func (s *Skin) InverseBindMatrices() [][16]float32 {
	return s.inverseBind
}

// JointMatrices returns the joint matrices computed by the last UpdateJointMatrices call.
func (s *Skin) JointMatrices() [][16]float32 {
	return s.jointMatrices
}

// UpdateJointMatrices recomputes joint matrix i as world(joint i) * inverseBind[i].
// The result maps a bind pose mesh vertex into the current posed world space.
// Must run after Skeleton.UpdateWorldTransforms for the same tick.
func (s *Skin) UpdateJointMatrices() {
	joints := s.skeleton.Joints()
	for i, idx := range s.joints {
		world := joints[idx].WorldTransform()
		common.Mul4(s.jointMatrices[i][:], world[:], s.inverseBind[i][:])
	}
}

// JointMatricesArray flattens the joint matrices into a contiguous column-major buffer of
// JointCount*16 floats ready for upload. A skin with no joints yields an empty buffer.
// The returned slice is reused by the next call.
//
// Returns:
//   - []float32: the flattened joint matrices
func (s *Skin) JointMatricesArray() []float32 {
	s.flat = s.flat[:0]
	for i := range s.jointMatrices {
		s.flat = append(s.flat, s.jointMatrices[i][:]...)
	}
	return s.flat
}
