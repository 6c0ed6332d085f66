package skeleton

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-anim/common"
)

// ErrJointIndexMismatch is returned by AddJoint when a joint's index does not match its arena slot.
var ErrJointIndexMismatch = errors.New("joint index does not match its skeleton slot")

// Skeleton owns a joint hierarchy stored as a flat arena indexed by joint index.
//
// Topology is built once by a loader and not modified afterwards. Per-frame state
// (animated and world transforms) lives on the joints and is recomputed every tick.
type Skeleton struct {
	joints      []*Joint
	nameToIndex map[string]int
	roots       []int

	// stack is reused by UpdateWorldTransforms to avoid per-frame allocations.
	stack []int
}

// NewSkeleton creates an empty skeleton.
//
// Returns:
//   - *Skeleton: the new skeleton
func NewSkeleton() *Skeleton {
	return &Skeleton{
		nameToIndex: make(map[string]int),
	}
}

// AddJoint registers a joint in the arena and the name index. A joint with no parent becomes a root.
// Parent/child links must be made with Joint.AddChild before the child is added.
//
// The joint's index must equal the current joint count, which also rejects adding the same
// joint twice. Duplicate names are not checked; the most recently added joint wins the lookup.
//
// Parameters:
//   - j: the joint to register
//
// Returns:
//   - error: ErrJointIndexMismatch if the joint's index is not the next arena slot
func (s *Skeleton) AddJoint(j *Joint) error {
	if j.index != len(s.joints) {
		return fmt.Errorf("joint %q: index %d, expected %d: %w", j.name, j.index, len(s.joints), ErrJointIndexMismatch)
	}

	s.joints = append(s.joints, j)
	s.nameToIndex[j.name] = j.index
	if _, ok := j.Parent(); !ok {
		s.roots = append(s.roots, j.index)
	}
	return nil
}

// GetJoint looks up a joint by name.
//
// Parameters:
//   - name: the joint name
//
// Returns:
//   - *Joint: the joint, or nil when not found
//   - bool: false when no joint has this name
func (s *Skeleton) GetJoint(name string) (*Joint, bool) {
	idx, ok := s.nameToIndex[name]
	if !ok {
		return nil, false
	}
	return s.joints[idx], true
}

// Joint returns the joint stored at index, or false if the index is out of range.
func (s *Skeleton) Joint(index int) (*Joint, bool) {
	if index < 0 || index >= len(s.joints) {
		return nil, false
	}
	return s.joints[index], true
}

// Joints returns every joint in arena order. The slice must not be modified.
func (s *Skeleton) Joints() []*Joint {
	return s.joints
}

// Roots returns the indices of joints without a parent.
func (s *Skeleton) Roots() []int {
	return s.roots
}

// JointCount returns the number of joints in the skeleton.
func (s *Skeleton) JointCount() int {
	return len(s.joints)
}

// UpdateWorldTransforms recomputes every joint's world matrix with a depth-first walk from each root.
//
// For each joint the animated local transform is applied first, then the parent's world
// transform: world = parentWorld * local in column-vector form. This is the same order the
// bind pose is built with, so starting or stopping an animation does not move the mesh.
// Call once per tick after every animated transform for that tick has been set.
func (s *Skeleton) UpdateWorldTransforms() {
	stack := s.stack[:0]
	for i := len(s.roots) - 1; i >= 0; i-- {
		stack = append(stack, s.roots[i])
	}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		j := s.joints[idx]
		local := j.AnimatedLocalTransform()
		if parent, ok := j.Parent(); ok {
			pw := s.joints[parent].worldTransform
			common.Mul4(j.worldTransform[:], pw[:], local[:])
		} else {
			j.worldTransform = local
		}

		// Push in reverse so children are visited in their declared order.
		for c := len(j.children) - 1; c >= 0; c-- {
			stack = append(stack, j.children[c])
		}
	}

	s.stack = stack
}

// ResetAnimation clears every joint's animated transform, reverting the skeleton to its bind pose.
// World transforms are not recomputed; call UpdateWorldTransforms afterwards.
func (s *Skeleton) ResetAnimation() {
	for _, j := range s.joints {
		j.ClearAnimatedTransform()
	}
}
