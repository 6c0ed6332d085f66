package skeleton

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
)

// noParent marks a root joint.
const noParent = -1

// Joint is a single node in a skeleton hierarchy.
//
// Joints live in the Skeleton's flat arena: children are held as arena indices and the
// parent as an optional index, so the tree has no pointer cycles.
type Joint struct {
	name     string
	index    int
	parent   int
	children []int

	base           common.Transform
	localTransform [16]float32
	worldTransform [16]float32

	animatedTransform [16]float32
	animated          bool
}

// NewJoint creates a parentless joint whose bind pose is the given TRS.
// The local transform is composed from bind, and bind is kept as the base TRS used when an
// animation does not drive one of the joint's properties.
//
// Parameters:
//   - name: the joint name, unique within its skeleton
//   - index: the joint's slot in the skeleton arena
//   - bind: the bind pose translation, rotation and scale
//
// Returns:
//   - *Joint: the new joint
func NewJoint(name string, index int, bind common.Transform) *Joint {
	local := bind.Matrix()
	return &Joint{
		name:           name,
		index:          index,
		parent:         noParent,
		base:           bind,
		localTransform: local,
		worldTransform: local,
	}
}

// Name returns the joint name.
func (j *Joint) Name() string {
	return j.name
}

// Index returns the joint's slot in the skeleton arena.
func (j *Joint) Index() int {
	return j.index
}

// Parent returns the parent joint index, or false for a root joint.
func (j *Joint) Parent() (int, bool) {
	return j.parent, j.parent != noParent
}

// Children returns the ordered child joint indices. The slice must not be modified.
func (j *Joint) Children() []int {
	return j.children
}

// AddChild appends child to this joint's children and points the child's parent at this joint.
// No cycle detection is performed; callers must not create cycles.
//
// Parameters:
//   - child: the joint to attach
func (j *Joint) AddChild(child *Joint) {
	j.children = append(j.children, child.index)
	child.parent = j.index
}

// Base returns the bind pose TRS.
func (j *Joint) Base() common.Transform {
	return j.base
}

// LocalTransform returns the bind pose local matrix.
func (j *Joint) LocalTransform() [16]float32 {
	return j.localTransform
}

// WorldTransform returns the joint's world matrix as of the last UpdateWorldTransforms call.
func (j *Joint) WorldTransform() [16]float32 {
	return j.worldTransform
}

// WorldTranslation returns the translation column of the world matrix.
func (j *Joint) WorldTranslation() [3]float32 {
	return common.Translation(j.worldTransform)
}

// AnimatedTransform returns the animation override, if one is set.
//
// Returns:
//   - [16]float32: the animated local matrix
//   - bool: false when the joint is in its bind pose
func (j *Joint) AnimatedTransform() ([16]float32, bool) {
	return j.animatedTransform, j.animated
}

// SetAnimatedTransform overrides the local matrix until ClearAnimatedTransform is called.
func (j *Joint) SetAnimatedTransform(m [16]float32) {
	j.animatedTransform = m
	j.animated = true
}

// ClearAnimatedTransform reverts the joint to its bind pose local matrix.
func (j *Joint) ClearAnimatedTransform() {
	j.animatedTransform = [16]float32{}
	j.animated = false
}

// AnimatedLocalTransform returns the animated transform if set, else the bind pose local transform.
func (j *Joint) AnimatedLocalTransform() [16]float32 {
	if j.animated {
		return j.animatedTransform
	}
	return j.localTransform
}
