package skeleton

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translated(x, y, z float32) common.Transform {
	t := common.IdentityTransform()
	t.Translation = [3]float32{x, y, z}
	return t
}

func assertVec3InDelta(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d", i)
	}
}

// buildChain creates root -> mid -> leaf, each offset by (1, 0, 0) from its parent.
func buildChain(t *testing.T) *Skeleton {
	t.Helper()
	root := NewJoint("root", 0, translated(1, 0, 0))
	mid := NewJoint("mid", 1, translated(1, 0, 0))
	leaf := NewJoint("leaf", 2, translated(1, 0, 0))
	root.AddChild(mid)
	mid.AddChild(leaf)

	s := NewSkeleton()
	for _, j := range []*Joint{root, mid, leaf} {
		require.NoError(t, s.AddJoint(j))
	}
	return s
}

func TestJointAddChild(t *testing.T) {
	parent := NewJoint("parent", 0, common.IdentityTransform())
	a := NewJoint("a", 1, common.IdentityTransform())
	b := NewJoint("b", 2, common.IdentityTransform())

	_, ok := a.Parent()
	assert.False(t, ok)

	parent.AddChild(a)
	parent.AddChild(b)

	assert.Equal(t, []int{1, 2}, parent.Children())
	p, ok := b.Parent()
	assert.True(t, ok)
	assert.Equal(t, 0, p)
}

func TestJointAnimatedLocalTransform(t *testing.T) {
	j := NewJoint("j", 0, translated(1, 2, 3))
	assert.Equal(t, j.LocalTransform(), j.AnimatedLocalTransform())

	override := translated(9, 9, 9).Matrix()
	j.SetAnimatedTransform(override)
	assert.Equal(t, override, j.AnimatedLocalTransform())
	got, ok := j.AnimatedTransform()
	assert.True(t, ok)
	assert.Equal(t, override, got)

	j.ClearAnimatedTransform()
	_, ok = j.AnimatedTransform()
	assert.False(t, ok)
	assert.Equal(t, j.LocalTransform(), j.AnimatedLocalTransform())
}

func TestSkeletonAddJoint(t *testing.T) {
	s := buildChain(t)

	assert.Equal(t, 3, s.JointCount())
	assert.Equal(t, []int{0}, s.Roots())

	leaf, ok := s.GetJoint("leaf")
	require.True(t, ok)
	assert.Equal(t, 2, leaf.Index())

	_, ok = s.GetJoint("Leaf")
	assert.False(t, ok)

	_, ok = s.Joint(3)
	assert.False(t, ok)
}

func TestSkeletonAddJointRejectsWrongSlot(t *testing.T) {
	s := NewSkeleton()
	j := NewJoint("j", 0, common.IdentityTransform())
	require.NoError(t, s.AddJoint(j))

	err := s.AddJoint(j)
	assert.ErrorIs(t, err, ErrJointIndexMismatch)
	assert.Equal(t, 1, s.JointCount())
}

func TestUpdateWorldTransformsChain(t *testing.T) {
	s := buildChain(t)
	s.UpdateWorldTransforms()

	leaf, _ := s.GetJoint("leaf")
	mid, _ := s.GetJoint("mid")
	assertVec3InDelta(t, [3]float32{3, 0, 0}, leaf.WorldTranslation())
	assertVec3InDelta(t, [3]float32{2, 0, 0}, mid.WorldTranslation())
}

func TestUpdateWorldTransformsAppliesLocalBeforeParent(t *testing.T) {
	// Root rotated 90 degrees about Z: the child's +X offset becomes +Y in world space.
	rootBind := common.IdentityTransform()
	rootBind.Rotation = common.QuatFromAxisAngle([3]float32{0, 0, 1}, math32.Pi/2)
	root := NewJoint("root", 0, rootBind)
	child := NewJoint("child", 1, translated(2, 0, 0))
	root.AddChild(child)

	s := NewSkeleton()
	require.NoError(t, s.AddJoint(root))
	require.NoError(t, s.AddJoint(child))
	s.UpdateWorldTransforms()

	assertVec3InDelta(t, [3]float32{0, 2, 0}, child.WorldTranslation())
}

func TestUpdateWorldTransformsMultipleRoots(t *testing.T) {
	a := NewJoint("a", 0, translated(1, 0, 0))
	b := NewJoint("b", 1, translated(0, 5, 0))
	bChild := NewJoint("b_child", 2, translated(0, 1, 0))
	b.AddChild(bChild)

	s := NewSkeleton()
	for _, j := range []*Joint{a, b, bChild} {
		require.NoError(t, s.AddJoint(j))
	}
	assert.Equal(t, []int{0, 1}, s.Roots())

	s.UpdateWorldTransforms()
	assertVec3InDelta(t, [3]float32{1, 0, 0}, a.WorldTranslation())
	assertVec3InDelta(t, [3]float32{0, 6, 0}, bChild.WorldTranslation())
}

func TestResetAnimation(t *testing.T) {
	s := buildChain(t)
	root, _ := s.GetJoint("root")
	root.SetAnimatedTransform(translated(0, 10, 0).Matrix())

	s.UpdateWorldTransforms()
	leaf, _ := s.GetJoint("leaf")
	assertVec3InDelta(t, [3]float32{2, 10, 0}, leaf.WorldTranslation())

	s.ResetAnimation()
	_, animated := root.AnimatedTransform()
	assert.False(t, animated)
	// World transforms are stale until the next update.
	assertVec3InDelta(t, [3]float32{2, 10, 0}, leaf.WorldTranslation())

	s.UpdateWorldTransforms()
	assertVec3InDelta(t, [3]float32{3, 0, 0}, leaf.WorldTranslation())
}
