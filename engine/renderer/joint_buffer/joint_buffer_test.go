package joint_buffer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/skeleton"
	"github.com/Carmen-Shannon/oxy-anim/engine/skin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoJointSkin is Root at origin -> Tip at (0, 3, 0) with identity inverse bind matrices.
func twoJointSkin(t *testing.T) *skin.Skin {
	t.Helper()
	root := skeleton.NewJoint("Root", 0, common.IdentityTransform())
	tipBind := common.IdentityTransform()
	tipBind.Translation = [3]float32{0, 3, 0}
	tip := skeleton.NewJoint("Tip", 1, tipBind)
	root.AddChild(tip)

	skel := skeleton.NewSkeleton()
	require.NoError(t, skel.AddJoint(root))
	require.NoError(t, skel.AddJoint(tip))
	skel.UpdateWorldTransforms()

	s, err := skin.NewSkin("arm", skel, []int{0, 1}, [][16]float32{common.Identity4(), common.Identity4()})
	require.NoError(t, err)
	s.UpdateJointMatrices()
	return s
}

func floatAt(data []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
}

func TestDefaults(t *testing.T) {
	b := NewJointBuffer()
	assert.Equal(t, "Joint Matrices", b.Label())
	assert.Equal(t, 128, b.MaxJoints())
	assert.Equal(t, uint64(128*64), b.Size())
	assert.Nil(t, b.Buffer())
}

func TestOptions(t *testing.T) {
	b := NewJointBuffer(WithLabel("Fox Joints"), WithBinding(3), WithMaxJoints(4), WithMaxJoints(0))
	assert.Equal(t, "Fox Joints", b.Label())
	assert.Equal(t, 4, b.MaxJoints())

	w, err := b.Stage(twoJointSkin(t))
	require.NoError(t, err)
	assert.Equal(t, 3, w.Binding)
}

func TestStageLayout(t *testing.T) {
	b := NewJointBuffer()
	w, err := b.Stage(twoJointSkin(t))
	require.NoError(t, err)

	assert.Equal(t, uint64(0), w.Offset)
	require.Len(t, w.Data, 2*64)
	// Column-major: the translation of matrix 1 sits at floats 16+12..16+14.
	assert.Equal(t, float32(1), floatAt(w.Data, 0))
	assert.Equal(t, float32(0), floatAt(w.Data, 16+12))
	assert.Equal(t, float32(3), floatAt(w.Data, 16+13))
	assert.Equal(t, float32(1), floatAt(w.Data, 16+15))
}

func TestStageCapacity(t *testing.T) {
	b := NewJointBuffer(WithMaxJoints(1))
	_, err := b.Stage(twoJointSkin(t))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestUploadBeforeInit(t *testing.T) {
	b := NewJointBuffer()
	w, err := b.Stage(twoJointSkin(t))
	require.NoError(t, err)
	assert.ErrorIs(t, b.Upload(nil, w), ErrNotInitialized)

	// Release without a buffer is a no-op.
	b.Release()
}
