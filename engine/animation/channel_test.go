package animation

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorChannel(t *testing.T, interp Interpolation, keys ...Keyframe) *AnimationChannel {
	t.Helper()
	ch := NewChannel("Hip", PropertyTranslation, interp)
	for _, k := range keys {
		require.NoError(t, ch.AddKeyframe(k.Time, k.Value))
	}
	return ch
}

func vk(time float32, x, y, z float32) Keyframe {
	return Keyframe{Time: time, Value: VectorValue([3]float32{x, y, z})}
}

func TestSampleEmptyChannel(t *testing.T) {
	ch := NewChannel("Hip", PropertyTranslation, InterpolationLinear)
	v, ok := ch.Sample(0.5)
	assert.False(t, ok)
	assert.Equal(t, Value{}, v)
}

func TestSampleClampsAtEdges(t *testing.T) {
	ch := vectorChannel(t, InterpolationLinear, vk(0.5, 1, 2, 3), vk(1.5, 4, 5, 6))

	cases := []struct {
		name string
		time float32
		want [3]float32
	}{
		{"before_first", -10, [3]float32{1, 2, 3}},
		{"at_first", 0.5, [3]float32{1, 2, 3}},
		{"at_last", 1.5, [3]float32{4, 5, 6}},
		{"after_last", 99, [3]float32{4, 5, 6}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, ok := ch.Sample(c.time)
			require.True(t, ok)
			assert.Equal(t, c.want, v.Vector)
		})
	}
}

func TestSampleSingleKeyframe(t *testing.T) {
	ch := vectorChannel(t, InterpolationLinear, vk(1, 7, 8, 9))
	for _, tm := range []float32{0, 1, 2} {
		v, ok := ch.Sample(tm)
		require.True(t, ok)
		assert.Equal(t, [3]float32{7, 8, 9}, v.Vector)
	}
}

func TestSampleLinear(t *testing.T) {
	ch := vectorChannel(t, InterpolationLinear, vk(0, 0, 0, 0), vk(1, 10, 10, 10))
	v, ok := ch.Sample(0.5)
	require.True(t, ok)
	assert.Equal(t, [3]float32{5, 5, 5}, v.Vector)
	assert.Equal(t, KindVector, v.Kind)

	v, _ = ch.Sample(0.25)
	assert.InDelta(t, 2.5, v.Vector[0], 1e-6)
}

func TestSampleLinearMultipleBrackets(t *testing.T) {
	ch := vectorChannel(t, InterpolationLinear, vk(0, 0, 0, 0), vk(1, 10, 0, 0), vk(3, 10, 20, 0))

	v, _ := ch.Sample(1)
	assert.Equal(t, [3]float32{10, 0, 0}, v.Vector)

	v, _ = ch.Sample(2)
	assert.InDelta(t, 10, v.Vector[0], 1e-6)
	assert.InDelta(t, 10, v.Vector[1], 1e-6)
}

func TestSampleCoincidentKeyframes(t *testing.T) {
	// Two keyframes at t=1 followed by a third: sampling inside the zero-length bracket must not divide by zero.
	ch := vectorChannel(t, InterpolationLinear, vk(0, 0, 0, 0), vk(1, 1, 0, 0), vk(1, 5, 0, 0), vk(2, 6, 0, 0))
	v, ok := ch.Sample(1)
	require.True(t, ok)
	assert.False(t, math32.IsNaN(v.Vector[0]))
	assert.Equal(t, float32(5), v.Vector[0])
}

func TestInterpolateZeroFactorOnCoincidentTimes(t *testing.T) {
	v := interpolate(PropertyTranslation, VectorValue([3]float32{1, 1, 1}), VectorValue([3]float32{3, 3, 3}), 0)
	assert.Equal(t, [3]float32{1, 1, 1}, v.Vector)
}

func TestSampleStep(t *testing.T) {
	a := [3]float32{1, 0, 0}
	b := [3]float32{0, 1, 0}
	ch := vectorChannel(t, InterpolationStep, Keyframe{0, VectorValue(a)}, Keyframe{1, VectorValue(b)})

	v, _ := ch.Sample(0.999)
	assert.Equal(t, a, v.Vector)
	v, _ = ch.Sample(1.0)
	assert.Equal(t, b, v.Vector)
}

func TestSampleStepSwitchesAtInteriorKeyframe(t *testing.T) {
	ch := vectorChannel(t, InterpolationStep, vk(0, 1, 0, 0), vk(1, 2, 0, 0), vk(2, 3, 0, 0))
	v, _ := ch.Sample(1)
	assert.Equal(t, float32(2), v.Vector[0])
	v, _ = ch.Sample(1.5)
	assert.Equal(t, float32(2), v.Vector[0])
}

func TestSampleCubicSplineMatchesLinear(t *testing.T) {
	linear := vectorChannel(t, InterpolationLinear, vk(0, 0, 0, 0), vk(2, 4, 8, 2))
	cubic := vectorChannel(t, InterpolationCubicSpline, vk(0, 0, 0, 0), vk(2, 4, 8, 2))

	for _, tm := range []float32{0.1, 0.7, 1.3, 1.9} {
		lv, _ := linear.Sample(tm)
		cv, _ := cubic.Sample(tm)
		assert.Equal(t, lv, cv)
	}
}

func TestSampleRotationSlerp(t *testing.T) {
	q0 := common.QuatFromAxisAngle([3]float32{0, 1, 0}, 0.3)
	q1 := common.QuatFromAxisAngle([3]float32{1, 0, 1}, 1.7)

	ch := NewChannel("Spine", PropertyRotation, InterpolationLinear)
	require.NoError(t, ch.AddKeyframe(0, RotationValue(q0)))
	require.NoError(t, ch.AddKeyframe(1, RotationValue(q1)))

	v, ok := ch.Sample(0.5)
	require.True(t, ok)
	assert.Equal(t, KindRotation, v.Kind)

	mid := v.Rotation
	assert.InDelta(t, 1, math32.Sqrt(common.QuatDot(mid, mid)), 1e-5)
	assert.InDelta(t, common.QuatAngle(q0, mid), common.QuatAngle(mid, q1), 3e-3)
}

func TestSampleScale(t *testing.T) {
	ch := NewChannel("Hip", PropertyScale, InterpolationLinear)
	require.NoError(t, ch.AddKeyframe(0, VectorValue([3]float32{1, 1, 1})))
	require.NoError(t, ch.AddKeyframe(1, VectorValue([3]float32{3, 3, 3})))

	v, _ := ch.Sample(0.5)
	assert.Equal(t, [3]float32{2, 2, 2}, v.Vector)
}

func TestSampleWeights(t *testing.T) {
	ch := NewChannel("Face", PropertyWeights, InterpolationLinear)
	require.NoError(t, ch.AddKeyframe(0, WeightsValue([]float32{0, 1})))
	require.NoError(t, ch.AddKeyframe(1, WeightsValue([]float32{1, 0})))

	v, ok := ch.Sample(0.5)
	require.True(t, ok)
	assert.Equal(t, KindWeights, v.Kind)
	assert.Equal(t, []float32{0.5, 0.5}, v.Weights)
}

func TestAddKeyframeKindMismatch(t *testing.T) {
	ch := NewChannel("Hip", PropertyRotation, InterpolationLinear)
	err := ch.AddKeyframe(0, VectorValue([3]float32{1, 2, 3}))
	assert.ErrorIs(t, err, ErrValueKindMismatch)
	assert.Empty(t, ch.Keyframes())
}

func TestAddKeyframeDoesNotSort(t *testing.T) {
	ch := vectorChannel(t, InterpolationLinear, vk(1, 0, 0, 0), vk(0, 0, 0, 0))
	assert.Equal(t, float32(1), ch.Keyframes()[0].Time)
	assert.False(t, ch.Sorted())

	sorted := vectorChannel(t, InterpolationLinear, vk(0, 0, 0, 0), vk(1, 0, 0, 0), vk(1, 0, 0, 0))
	assert.True(t, sorted.Sorted())
}
