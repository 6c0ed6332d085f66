package scene

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/animation"
	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
	"github.com/Carmen-Shannon/oxy-anim/engine/skeleton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slidingRig has one joint that slides from x=0 to x=2 over one second.
func slidingRig(t *testing.T, name string) *rig.Rig {
	t.Helper()
	skel := skeleton.NewSkeleton()
	require.NoError(t, skel.AddJoint(skeleton.NewJoint("Root", 0, common.IdentityTransform())))

	ch := animation.NewChannel("Root", animation.PropertyTranslation, animation.InterpolationLinear)
	require.NoError(t, ch.AddKeyframe(0, animation.VectorValue([3]float32{0, 0, 0})))
	require.NoError(t, ch.AddKeyframe(1, animation.VectorValue([3]float32{2, 0, 0})))
	slide := animation.NewAnimation("Slide")
	slide.AddChannel(ch)

	return rig.NewRig(name, skel, rig.WithAnimations(slide))
}

func rootX(r *rig.Rig) float32 {
	j, _ := r.Skeleton().GetJoint("Root")
	return j.WorldTranslation()[0]
}

func TestAddRemove(t *testing.T) {
	s := NewScene("test", WithWorkers(2))
	a := slidingRig(t, "a")
	b := slidingRig(t, "b")

	idA := s.Add(a)
	idB := s.Add(b)
	assert.Equal(t, uint64(1), idA)
	assert.Equal(t, uint64(2), idB)
	assert.Equal(t, idA, s.Add(a), "re-adding returns the existing ID")
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []uint64{1, 2}, s.IDs())
	assert.Same(t, b, s.Rig(idB))

	assert.True(t, s.Remove(idA))
	assert.False(t, s.Remove(idA))
	assert.Nil(t, s.Rig(idA))
	assert.Equal(t, 1, s.Count())
}

func TestUpdateAnimatesPlayingRigsInParallel(t *testing.T) {
	rigs := make([]*rig.Rig, 8)
	for i := range rigs {
		rigs[i] = slidingRig(t, "rig")
	}
	s := NewScene("crowd", WithWorkers(3), WithRigs(rigs...))
	require.Equal(t, 8, s.Count())

	for _, r := range rigs[:6] {
		require.NoError(t, r.Play("Slide", true))
	}

	assert.Equal(t, 6, s.Update(0.25))
	for i, r := range rigs {
		want := float32(0.5)
		if i >= 6 {
			want = 0
		}
		assert.InDelta(t, want, rootX(r), 1e-5, "rig %d", i)
	}
}

func TestInactiveSceneDoesNotAnimate(t *testing.T) {
	r := slidingRig(t, "idle")
	require.NoError(t, r.Play("Slide", true))
	s := NewScene("paused", WithActive(false), WithRigs(r))

	assert.False(t, s.Active())
	assert.Equal(t, 0, s.Update(0.5))
	assert.InDelta(t, 0, rootX(r), 1e-6)

	s.SetActive(true)
	assert.Equal(t, 1, s.Update(0.5))
	assert.InDelta(t, 1, rootX(r), 1e-5)
}

func TestUpdateTicksProfiler(t *testing.T) {
	now := time.Unix(0, 0)
	p := profiler.NewProfiler(profiler.WithInterval(time.Second), profiler.WithClock(func() time.Time { return now }))

	r := slidingRig(t, "profiled")
	require.NoError(t, r.Play("Slide", true))
	s := NewScene("profiled", WithProfiler(p), WithRigs(r, slidingRig(t, "stopped")))

	s.Update(0.1)
	now = now.Add(time.Second)
	s.Update(0.1)

	assert.InDelta(t, 1.0, p.LastStats().RigsPerFrame, 1e-9)
	assert.InDelta(t, 2.0, p.LastStats().FPS, 1e-9)
}
