package animator

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/animation"
	"github.com/Carmen-Shannon/oxy-anim/engine/skeleton"
	"github.com/Carmen-Shannon/oxy-anim/engine/skin"
	"github.com/chewxy/math32"
)

// PlaybackState is the externally visible state of an AnimationController.
type PlaybackState int

const (
	// StateStopped means no animation is advancing: never played, stopped, or finished.
	StateStopped PlaybackState = iota

	// StatePlaying means Update advances the current animation.
	StatePlaying

	// StatePaused means playback was paused and keeps its current time.
	StatePaused
)

// String returns a readable name for the state.
func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// animationController is the implementation of the AnimationController interface.
type animationController struct {
	skeleton *skeleton.Skeleton
	skin     *skin.Skin

	current *animation.Animation
	time    float32
	speed   float32

	playing, paused, loop bool

	// Reusable per-frame scratch to avoid allocations in Update.
	samples map[animation.ChannelKey]animation.Value
	poses   map[int]common.Transform
	skipped int
}

// AnimationController defines the per-skeleton playback state machine.
//
// Each Update advances playback time, samples the current Animation, writes the sampled pose
// into the skeleton's joints as animated transforms, and recomputes world transforms once.
// Properties an animation does not drive fall back to the joint's bind pose TRS.
// When a Skin is attached with WithSkin, its joint matrices are refreshed at the end of
// every Update so they are ready for upload when Update returns.
//
// A controller is not safe for concurrent use; it is the only writer of its skeleton's
// per-frame state.
type AnimationController interface {
	// Play starts an animation from time zero, replacing any animation already playing.
	//
	// Parameters:
	//   - anim: the animation to play
	//   - loop: whether playback wraps around at the end of the animation
	Play(anim *animation.Animation, loop bool)

	// Pause stops advancing time and keeps the current pose. Valid from any state.
	Pause()

	// Resume continues advancing time. With no current animation, Update stays a no-op.
	Resume()

	// Stop halts playback, rewinds to zero and reverts the skeleton to its bind pose.
	// World transforms (and the attached skin) are refreshed before Stop returns.
	Stop()

	// Update advances playback by deltaTime seconds scaled by the playback speed and applies
	// the sampled pose. No-op unless playing with a current animation.
	// deltaTime is used as given; a stalled frame produces a single large step.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// Seek moves playback to the given time, clamped to the animation's duration, and applies
	// the pose at that time without changing the playing state. No-op without an animation.
	//
	// Parameters:
	//   - time: the playback time in seconds
	Seek(time float32)

	// State returns the current playback state.
	//
	// Returns:
	//   - PlaybackState: stopped, playing or paused
	State() PlaybackState

	// IsPlaying reports whether Update will advance time.
	//
	// Returns:
	//   - bool: true while playing
	IsPlaying() bool

	// Loop reports whether the current animation wraps around.
	//
	// Returns:
	//   - bool: true when looping
	Loop() bool

	// CurrentTime returns the playback position in seconds.
	//
	// Returns:
	//   - float32: the current time
	CurrentTime() float32

	// CurrentAnimation returns the animation set by the last Play, or nil.
	//
	// Returns:
	//   - *animation.Animation: the current animation or nil
	CurrentAnimation() *animation.Animation

	// PlaybackSpeed returns the time multiplier applied in Update.
	//
	// Returns:
	//   - float32: the speed multiplier (1.0 = normal)
	PlaybackSpeed() float32

	// SetPlaybackSpeed sets the time multiplier applied in Update.
	//
	// Parameters:
	//   - speed: the speed multiplier (1.0 = normal, 0.5 = half speed)
	SetPlaybackSpeed(speed float32)

	// Skeleton returns the skeleton this controller drives.
	//
	// Returns:
	//   - *skeleton.Skeleton: the driven skeleton
	Skeleton() *skeleton.Skeleton

	// Skin returns the attached skin, or nil.
	//
	// Returns:
	//   - *skin.Skin: the skin refreshed after each Update, or nil
	Skin() *skin.Skin

	// SkippedChannels returns how many sampled properties in the last applied pose targeted
	// joints missing from the skeleton. Such channels are ignored, never reported as errors.
	//
	// Returns:
	//   - int: the skipped property count
	SkippedChannels() int
}

var _ AnimationController = &animationController{}

// NewAnimationController creates a stopped controller for skel.
//
// Parameters:
//   - skel: the skeleton to drive
//   - options: variadic list of AnimationControllerBuilderOption functions to configure the controller
//
// Returns:
//   - AnimationController: the new controller
func NewAnimationController(skel *skeleton.Skeleton, options ...AnimationControllerBuilderOption) AnimationController {
	c := &animationController{
		skeleton: skel,
		speed:    1.0,
		samples:  make(map[animation.ChannelKey]animation.Value),
		poses:    make(map[int]common.Transform),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *animationController) Play(anim *animation.Animation, loop bool) {
	// Drop overrides left by the previous animation on joints the new one may not drive.
	c.skeleton.ResetAnimation()
	c.current = anim
	c.time = 0
	c.loop = loop
	c.playing = true
	c.paused = false
}

func (c *animationController) Pause() {
	c.paused = c.playing || c.paused
	c.playing = false
}

func (c *animationController) Resume() {
	c.playing = true
	c.paused = false
}

func (c *animationController) Stop() {
	c.playing = false
	c.paused = false
	c.time = 0
	c.skeleton.ResetAnimation()
	c.refresh()
}

func (c *animationController) Update(deltaTime float32) {
	if !c.playing || c.current == nil {
		return
	}

	c.time += deltaTime * c.speed

	if duration := c.current.Duration(); c.time >= duration {
		if c.loop && duration > 0 {
			c.time = math32.Mod(c.time, duration)
		} else {
			// A zero-length animation cannot loop; it ends like a non-looping one.
			c.time = duration
			c.playing = false
		}
	}

	c.apply()
}

func (c *animationController) Seek(time float32) {
	if c.current == nil {
		return
	}
	c.time = max(0, min(time, c.current.Duration()))
	c.apply()
}

func (c *animationController) State() PlaybackState {
	switch {
	case c.playing:
		return StatePlaying
	case c.paused:
		return StatePaused
	default:
		return StateStopped
	}
}

func (c *animationController) IsPlaying() bool {
	return c.playing
}

func (c *animationController) Loop() bool {
	return c.loop
}

func (c *animationController) CurrentTime() float32 {
	return c.time
}

func (c *animationController) CurrentAnimation() *animation.Animation {
	return c.current
}

func (c *animationController) PlaybackSpeed() float32 {
	return c.speed
}

func (c *animationController) SetPlaybackSpeed(speed float32) {
	c.speed = speed
}

func (c *animationController) Skeleton() *skeleton.Skeleton {
	return c.skeleton
}

func (c *animationController) Skin() *skin.Skin {
	return c.skin
}

func (c *animationController) SkippedChannels() int {
	return c.skipped
}

// apply samples the current animation at the current time and writes the pose into the skeleton.
func (c *animationController) apply() {
	c.current.SampleInto(c.time, c.samples)
	clear(c.poses)
	c.skipped = 0

	// Group sampled properties by joint, starting each joint from its bind pose TRS.
	for key, v := range c.samples {
		if key.Property == animation.PropertyWeights {
			continue
		}
		j, ok := c.skeleton.GetJoint(key.Joint)
		if !ok {
			c.skipped++
			continue
		}

		pose, ok := c.poses[j.Index()]
		if !ok {
			pose = j.Base()
		}
		switch key.Property {
		case animation.PropertyTranslation:
			pose.Translation = v.Vector
		case animation.PropertyRotation:
			pose.Rotation = v.Rotation
		case animation.PropertyScale:
			pose.Scale = v.Vector
		}
		c.poses[j.Index()] = pose
	}

	joints := c.skeleton.Joints()
	for idx, pose := range c.poses {
		joints[idx].SetAnimatedTransform(pose.Matrix())
	}

	c.refresh()
}

// refresh recomputes world transforms once and then the attached skin's joint matrices.
func (c *animationController) refresh() {
	c.skeleton.UpdateWorldTransforms()
	if c.skin != nil {
		c.skin.UpdateJointMatrices()
	}
}
