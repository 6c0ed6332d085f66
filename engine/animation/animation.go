package animation

// ChannelKey identifies one sampled property of one joint.
type ChannelKey struct {
	// Joint is the target joint name.
	Joint string

	// Property is the driven property.
	Property TargetProperty
}

// Animation is a named set of channels (walk, run, attack, ...).
// It is built once by a loader and only read during playback.
type Animation struct {
	name     string
	channels []*AnimationChannel
	duration float32
}

// NewAnimation creates an empty animation.
//
// Parameters:
//   - name: the animation identifier
//
// Returns:
//   - *Animation: the new animation
func NewAnimation(name string) *Animation {
	return &Animation{name: name}
}

// Name returns the animation identifier.
func (a *Animation) Name() string {
	return a.name
}

// Duration returns the latest keyframe time across all channels, in seconds.
func (a *Animation) Duration() float32 {
	return a.duration
}

// Channels returns the animation's channels. The slice must not be modified.
func (a *Animation) Channels() []*AnimationChannel {
	return a.channels
}

// AddChannel appends a channel and extends the duration to cover its last keyframe.
//
// Parameters:
//   - ch: the channel to add
func (a *Animation) AddChannel(ch *AnimationChannel) {
	a.channels = append(a.channels, ch)
	for _, k := range ch.keyframes {
		if k.Time > a.duration {
			a.duration = k.Time
		}
	}
}

// SampleAll samples every channel at the given time.
// Channels without keyframes contribute no entry.
//
// Parameters:
//   - time: the sample time in seconds
//
// Returns:
//   - map[ChannelKey]Value: sampled values keyed by joint name and property
func (a *Animation) SampleAll(time float32) map[ChannelKey]Value {
	out := make(map[ChannelKey]Value, len(a.channels))
	a.SampleInto(time, out)
	return out
}

// SampleInto is SampleAll writing into a caller-owned map, which is cleared first.
// When two channels target the same joint property the later channel wins.
//
// Parameters:
//   - time: the sample time in seconds
//   - dst: the map to fill
func (a *Animation) SampleInto(time float32, dst map[ChannelKey]Value) {
	clear(dst)
	for _, ch := range a.channels {
		v, ok := ch.Sample(time)
		if !ok {
			continue
		}
		dst[ChannelKey{Joint: ch.targetNodeName, Property: ch.targetProperty}] = v
	}
}
