package animation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-anim/common"
)

// ErrValueKindMismatch is returned when a keyframe value does not match the channel's target property.
var ErrValueKindMismatch = errors.New("keyframe value kind does not match channel property")

// AnimationChannel is a time series of keyframes driving one property of one joint.
//
// Keyframes must be added in ascending time order. The channel never sorts them; Sorted
// reports whether the contract holds.
type AnimationChannel struct {
	targetNodeName string
	targetProperty TargetProperty
	interpolation  Interpolation
	keyframes      []Keyframe
}

// NewChannel creates an empty channel.
//
// Parameters:
//   - target: the name of the joint this channel animates
//   - property: the joint property driven by the channel
//   - interpolation: the interpolation mode between keyframes
//
// Returns:
//   - *AnimationChannel: the new channel
func NewChannel(target string, property TargetProperty, interpolation Interpolation) *AnimationChannel {
	return &AnimationChannel{
		targetNodeName: target,
		targetProperty: property,
		interpolation:  interpolation,
	}
}

// TargetNodeName returns the name of the joint this channel animates.
func (c *AnimationChannel) TargetNodeName() string {
	return c.targetNodeName
}

// TargetProperty returns the property this channel drives.
func (c *AnimationChannel) TargetProperty() TargetProperty {
	return c.targetProperty
}

// Interpolation returns the channel's interpolation mode.
func (c *AnimationChannel) Interpolation() Interpolation {
	return c.interpolation
}

// Keyframes returns the channel's keyframes in insertion order. The slice must not be modified.
func (c *AnimationChannel) Keyframes() []Keyframe {
	return c.keyframes
}

// AddKeyframe appends a keyframe. Keyframes are not sorted.
//
// Parameters:
//   - time: the keyframe timestamp in seconds
//   - value: the keyed value; its Kind must match the channel property
//
// Returns:
//   - error: ErrValueKindMismatch if the value kind does not fit the channel
func (c *AnimationChannel) AddKeyframe(time float32, value Value) error {
	if value.Kind != c.targetProperty.Kind() {
		return fmt.Errorf("channel %s.%s: %w", c.targetNodeName, c.targetProperty, ErrValueKindMismatch)
	}
	c.keyframes = append(c.keyframes, Keyframe{Time: time, Value: value})
	return nil
}

// Sorted reports whether keyframe times are non-decreasing.
func (c *AnimationChannel) Sorted() bool {
	return sort.SliceIsSorted(c.keyframes, func(i, j int) bool {
		return c.keyframes[i].Time < c.keyframes[j].Time
	})
}

// EndTime returns the time of the last keyframe, or 0 for an empty channel.
func (c *AnimationChannel) EndTime() float32 {
	if len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[len(c.keyframes)-1].Time
}

// Sample evaluates the channel at the given time.
//
// Times before the first keyframe return the first value and times after the last keyframe
// return the last value. Between keyframes STEP holds the earlier value, while LINEAR and
// CUBICSPLINE interpolate (SLERP for rotations, component-wise otherwise).
//
// Parameters:
//   - time: the sample time in seconds
//
// Returns:
//   - Value: the sampled value
//   - bool: false when the channel has no keyframes
func (c *AnimationChannel) Sample(time float32) (Value, bool) {
	n := len(c.keyframes)
	if n == 0 {
		return Value{}, false
	}

	first, last := c.keyframes[0], c.keyframes[n-1]
	if time <= first.Time {
		return first.Value, true
	}
	if time >= last.Time {
		return last.Value, true
	}

	// First keyframe strictly after time; 1 <= i <= n-1 given the clamps above.
	i := sort.Search(n, func(i int) bool {
		return c.keyframes[i].Time > time
	})
	k0, k1 := c.keyframes[i-1], c.keyframes[i]

	if c.interpolation == InterpolationStep {
		return k0.Value, true
	}

	var t float32
	if span := k1.Time - k0.Time; span != 0 {
		t = (time - k0.Time) / span
	}
	return interpolate(c.targetProperty, k0.Value, k1.Value, t), true
}

// interpolate blends two values of the given property by factor t.
func interpolate(property TargetProperty, v0, v1 Value, t float32) Value {
	switch property {
	case PropertyRotation:
		return RotationValue(common.QuatSlerp(v0.Rotation, v1.Rotation, t))
	case PropertyWeights:
		n := min(len(v0.Weights), len(v1.Weights))
		w := make([]float32, n)
		for i := range w {
			w[i] = v0.Weights[i]*(1-t) + v1.Weights[i]*t
		}
		return WeightsValue(w)
	case PropertyTranslation, PropertyScale:
		return VectorValue(common.Lerp3(v0.Vector, v1.Vector, t))
	default:
		return v0
	}
}
