package loader

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/animation"
	"github.com/qmuntal/gltf"
)

// gltfExtractAnimations converts every glTF animation into an animation clip.
//
// Channels are keyed by joint name, so channels targeting nodes outside the joint set are
// dropped here and logged. Clips without a name are called animation_<i>.
//
// Parameters:
//   - doc: the decoded document
//   - jointNames: maps glTF node index to joint name
//
// Returns:
//   - []*animation.Animation: one clip per glTF animation, in document order
//   - error: error if a sampler is malformed or its keyframes are unsorted
func gltfExtractAnimations(doc *gltf.Document, jointNames map[int]string) ([]*animation.Animation, error) {
	clips := make([]*animation.Animation, 0, len(doc.Animations))

	for animIdx, anim := range doc.Animations {
		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("animation_%d", animIdx)
		}
		clip := animation.NewAnimation(name)

		skipped := 0
		for chIdx, ch := range anim.Channels {
			if ch.Target.Node == nil {
				skipped++
				continue
			}
			target, ok := jointNames[*ch.Target.Node]
			if !ok {
				skipped++
				continue
			}
			if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
				return nil, fmt.Errorf("animation %q channel %d: sampler %d: %w", name, chIdx, ch.Sampler, ErrInvalidIndex)
			}

			channel, err := gltfExtractChannel(doc, target, ch.Target.Path, anim.Samplers[ch.Sampler])
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d: %w", name, chIdx, err)
			}
			clip.AddChannel(channel)
		}

		if skipped > 0 {
			log.Printf("[Loader] animation %q: skipped %d channel(s) targeting non-joint nodes", name, skipped)
		}
		clips = append(clips, clip)
	}

	return clips, nil
}

// gltfExtractChannel reads one sampler into a channel targeting the named joint.
func gltfExtractChannel(doc *gltf.Document, target string, path gltf.TRSProperty, sampler *gltf.AnimationSampler) (*animation.AnimationChannel, error) {
	property, err := gltfTargetProperty(path)
	if err != nil {
		return nil, err
	}
	interp := gltfInterpolation(sampler.Interpolation)

	times, err := gltfReadScalars(doc, sampler.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamps: %w", err)
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, fmt.Errorf("key %d at %g after %g: %w", i, times[i], times[i-1], ErrUnsortedKeyframes)
		}
	}

	// Cubic spline outputs store (in-tangent, value, out-tangent) per key; only the value is kept.
	stride := 1
	if interp == animation.InterpolationCubicSpline {
		stride = 3
	}

	values, err := gltfReadValues(doc, sampler.Output, property, len(times), stride)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s values: %w", property, err)
	}

	ch := animation.NewChannel(target, property, interp)
	for i, t := range times {
		if err := ch.AddKeyframe(t, values[i]); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

// gltfReadValues reads count keyframe values from a sampler output accessor.
func gltfReadValues(doc *gltf.Document, index int, property animation.TargetProperty, count, stride int) ([]animation.Value, error) {
	values := make([]animation.Value, count)
	need := count * stride

	switch property {
	case animation.PropertyTranslation, animation.PropertyScale:
		vecs, err := gltfReadVec3s(doc, index)
		if err != nil {
			return nil, err
		}
		if len(vecs) < need {
			return nil, fmt.Errorf("%d outputs for %d keys: %w", len(vecs), count, ErrAccessorCount)
		}
		for i := range values {
			values[i] = animation.VectorValue(vecs[i*stride+stride/2])
		}

	case animation.PropertyRotation:
		quats, err := gltfReadVec4s(doc, index)
		if err != nil {
			return nil, err
		}
		if len(quats) < need {
			return nil, fmt.Errorf("%d outputs for %d keys: %w", len(quats), count, ErrAccessorCount)
		}
		for i := range values {
			values[i] = animation.RotationValue(common.QuatNormalize(quats[i*stride+stride/2]))
		}

	case animation.PropertyWeights:
		flat, err := gltfReadScalars(doc, index)
		if err != nil {
			return nil, err
		}
		if need == 0 {
			return values, nil
		}
		if len(flat) == 0 || len(flat)%need != 0 {
			return nil, fmt.Errorf("%d weights for %d keys: %w", len(flat), count, ErrAccessorCount)
		}
		// The output holds one run of morph weights per element.
		n := len(flat) / need
		for i := range values {
			start := (i*stride + stride/2) * n
			values[i] = animation.WeightsValue(flat[start : start+n : start+n])
		}
	}

	return values, nil
}

func gltfTargetProperty(path gltf.TRSProperty) (animation.TargetProperty, error) {
	switch path {
	case gltf.TRSTranslation:
		return animation.PropertyTranslation, nil
	case gltf.TRSRotation:
		return animation.PropertyRotation, nil
	case gltf.TRSScale:
		return animation.PropertyScale, nil
	case gltf.TRSWeights:
		return animation.PropertyWeights, nil
	default:
		return 0, fmt.Errorf("target path %v: %w", path, ErrUnsupportedPath)
	}
}

func gltfInterpolation(i gltf.Interpolation) animation.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return animation.InterpolationStep
	case gltf.InterpolationCubicSpline:
		return animation.InterpolationCubicSpline
	default:
		return animation.InterpolationLinear
	}
}
