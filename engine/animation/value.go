package animation

// TargetProperty identifies which joint property a channel drives.
type TargetProperty int

const (
	// PropertyTranslation drives the joint translation with vector keyframes.
	PropertyTranslation TargetProperty = iota

	// PropertyRotation drives the joint rotation with unit quaternion keyframes.
	PropertyRotation

	// PropertyScale drives the joint scale with vector keyframes.
	PropertyScale

	// PropertyWeights drives morph target weights. Weights are sampled but never applied to joints.
	PropertyWeights
)

// String returns the glTF path name of the property.
func (p TargetProperty) String() string {
	switch p {
	case PropertyTranslation:
		return "translation"
	case PropertyRotation:
		return "rotation"
	case PropertyScale:
		return "scale"
	case PropertyWeights:
		return "weights"
	default:
		return "unknown"
	}
}

// Kind returns the value kind carried by keyframes of this property.
func (p TargetProperty) Kind() ValueKind {
	switch p {
	case PropertyRotation:
		return KindRotation
	case PropertyWeights:
		return KindWeights
	default:
		return KindVector
	}
}

// Interpolation selects how a channel is evaluated between keyframes.
type Interpolation int

const (
	// InterpolationLinear blends between the bracketing keyframes.
	// Rotations use spherical linear interpolation.
	InterpolationLinear Interpolation = iota

	// InterpolationStep holds the earlier keyframe's value until the next keyframe.
	InterpolationStep

	// InterpolationCubicSpline is evaluated exactly like InterpolationLinear.
	// Tangents are not stored, so this is not Hermite evaluation.
	InterpolationCubicSpline
)

// String returns the glTF name of the interpolation mode.
func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "LINEAR"
	case InterpolationStep:
		return "STEP"
	case InterpolationCubicSpline:
		return "CUBICSPLINE"
	default:
		return "UNKNOWN"
	}
}

// ValueKind tags which payload of a Value is meaningful.
type ValueKind int

const (
	// KindVector marks a translation or scale value.
	KindVector ValueKind = iota

	// KindRotation marks a quaternion value.
	KindRotation

	// KindWeights marks a morph weight list.
	KindWeights
)

// Value is a sampled or keyed channel value. Only the payload selected by Kind is valid.
type Value struct {
	// Kind selects the payload.
	Kind ValueKind

	// Vector is the translation or scale payload.
	Vector [3]float32

	// Rotation is the quaternion payload (x, y, z, w).
	Rotation [4]float32

	// Weights is the morph weight payload.
	Weights []float32
}

// VectorValue wraps a translation or scale.
func VectorValue(v [3]float32) Value {
	return Value{Kind: KindVector, Vector: v}
}

// RotationValue wraps a quaternion (x, y, z, w).
func RotationValue(q [4]float32) Value {
	return Value{Kind: KindRotation, Rotation: q}
}

// WeightsValue wraps a morph weight list. The slice is retained, not copied.
func WeightsValue(w []float32) Value {
	return Value{Kind: KindWeights, Weights: w}
}

// Keyframe is a channel value at a point in time.
type Keyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the keyed value.
	Value Value
}
