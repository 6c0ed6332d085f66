// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Transform represents a decomposed transform: translation, rotation and scale (TRS).
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a unit quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a Transform with zero translation, identity rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    [3]float32{1, 1, 1},
	}
}

// Matrix composes the transform into a column-major 4x4 matrix.
// Scale is applied first, then rotation, then translation (M = T * R * S).
// Bind poses and animated poses are both built through this method so the two never disagree.
//
// Returns:
//   - [16]float32: the composed matrix
func (t Transform) Matrix() [16]float32 {
	x, y, z, w := t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3]
	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return [16]float32{
		(1 - 2*(yy+zz)) * sx, 2 * (xy + wz) * sx, 2 * (xz - wy) * sx, 0,
		2 * (xy - wz) * sy, (1 - 2*(xx+zz)) * sy, 2 * (yz + wx) * sy, 0,
		2 * (xz + wy) * sz, 2 * (yz - wx) * sz, (1 - 2*(xx+yy)) * sz, 0,
		t.Translation[0], t.Translation[1], t.Translation[2], 1,
	}
}
