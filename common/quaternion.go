package common

import "github.com/chewxy/math32"

// slerpLinearThreshold is the cosine above which Slerp falls back to normalized lerp.
const slerpLinearThreshold = 0.9995

// QuatIdentity returns the identity rotation (x, y, z, w).
func QuatIdentity() [4]float32 {
	return [4]float32{0, 0, 0, 1}
}

// QuatDot returns the 4D dot product of two quaternions.
func QuatDot(a, b [4]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// QuatNormalize returns q scaled to unit length. A zero quaternion yields the identity.
//
// Parameters:
//   - q: the quaternion (x, y, z, w)
//
// Returns:
//   - [4]float32: the unit quaternion
func QuatNormalize(q [4]float32) [4]float32 {
	l := math32.Sqrt(QuatDot(q, q))
	if l < 1e-8 {
		return QuatIdentity()
	}
	return [4]float32{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// QuatAngle returns the rotation angle in radians between two unit quaternions,
// treating q and -q as the same rotation.
func QuatAngle(a, b [4]float32) float32 {
	d := math32.Abs(QuatDot(a, b))
	if d > 1 {
		d = 1
	}
	return 2 * math32.Acos(d)
}

// QuatFromAxisAngle builds a unit quaternion rotating angle radians around axis.
// The axis is normalized first.
func QuatFromAxisAngle(axis [3]float32, angle float32) [4]float32 {
	l := math32.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if l < 1e-8 {
		return QuatIdentity()
	}
	s := math32.Sin(angle/2) / l
	return [4]float32{axis[0] * s, axis[1] * s, axis[2] * s, math32.Cos(angle / 2)}
}

// QuatSlerp performs spherical linear interpolation between two unit quaternions.
// The shorter arc is taken by negating b when the quaternions lie in opposite hemispheres.
// When the inputs are nearly parallel the result is a normalized linear interpolation,
// which avoids dividing by a vanishing sine. The result is always unit length.
//
// Parameters:
//   - a: the rotation at t = 0
//   - b: the rotation at t = 1
//   - t: the interpolation factor in [0, 1]
//
// Returns:
//   - [4]float32: the interpolated unit quaternion
func QuatSlerp(a, b [4]float32, t float32) [4]float32 {
	cosTheta := QuatDot(a, b)
	if cosTheta < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
		cosTheta = -cosTheta
	}

	var wa, wb float32
	if cosTheta > slerpLinearThreshold {
		wa, wb = 1-t, t
	} else {
		theta := math32.Acos(cosTheta)
		sinTheta := math32.Sin(theta)
		wa = math32.Sin((1-t)*theta) / sinTheta
		wb = math32.Sin(t*theta) / sinTheta
	}

	return QuatNormalize([4]float32{
		a[0]*wa + b[0]*wb,
		a[1]*wa + b[1]*wb,
		a[2]*wa + b[2]*wb,
		a[3]*wa + b[3]*wb,
	})
}
