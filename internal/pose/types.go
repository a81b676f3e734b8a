// Package pose provides the pose graph data model used by the animation
// engine: joint hierarchies, local/model transforms, and the interpolation
// helpers needed to blend between sampled poses.
package pose

import "math"

// Transform is a translation/rotation/scale triple for one joint.
// Rotation is a unit quaternion stored as (x, y, z, w).
type Transform struct {
	Translation [3]float64
	Rotation    [4]float64
	Scale       [3]float64
}

// Identity returns the identity transform (zero translation, identity
// rotation, unit scale).
func Identity() Transform {
	return Transform{
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
}

// LerpVec3 linearly interpolates between a and b at t.
func LerpVec3(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// NlerpQuat interpolates between two unit quaternions at t using
// normalized linear interpolation along the shorter arc. Nlerp is not
// constant-velocity like slerp but is commutative-enough for pose
// blending and considerably cheaper.
func NlerpQuat(a, b [4]float64, t float64) [4]float64 {
	// Take the shorter arc: negate b if the dot product is negative.
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	sign := 1.0
	if dot < 0 {
		sign = -1.0
	}

	q := [4]float64{
		a[0] + (sign*b[0]-a[0])*t,
		a[1] + (sign*b[1]-a[1])*t,
		a[2] + (sign*b[2]-a[2])*t,
		a[3] + (sign*b[3]-a[3])*t,
	}
	return NormalizeQuat(q)
}

// NormalizeQuat returns q scaled to unit length. A degenerate
// (zero-length) quaternion normalizes to identity.
func NormalizeQuat(q [4]float64) [4]float64 {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 {
		return [4]float64{0, 0, 0, 1}
	}
	return [4]float64{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// MulQuat returns the Hamilton product a*b.
func MulQuat(a, b [4]float64) [4]float64 {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return [4]float64{
		aw*bx + ax*bw + ay*bz - az*by,
		aw*by - ax*bz + ay*bw + az*bx,
		aw*bz + ax*by - ay*bx + az*bw,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// RotateVec3 rotates v by the unit quaternion q.
func RotateVec3(q [4]float64, v [3]float64) [3]float64 {
	// t = 2 * cross(q.xyz, v)
	tx := 2 * (q[1]*v[2] - q[2]*v[1])
	ty := 2 * (q[2]*v[0] - q[0]*v[2])
	tz := 2 * (q[0]*v[1] - q[1]*v[0])
	// v' = v + q.w*t + cross(q.xyz, t)
	return [3]float64{
		v[0] + q[3]*tx + (q[1]*tz - q[2]*ty),
		v[1] + q[3]*ty + (q[2]*tx - q[0]*tz),
		v[2] + q[3]*tz + (q[0]*ty - q[1]*tx),
	}
}

// BlendTransform interpolates between two transforms at weight t,
// where t=0 yields a and t=1 yields b. Translation and scale are
// lerped, rotation is nlerped.
func BlendTransform(a, b Transform, t float64) Transform {
	return Transform{
		Translation: LerpVec3(a.Translation, b.Translation, t),
		Rotation:    NlerpQuat(a.Rotation, b.Rotation, t),
		Scale:       LerpVec3(a.Scale, b.Scale, t),
	}
}
