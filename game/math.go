package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MoveTowards moves current towards target by at most maxDelta units. The target is returned as-is once
// it is within reach, so repeated calls never overshoot.
func MoveTowards(current, target mgl32.Vec3, maxDelta float32) mgl32.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist == 0 || dist <= maxDelta {
		return target
	}
	if maxDelta <= 0 {
		return current
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// QuatAngle returns the angle in degrees between two rotations. q and -q describe the same rotation, so
// the result is always within [0, 180].
func QuatAngle(a, b mgl32.Quat) float32 {
	dot := math32.Abs(a.Normalize().Dot(b.Normalize()))
	if dot >= 1 {
		return 0
	}
	return mgl32.RadToDeg(2 * math32.Acos(dot))
}

// RotateTowards rotates current towards target by at most maxDegrees, interpolating spherically along
// the shortest arc.
func RotateTowards(current, target mgl32.Quat, maxDegrees float32) mgl32.Quat {
	angle := QuatAngle(current, target)
	if angle == 0 || maxDegrees >= angle {
		return target
	}
	if maxDegrees <= 0 {
		return current
	}
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return mgl32.QuatSlerp(current, target, maxDegrees/angle).Normalize()
}

// EulerToQuat converts euler angles in degrees to a rotation, applying roll (Z) first, then pitch (X),
// then yaw (Y).
func EulerToQuat(euler mgl32.Vec3) mgl32.Quat {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(euler.Y()), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(euler.X()), mgl32.Vec3{1, 0, 0})
	roll := mgl32.QuatRotate(mgl32.DegToRad(euler.Z()), mgl32.Vec3{0, 0, 1})
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq determines whether each component of two vectors is within 1e-5 of the other.
func Vec3ApproxEq(a, b mgl32.Vec3) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1]) && Float32ApproxEq(a[2], b[2])
}
