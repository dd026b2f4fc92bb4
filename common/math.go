package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Vec2 is a 2D axis value, used for stick / WASD input.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Vec3 is a world-space vector. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// RotateY rotates v around the up axis by yaw radians. A yaw of zero faces +Z.
func (v Vec3) RotateY(yaw float64) Vec3 {
	if yaw == 0 {
		return v
	}
	sin, cos := math.Sincos(yaw)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle maps a radian angle into (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// LerpAngle interpolates from a toward b along the shortest arc. For a pure
// yaw rotation this matches a quaternion slerp between the two headings.
func LerpAngle(a, b, t float64) float64 {
	delta := WrapAngle(b - a)
	return WrapAngle(a + delta*Clamp(t, 0, 1))
}

// Yaw returns the heading angle of a direction on the ground plane, measured
// from +Z toward +X.
func Yaw(x, z float64) float64 {
	return math.Atan2(x, z)
}
