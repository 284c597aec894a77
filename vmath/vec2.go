package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector in screen space (+Y down)
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns a vector of length mag pointing at angle (radians)
func FromAngle(angle, mag float64) Vec2 {
	return Vec2{mag * math.Cos(angle), mag * math.Sin(angle)}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// SetMag rescales v to length mag, zero-safe
// Negative mag flips direction; zero vector stays zero
func (v Vec2) SetMag(mag float64) Vec2 {
	m := v.Mag()
	if m == 0 {
		return Vec2{}
	}
	inv := mag / m
	return Vec2{v.X * inv, v.Y * inv}
}

// ClampMag limits v to maxMag while preserving direction
func (v Vec2) ClampMag(maxMag float64) Vec2 {
	m := v.Mag()
	if m <= maxMag || m == 0 {
		return v
	}
	return v.Scale(maxMag / m)
}

// Heading returns the angle of v in radians, atan2 convention
func (v Vec2) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates v by angle radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp interpolates from v to o by t in [0,1]
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Midpoint returns the point halfway between v and o
func (v Vec2) Midpoint(o Vec2) Vec2 {
	return Vec2{(v.X + o.X) / 2, (v.Y + o.Y) / 2}
}

// ApproxEqual reports whether both components differ by at most eps
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// WrapAngle normalizes angle into (-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
