// Package randutil samples structured values — colors, vectors, rotations —
// and provides generic collection helpers, all drawing from an engine so the
// caller keeps full replay control.
package randutil

import (
	"math"

	"github.com/nathoo/twistrand/engine"
	"github.com/nathoo/twistrand/types"
)

// Color returns an opaque random color with channels in [0, 255].
func Color(e *engine.Engine) types.Color {
	return types.Color{
		R: uint8(e.RandInt(0, 255)),
		G: uint8(e.RandInt(0, 255)),
		B: uint8(e.RandInt(0, 255)),
		A: 255,
	}
}

// ColorAlpha returns a random color with a random alpha channel.
func ColorAlpha(e *engine.Engine) types.Color {
	c := Color(e)
	c.A = uint8(e.RandInt(0, 255))
	return c
}

// Vector returns a vector with each component uniform in [min, max].
func Vector(e *engine.Engine, min, max float64) types.Vec3 {
	return types.Vec3{
		X: e.RandFloat(min, max),
		Y: e.RandFloat(min, max),
		Z: e.RandFloat(min, max),
	}
}

// UnitVector returns a uniformly distributed point on the unit sphere,
// sampled by a uniform z-coordinate and a uniform azimuth.
func UnitVector(e *engine.Engine) types.Vec3 {
	z := e.RandFloat(-1, 1)
	theta := e.RandFloat(0, 2*math.Pi)
	r := math.Sqrt(math.Max(0, 1-z*z))
	return types.Vec3{
		X: r * math.Cos(theta),
		Y: r * math.Sin(theta),
		Z: z,
	}
}

// Vector2 returns a 2D vector with each component uniform in [min, max].
func Vector2(e *engine.Engine, min, max float64) types.Vec2 {
	return types.Vec2{
		X: e.RandFloat(min, max),
		Y: e.RandFloat(min, max),
	}
}

// UnitVector2 returns a uniformly distributed point on the unit circle.
func UnitVector2(e *engine.Engine) types.Vec2 {
	theta := e.RandFloat(0, 2*math.Pi)
	return types.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
}

// InCircle returns a uniformly distributed point inside a disc of the given
// radius. The radius draw takes a square root so area density stays uniform.
func InCircle(e *engine.Engine, radius float64) types.Vec2 {
	r := radius * math.Sqrt(e.RandFloat(0, 1))
	return UnitVector2(e).Scale(r)
}

// OnCircle returns a uniformly distributed point on a circle of the given radius.
func OnCircle(e *engine.Engine, radius float64) types.Vec2 {
	return UnitVector2(e).Scale(radius)
}

// InSphere returns a uniformly distributed point inside a ball of the given
// radius. The radius draw takes a cube root so volume density stays uniform.
func InSphere(e *engine.Engine, radius float64) types.Vec3 {
	r := radius * math.Cbrt(e.RandFloat(0, 1))
	return UnitVector(e).Scale(r)
}

// OnSphere returns a uniformly distributed point on a sphere of the given radius.
func OnSphere(e *engine.Engine, radius float64) types.Vec3 {
	return UnitVector(e).Scale(radius)
}

// Quaternion returns a uniformly distributed unit quaternion using Shoemake's
// subgroup algorithm.
func Quaternion(e *engine.Engine) types.Quat {
	u1 := e.RandFloat(0, 1)
	u2 := e.RandFloat(0, 2*math.Pi)
	u3 := e.RandFloat(0, 2*math.Pi)
	a := math.Sqrt(math.Max(0, 1-u1))
	b := math.Sqrt(u1)
	return types.Quat{
		X: a * math.Sin(u2),
		Y: a * math.Cos(u2),
		Z: b * math.Sin(u3),
		W: b * math.Cos(u3),
	}
}

// Rotator returns a random Euler rotation: pitch in [-90, 90], yaw and roll
// in [-180, 180].
func Rotator(e *engine.Engine) types.Rotator {
	return types.Rotator{
		Pitch: e.RandFloat(-90, 90),
		Yaw:   e.RandFloat(-180, 180),
		Roll:  e.RandFloat(-180, 180),
	}
}

// Pick returns a uniformly chosen element of items and its index.
// An empty slice returns the zero value and -1.
func Pick[T any](e *engine.Engine, items []T) (T, int) {
	var zero T
	if len(items) == 0 {
		return zero, -1
	}
	i := int(e.RandInt(0, int32(len(items)-1)))
	return items[i], i
}

// Shuffle permutes items in place using Fisher–Yates.
func Shuffle[T any](e *engine.Engine, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := e.RandInt(0, int32(i))
		items[i], items[j] = items[j], items[i]
	}
}

// Sample returns n uniformly chosen elements without replacement. If n
// exceeds the slice length the whole slice is returned in shuffled order.
// The input is not modified.
func Sample[T any](e *engine.Engine, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	pool := append([]T(nil), items...)
	Shuffle(e, pool)
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
