// Package types defines the shared value types for the twistrand toolkit.
// This package contains only type definitions and formatting — no sampling logic.
package types

import "fmt"

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Hex renders the color as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Scale returns the vector multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Scale returns the vector multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Quat is a rotation quaternion (X, Y, Z imaginary parts, W real part).
type Quat struct {
	X, Y, Z, W float64
}

// Rotator is an Euler-angle rotation in degrees.
// Pitch is up/down (-90..90), Yaw is left/right (-180..180),
// Roll is rotation around the forward axis (-180..180).
type Rotator struct {
	Pitch, Yaw, Roll float64
}

// Result is the outcome of one evaluated sampling command.
type Result struct {
	Output []string // lines to show the user
	Units  uint32   // generator words this command consumed
	Count  uint32   // engine consumption count after the command
	IsErr  bool     // true when the command failed to parse or run
}

// GUID is a 128-bit identifier assembled from four 32-bit words.
type GUID struct {
	A, B, C, D uint32
}

// String renders the GUID in the canonical 8-4-4-4-12 form.
func (g GUID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%04X-%04X%08X",
		g.A, g.B>>16, g.B&0xFFFF, g.C>>16, g.C&0xFFFF, g.D)
}
