// Package curve implements keyframe float curves: a monotonic time domain
// mapped to values by per-segment interpolation. Curves are immutable after
// construction and safe for concurrent reads.
package curve

import "sort"

// Interp selects how a segment eases from its left key to its right key.
type Interp int

const (
	Linear Interp = iota
	EaseOutQuad
	EaseInOutCubic
)

// Key is a single keyframe. Interp applies to the segment that starts at
// this key.
type Key struct {
	Time   float64
	Value  float64
	Interp Interp
}

// Curve is a sorted list of keyframes.
type Curve struct {
	keys []Key
}

// New builds a curve from keys. Keys are sorted by time; order of equal
// times is preserved.
func New(keys ...Key) *Curve {
	sorted := append([]Key(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return &Curve{keys: sorted}
}

// Empty reports whether the curve has no keys.
func (c *Curve) Empty() bool {
	return c == nil || len(c.keys) == 0
}

// Len returns the number of keys.
func (c *Curve) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns a copy of the keyframes.
func (c *Curve) Keys() []Key {
	if c == nil {
		return nil
	}
	return append([]Key(nil), c.keys...)
}

// FirstTime returns the time of the first key, or 0 for an empty curve.
func (c *Curve) FirstTime() float64 {
	if c.Empty() {
		return 0
	}
	return c.keys[0].Time
}

// LastTime returns the time of the last key, or 0 for an empty curve.
func (c *Curve) LastTime() float64 {
	if c.Empty() {
		return 0
	}
	return c.keys[len(c.keys)-1].Time
}

// Eval samples the curve at time t. Outside the key range the curve
// extrapolates as a constant. An empty curve evaluates to 0.
func (c *Curve) Eval(t float64) float64 {
	if c.Empty() {
		return 0
	}
	keys := c.keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value
	}

	// Find the segment containing t: keys[i].Time <= t < keys[i+1].Time.
	i := sort.Search(len(keys), func(j int) bool {
		return keys[j].Time > t
	}) - 1

	left, right := keys[i], keys[i+1]
	span := right.Time - left.Time
	if span <= 0 {
		return right.Value
	}

	u := ease((t-left.Time)/span, left.Interp)
	return left.Value + (right.Value-left.Value)*u
}

// ease maps a linear progress value through the segment's easing function.
func ease(t float64, interp Interp) float64 {
	switch interp {
	case EaseOutQuad:
		return 1 - (1-t)*(1-t)
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - (-2*t+2)*(-2*t+2)*(-2*t+2)/2
	default:
		return t
	}
}
