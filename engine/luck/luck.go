// Package luck scores already-generated values against the distribution
// that could have produced them. Every function is pure and returns a
// factor in [0, 1]: 0 is rarest (luckiest), 1 is most expected.
package luck

import (
	"math"

	"github.com/nathoo/twistrand/engine/curve"
)

// smallNumber guards divisions against degenerate value ranges.
const smallNumber = 1e-8

// EvalFloatMax scores a uniform draw by its position in [min, max],
// inverted so values near max score near 0. A degenerate range (max <= min)
// scores 1.
func EvalFloatMax(value, min, max float64) float64 {
	span := max - min
	if span <= 0 {
		return 1
	}
	return 1 - (value-min)/span
}

// EvalBoolTrue scores a boolean outcome against its probability: a true
// result scores p (an unlikely true is lucky), a false result scores 1-p.
func EvalBoolTrue(value bool, probability float64) float64 {
	p := clamp01(probability)
	if value {
		return p
	}
	return 1 - p
}

// EvalCurve scores a curve-sampled value by its distance from the curve's
// rarest value — the value at rarityTime, a normalized [0, 1] position in
// the curve's time domain. The realized value range is estimated from 100
// evenly spaced samples, and a square-root falloff makes near-rarest values
// score disproportionately low. Degenerate inputs score a neutral 0.5.
func EvalCurve(value float64, c *curve.Curve, rarityTime float64) float64 {
	if c.Empty() {
		return 0.5
	}

	minTime := c.FirstTime()
	maxTime := c.LastTime()
	timeRange := maxTime - minTime
	if timeRange <= 0 {
		return 0.5
	}

	rarest := c.Eval(minTime + clamp01(rarityTime)*timeRange)

	minValue := c.Eval(minTime)
	maxValue := c.Eval(maxTime)
	const samples = 100
	for i := 0; i < samples; i++ {
		v := c.Eval(minTime + float64(i)*timeRange/float64(samples-1))
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}

	if maxValue-minValue <= smallNumber {
		return 0.5
	}

	maxDistance := math.Max(math.Abs(minValue-rarest), math.Abs(maxValue-rarest))
	if maxDistance <= smallNumber {
		return 0.5
	}

	ratio := math.Abs(value-rarest) / maxDistance
	return clamp01(math.Sqrt(ratio))
}

// EvalCurveFast is EvalCurve without the 100-point sampling pass: the value
// range comes from the two domain endpoints only and the distance ratio is
// linear rather than square-root. Cheaper and less accurate; callers pick
// the tradeoff.
func EvalCurveFast(value float64, c *curve.Curve, rarityTime float64) float64 {
	if c.Empty() {
		return 0.5
	}

	minTime := c.FirstTime()
	maxTime := c.LastTime()
	timeRange := maxTime - minTime
	if timeRange <= smallNumber {
		return 0.5
	}

	rarest := c.Eval(minTime + clamp01(rarityTime)*timeRange)

	valueRange := math.Abs(c.Eval(maxTime) - c.Eval(minTime))
	if valueRange <= smallNumber {
		return 0.5
	}

	return clamp01(math.Abs(value-rarest) / valueRange)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
