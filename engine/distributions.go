package engine

import (
	"math"

	"github.com/nathoo/twistrand/engine/curve"
)

// RandFloatBiased returns a uniform draw from [min, max] pulled toward
// biasedToward by best-of-N selection: biasForce independent samples are
// drawn and the one closest to the target wins, first-seen on ties.
// The bias tightens clustering but never reshapes the underlying density.
// Consumes biasForce units (1 if biasForce <= 1).
func (e *Engine) RandFloatBiased(min, max, biasedToward float64, biasForce int32) float64 {
	target := clamp(biasedToward, min, max)
	force := biasForce
	if force < 1 {
		force = 1
	}
	if force == 1 {
		return e.RandFloat(min, max)
	}

	best := e.RandFloat(min, max)
	bestDist := math.Abs(best - target)
	for i := int32(1); i < force; i++ {
		v := e.RandFloat(min, max)
		if d := math.Abs(v - target); d < bestDist {
			best = v
			bestDist = d
		}
	}
	return best
}

// RandBoolBiased returns a boolean with base probability p, skewed toward
// the chosen outcome by biasForce. The bias target is the midpoint of the
// winning sub-interval: p/2 when biasing toward true, p+(1-p)/2 when biasing
// toward false. The effective true-probability therefore drifts from p as
// force grows — that drift is the bias. Consumes biasForce units.
func (e *Engine) RandBoolBiased(probability float64, biasTowardTrue bool, biasForce int32) bool {
	p := clamp01(probability)
	force := biasForce
	if force < 1 {
		force = 1
	}
	if force == 1 {
		return e.RandBool(p)
	}

	var target float64
	if biasTowardTrue {
		target = p * 0.5
	} else {
		target = p + (1-p)*0.5
	}
	return e.RandFloatBiased(0, 1, target, force) < p
}

// RandGaussian returns a normally distributed sample. The draw maps a
// single uniform word through the inverse normal CDF, so one sample is
// exactly one unit and replay accounting stays exact.
func (e *Engine) RandGaussian(mean, stddev float64) float64 {
	// (0, 1) exclusive on both ends; probit diverges at 0 and 1.
	u := (float64(e.word()) + 0.5) / (1 << 32)
	return mean + stddev*probit(u)
}

// RandGaussianClamped draws up to attempts gaussian samples centered on
// bias (clamped into [min, max]) with stddev = (max-min)*spread/6, so
// spread=1 keeps ~99.7% of the mass in range. The first in-range draw is
// returned; if all miss, the last draw is hard-clamped into the range.
func (e *Engine) RandGaussianClamped(min, max, bias, spread float64, attempts int32) float64 {
	center := clamp(bias, min, max)
	stddev := (max - min) * spread / 6

	if attempts < 1 {
		attempts = 1
	}
	var v float64
	for i := int32(0); i < attempts; i++ {
		v = e.RandGaussian(center, stddev)
		if v >= min && v <= max {
			return v
		}
	}
	return clamp(v, min, max)
}

// RandGaussianTruncated is RandGaussianClamped with a fixed 5 attempts and
// a different miss policy: a plain uniform redraw over [min, max] instead
// of clamping. The two fallbacks shape the edges differently and are kept
// as separate operations.
func (e *Engine) RandGaussianTruncated(min, max, bias, spread float64) float64 {
	center := clamp(bias, min, max)
	stddev := (max - min) * spread / 6

	for i := 0; i < 5; i++ {
		v := e.RandGaussian(center, stddev)
		if v >= min && v <= max {
			return v
		}
	}
	return e.RandFloat(min, max)
}

// RandWeighted returns an index into weights chosen with probability
// proportional to each positive weight. Weights <= 0 are never selectable.
// Returns -1 for an empty list or when no weight is positive.
func (e *Engine) RandWeighted(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	u := e.RandFloat(0, total)
	var cum float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		// Boundary ties favor the earlier index.
		if u <= cum {
			return i
		}
	}
	return len(weights) - 1
}

// RollDice returns the sum of numDice uniform draws over [1, sides].
// Returns 0 if either argument is non-positive.
func (e *Engine) RollDice(numDice, sides int32) int32 {
	if numDice <= 0 || sides <= 0 {
		return 0
	}
	var total int32
	for i := int32(0); i < numDice; i++ {
		total += e.RandInt(1, sides)
	}
	return total
}

// RollDiceArray rolls one die per entry and returns the sum. Entries < 1
// are skipped and consume nothing. Returns 0 for an empty list.
func (e *Engine) RollDiceArray(sides []int32) int32 {
	var total int32
	for _, s := range sides {
		if s >= 1 {
			total += e.RandInt(1, s)
		}
	}
	return total
}

// RandCurveValue evaluates the curve at a uniformly sampled time over the
// curve's own domain. Returns 0 for an empty curve.
func (e *Engine) RandCurveValue(c *curve.Curve) float64 {
	if c.Empty() {
		return 0
	}
	return c.Eval(e.RandFloat(c.FirstTime(), c.LastTime()))
}

// RandCurveRange evaluates the curve at a uniformly sampled time over
// [min, max]. Returns 0 for an empty curve.
func (e *Engine) RandCurveRange(c *curve.Curve, min, max float64) float64 {
	if c.Empty() {
		return 0
	}
	return c.Eval(e.RandFloat(min, max))
}

// Coefficients for Acklam's rational approximation of the inverse normal
// CDF. Absolute error is below 1.15e-9 over the full open interval.
var (
	probitA = [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	probitB = [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	probitC = [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	probitD = [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}
)

// probit is the inverse CDF of the standard normal distribution.
// p must be in (0, 1).
func probit(p float64) float64 {
	const low, high = 0.02425, 1 - 0.02425

	switch {
	case p < low:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((probitC[0]*q+probitC[1])*q+probitC[2])*q+probitC[3])*q+probitC[4])*q + probitC[5]) /
			((((probitD[0]*q+probitD[1])*q+probitD[2])*q+probitD[3])*q + 1)
	case p > high:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((probitC[0]*q+probitC[1])*q+probitC[2])*q+probitC[3])*q+probitC[4])*q + probitC[5]) /
			((((probitD[0]*q+probitD[1])*q+probitD[2])*q+probitD[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((probitA[0]*r+probitA[1])*r+probitA[2])*r+probitA[3])*r+probitA[4])*r + probitA[5]) * q /
			(((((probitB[0]*r+probitB[1])*r+probitB[2])*r+probitB[3])*r+probitB[4])*r + 1)
	}
}
