package engine

import (
	"math"
	"testing"

	"github.com/nathoo/twistrand/engine/curve"
)

func TestRandFloatBiased_Range(t *testing.T) {
	e := New(11)

	for i := 0; i < 1000; i++ {
		v := e.RandFloatBiased(0, 10, 8, 5)
		if v < 0 || v > 10 {
			t.Fatalf("value out of range [0,10]: got %g", v)
		}
	}
}

func TestRandFloatBiased_ForceTightensClustering(t *testing.T) {
	// Mean distance to the target must shrink as force grows.
	meanDist := func(force int32) float64 {
		e := New(500)
		var total float64
		const trials = 5000
		for i := 0; i < trials; i++ {
			total += math.Abs(e.RandFloatBiased(0, 1, 0.9, force) - 0.9)
		}
		return total / trials
	}

	d1 := meanDist(1)
	d5 := meanDist(5)
	d50 := meanDist(50)

	if !(d1 > d5 && d5 > d50) {
		t.Fatalf("bias not monotonic: force 1 -> %g, force 5 -> %g, force 50 -> %g", d1, d5, d50)
	}
}

func TestRandFloatBiased_ConsumesForceUnits(t *testing.T) {
	e := New(3)

	e.RandFloatBiased(0, 1, 0.5, 7)
	if e.State() != 7 {
		t.Fatalf("force 7 should consume 7 units, got %d", e.State())
	}

	// Force below 1 is treated as 1.
	e.RandFloatBiased(0, 1, 0.5, 0)
	if e.State() != 8 {
		t.Fatalf("force 0 should consume 1 unit, got %d", e.State())
	}
}

func TestRandBoolBiased_SkewsTowardTrue(t *testing.T) {
	count := func(force int32) int {
		e := New(808)
		trues := 0
		const trials = 10000
		for i := 0; i < trials; i++ {
			if e.RandBoolBiased(0.5, true, force) {
				trues++
			}
		}
		return trues
	}

	base := count(1)
	skewed := count(10)
	if skewed <= base {
		t.Fatalf("bias toward true did not raise the true rate: %d -> %d", base, skewed)
	}
}

func TestRandBoolBiased_SkewsTowardFalse(t *testing.T) {
	e := New(808)
	trues := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		if e.RandBoolBiased(0.5, false, 10) {
			trues++
		}
	}
	if trues >= trials/2 {
		t.Fatalf("bias toward false did not lower the true rate: %d of %d", trues, trials)
	}
}

func TestRandGaussian_ConsumesOneUnit(t *testing.T) {
	e := New(9)
	e.RandGaussian(0, 1)
	if e.State() != 1 {
		t.Fatalf("gaussian should consume exactly 1 unit, got %d", e.State())
	}
}

func TestRandGaussian_Replays(t *testing.T) {
	e := New(77)
	var first [20]float64
	for i := range first {
		first[i] = e.RandGaussian(5, 2)
	}

	e.Reset()
	for i := range first {
		if got := e.RandGaussian(5, 2); got != first[i] {
			t.Fatalf("draw %d after reset: got %g, want %g", i, got, first[i])
		}
	}
}

func TestRandGaussian_Moments(t *testing.T) {
	e := New(31337)

	const trials = 10000
	var sum, sumSq float64
	for i := 0; i < trials; i++ {
		v := e.RandGaussian(10, 3)
		sum += v
		sumSq += v * v
	}
	mean := sum / trials
	variance := sumSq/trials - mean*mean

	if mean < 9.8 || mean > 10.2 {
		t.Errorf("expected mean ~10, got %g", mean)
	}
	stddev := math.Sqrt(variance)
	if stddev < 2.8 || stddev > 3.2 {
		t.Errorf("expected stddev ~3, got %g", stddev)
	}
}

func TestRandGaussianClamped_StaysInRange(t *testing.T) {
	e := New(64)

	for i := 0; i < 10000; i++ {
		v := e.RandGaussianClamped(0, 10, 5, 3, 3)
		if v < 0 || v > 10 {
			t.Fatalf("value out of range [0,10]: got %g", v)
		}
	}
}

func TestRandGaussianTruncated_StaysInRange(t *testing.T) {
	e := New(64)

	for i := 0; i < 10000; i++ {
		v := e.RandGaussianTruncated(0, 10, 9, 4)
		if v < 0 || v > 10 {
			t.Fatalf("value out of range [0,10]: got %g", v)
		}
	}
}

func TestRandWeighted_Distribution(t *testing.T) {
	e := New(12345)
	weights := []float64{70, 20, 10}
	counts := [3]int{}

	const trials = 10000
	for i := 0; i < trials; i++ {
		idx := e.RandWeighted(weights)
		if idx < 0 || idx > 2 {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}

	// With 10k trials, expect roughly 70%/20%/10% ± some margin.
	if counts[0] < 6000 || counts[0] > 8000 {
		t.Errorf("expected ~7000 for weight 70, got %d", counts[0])
	}
	if counts[1] < 1000 || counts[1] > 3000 {
		t.Errorf("expected ~2000 for weight 20, got %d", counts[1])
	}
	if counts[2] < 200 || counts[2] > 1800 {
		t.Errorf("expected ~1000 for weight 10, got %d", counts[2])
	}
}

func TestRandWeighted_Degenerates(t *testing.T) {
	e := New(1)

	if idx := e.RandWeighted(nil); idx != -1 {
		t.Fatalf("empty weights should return -1, got %d", idx)
	}
	if idx := e.RandWeighted([]float64{0, -3, 0}); idx != -1 {
		t.Fatalf("no positive weights should return -1, got %d", idx)
	}
	for i := 0; i < 100; i++ {
		if idx := e.RandWeighted([]float64{0, 5, 0}); idx != 1 {
			t.Fatalf("only positive weight should always win, got %d", idx)
		}
	}
}

func TestRollDice_SumRange(t *testing.T) {
	e := New(6)

	for i := 0; i < 1000; i++ {
		total := e.RollDice(3, 6)
		if total < 3 || total > 18 {
			t.Fatalf("3d6 out of range [3,18]: got %d", total)
		}
	}

	if e.RollDice(0, 6) != 0 {
		t.Fatal("zero dice should total 0")
	}
	if e.RollDice(3, 0) != 0 {
		t.Fatal("zero sides should total 0")
	}
}

func TestRollDiceArray_SkipsInvalid(t *testing.T) {
	e := New(6)

	before := e.State()
	total := e.RollDiceArray([]int32{6, 0, 8, -2})
	if total < 2 || total > 14 {
		t.Fatalf("d6+d8 out of range [2,14]: got %d", total)
	}
	// Invalid entries consume nothing.
	if e.State()-before != 2 {
		t.Fatalf("expected 2 units consumed, got %d", e.State()-before)
	}

	if e.RollDiceArray(nil) != 0 {
		t.Fatal("empty list should total 0")
	}
}

func TestRandCurveValue_WithinValueRange(t *testing.T) {
	c := curve.New(
		curve.Key{Time: 0, Value: 1},
		curve.Key{Time: 1, Value: 5},
	)
	e := New(40)

	for i := 0; i < 1000; i++ {
		v := e.RandCurveValue(c)
		if v < 1 || v > 5 {
			t.Fatalf("value out of curve range [1,5]: got %g", v)
		}
	}
}

func TestRandCurveValue_EmptyCurve(t *testing.T) {
	e := New(1)
	before := e.State()

	if v := e.RandCurveValue(curve.New()); v != 0 {
		t.Fatalf("empty curve should evaluate to 0, got %g", v)
	}
	if e.State() != before {
		t.Fatal("empty curve should consume nothing")
	}
}

func TestRandCurveRange_ClampsOutsideDomain(t *testing.T) {
	c := curve.New(
		curve.Key{Time: 0, Value: 2},
		curve.Key{Time: 1, Value: 4},
	)
	e := New(9)

	// Sampling times beyond the domain extrapolates as a constant.
	for i := 0; i < 100; i++ {
		if v := e.RandCurveRange(c, 5, 10); v != 4 {
			t.Fatalf("expected constant extrapolation 4, got %g", v)
		}
	}
}

func TestProbit_RoundTripsCDF(t *testing.T) {
	// probit is the inverse of the normal CDF: Phi(probit(p)) ~ p.
	cdf := func(x float64) float64 {
		return 0.5 * (1 + math.Erf(x/math.Sqrt2))
	}

	for _, p := range []float64{0.001, 0.01, 0.02425, 0.1, 0.5, 0.9, 0.99, 0.999} {
		x := probit(p)
		if got := cdf(x); math.Abs(got-p) > 1e-6 {
			t.Errorf("Phi(probit(%g)) = %g", p, got)
		}
	}
}
