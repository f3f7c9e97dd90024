package luck

import (
	"math"
	"testing"

	"github.com/nathoo/twistrand/engine/curve"
)

func TestEvalFloatMax(t *testing.T) {
	cases := []struct {
		value, min, max float64
		want            float64
	}{
		{10, 0, 10, 0},  // at max: rarest
		{0, 0, 10, 1},   // at min: most expected
		{5, 0, 10, 0.5}, // midpoint
	}
	for _, tc := range cases {
		if got := EvalFloatMax(tc.value, tc.min, tc.max); got != tc.want {
			t.Errorf("EvalFloatMax(%g, %g, %g): got %g, want %g",
				tc.value, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestEvalFloatMax_DegenerateRange(t *testing.T) {
	if got := EvalFloatMax(5, 5, 5); got != 1 {
		t.Fatalf("degenerate range should score 1, got %g", got)
	}
	if got := EvalFloatMax(5, 10, 0); got != 1 {
		t.Fatalf("inverted range should score 1, got %g", got)
	}
}

func TestEvalBoolTrue(t *testing.T) {
	// An unlikely true is lucky (low score).
	if got := EvalBoolTrue(true, 0.1); got != 0.1 {
		t.Errorf("true at p=0.1: got %g, want 0.1", got)
	}
	// The expected false is unremarkable (high score).
	if got := EvalBoolTrue(false, 0.1); got != 0.9 {
		t.Errorf("false at p=0.1: got %g, want 0.9", got)
	}
	// Probability clamps.
	if got := EvalBoolTrue(true, 2); got != 1 {
		t.Errorf("p=2 should clamp to 1, got %g", got)
	}
}

func ramp() *curve.Curve {
	return curve.New(
		curve.Key{Time: 0, Value: 0},
		curve.Key{Time: 1, Value: 100},
	)
}

func TestEvalCurve_RarestScoresZero(t *testing.T) {
	c := ramp()

	// rarityTime=1 puts the rarest value at the curve's top.
	if got := EvalCurve(100, c, 1); got != 0 {
		t.Fatalf("value at rarest point should score 0, got %g", got)
	}
	if got := EvalCurve(0, c, 1); got != 1 {
		t.Fatalf("value farthest from rarest should score 1, got %g", got)
	}
}

func TestEvalCurve_SqrtFalloff(t *testing.T) {
	c := ramp()

	// Halfway to the rarest value scores sqrt(0.5), not 0.5.
	got := EvalCurve(50, c, 1)
	want := math.Sqrt(0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("midpoint score: got %g, want %g", got, want)
	}
}

func TestEvalCurve_Degenerates(t *testing.T) {
	if got := EvalCurve(5, curve.New(), 1); got != 0.5 {
		t.Fatalf("empty curve should score neutral 0.5, got %g", got)
	}

	flat := curve.New(
		curve.Key{Time: 0, Value: 7},
		curve.Key{Time: 1, Value: 7},
	)
	if got := EvalCurve(7, flat, 1); got != 0.5 {
		t.Fatalf("flat curve should score neutral 0.5, got %g", got)
	}

	single := curve.New(curve.Key{Time: 0, Value: 3})
	if got := EvalCurve(3, single, 1); got != 0.5 {
		t.Fatalf("single-key curve should score neutral 0.5, got %g", got)
	}
}

func TestEvalCurve_ClampsRarityTime(t *testing.T) {
	c := ramp()

	// rarityTime beyond [0,1] clamps to the endpoint.
	if got, want := EvalCurve(100, c, 5), EvalCurve(100, c, 1); got != want {
		t.Fatalf("rarityTime=5 should match rarityTime=1: %g vs %g", got, want)
	}
}

func TestEvalCurveFast_Linear(t *testing.T) {
	c := ramp()

	if got := EvalCurveFast(100, c, 1); got != 0 {
		t.Fatalf("value at rarest point should score 0, got %g", got)
	}
	// Linear falloff, not sqrt.
	if got := EvalCurveFast(50, c, 1); got != 0.5 {
		t.Fatalf("midpoint score: got %g, want 0.5", got)
	}
	if got := EvalCurveFast(0, c, 1); got != 1 {
		t.Fatalf("farthest value should score 1, got %g", got)
	}
}

func TestEvalCurveFast_Degenerates(t *testing.T) {
	if got := EvalCurveFast(5, curve.New(), 1); got != 0.5 {
		t.Fatalf("empty curve should score neutral 0.5, got %g", got)
	}

	flat := curve.New(
		curve.Key{Time: 0, Value: 7},
		curve.Key{Time: 1, Value: 7},
	)
	if got := EvalCurveFast(7, flat, 1); got != 0.5 {
		t.Fatalf("flat curve should score neutral 0.5, got %g", got)
	}
}
