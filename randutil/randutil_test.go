package randutil

import (
	"math"
	"sort"
	"testing"

	"github.com/nathoo/twistrand/engine"
)

func TestColor_OpaqueByDefault(t *testing.T) {
	e := engine.New(42)

	for i := 0; i < 100; i++ {
		c := Color(e)
		if c.A != 255 {
			t.Fatalf("expected opaque alpha, got %d", c.A)
		}
	}
}

func TestColorAlpha_Deterministic(t *testing.T) {
	a := engine.New(7)
	b := engine.New(7)

	for i := 0; i < 20; i++ {
		x := ColorAlpha(a)
		y := ColorAlpha(b)
		if x != y {
			t.Fatalf("color %d: got %+v and %+v from same seed", i, x, y)
		}
	}
}

func TestVector_ComponentRange(t *testing.T) {
	e := engine.New(3)

	for i := 0; i < 1000; i++ {
		v := Vector(e, -2, 2)
		if v.X < -2 || v.X > 2 || v.Y < -2 || v.Y > 2 || v.Z < -2 || v.Z > 2 {
			t.Fatalf("component out of [-2,2]: %+v", v)
		}
	}
}

func TestUnitVector_Normalized(t *testing.T) {
	e := engine.New(11)

	for i := 0; i < 1000; i++ {
		v := UnitVector(e)
		length := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if math.Abs(length-1) > 1e-9 {
			t.Fatalf("unit vector has length %g: %+v", length, v)
		}
	}
}

func TestUnitVector2_Normalized(t *testing.T) {
	e := engine.New(11)

	for i := 0; i < 1000; i++ {
		v := UnitVector2(e)
		length := math.Sqrt(v.X*v.X + v.Y*v.Y)
		if math.Abs(length-1) > 1e-9 {
			t.Fatalf("unit vector has length %g: %+v", length, v)
		}
	}
}

func TestInCircle_WithinRadius(t *testing.T) {
	e := engine.New(5)

	inside := 0
	for i := 0; i < 1000; i++ {
		v := InCircle(e, 2)
		r := math.Sqrt(v.X*v.X + v.Y*v.Y)
		if r > 2+1e-9 {
			t.Fatalf("point outside radius 2: %+v", v)
		}
		// Area-uniform sampling puts ~3/4 of points beyond half the radius.
		if r > 1 {
			inside++
		}
	}
	if inside < 650 || inside > 850 {
		t.Errorf("expected ~750 points beyond half radius, got %d", inside)
	}
}

func TestInSphere_WithinRadius(t *testing.T) {
	e := engine.New(5)

	for i := 0; i < 1000; i++ {
		v := InSphere(e, 3)
		r := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if r > 3+1e-9 {
			t.Fatalf("point outside radius 3: %+v", v)
		}
	}
}

func TestOnSphere_ExactRadius(t *testing.T) {
	e := engine.New(9)

	for i := 0; i < 100; i++ {
		v := OnSphere(e, 4)
		r := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if math.Abs(r-4) > 1e-9 {
			t.Fatalf("point not on sphere of radius 4: %+v (r=%g)", v, r)
		}
	}
}

func TestQuaternion_UnitNorm(t *testing.T) {
	e := engine.New(13)

	for i := 0; i < 1000; i++ {
		q := Quaternion(e)
		norm := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
		if math.Abs(norm-1) > 1e-9 {
			t.Fatalf("quaternion has norm %g: %+v", norm, q)
		}
	}
}

func TestRotator_AngleRanges(t *testing.T) {
	e := engine.New(17)

	for i := 0; i < 1000; i++ {
		r := Rotator(e)
		if r.Pitch < -90 || r.Pitch > 90 {
			t.Fatalf("pitch out of [-90,90]: %g", r.Pitch)
		}
		if r.Yaw < -180 || r.Yaw > 180 {
			t.Fatalf("yaw out of [-180,180]: %g", r.Yaw)
		}
		if r.Roll < -180 || r.Roll > 180 {
			t.Fatalf("roll out of [-180,180]: %g", r.Roll)
		}
	}
}

func TestPick(t *testing.T) {
	e := engine.New(23)
	items := []string{"a", "b", "c"}

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		item, idx := Pick(e, items)
		if idx < 0 || idx > 2 || items[idx] != item {
			t.Fatalf("bad pick: %q at %d", item, idx)
		}
		seen[item] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all 3 items picked over 1000 draws, saw %d", len(seen))
	}

	if _, idx := Pick(e, []string(nil)); idx != -1 {
		t.Fatalf("empty slice should return index -1, got %d", idx)
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	e := engine.New(29)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	Shuffle(e, items)
	sorted := append([]int(nil), items...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i+1 {
			t.Fatalf("shuffle lost elements: %v", items)
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := []int{1, 2, 3, 4, 5}
	Shuffle(engine.New(42), a)
	Shuffle(engine.New(42), b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different shuffles: %v vs %v", a, b)
		}
	}
}

func TestSample_WithoutReplacement(t *testing.T) {
	e := engine.New(31)
	items := []string{"a", "b", "c", "d", "e"}

	got := Sample(e, items, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate sample %q", s)
		}
		seen[s] = true
	}

	// Oversampling returns everything.
	if got := Sample(e, items, 10); len(got) != 5 {
		t.Fatalf("oversampling should return all items, got %d", len(got))
	}
	if got := Sample(e, items, 0); got != nil {
		t.Fatalf("n=0 should return nil, got %v", got)
	}

	// Input untouched.
	want := []string{"a", "b", "c", "d", "e"}
	for i := range items {
		if items[i] != want[i] {
			t.Fatalf("Sample modified its input: %v", items)
		}
	}
}
