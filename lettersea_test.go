package lettersea

import (
	"math"
	"testing"
)

// assertNear fails the test when got is not within 1e-6 of want.
func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

// quietConfig returns tuning with every ambient force and all randomness
// switched off, so tests can enable exactly the behavior under test.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.RepulsionStrength = 0
	cfg.AttractionStrength = 0
	cfg.CenterStrength = 0
	cfg.DriftStrength = 0
	cfg.RotationJitter = 0
	cfg.SpinFactor = 0
	cfg.SpinExchange = 0
	return cfg
}

func TestVec2Ops(t *testing.T) {
	v := Vec2{3, 4}
	assertNear(t, "Len", v.Len(), 5)
	assertNear(t, "LenSq", v.LenSq(), 25)
	assertNear(t, "Dot", v.Dot(Vec2{1, 2}), 11)

	sum := v.Add(Vec2{1, -1})
	assertNear(t, "Add.X", sum.X, 4)
	assertNear(t, "Add.Y", sum.Y, 3)

	n := v.Normalized()
	assertNear(t, "Normalized.Len", n.Len(), 1)

	z := Vec2{}.Normalized()
	assertNear(t, "zero Normalized.X", z.X, 0)
	assertNear(t, "zero Normalized.Y", z.Y, 0)
}

func TestRectContainsPointHalfOpen(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	if !r.ContainsPoint(Vec2{0, 0}) {
		t.Error("low edges should be inclusive")
	}
	if r.ContainsPoint(Vec2{10, 5}) {
		t.Error("high X edge should be exclusive")
	}
	if r.ContainsPoint(Vec2{5, 10}) {
		t.Error("high Y edge should be exclusive")
	}
	if !r.ContainsPoint(Vec2{9.999, 9.999}) {
		t.Error("interior point should be contained")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	if !a.Intersects(Rect{5, 5, 10, 10}) {
		t.Error("overlapping rects should intersect")
	}
	if !a.Intersects(Rect{10, 0, 5, 5}) {
		t.Error("edge-adjacent rects should intersect")
	}
	if a.Intersects(Rect{11, 11, 5, 5}) {
		t.Error("separated rects should not intersect")
	}
}

func TestRangeRandom(t *testing.T) {
	r := Range{10, 20}
	for i := 0; i < 100; i++ {
		v := r.Random()
		if v < 10 || v > 20 {
			t.Fatalf("Random() = %f, outside [10, 20]", v)
		}
	}
	if (Range{5, 5}).Random() != 5 {
		t.Error("Random() with Min==Max should return Min")
	}
}

func TestWrapAngle(t *testing.T) {
	assertNear(t, "wrap(0)", wrapAngle(0), 0)
	assertNear(t, "wrap(5π/2)", wrapAngle(5*math.Pi/2), math.Pi/2)
	assertNear(t, "wrap(-3π/2)", wrapAngle(-3*math.Pi/2), math.Pi/2)
}
