package lettersea

import (
	"math/rand/v2"
	"testing"
)

func particleAt(x, y float64) *Particle {
	return NewParticle('A', Vec2{x, y})
}

func TestQuadtreeInsertOutsideBounds(t *testing.T) {
	q := NewQuadtree(Rect{0, 0, 100, 100}, 4)
	if q.Insert(particleAt(150, 50)) {
		t.Error("insert outside bounds should return false")
	}
	if q.Insert(particleAt(-1, 50)) {
		t.Error("insert outside bounds should return false")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

func TestQuadtreeRoundTripSingleLeaf(t *testing.T) {
	// Below capacity: the root stays a leaf and queries still return
	// exactly the contained set.
	q := NewQuadtree(Rect{0, 0, 100, 100}, 8)
	inside := []*Particle{particleAt(10, 10), particleAt(20, 30), particleAt(45, 45)}
	outside := particleAt(80, 80)

	for _, p := range inside {
		if !q.Insert(p) {
			t.Fatal("insert inside bounds should succeed")
		}
	}
	q.Insert(outside)

	got := q.Query(Rect{0, 0, 50, 50}, nil)
	if len(got) != len(inside) {
		t.Fatalf("query returned %d particles, want %d", len(got), len(inside))
	}
	for _, want := range inside {
		found := false
		for _, p := range got {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Errorf("particle at %v missing from query result", want.Position)
		}
	}
}

func TestQuadtreeRoundTripAfterSubdivision(t *testing.T) {
	// Capacity 2 with many inserts forces subdivision; the round-trip
	// contract must hold regardless of tree shape.
	q := NewQuadtree(Rect{0, 0, 256, 256}, 2)
	region := Rect{64, 64, 64, 64}

	var want int
	particles := make([]*Particle, 0, 200)
	for i := 0; i < 200; i++ {
		p := particleAt(rand.Float64()*256, rand.Float64()*256)
		particles = append(particles, p)
		if !q.Insert(p) {
			t.Fatal("insert inside bounds should succeed")
		}
		if region.ContainsPoint(p.Position) {
			want++
		}
	}

	got := q.Query(region, nil)
	if len(got) != want {
		t.Errorf("query returned %d particles, want %d", len(got), want)
	}
	if q.Len() != len(particles) {
		t.Errorf("Len = %d, want %d", q.Len(), len(particles))
	}
}

func TestQuadtreeBoundaryBelongsToOneQuadrant(t *testing.T) {
	// A particle exactly on the subdivision midline must be indexed exactly
	// once: inclusive low edge, exclusive high edge.
	q := NewQuadtree(Rect{0, 0, 100, 100}, 1)
	q.Insert(particleAt(10, 10))
	q.Insert(particleAt(90, 90)) // forces subdivision
	mid := particleAt(50, 50)    // exactly on both midlines
	if !q.Insert(mid) {
		t.Fatal("midline insert should succeed")
	}

	got := q.Query(Rect{0, 0, 100, 100}, nil)
	count := 0
	for _, p := range got {
		if p == mid {
			count++
		}
	}
	if count != 1 {
		t.Errorf("midline particle appeared %d times, want exactly 1", count)
	}
}

func TestQuadtreeCoincidentParticlesDontRecurse(t *testing.T) {
	// More coincident particles than capacity must not subdivide forever.
	q := NewQuadtree(Rect{0, 0, 1024, 1024}, 2)
	for i := 0; i < 20; i++ {
		if !q.Insert(particleAt(100, 100)) {
			t.Fatal("coincident insert should succeed")
		}
	}
	if q.Len() != 20 {
		t.Errorf("Len = %d, want 20", q.Len())
	}
}

func TestQuadtreeAwkwardBoundsLoseNoParticles(t *testing.T) {
	// Bounds whose midpoints don't land on binary-exact values can leave a
	// rounding sliver between child extents; every in-bounds insert must
	// still end up indexed and queryable.
	bounds := Rect{0.1, 0.1, 1000.0 / 3.0, 1000.0 / 7.0}
	q := NewQuadtree(bounds, 1)

	const n = 500
	for i := 0; i < n; i++ {
		p := particleAt(
			bounds.X+rand.Float64()*bounds.Width*0.999,
			bounds.Y+rand.Float64()*bounds.Height*0.999,
		)
		if !q.Insert(p) {
			t.Fatalf("in-bounds insert refused at %v", p.Position)
		}
	}

	if q.Len() != n {
		t.Errorf("Len = %d, want %d", q.Len(), n)
	}
	if got := q.Query(bounds, nil); len(got) != n {
		t.Errorf("full-bounds query returned %d particles, want %d", len(got), n)
	}
}

func TestQuadtreeQueryPrunesDisjointSubtrees(t *testing.T) {
	q := NewQuadtree(Rect{0, 0, 100, 100}, 1)
	q.Insert(particleAt(10, 10))
	q.Insert(particleAt(90, 90))

	got := q.Query(Rect{200, 200, 50, 50}, nil)
	if len(got) != 0 {
		t.Errorf("disjoint query returned %d particles, want 0", len(got))
	}
}

func TestQuadtreeQueryReusesBuffer(t *testing.T) {
	q := NewQuadtree(Rect{0, 0, 100, 100}, 4)
	q.Insert(particleAt(10, 10))

	buf := make([]*Particle, 0, 16)
	got := q.Query(Rect{0, 0, 100, 100}, buf[:0])
	if len(got) != 1 {
		t.Fatalf("query returned %d, want 1", len(got))
	}

	allocs := testing.AllocsPerRun(100, func() {
		buf = q.Query(Rect{0, 0, 100, 100}, buf[:0])
	})
	if allocs > 0 {
		t.Errorf("query with reused buffer allocs = %f, want 0", allocs)
	}
}

func BenchmarkQuadtreeBuildAndQuery_300(b *testing.B) {
	particles := make([]*Particle, 300)
	for i := range particles {
		particles[i] = particleAt(rand.Float64()*1280, rand.Float64()*720)
	}
	buf := make([]*Particle, 0, 64)

	b.ReportAllocs()
	for b.Loop() {
		q := NewQuadtree(Rect{0, 0, 1280, 720}, 8)
		for _, p := range particles {
			q.Insert(p)
		}
		for _, p := range particles {
			buf = q.Query(Rect{p.Position.X - 36, p.Position.Y - 36, 72, 72}, buf[:0])
		}
	}
}
