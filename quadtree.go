package lettersea

// minNodeSize is the smallest node width that may still subdivide.
const minNodeSize = 1.0

// Quadtree partitions particles by position to answer range queries in
// sub-quadratic time. It is ephemeral: the ocean rebuilds it from scratch at
// the start of every tick and only reads it during the force pass, so there
// is no removal or incremental update.
//
// Point membership is half-open (inclusive low edge, exclusive high edge),
// so a particle exactly on a shared quadrant boundary belongs to exactly one
// quadrant and is never double-counted.
type Quadtree struct {
	bounds   Rect
	capacity int

	particles []*Particle
	divided   bool

	nw, ne, sw, se *Quadtree
}

// NewQuadtree creates an empty quadtree over the given region. A node holds
// up to capacity particles before subdividing into four quadrants.
func NewQuadtree(bounds Rect, capacity int) *Quadtree {
	if capacity <= 0 {
		capacity = 4
	}
	return &Quadtree{bounds: bounds, capacity: capacity}
}

// Insert adds a particle to the tree. It returns false, without modifying
// the tree, if the particle's position lies outside this node's region. The
// root region should cover the full simulation bounds so that never happens
// in practice, but an out-of-bounds insert must not panic.
func (q *Quadtree) Insert(p *Particle) bool {
	if !q.bounds.ContainsPoint(p.Position) {
		return false
	}

	if !q.divided {
		// Nodes below the minimum size never subdivide, so a pile of
		// coincident particles can't recurse forever.
		if len(q.particles) < q.capacity || q.bounds.Width <= minNodeSize {
			q.particles = append(q.particles, p)
			return true
		}
		q.subdivide()
	}

	// Exactly one child contains the point (half-open bounds). If rounding
	// in the child extents refuses an in-bounds point anyway, the parent
	// keeps it rather than dropping it from the index.
	if q.nw.Insert(p) || q.ne.Insert(p) || q.sw.Insert(p) || q.se.Insert(p) {
		return true
	}
	q.particles = append(q.particles, p)
	return true
}

// subdivide splits the node into four quadrants and pushes its particles
// down into them. The node stops being a leaf. The east and south children
// run to the parent's stored edges rather than midpoint plus half-extent, so
// float rounding can't open a sliver no child covers.
func (q *Quadtree) subdivide() {
	hw := q.bounds.Width / 2
	hh := q.bounds.Height / 2
	mx := q.bounds.X + hw
	my := q.bounds.Y + hh
	ew := q.bounds.X + q.bounds.Width - mx
	sh := q.bounds.Y + q.bounds.Height - my
	q.nw = NewQuadtree(Rect{q.bounds.X, q.bounds.Y, hw, hh}, q.capacity)
	q.ne = NewQuadtree(Rect{mx, q.bounds.Y, ew, hh}, q.capacity)
	q.sw = NewQuadtree(Rect{q.bounds.X, my, hw, sh}, q.capacity)
	q.se = NewQuadtree(Rect{mx, my, ew, sh}, q.capacity)
	q.divided = true

	kept := q.particles[:0]
	for _, p := range q.particles {
		if !(q.nw.Insert(p) || q.ne.Insert(p) || q.sw.Insert(p) || q.se.Insert(p)) {
			kept = append(kept, p)
		}
	}
	q.particles = kept
}

// Query appends to out every indexed particle whose position lies in region,
// and returns the extended slice. Passing a reused buffer keeps the force
// pass allocation-free. A subtree is skipped entirely when its bounds do not
// intersect the region.
func (q *Quadtree) Query(region Rect, out []*Particle) []*Particle {
	if !q.bounds.Intersects(region) {
		return out
	}

	if q.divided {
		out = q.nw.Query(region, out)
		out = q.ne.Query(region, out)
		out = q.sw.Query(region, out)
		out = q.se.Query(region, out)
	}

	// Divided nodes can still hold particles the children refused.
	for _, p := range q.particles {
		if region.ContainsPoint(p.Position) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of particles stored in the subtree.
func (q *Quadtree) Len() int {
	n := len(q.particles)
	if q.divided {
		n += q.nw.Len() + q.ne.Len() + q.sw.Len() + q.se.Len()
	}
	return n
}
