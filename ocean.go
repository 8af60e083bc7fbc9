package lettersea

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// tickSeconds converts tick counts to the seconds gween works in, assuming
// the canonical 60 ticks per second.
const tickSeconds = float32(1.0 / 60.0)

// RenderState is the per-particle handoff to the drawing collaborator: the
// core never draws.
type RenderState struct {
	X, Y     float64
	Rotation float64
	Glyph    rune
	Alpha    float64
}

// Ocean owns the particles, the active formations, and everything a tick
// touches: the quadtree snapshot, the force field, the alpha tweens, and the
// throttle state for an attached word feed. There are no package-level
// counters or queues; all simulation state lives here.
//
// Ocean is single-threaded by design: one Update call runs a full tick to
// completion, and nothing else may mutate the ocean concurrently. The only
// concurrency-aware piece is [WordFeed], which external producers may push
// into from other goroutines.
type Ocean struct {
	cfg Config

	particles  []*Particle
	formations []*Formation

	// center is the attractor point (typically the pointer position).
	center Vec2

	forces   *forceField
	queryBuf []*Particle

	fades []*alphaTween

	feed      *WordFeed
	feedTimer int
}

// NewOcean creates an empty ocean with the given tuning.
func NewOcean(cfg Config) *Ocean {
	if cfg.Bounds.Width <= 0 || cfg.Bounds.Height <= 0 {
		cfg.Bounds = DefaultConfig().Bounds
	}
	o := &Ocean{
		cfg:      cfg,
		center:   cfg.Bounds.Center(),
		queryBuf: make([]*Particle, 0, 64),
	}
	o.forces = newForceField(&o.cfg)
	return o
}

// Config returns a pointer to the ocean's config for live tuning.
func (o *Ocean) Config() *Config {
	return &o.cfg
}

// Particles returns the ocean's particles. The returned slice MUST NOT be
// mutated.
func (o *Ocean) Particles() []*Particle {
	return o.particles
}

// Formations returns the active (non-dissolved) formations. The returned
// slice MUST NOT be mutated.
func (o *Ocean) Formations() []*Formation {
	return o.formations
}

// Spawn adds one free particle at the given position and returns it.
func (o *Ocean) Spawn(glyph rune, pos Vec2) *Particle {
	p := NewParticle(glyph, pos)
	p.Alpha = o.cfg.IdleAlpha
	o.particles = append(o.particles, p)
	return p
}

// Scatter spawns count particles at random positions inside the bounds,
// cycling through the non-space characters of alphabet. It is the usual way
// to seed an ocean.
func (o *Ocean) Scatter(alphabet string, count int) {
	glyphs := make([]rune, 0, len(alphabet))
	for _, ch := range alphabet {
		if ch != ' ' {
			glyphs = append(glyphs, ch)
		}
	}
	if len(glyphs) == 0 {
		return
	}
	b := o.cfg.Bounds
	for i := 0; i < count; i++ {
		pos := Vec2{
			X: b.X + rand.Float64()*b.Width,
			Y: b.Y + rand.Float64()*b.Height,
		}
		p := o.Spawn(glyphs[i%len(glyphs)], pos)
		speed := o.cfg.ScatterSpeed.Random()
		angle := rand.Float64() * 2 * math.Pi
		p.Velocity = Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed}
	}
}

// SetCenter moves the attractor point every non-dragged, non-launched
// particle is pulled toward. Typically follows the pointer.
func (o *Ocean) SetCenter(p Vec2) {
	o.center = p
}

// Center returns the current attractor point.
func (o *Ocean) Center() Vec2 {
	return o.center
}

// FormWord creates a new formation for word, anchored at the current
// attractor point and heading in direction radians, recruits the nearest
// free matching particles, and computes their initial targets. Safe to call
// repeatedly; every call is an independent formation, and letters already
// claimed by an active formation are not stolen. The new word joins the
// force pass on the next tick.
func (o *Ocean) FormWord(word string, direction float64) {
	f := newFormation(word, o.center, direction)
	f.recruit(o.particles)
	f.updateTargets(&o.cfg)
	o.formations = append(o.formations, f)

	for _, p := range f.RecruitedLetters() {
		o.fadeAlpha(p, o.cfg.RecruitedAlpha, o.cfg.AlphaFadeTicks)
	}
}

// Update runs one full simulation tick: drain the word feed, rebuild the
// quadtree, advance and reap formations, run the force pass and recruited
// steering, then integrate every particle. The quadtree built here is
// read-only for the rest of the tick, so every particle sees the same
// snapshot.
func (o *Ocean) Update() {
	o.drainFeed()

	index := NewQuadtree(o.cfg.Bounds, o.cfg.QuadtreeCapacity)
	for _, p := range o.particles {
		index.Insert(p)
	}

	o.advanceFormations()

	o.forces.step()
	for _, p := range o.particles {
		if !p.Dragging && !p.Launched() {
			o.queryBuf = o.forces.apply(p, index, o.center, o.queryBuf)
		}
		if p.Recruited {
			o.swim(p)
		}
	}

	for _, p := range o.particles {
		p.Integrate(o.cfg.MaxSpeed, o.cfg.SpeedDecel, o.cfg.RotationJitter)
	}

	o.updateFades()
}

// advanceFormations steps every active formation's path and targets,
// dissolves those past the threshold, and compacts the active set.
func (o *Ocean) advanceFormations() {
	kept := o.formations[:0]
	for _, f := range o.formations {
		f.advance(&o.cfg)
		if f.shouldDissolve(&o.cfg) {
			for _, p := range f.RecruitedLetters() {
				o.fadeAlpha(p, o.cfg.IdleAlpha, o.cfg.AlphaFadeTicks)
			}
			f.dissolve(&o.cfg)
		}
		if !f.Dissolved() {
			f.updateTargets(&o.cfg)
			kept = append(kept, f)
		}
	}
	o.formations = kept
}

// swim steers a recruited particle toward its slot target with an arrive
// behavior: full desired speed far out, decelerating inside ArriveRadius.
// A corrective torque aligns the letter with its formation's travel
// orientation, and angular velocity is damped so the word reads upright.
func (o *Ocean) swim(p *Particle) {
	if p.HasTarget {
		toTarget := p.Target.Sub(p.Position)
		dist := toTarget.Len()
		if dist > 0 {
			speed := o.cfg.MaxSpeed
			if dist < o.cfg.ArriveRadius {
				speed *= dist / o.cfg.ArriveRadius
			}
			desired := toTarget.Scale(speed / dist)
			steer := desired.Sub(p.Velocity).Scale(o.cfg.SwimStrength)
			p.ApplyForce(steer)
		}
	}

	if f := o.formationByID(p.FormationID); f != nil {
		diff := wrapAngle(f.Orientation - p.Orientation)
		p.ApplyTorque(diff * o.cfg.AlignTorque * p.momentOfInertia)
	}
	p.AngularVelocity *= o.cfg.AngularDamping
}

// formationByID resolves a particle's weak formation reference. Nil when the
// formation is no longer active.
func (o *Ocean) formationByID(id uuid.UUID) *Formation {
	for _, f := range o.formations {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// RenderStates appends one RenderState per particle to buf and returns the
// extended slice. Call once per frame after Update; passing a reused buffer
// keeps the handoff allocation-free.
func (o *Ocean) RenderStates(buf []RenderState) []RenderState {
	for _, p := range o.particles {
		buf = append(buf, RenderState{
			X:        p.Position.X,
			Y:        p.Position.Y,
			Rotation: p.Orientation,
			Glyph:    p.Glyph,
			Alpha:    p.Alpha,
		})
	}
	return buf
}

// GrabAt picks up the particle nearest to pos within reach pixels, or
// returns nil. Grabbing is an exclusive override: the particle's velocity
// and accumulated forces are zeroed and ambient physics stops until Release.
func (o *Ocean) GrabAt(pos Vec2, reach float64) *Particle {
	var best *Particle
	bestSq := reach * reach
	for _, p := range o.particles {
		d := p.Position.Sub(pos).LenSq()
		if d <= bestSq {
			best = p
			bestSq = d
		}
	}
	if best != nil {
		o.Grab(best)
	}
	return best
}

// Grab puts p under pointer control, cancelling all physics on it.
func (o *Ocean) Grab(p *Particle) {
	p.Dragging = true
	p.Velocity = Vec2{}
	p.acceleration = Vec2{}
	p.AngularVelocity = 0
	p.angularAcceleration = 0
	p.dragSteps = 0
}

// Drag moves a grabbed particle to pos, recording the displacement so
// Release can infer a throw velocity.
func (o *Ocean) Drag(p *Particle, pos Vec2) {
	if !p.Dragging {
		return
	}
	delta := pos.Sub(p.Position)
	p.dragTrail[p.dragSteps%len(p.dragTrail)] = delta
	p.dragSteps++
	p.Position = pos
}

// Release lets go of a grabbed particle, throwing it with a velocity
// averaged from the most recent drag displacements. The particle ignores
// ambient forces for LaunchTicks so the throw reads cleanly.
func (o *Ocean) Release(p *Particle) {
	if !p.Dragging {
		return
	}
	p.Dragging = false

	n := p.dragSteps
	if n > len(p.dragTrail) {
		n = len(p.dragTrail)
	}
	if n > 0 {
		var sum Vec2
		for i := 0; i < n; i++ {
			sum = sum.Add(p.dragTrail[i])
		}
		p.Velocity = sum.Scale(1 / float64(n))
		p.launchTicks = o.cfg.LaunchTicks
	}
}

// AttachFeed connects a word feed; Update drains it at the throttled cadence
// the feed's own pacing state allows, FeedDrainInterval ticks apart.
func (o *Ocean) AttachFeed(f *WordFeed) {
	o.feed = f
}

// drainFeed pulls at most one word per FeedDrainInterval ticks from the
// attached feed and forms it heading in a random direction. The tick loop
// never waits on the producer.
func (o *Ocean) drainFeed() {
	if o.feed == nil {
		return
	}
	o.feedTimer++
	if o.feedTimer < o.cfg.FeedDrainInterval {
		return
	}
	o.feedTimer = 0
	if word, ok := o.feed.next(); ok {
		o.FormWord(word, rand.Float64()*2*math.Pi)
	}
}
