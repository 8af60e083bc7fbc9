package lettersea

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	// particleRadius is the fixed visual radius used for the moment of
	// inertia. Letters all render at the same size, so there is no per-glyph
	// variation.
	particleRadius = 12.0
	// particleMass is fixed at 1; forces translate directly to acceleration.
	particleMass = 1.0
)

// Particle is a single letter in the ocean: one glyph with linear and
// rotational physics state plus word-recruitment state.
//
// Position, velocity, and orientation are mutated every tick by the
// integrator. Recruitment fields are owned by the [Formation] currently
// listed in FormationID; the formation owns the particle's recruitment for
// its lifetime but never the particle itself.
type Particle struct {
	// Glyph is the letter this particle renders. Immutable after creation.
	Glyph rune

	Position Vec2
	Velocity Vec2
	// acceleration accumulates force/mass between ApplyForce and Integrate.
	acceleration Vec2

	// Orientation is the particle's rotation in radians.
	Orientation     float64
	AngularVelocity float64
	// angularAcceleration accumulates torque/momentOfInertia between
	// ApplyTorque and Integrate.
	angularAcceleration float64
	momentOfInertia     float64

	// Alpha is the render alpha, driven by tweens on recruit and release.
	Alpha float64

	// Recruited is true if and only if exactly one active formation lists
	// this particle among its letters.
	Recruited bool
	// FormationID identifies the owning formation for lookup; uuid.Nil when
	// free. A weak reference; it never implies ownership of the particle.
	FormationID uuid.UUID
	// SlotIndex is this particle's character position in the owning word.
	// Meaningless while not recruited.
	SlotIndex int
	// Target is the current slot target position. Valid only when HasTarget.
	Target    Vec2
	HasTarget bool

	// Dragging suppresses all physics while the pointer holds the particle.
	Dragging bool
	// launchTicks counts down after a throw; while positive the particle
	// ignores ambient forces so the throw reads cleanly.
	launchTicks int

	// dragTrail holds the last few pointer deltas while dragging, for
	// inferring a throw velocity on release.
	dragTrail [4]Vec2
	dragSteps int
}

// NewParticle creates a free particle at the given position.
func NewParticle(glyph rune, pos Vec2) *Particle {
	return &Particle{
		Glyph:           glyph,
		Position:        pos,
		Orientation:     (rand.Float64() - 0.5) * 0.6,
		momentOfInertia: 0.5 * particleMass * particleRadius * particleRadius,
		Alpha:           1,
	}
}

// Launched reports whether the particle is in its post-throw window, during
// which ambient forces are suppressed.
func (p *Particle) Launched() bool {
	return p.launchTicks > 0
}

// ApplyForce accumulates f/mass into the particle's acceleration.
func (p *Particle) ApplyForce(f Vec2) {
	p.acceleration.X += f.X / particleMass
	p.acceleration.Y += f.Y / particleMass
}

// ApplyTorque accumulates t/momentOfInertia into the particle's angular
// acceleration.
func (p *Particle) ApplyTorque(t float64) {
	p.angularAcceleration += t / p.momentOfInertia
}

// Integrate advances the particle by one tick and resets its accumulators.
// Dragged particles hold still; the pointer owns them.
//
// The speed limit is soft: excess over maxSpeed decays by decel per tick
// rather than clamping, so collisions stay visually energetic. Free
// particles also get a small random angular perturbation each tick to
// prevent rotational stasis.
func (p *Particle) Integrate(maxSpeed, decel, jitter float64) {
	if p.Dragging {
		p.acceleration = Vec2{}
		p.angularAcceleration = 0
		return
	}

	p.Velocity = p.Velocity.Add(p.acceleration)

	speed := p.Velocity.Len()
	if speed > maxSpeed {
		newSpeed := speed - (speed-maxSpeed)*decel
		p.Velocity = p.Velocity.Scale(newSpeed / speed)
	}

	p.Position = p.Position.Add(p.Velocity)
	p.acceleration = Vec2{}

	p.AngularVelocity += p.angularAcceleration
	if !p.Recruited {
		p.AngularVelocity += (rand.Float64() - 0.5) * 2 * jitter
	}
	p.Orientation += p.AngularVelocity
	p.angularAcceleration = 0

	if p.launchTicks > 0 {
		p.launchTicks--
	}
}

// release clears recruitment state. Called by the owning formation on
// dissolve; velocity damping is the formation's job.
func (p *Particle) release() {
	p.Recruited = false
	p.FormationID = uuid.Nil
	p.SlotIndex = 0
	p.HasTarget = false
}
