package lettersea

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// forceField computes the ambient forces on each particle: pairwise
// repulsion and attraction via the quadtree, collision spin torque, a
// constant pull toward the attractor point, and an optional opensimplex
// flow-field drift. Owned by the Ocean; one instance per simulation.
type forceField struct {
	cfg   *Config
	noise opensimplex.Noise
	tick  float64
}

func newForceField(cfg *Config) *forceField {
	return &forceField{
		cfg:   cfg,
		noise: opensimplex.New(cfg.DriftSeed),
	}
}

// step advances the flow field's time dimension by one tick.
func (f *forceField) step() {
	f.tick++
}

// apply accumulates one tick's ambient forces on p using the index snapshot.
// buf is a reusable scratch slice for quadtree queries; the grown slice is
// returned so the caller can keep it. Dragged and launched particles are the
// caller's responsibility; apply assumes p is subject to ambient physics.
func (f *forceField) apply(p *Particle, index *Quadtree, center Vec2, buf []*Particle) []*Particle {
	cfg := f.cfg

	// One query box covers both the repulsion radius and the attraction
	// band; the per-pair distance tests sort contributions out.
	reach := cfg.RepulsionRadius
	if cfg.AttractionMax > reach {
		reach = cfg.AttractionMax
	}
	buf = buf[:0]
	buf = index.Query(Rect{
		X:      p.Position.X - reach,
		Y:      p.Position.Y - reach,
		Width:  reach * 2,
		Height: reach * 2,
	}, buf)

	var repulsion Vec2
	var attraction Vec2
	attractCount := 0

	repulsionSq := cfg.RepulsionRadius * cfg.RepulsionRadius
	attractMinSq := cfg.AttractionMin * cfg.AttractionMin
	attractMaxSq := cfg.AttractionMax * cfg.AttractionMax

	for _, other := range buf {
		if other == p {
			continue
		}
		dx := p.Position.X - other.Position.X
		dy := p.Position.Y - other.Position.Y
		distSq := dx*dx + dy*dy

		// Coincident particles contribute nothing; there is no outward
		// normal to push along.
		if distSq == 0 {
			continue
		}

		if distSq < repulsionSq {
			dist := math.Sqrt(distSq)
			// Summed, not averaged over neighbor count. Strength is tuned
			// for the summing variant.
			mag := cfg.RepulsionStrength / dist
			repulsion.X += dx / dist * mag
			repulsion.Y += dy / dist * mag

			f.collisionTorque(p, other, dx, dy, dist)
			continue
		}

		if distSq > attractMinSq && distSq < attractMaxSq {
			dist := math.Sqrt(distSq)
			attraction.X -= dx / dist * cfg.AttractionStrength
			attraction.Y -= dy / dist * cfg.AttractionStrength
			attractCount++
		}
	}

	p.ApplyForce(repulsion)
	if attractCount > 0 {
		p.ApplyForce(attraction.Scale(1 / float64(attractCount)))
	}

	// Centering pull: constant magnitude toward the attractor, not gated by
	// distance.
	toCenter := center.Sub(p.Position)
	if l := toCenter.Len(); l > 0 {
		p.ApplyForce(toCenter.Scale(cfg.CenterStrength / l))
	}

	if cfg.DriftStrength > 0 {
		p.ApplyForce(f.drift(p.Position))
	}

	return buf
}

// collisionTorque spins up two particles on a fast close pass: a tangential
// term from the relative velocity and an exchange term from the difference
// in their angular velocities, both scaled by impact speed. Only evaluated
// for pairs already inside the repulsion radius.
func (f *forceField) collisionTorque(p, other *Particle, dx, dy, dist float64) {
	rel := other.Velocity.Sub(p.Velocity)
	speed := rel.Len()
	if speed <= f.cfg.CollisionSpeedThreshold {
		return
	}

	// Tangent is the outward normal rotated a quarter turn.
	nx, ny := dx/dist, dy/dist
	tangential := rel.Dot(Vec2{-ny, nx})

	torque := tangential*speed*f.cfg.SpinFactor +
		(other.AngularVelocity-p.AngularVelocity)*speed*f.cfg.SpinExchange
	p.ApplyTorque(torque)
}

// drift samples the flow field at a position: noise picks a current
// direction and strength that change slowly across space and time.
func (f *forceField) drift(pos Vec2) Vec2 {
	x := pos.X * f.cfg.DriftScale
	y := pos.Y * f.cfg.DriftScale
	t := f.tick * f.cfg.DriftTimeScale

	angle := f.noise.Eval3(x, y, t) * math.Pi * 2
	mag := (f.noise.Eval3(x+100, y+100, t) + 1) * 0.5 * f.cfg.DriftStrength
	return Vec2{math.Cos(angle) * mag, math.Sin(angle) * mag}
}
