package lettersea

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// alphaTween drives one particle's render alpha toward a target value.
// The ocean owns the active set and advances it once per tick; there is no
// global animation manager. Starting a new tween for a particle replaces any
// tween already running on it.
type alphaTween struct {
	tween  *gween.Tween
	target *Particle
	done   bool
}

// update advances the tween by dt seconds and writes the value through to
// the particle.
func (a *alphaTween) update(dt float32) {
	if a.done {
		return
	}
	val, finished := a.tween.Update(dt)
	a.target.Alpha = float64(val)
	a.done = finished
}

// fadeAlpha starts (or restarts) an alpha transition on p over the given
// number of ticks.
func (o *Ocean) fadeAlpha(p *Particle, to float64, ticks int) {
	duration := float32(ticks) * tickSeconds
	t := &alphaTween{
		tween:  gween.New(float32(p.Alpha), float32(to), duration, ease.OutQuad),
		target: p,
	}
	for i, existing := range o.fades {
		if existing.target == p {
			o.fades[i] = t
			return
		}
	}
	o.fades = append(o.fades, t)
}

// updateFades advances all active alpha tweens by one tick and drops the
// finished ones, preserving order.
func (o *Ocean) updateFades() {
	kept := o.fades[:0]
	for _, t := range o.fades {
		t.update(tickSeconds)
		if !t.done {
			kept = append(kept, t)
		}
	}
	o.fades = kept
}
