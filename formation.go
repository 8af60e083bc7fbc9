package lettersea

import (
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Formation coordinates one in-flight word: the subset of particles recruited
// to spell it and the curved path the word travels from its origin.
//
// Lifecycle: created by [Ocean.FormWord] → recruits available particles →
// updates letter targets every tick while advancing along the path → marked
// dissolved once progress passes the threshold, releasing its letters back
// to ambient physics. Transitions are purely progress-based; there is no
// proximity check before the word starts travelling.
type Formation struct {
	// ID identifies this formation; particles carry it as a weak
	// back-reference while recruited.
	ID uuid.UUID
	// Text is the word being formed, uppercased. Fixed at creation.
	Text string
	// Origin is the point the path departs from. Fixed at creation.
	Origin Vec2
	// Direction is the initial heading of the path in radians. Fixed at
	// creation.
	Direction float64

	// Progress is the path parameter, advanced by PathRate each tick.
	// The path is complete at 1.
	Progress float64
	// Orientation is the heading of the path's instantaneous velocity, so
	// the word faces its direction of travel rather than pointing radially.
	// Recomputed each tick.
	Orientation float64

	// slots holds one entry per character of Text, in word order. A nil
	// entry is a slot no available particle could fill; the word forms with
	// a gap there.
	slots []*Particle

	dissolved bool

	// center is the formation's current position along the path.
	center Vec2
}

// newFormation creates a formation anchored at origin. Call recruit before
// the next tick so its letters join the force pass together.
func newFormation(word string, origin Vec2, direction float64) *Formation {
	text := strings.ToUpper(word)
	return &Formation{
		ID:          uuid.New(),
		Text:        text,
		Origin:      origin,
		Direction:   direction,
		Orientation: direction,
		slots:       make([]*Particle, len([]rune(text))),
		center:      origin,
	}
}

// Dissolved reports whether the formation has released its letters. Terminal.
func (f *Formation) Dissolved() bool {
	return f.dissolved
}

// RecruitedLetters returns the recruited particles in word order, skipping
// unfilled slots.
func (f *Formation) RecruitedLetters() []*Particle {
	out := make([]*Particle, 0, len(f.slots))
	for _, p := range f.slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// recruit claims one free particle per character of the word, choosing the
// nearest matching glyph to the formation origin for each slot. A character
// with no free matching particle leaves its slot empty; non-fatal, the word
// forms with a gap.
func (f *Formation) recruit(particles []*Particle) {
	for i, ch := range []rune(f.Text) {
		var best *Particle
		bestSq := math.MaxFloat64
		for _, p := range particles {
			if p.Recruited || p.Dragging || p.Glyph != ch {
				continue
			}
			d := p.Position.Sub(f.Origin).LenSq()
			if d < bestSq {
				best = p
				bestSq = d
			}
		}
		if best == nil {
			slog.Debug("no free particle for slot",
				"word", f.Text, "slot", i, "glyph", string(ch))
			continue
		}
		best.Recruited = true
		best.FormationID = f.ID
		best.SlotIndex = i
		f.slots[i] = best
	}
}

// advance moves the formation along its path by one tick and updates the
// travel orientation.
//
// The path leaves the origin, peaks at FormationMaxDistance at the midpoint,
// and can curve back: radius = sin(t·π)·maxDistance, heading sweeping
// t·π·CurveAmount past the spawn direction.
func (f *Formation) advance(cfg *Config) {
	if f.dissolved {
		return
	}
	f.Progress += cfg.PathRate

	t := f.Progress
	radius := math.Sin(t*math.Pi) * cfg.FormationMaxDistance
	angle := f.Direction + t*math.Pi*cfg.CurveAmount

	f.center = Vec2{
		X: f.Origin.X + radius*math.Cos(angle),
		Y: f.Origin.Y + radius*math.Sin(angle),
	}

	// Orientation follows the path's velocity vector, differentiated
	// analytically: r' = π·M·cos(tπ), θ' = π·curve.
	dr := math.Pi * cfg.FormationMaxDistance * math.Cos(t*math.Pi)
	da := math.Pi * cfg.CurveAmount
	dx := dr*math.Cos(angle) - radius*math.Sin(angle)*da
	dy := dr*math.Sin(angle) + radius*math.Cos(angle)*da
	if dx != 0 || dy != 0 {
		f.Orientation = math.Atan2(dy, dx)
	}
}

// updateTargets lays the recruited letters out along a line centered on the
// formation's current position, rotated to the travel orientation, with
// fixed spacing. Empty slots contribute no target but still occupy width, so
// a gapped word keeps its letter positions.
func (f *Formation) updateTargets(cfg *Config) {
	n := len(f.slots)
	if n == 0 {
		return
	}
	halfWidth := float64(n-1) * cfg.LetterSpacing / 2
	cos := math.Cos(f.Orientation)
	sin := math.Sin(f.Orientation)

	for i, p := range f.slots {
		if p == nil {
			continue
		}
		off := float64(i)*cfg.LetterSpacing - halfWidth
		p.Target = Vec2{
			X: f.center.X + off*cos,
			Y: f.center.Y + off*sin,
		}
		p.HasTarget = true
	}
}

// shouldDissolve reports whether path progress has passed the dissolve
// threshold.
func (f *Formation) shouldDissolve(cfg *Config) bool {
	return f.Progress > cfg.DissolveAt
}

// dissolve releases every recruited letter back to ambient physics, damping
// its velocity so it doesn't keep full travel speed. Idempotent; the second
// call is a no-op.
func (f *Formation) dissolve(cfg *Config) {
	if f.dissolved {
		return
	}
	f.dissolved = true
	for i, p := range f.slots {
		if p == nil {
			continue
		}
		p.release()
		p.Velocity = p.Velocity.Scale(cfg.ReleaseDamping)
		f.slots[i] = nil
	}
}
