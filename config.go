package lettersea

// Config holds every tuning constant for an [Ocean]. The zero value is not
// usable; start from [DefaultConfig] and adjust. All rates are per tick;
// the simulation has no notion of wall-clock time.
type Config struct {
	// Bounds is the simulation region and the quadtree root region. The
	// root region must cover everywhere particles can be; an insert outside
	// it fails silently.
	Bounds Rect

	// MaxSpeed is the soft speed limit in pixels per tick. Particles may
	// exceed it; the excess decays by SpeedDecel each tick instead of being
	// clamped, so collisions overshoot and settle.
	MaxSpeed float64
	// SpeedDecel is the fraction of excess speed removed per tick while a
	// particle is over MaxSpeed. Must be in (0, 1).
	SpeedDecel float64

	// RepulsionRadius is the neighbor distance below which particles push
	// each other apart.
	RepulsionRadius float64
	// RepulsionStrength scales the 1/distance repulsion magnitude.
	// Contributions are summed over neighbors, not averaged, so this is
	// tuned lower than a per-neighbor average would be.
	RepulsionStrength float64

	// AttractionMin and AttractionMax bound the band of neighbor distances
	// (exclusive on both ends) within which a fixed attraction applies.
	AttractionMin float64
	AttractionMax float64
	// AttractionStrength is the fixed attraction magnitude, averaged over
	// the count of contributing neighbors.
	AttractionStrength float64

	// CollisionSpeedThreshold is the minimum relative speed between two
	// repelling particles for collision torque to apply.
	CollisionSpeedThreshold float64
	// SpinFactor scales torque from the tangential component of relative
	// velocity on impact.
	SpinFactor float64
	// SpinExchange scales torque from the difference in the two particles'
	// angular velocities on impact.
	SpinExchange float64

	// CenterStrength is the constant-magnitude pull toward the attractor
	// point, applied to every non-dragged, non-launched particle.
	CenterStrength float64

	// RotationJitter is the half-width of the uniform random angular
	// velocity perturbation applied to free particles each tick. Keeps idle
	// letters visually alive.
	RotationJitter float64

	// DriftStrength scales the opensimplex flow-field current that drifts
	// free particles around the ocean. Zero disables drift.
	DriftStrength float64
	// DriftScale is the spatial frequency of the flow field.
	DriftScale float64
	// DriftTimeScale is how fast the flow field evolves per tick.
	DriftTimeScale float64
	// DriftSeed seeds the flow-field noise.
	DriftSeed int64

	// LetterSpacing is the gap in pixels between adjacent letter slots in a
	// formed word.
	LetterSpacing float64
	// FormationMaxDistance is the maximum radial distance a word travels
	// from its origin, reached at the path midpoint.
	FormationMaxDistance float64
	// CurveAmount bends the word's outward path: the heading sweeps
	// progress·π·CurveAmount radians over the full path.
	CurveAmount float64
	// PathRate is how much path progress a formation gains per tick.
	// Progress runs from 0 at spawn; the path is complete at 1.
	PathRate float64
	// DissolveAt is the progress fraction past which a formation dissolves.
	DissolveAt float64
	// ReleaseDamping is the factor applied to a letter's velocity when its
	// formation dissolves, so letters don't keep full travel speed.
	ReleaseDamping float64

	// ArriveRadius is the distance from a recruited letter's target within
	// which its steering decelerates.
	ArriveRadius float64
	// SwimStrength scales the steering force recruited letters apply toward
	// their targets.
	SwimStrength float64
	// AlignTorque scales the corrective torque aligning a recruited letter
	// with its formation's orientation.
	AlignTorque float64
	// AngularDamping is the per-tick factor applied to a recruited letter's
	// angular velocity. Must be in (0, 1]; lower damps harder.
	AngularDamping float64

	// LaunchTicks is how many ticks a thrown particle ignores ambient
	// physics after release, so the throw reads cleanly.
	LaunchTicks int

	// ScatterSpeed is the range of initial speeds given to particles seeded
	// by Scatter, in a random direction each.
	ScatterSpeed Range

	// QuadtreeCapacity is the particle count above which a quadtree node
	// subdivides into four quadrants.
	QuadtreeCapacity int

	// IdleAlpha and RecruitedAlpha are the render alpha targets for free
	// and recruited particles. Transitions between them are tweened over
	// AlphaFadeTicks.
	IdleAlpha      float64
	RecruitedAlpha float64
	AlphaFadeTicks int

	// FeedDrainInterval is how many ticks pass between attempts to pull the
	// next word from an attached WordFeed.
	FeedDrainInterval int
}

// DefaultConfig returns tuning that reads well at a few hundred particles in
// a 1280x720 ocean.
func DefaultConfig() Config {
	return Config{
		Bounds: Rect{X: 0, Y: 0, Width: 1280, Height: 720},

		MaxSpeed:   4.0,
		SpeedDecel: 0.12,

		RepulsionRadius:   36,
		RepulsionStrength: 6.0,

		AttractionMin:      48,
		AttractionMax:      140,
		AttractionStrength: 0.035,

		CollisionSpeedThreshold: 1.2,
		SpinFactor:              0.004,
		SpinExchange:            0.02,

		CenterStrength: 0.05,

		RotationJitter: 0.002,

		DriftStrength:  0.015,
		DriftScale:     0.004,
		DriftTimeScale: 0.002,
		DriftSeed:      1,

		LetterSpacing:        26,
		FormationMaxDistance: 260,
		CurveAmount:          0.5,
		PathRate:             1.0 / 600.0,
		DissolveAt:           0.92,
		ReleaseDamping:       0.35,

		ArriveRadius:   60,
		SwimStrength:   0.18,
		AlignTorque:    0.08,
		AngularDamping: 0.85,

		LaunchTicks: 30,

		ScatterSpeed: Range{Min: 0.2, Max: 1.2},

		QuadtreeCapacity: 8,

		IdleAlpha:      0.55,
		RecruitedAlpha: 1.0,
		AlphaFadeTicks: 30,

		FeedDrainInterval: 10,
	}
}
