// Package lettersea simulates an ocean of letter-shaped particles that
// self-organize into words on command, then disperse.
//
// The package is the simulation core only: a frame-driven 2D physics engine
// with pairwise repulsion and attraction, spin dynamics with collision
// torque, a quadtree spatial index, and a recruitment protocol that pulls
// free letters into a word travelling along a curved path. Drawing, fonts,
// and text generation are collaborators; the core hands them per-particle
// render state and consumes word tokens from them.
//
// # Quick start
//
// The simplest way to see an ocean is [Run], which creates an Ebitengine
// window, draws each letter with a TTF face, and wires mouse drag and the
// pointer attractor for you:
//
//	ocean := lettersea.NewOcean(lettersea.DefaultConfig())
//	ocean.Scatter("THE QUICK BROWN FOX", 300)
//	ocean.FormWord("HELLO", 0)
//	lettersea.Run(ocean, lettersea.RunConfig{
//		Title: "Letter Sea", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself, call [Ocean.Update]
// once per tick, and draw whatever [Ocean.RenderStates] reports.
//
// # Simulation model
//
// One call to [Ocean.Update] is one tick: the quadtree is rebuilt from
// current positions, every active [Formation] advances along its path and
// refreshes letter targets, the force pass runs against the same index
// snapshot, and every [Particle] integrates. Recruiting a word with
// [Ocean.FormWord] takes force effect starting the next tick.
//
// Words can also arrive from a streaming text source through [WordFeed],
// a bounded queue with backpressure that the ocean drains at a throttled
// cadence independent of the producer.
//
// Alpha transitions on recruit and release are tweened via [gween].
//
// [gween]: https://github.com/tanema/gween
// [ebiten.Game]: https://pkg.go.dev/github.com/hajimehoshi/ebiten/v2#Game
package lettersea
