// Package texticles renders a swarm of particles that morphs into the shape
// of arbitrary text, built on [Ebitengine].
//
// Text is rasterized offscreen into a set of target points; a resizable pool
// of particles springs toward them while a pointer force field pushes, pulls,
// swirls or scrambles the particles nearby, and a palette colors them every
// frame.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	sim, err := texticles.New(800, 600, texticles.WithSettings(settings))
//	if err != nil {
//		log.Fatal(err)
//	}
//	texticles.Run(sim, texticles.RunConfig{Title: "texticles", ShowFPS: true})
//
// For full control, call [Simulation.Step] and [Simulation.Render] from your
// own [ebiten.Game], or drive a [Headless] simulation to render PNG snapshots
// without a window.
//
// # Pieces
//
//   - [Rasterizer] turns text into [TargetPoint]s and an optional [ColorSample].
//   - [Pool] owns the particles; [Pool.Rebuild], [Pool.Scatter], [Pool.Resize].
//   - [Mode] selects one of eight pointer [Field]s.
//   - [Integrate] advances the damped spring physics.
//   - [Resolve] maps a particle to its [Palette] color.
//   - [Renderer] draws discs and sampled trails onto a [Canvas].
//   - [Driver] sequences a tick and measures the frame rate.
//
// [Ebitengine]: https://ebitengine.org
package texticles
