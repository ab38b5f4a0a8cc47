// Package ecs provides ECS adapters for texticles' live stats.
//
// The primary adapter is [NewDonburiSink], which publishes the particle count
// and measured frame rate into a [Donburi] world as typed events whenever the
// pool is rebuilt or the frame-rate window rolls over. Subscribe to
// [StatsEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sim, err := texticles.New(w, h, texticles.WithStatsSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
