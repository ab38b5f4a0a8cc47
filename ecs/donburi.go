package ecs

import (
	"github.com/phanxgames/texticles"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StatsEventType is the Donburi event type for texticles stats.
var StatsEventType = events.NewEventType[texticles.Stats]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a StatsSink backed by a Donburi world.
// Stats are published to StatsEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) texticles.StatsSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitStats(stats texticles.Stats) {
	StatsEventType.Publish(s.world, stats)
}
