package ecs

import (
	"testing"

	"github.com/phanxgames/texticles"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitStats(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []texticles.Stats
	StatsEventType.Subscribe(world, func(w donburi.World, s texticles.Stats) {
		received = append(received, s)
	})

	sink.EmitStats(texticles.Stats{Particles: 500, FPS: 60})
	sink.EmitStats(texticles.Stats{Particles: 120, FPS: 58})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before processing", len(received))
	}
	StatsEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Particles != 500 || received[0].FPS != 60 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Particles != 120 {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_ReceivesRebuildStats(t *testing.T) {
	world := donburi.NewWorld()

	var last texticles.Stats
	var count int
	StatsEventType.Subscribe(world, func(w donburi.World, s texticles.Stats) {
		last = s
		count++
	})

	sim, err := texticles.New(800, 600, texticles.WithStatsSink(NewDonburiSink(world)))
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.SetText(""); err != nil {
		t.Fatal(err)
	}
	events.ProcessAllEvents(world)

	if count != 2 {
		t.Fatalf("expected 2 rebuild events, got %d", count)
	}
	if last.Particles != texticles.MinParticles {
		t.Errorf("last particles = %d, want %d", last.Particles, texticles.MinParticles)
	}
}
