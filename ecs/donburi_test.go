package ecs

import (
	"errors"
	"testing"
	"time"

	"github.com/phanxgames/kenburns"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []kenburns.ShowEvent
	ShowEventType.Subscribe(world, func(w donburi.World, e kenburns.ShowEvent) {
		received = append(received, e)
	})

	path := kenburns.NewCameraPath(
		kenburns.NewCameraState(100, 100),
		kenburns.NewCameraState(300, 200),
		true,
	)
	sink.EmitEvent(kenburns.ShowEvent{
		Type:     kenburns.EventImageChanged,
		Path:     path,
		Score:    0.75,
		Duration: 14 * time.Second,
	})

	errBoom := errors.New("boom")
	sink.EmitEvent(kenburns.ShowEvent{
		Type: kenburns.EventCycleFailed,
		Err:  errBoom,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	ShowEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != kenburns.EventImageChanged || e0.Score != 0.75 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Path.End.CenterX != 300 || e0.Duration != 14*time.Second {
		t.Errorf("event 0 path: %+v, duration %v", e0.Path, e0.Duration)
	}

	e1 := received[1]
	if e1.Type != kenburns.EventCycleFailed || !errors.Is(e1.Err, errBoom) {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink kenburns.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	ShowEventType.Subscribe(world, func(w donburi.World, e kenburns.ShowEvent) {
		count1++
	})
	ShowEventType.Subscribe(world, func(w donburi.World, e kenburns.ShowEvent) {
		count2++
	})

	sink.EmitEvent(kenburns.ShowEvent{Type: kenburns.EventPanStopped})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
