package ecs

import (
	"github.com/phanxgames/kenburns"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ShowEventType is the Donburi event type for slideshow events.
// Subscribe to this in your ECS systems to react to image changes and pans.
var ShowEventType = events.NewEventType[kenburns.ShowEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Show events are published to ShowEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) kenburns.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event kenburns.ShowEvent) {
	ShowEventType.Publish(s.world, event)
}
