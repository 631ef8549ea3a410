// Package ecs provides ECS adapters for kenburns show events.
//
// The primary adapter is [NewDonburiSink], which forwards scheduler events
// (image changes, pan start/stop, fades, pause/resume, failed cycles) into a
// [Donburi] world as typed events. Subscribe to [ShowEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	show.Scheduler().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
