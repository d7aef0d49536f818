// Package ecs bridges a tilewalk surface into a [Donburi] world.
//
// [NewDonburiSink] publishes every dispatched event as a typed Donburi event,
// together with the id of the node that consumed it. Subscribe to [EventType]
// in your systems to receive them.
//
// [Mirror] keeps one entity per node, carrying a [NodeData] component that is
// refreshed on every Sync, so systems can query positions and layers without
// touching the surface.
//
// Usage:
//
//	world := donburi.NewWorld()
//	s.Dispatcher().SetEventSink(ecs.NewDonburiSink(world))
//	mirror := ecs.NewMirror(world, s)
//	// once per frame, after s.Update:
//	mirror.Sync()
//	ecs.EventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
