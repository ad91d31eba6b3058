// Package ecs provides ECS adapters for the hit-test pointer events.
//
// The primary adapter is [NewDonburiSink], which forwards every event the
// input manager dispatches into a [Donburi] world as a typed event.
// Subscribe to [InteractionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	input.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
