// Package ecs provides ECS adapters for outfit characters.
//
// [NewDonburiSink] bridges character change events (part, visibility and
// color changes) into a [Donburi] world as typed events. Subscribe to
// [CharacterEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	character.SetEventSink(sink)
//
// Characters can also live on entities through [CharacterComponent]; call
// [UpdateCharacters] once per frame to advance them all.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
