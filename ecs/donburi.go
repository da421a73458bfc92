package ecs

import (
	"github.com/phanxgames/outfit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// CharacterEventType is the Donburi event type for outfit character events.
var CharacterEventType = events.NewEventType[outfit.Event]()

// CharacterData is the component payload attaching a character to an entity.
type CharacterData struct {
	Character *outfit.Character
}

// CharacterComponent stores a character on an entity.
var CharacterComponent = donburi.NewComponentType[CharacterData]()

var characterQuery = donburi.NewQuery(filter.Contains(CharacterComponent))

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Character events are published to CharacterEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) outfit.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event outfit.Event) {
	CharacterEventType.Publish(s.world, event)
}

// AddCharacter creates an entity holding c.
func AddCharacter(world donburi.World, c *outfit.Character) donburi.Entity {
	e := world.Create(CharacterComponent)
	CharacterComponent.SetValue(world.Entry(e), CharacterData{Character: c})
	return e
}

// UpdateCharacters advances the animation of every character entity by dt
// seconds.
func UpdateCharacters(world donburi.World, dt float32) {
	characterQuery.Each(world, func(entry *donburi.Entry) {
		if c := CharacterComponent.Get(entry).Character; c != nil {
			c.Update(dt)
		}
	})
}
