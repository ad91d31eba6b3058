package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	hittest "github.com/Pctg-x8/peridot-sprite-atlas-visualizer-sub000"
)

// InteractionEventType is the Donburi event type for pointer events.
// Subscribe to this in your ECS systems to receive enter, leave, move, down,
// up and click events.
var InteractionEventType = events.NewEventType[hittest.InteractionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are queued on InteractionEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) hittest.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event hittest.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
