package portal

import (
	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/event"
	"github.com/go-gl/mathgl/mgl64"
)

// RedirectedEvent is emitted for every hop of a shot through a portal
type RedirectedEvent struct {
	Slot      int
	From, To  int
	Entry     mgl64.Vec3
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Remaining float64
	Hop       int
}

func (e RedirectedEvent) Type() event.EventType {
	return event.PORTAL_REDIRECTED
}

type PlacedEvent struct {
	Slot      int
	Anchor    *actor.Collider
	Transform actor.Transform
	Replaced  bool
	Hops      int
}

func (e PlacedEvent) Type() event.EventType {
	return event.PORTAL_PLACED
}

// AbortedEvent is emitted when a shot ends without a placement
type AbortedEvent struct {
	Slot   int
	Status Status
	Hops   int
}

func (e AbortedEvent) Type() event.EventType {
	return event.PORTAL_ABORTED
}
