package movement

import (
	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/event"
	"github.com/go-gl/mathgl/mgl64"
)

type LandedEvent struct {
	Position mgl64.Vec3
	Surface  *actor.Collider
}

func (e LandedEvent) Type() event.EventType { return event.LANDED }

type LeftGroundEvent struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

func (e LeftGroundEvent) Type() event.EventType { return event.LEFT_GROUND }

type JumpedEvent struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

func (e JumpedEvent) Type() event.EventType { return event.JUMPED }

type SurfEnterEvent struct {
	Surface *actor.Collider
	Normal  mgl64.Vec3
}

func (e SurfEnterEvent) Type() event.EventType { return event.SURF_ENTER }

type SurfExitEvent struct {
	Position mgl64.Vec3
}

func (e SurfExitEvent) Type() event.EventType { return event.SURF_EXIT }

// VelocityClippedEvent replaces the debug print of every plane clip
type VelocityClippedEvent struct {
	Surface *actor.Collider
	Normal  mgl64.Vec3
	Before  mgl64.Vec3
	After   mgl64.Vec3
}

func (e VelocityClippedEvent) Type() event.EventType { return event.VELOCITY_CLIPPED }

type PenetrationResolvedEvent struct {
	Collider  *actor.Collider
	Direction mgl64.Vec3
	Depth     float64
	// Surfing resolutions clip velocity instead of moving the controller
	Surfing bool
}

func (e PenetrationResolvedEvent) Type() event.EventType { return event.PENETRATION_RESOLVED }
