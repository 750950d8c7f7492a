// Package movement implements a kinematic, Source-style character controller:
// ground and air acceleration, friction, slope clipping and surfing over
// host-provided geometry queries.
package movement

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/event"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Controller owns the tunables and the query volume of one actor.
// It is not safe for concurrent use; one controller runs one tick at a time.
type Controller struct {
	Config  Config
	Shape   *actor.Box
	Queries Queries
	Events  *event.Events

	// contact supporting the controller during the current tick
	support actor.Contact
}

// NewController validates cfg and builds a controller with a box volume
func NewController(cfg Config, halfExtents mgl64.Vec3, queries Queries) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if queries == nil {
		return nil, errors.New("movement: queries are required")
	}
	for i := 0; i < 3; i++ {
		if !(halfExtents[i] > 0) {
			return nil, errors.Errorf("movement: half extents must be positive, got %v", halfExtents)
		}
	}

	return &Controller{
		Config:  cfg,
		Shape:   &actor.Box{HalfExtents: halfExtents},
		Queries: queries,
	}, nil
}

// castMask is the collision mask without the controller's own layer
func (c *Controller) castMask() actor.LayerMask {
	return c.Config.CollisionMask.Without(c.Config.PlayerLayer)
}

// Tick advances s by dt seconds and returns the next state. Order:
// gravity, support classification, jump, acceleration and friction,
// velocity clamp, integration, penetration resolution.
func (c *Controller) Tick(s State, input Input, dt float64) State {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return s
	}

	previous := s
	s.Rotation = orientation(s.Rotation)
	if !finite(s.Velocity) {
		s.Velocity = mgl64.Vec3{}
	}

	if !s.Grounded {
		s.Velocity[1] -= c.Config.Gravity * dt
	}

	c.classify(&s)

	if s.Grounded && input.Jump {
		s.Velocity[1] += c.Config.JumpPower
		s.Grounded = false
		c.Events.Emit(JumpedEvent{Position: s.Position, Velocity: s.Velocity})
	}

	wishDir, wishSpeed := wish(input, s.Rotation, c.Config.MoveSpeed)

	if s.Grounded {
		s.Velocity = Accelerate(s.Velocity, wishDir, wishSpeed, c.Config.Acceleration, dt, c.Config.SurfaceFriction)
		if c.Config.LegacyGroundClamp {
			s.Velocity = ClampMagnitude(s.Velocity, c.Config.MaxVelocity)
		} else {
			s.Velocity = ClampHorizontal(s.Velocity, c.Config.MoveSpeed)
		}
		s.Velocity = ApplyFriction(s.Velocity, c.Config.StopSpeed, c.Config.Friction, dt)
	} else {
		s.Velocity = AirAccelerate(s.Velocity, wishDir, wishSpeed, c.Config.AirAcceleration, c.Config.AirCap, dt)
	}

	s.Velocity = ClampMagnitude(s.Velocity, c.Config.MaxVelocity)

	s.Position = s.Position.Add(s.Velocity.Mul(dt))

	c.resolve(&s)

	if !finite(s.Velocity) {
		s.Velocity = mgl64.Vec3{}
	}

	c.emitTransitions(previous, s)
	c.Events.Flush()

	return s
}

func (c *Controller) emitTransitions(previous, s State) {
	switch {
	case !previous.Grounded && s.Grounded:
		c.Events.Emit(LandedEvent{Position: s.Position, Surface: c.support.Collider})
	case previous.Grounded && !s.Grounded:
		c.Events.Emit(LeftGroundEvent{Position: s.Position, Velocity: s.Velocity})
	}

	switch {
	case !previous.Surfing && s.Surfing:
		c.Events.Emit(SurfEnterEvent{Surface: c.support.Collider, Normal: c.support.Normal})
	case previous.Surfing && !s.Surfing:
		c.Events.Emit(SurfExitEvent{Position: s.Position})
	}
}
