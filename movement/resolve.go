package movement

import (
	"github.com/akmonengine/hopper/actor"
)

// resolve pushes the volume out of everything it overlaps after integration.
// Overlaps whose separation direction already agrees with the travel direction
// are left alone: the controller is moving out of them.
func (c *Controller) resolve(s *State) {
	overlaps := c.Queries.Overlap(s.Position, c.Shape.HalfExtents, s.Rotation, c.castMask())
	if len(overlaps) == 0 {
		return
	}

	pose := actor.NewTransform(s.Position, s.Rotation)
	for _, other := range overlaps {
		direction, depth, ok := c.Queries.Penetration(c.Shape, pose, other)
		if !ok {
			continue
		}

		travel, _ := SafeNormalize(s.Velocity)
		if direction.Dot(travel) > 0 {
			continue
		}

		if !s.Surfing {
			s.Position = s.Position.Add(direction.Mul(depth))
			pose = actor.NewTransform(s.Position, s.Rotation)
			s.Velocity = s.Velocity.Sub(Project(s.Velocity, direction.Mul(-1)))
		} else {
			s.Velocity = Clip(s.Velocity, direction, 1.0)
		}

		c.Events.Emit(PenetrationResolvedEvent{
			Collider:  other,
			Direction: direction,
			Depth:     depth,
			Surfing:   s.Surfing,
		})
	}
}
