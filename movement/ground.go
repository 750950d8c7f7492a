package movement

import (
	"sort"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var down = mgl64.Vec3{0, -1, 0}

// classify casts below the volume and updates Grounded/Surfing. Ground support
// zeroes or clips the vertical motion, a surf surface nudges and clips.
func (c *Controller) classify(s *State) {
	s.Surfing = false

	hits := c.Queries.ShapeCast(s.Position, c.Shape.HalfExtents, down, s.Rotation, c.Config.GroundCastDistance, c.castMask())
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	ground, surf := -1, -1
	rising := s.Velocity.Y() > c.Config.NonJumpVelocity
	for i, hit := range hits {
		if hit.Normal.Y() >= c.Config.GroundNormalY {
			if ground == -1 && !rising {
				ground = i
			}
			continue
		}
		// Contacts already overlapping at the start of the cast carry no point
		if surf == -1 && hit.Point != (mgl64.Vec3{}) {
			surf = i
		}
	}

	s.Grounded = ground != -1
	c.support = actor.Contact{}

	if s.Grounded {
		closest := hits[ground]
		c.support = closest

		if closest.Normal.Y() < 1 {
			c.clip(s, closest, 1.0)
		} else {
			s.Velocity[1] = 0
		}
		return
	}

	if surf != -1 {
		closest := hits[surf]
		c.support = closest

		s.Position = s.Position.Add(closest.Normal.Mul(c.Config.SurfNudge))
		c.clip(s, closest, 1.0)
		s.Surfing = true
	}
}

func (c *Controller) clip(s *State, contact actor.Contact, overbounce float64) {
	before := s.Velocity
	s.Velocity = Clip(s.Velocity, contact.Normal, overbounce)

	c.Events.Emit(VelocityClippedEvent{
		Surface: contact.Collider,
		Normal:  contact.Normal,
		Before:  before,
		After:   s.Velocity,
	})
}
