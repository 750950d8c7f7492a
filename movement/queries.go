package movement

import (
	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Queries are the geometry queries the controller needs from the host.
type Queries interface {
	// ShapeCast sweeps a box and returns every contact within maxDistance, in any order
	ShapeCast(center, halfExtents, direction mgl64.Vec3, orientation mgl64.Quat, maxDistance float64, mask actor.LayerMask) []actor.Contact
	// Overlap returns the colliders touching the box
	Overlap(center, halfExtents mgl64.Vec3, orientation mgl64.Quat, mask actor.LayerMask) []*actor.Collider
	// Penetration returns the direction and depth to move shape out of other
	Penetration(shape actor.ShapeInterface, pose actor.Transform, other *actor.Collider) (direction mgl64.Vec3, depth float64, ok bool)
}
