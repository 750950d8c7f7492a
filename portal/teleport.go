package portal

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// flip is half a turn about local up: portals join front to front
var flip = mgl64.QuatRotate(math.Pi, actor.Up)

// Teleport maps a point and a direction entering in onto the matching
// point and direction leaving out.
func Teleport(in, out actor.Transform, point, direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	localPoint := flip.Rotate(in.InverseTransformPoint(point))
	localDirection := flip.Rotate(in.InverseTransformDirection(direction))

	return out.TransformPoint(localPoint), out.TransformDirection(localDirection)
}
